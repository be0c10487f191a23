package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// ScoreEvent is the provider-neutral view of one game on the scoreboard.
type ScoreEvent struct {
	Date      string // YYYY-MM-DD
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	Completed bool
}

// ScoreboardClient pulls the day's games from an ESPN-shaped scoreboard feed.
// The feed is an unreliable collaborator: schema drift and partial events are
// decoded defensively and surface as skipped events, never as a crash.
type ScoreboardClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

const defaultScoreboardURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"

func NewScoreboardClient() *ScoreboardClient {
	baseURL := os.Getenv("SCOREBOARD_URL")
	if baseURL == "" {
		baseURL = defaultScoreboardURL
	}
	return &ScoreboardClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// espnScoreboard mirrors the fields we need from the ESPN scoreboard payload.
type espnScoreboard struct {
	Events []struct {
		Date   string `json:"date"` // ISO, e.g. "2025-11-23T18:00Z"
		Status struct {
			Type struct {
				Completed bool `json:"completed"`
			} `json:"type"`
		} `json:"status"`
		Competitions []struct {
			Competitors []struct {
				HomeAway string `json:"homeAway"`
				Score    string `json:"score"`
				Team     struct {
					DisplayName string `json:"displayName"`
				} `json:"team"`
			} `json:"competitors"`
		} `json:"competitions"`
	} `json:"events"`
}

// GetScoreboard fetches the feed once and flattens it into ScoreEvents.
// Events missing a competition, a home/away side or a parseable score are
// dropped.
func (c *ScoreboardClient) GetScoreboard(ctx context.Context) ([]ScoreEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoreboard request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call scoreboard feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("scoreboard feed returned status %d: %s", resp.StatusCode, string(body))
	}

	var board espnScoreboard
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("failed to decode scoreboard response: %w", err)
	}

	events := make([]ScoreEvent, 0, len(board.Events))
	for _, ev := range board.Events {
		if len(ev.Competitions) == 0 {
			continue
		}

		event := ScoreEvent{
			Date:      isoDate(ev.Date),
			Completed: ev.Status.Type.Completed,
		}
		hasHome, hasAway := false, false
		for _, side := range ev.Competitions[0].Competitors {
			// Scores arrive as strings; an unparseable one reads as 0.
			score, _ := strconv.Atoi(side.Score)
			switch side.HomeAway {
			case "home":
				event.HomeTeam = side.Team.DisplayName
				event.HomeScore = score
				hasHome = true
			case "away":
				event.AwayTeam = side.Team.DisplayName
				event.AwayScore = score
				hasAway = true
			}
		}
		if !hasHome || !hasAway {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// isoDate extracts YYYY-MM-DD from an ISO timestamp.
func isoDate(iso string) string {
	if len(iso) < 10 {
		return ""
	}
	return iso[:10]
}
