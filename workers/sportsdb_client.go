package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/kevinsgzcode/dashboard-bets-core/odds"
)

var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrNoRecentEvents = errors.New("no recent events found")
)

// TeamResult is the latest finished (or in-progress) game for one team.
type TeamResult struct {
	Team      string `json:"team"`
	Opponent  string `json:"opponent"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Result    string `json:"result"`
}

// SportsDBClient looks up a team's last event on TheSportsDB free API.
// Backs the GET /api/scores endpoint.
type SportsDBClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

const defaultSportsDBURL = "https://www.thesportsdb.com/api/v1/json/3"

func NewSportsDBClient() *SportsDBClient {
	baseURL := os.Getenv("SPORTSDB_URL")
	if baseURL == "" {
		baseURL = defaultSportsDBURL
	}
	return &SportsDBClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sportsDBTeamSearch struct {
	Teams []struct {
		IDTeam  string `json:"idTeam"`
		StrTeam string `json:"strTeam"`
	} `json:"teams"`
}

type sportsDBLastEvents struct {
	Results []struct {
		StrHomeTeam  string `json:"strHomeTeam"`
		StrAwayTeam  string `json:"strAwayTeam"`
		IntHomeScore string `json:"intHomeScore"`
		IntAwayScore string `json:"intAwayScore"`
		StrStatus    string `json:"strStatus"`
	} `json:"results"`
}

// LookupLastResult resolves the team by name, pulls its most recent event and
// scores it from the queried team's perspective. Unfinished games come back
// with Result pending.
func (c *SportsDBClient) LookupLastResult(ctx context.Context, team string) (*TeamResult, error) {
	var search sportsDBTeamSearch
	searchURL := fmt.Sprintf("%s/searchteams.php?t=%s", c.BaseURL, url.QueryEscape(team))
	if err := c.getJSON(ctx, searchURL, &search); err != nil {
		return nil, err
	}
	if len(search.Teams) == 0 {
		return nil, ErrTeamNotFound
	}
	canonical := search.Teams[0].StrTeam

	var last sportsDBLastEvents
	lastURL := fmt.Sprintf("%s/eventslast.php?id=%s", c.BaseURL, url.QueryEscape(search.Teams[0].IDTeam))
	if err := c.getJSON(ctx, lastURL, &last); err != nil {
		return nil, err
	}
	if len(last.Results) == 0 {
		return nil, ErrNoRecentEvents
	}

	ev := last.Results[0]
	homeScore, _ := strconv.Atoi(ev.IntHomeScore)
	awayScore, _ := strconv.Atoi(ev.IntAwayScore)

	res := &TeamResult{
		Team:      team,
		HomeTeam:  ev.StrHomeTeam,
		AwayTeam:  ev.StrAwayTeam,
		HomeScore: homeScore,
		AwayScore: awayScore,
		Result:    odds.ResultPending,
	}
	if canonical == ev.StrHomeTeam {
		res.Opponent = ev.StrAwayTeam
	} else {
		res.Opponent = ev.StrHomeTeam
	}

	if ev.StrStatus == "Match Finished" {
		if (canonical == ev.StrHomeTeam && homeScore > awayScore) ||
			(canonical == ev.StrAwayTeam && awayScore > homeScore) {
			res.Result = odds.ResultWon
		} else {
			res.Result = odds.ResultLost
		}
	}
	return res, nil
}

func (c *SportsDBClient) getJSON(ctx context.Context, rawURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call TheSportsDB: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("TheSportsDB returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode TheSportsDB response: %w", err)
	}
	return nil
}
