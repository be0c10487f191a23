package services

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/kevinsgzcode/dashboard-bets-core/models"
	"github.com/kevinsgzcode/dashboard-bets-core/odds"
	"github.com/kevinsgzcode/dashboard-bets-core/workers"
)

// ScoreSource supplies completed-game data for pending picks.
type ScoreSource interface {
	GetScoreboard(ctx context.Context) ([]workers.ScoreEvent, error)
}

// LastResultSource backs the ad hoc GET /api/scores lookup.
type LastResultSource interface {
	LookupLastResult(ctx context.Context, team string) (*workers.TeamResult, error)
}

// SettlementService reconciles pending picks against the external score feed.
// Each pick is an independent unit: one bad match or provider hiccup is
// logged and skipped, never aborting the batch.
type SettlementService struct {
	DB      *gorm.DB
	Picks   *PickService
	Scores  ScoreSource
	Results LastResultSource
	Matcher EventMatcher
}

func NewSettlementService(db *gorm.DB, picks *PickService, scores ScoreSource, results LastResultSource) *SettlementService {
	return &SettlementService{
		DB:      db,
		Picks:   picks,
		Scores:  scores,
		Results: results,
		Matcher: FuzzyTeamMatcher{},
	}
}

// SettledPick is the per-pick detail returned by a reconciliation pass.
type SettledPick struct {
	ID         string  `json:"id"`
	Team       string  `json:"team"`
	Result     string  `json:"result"`
	ProfitLoss float64 `json:"profitLoss"`
}

type SettlementReport struct {
	Updated int           `json:"updated"`
	Details []SettledPick `json:"details"`
}

// RunOnce performs one reconciliation pass. Settlement drives the regular
// pick update path, so derived fields are recomputed rather than incremented
// and re-running against the same feed data is a no-op.
func (s *SettlementService) RunOnce(ctx context.Context) (*SettlementReport, error) {
	report := &SettlementReport{Details: []SettledPick{}}

	var pending []models.Pick
	if err := s.DB.Where("result = ?", odds.ResultPending).Find(&pending).Error; err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return report, nil
	}

	log.Printf("📡 Fetching results for %d pending pick(s)...", len(pending))
	events, err := s.Scores.GetScoreboard(ctx)
	if err != nil {
		// A dead feed settles nothing; picks stay pending until the next pass.
		log.Printf("❌ [SETTLE] scoreboard fetch failed: %v", err)
		return report, nil
	}
	log.Printf("📘 Loaded %d game(s) from the score feed", len(events))

	for _, pick := range pending {
		match, ok := s.Matcher.Match(pick, events)
		if !ok {
			log.Printf("⏸ No event found for %s on %s", pick.Team, pick.MatchDate)
			continue
		}
		if !match.Event.Completed {
			log.Printf("⏳ Game not completed yet: %s", pick.Team)
			continue
		}

		result := decideResult(match)
		updated, err := s.Picks.Update(pick.UserID, pick.ID, UpdatePickInput{Result: &result})
		if err != nil {
			log.Printf("❌ [SETTLE] failed to settle pick %s: %v", pick.ID, err)
			continue
		}

		report.Updated++
		report.Details = append(report.Details, SettledPick{
			ID:         updated.ID,
			Team:       updated.Team,
			Result:     updated.Result,
			ProfitLoss: updated.ProfitLoss,
		})
		log.Printf("🏈 Settled %s: %s", pick.Team, result)
	}
	return report, nil
}

// decideResult scores a completed event from the pick's side of it.
// A drawn game settles as lost.
func decideResult(match MatchedEvent) string {
	home, away := match.Event.HomeScore, match.Event.AwayScore
	if match.PickHome && home > away {
		return odds.ResultWon
	}
	if !match.PickHome && away > home {
		return odds.ResultWon
	}
	return odds.ResultLost
}

// --- HTTP handlers ---

// UpdateResults serves GET /api/update-results: one manual reconciliation
// pass, returning the updated count and per-pick detail.
func (s *SettlementService) UpdateResults(c *fiber.Ctx) error {
	report, err := s.RunOnce(c.Context())
	if err != nil {
		log.Printf("❌ [SETTLE] reconciliation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(report)
}

// GetTeamScore serves GET /api/scores?team= — the latest game for one team.
func (s *SettlementService) GetTeamScore(c *fiber.Ctx) error {
	team := c.Query("team")
	if team == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing 'team' parameter"})
	}

	res, err := s.Results.LookupLastResult(c.Context(), team)
	if err != nil {
		switch {
		case errors.Is(err, workers.ErrTeamNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "team not found"})
		case errors.Is(err, workers.ErrNoRecentEvents):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no recent events found"})
		default:
			log.Printf("❌ [SCORES] lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch scores"})
		}
	}
	return c.JSON(res)
}
