package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kevinsgzcode/dashboard-bets-core/models"
	"github.com/kevinsgzcode/dashboard-bets-core/odds"
	"github.com/kevinsgzcode/dashboard-bets-core/utils"
)

// ErrPickNotFound marks operations on a pick that does not exist or belongs
// to another user. Handlers translate it to 404, distinct from bad input.
var ErrPickNotFound = errors.New("pick not found")

// ValidationError is an expected, recoverable rejection of caller input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// PickService owns the pick lifecycle: every mutation funnels through here so
// the derived financial fields are always recomputed from scratch.
type PickService struct {
	DB *gorm.DB

	// Per-pick write locks: update is a read-merge-write, so writers racing
	// on the same id must serialize. Different picks proceed concurrently.
	// Entries are evicted when their pick is deleted.
	locks sync.Map
}

func NewPickService(db *gorm.DB) *PickService {
	return &PickService{DB: db}
}

func (s *PickService) lockPick(id string) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

type CreatePickInput struct {
	Team      string
	Bet       string
	Odds      string
	Stake     float64
	League    string
	MatchDate string
}

type UpdatePickInput struct {
	Result *string
	Odds   *string
	Stake  *float64
}

// Create validates the input, normalizes the odds and persists a pending pick
// with its derived fields computed.
func (s *PickService) Create(userID string, in CreatePickInput) (*models.Pick, error) {
	team := strings.TrimSpace(in.Team)
	bet := strings.TrimSpace(in.Bet)
	league := strings.TrimSpace(in.League)

	if team == "" || bet == "" {
		return nil, validationErrorf("team and bet are required")
	}
	if league == "" {
		return nil, validationErrorf("league is required")
	}
	if !utils.ValidMatchDate(in.MatchDate) {
		return nil, validationErrorf("match_date must be YYYY-MM-DD")
	}
	if !odds.ValidStake(in.Stake) {
		return nil, validationErrorf("stake must be a positive number")
	}

	raw := acceptedOdds(in.Odds)
	if !odds.ValidOdds(raw) {
		return nil, validationErrorf("invalid odds %q: expected American (magnitude >= 100) or decimal (> 1.01)", in.Odds)
	}
	parsed := odds.ParseOdds(raw)
	if !parsed.Valid {
		return nil, validationErrorf("invalid odds %q: %s", in.Odds, parsed.Reason)
	}

	derived := odds.ComputeDerived(in.Stake, parsed.Decimal, odds.ResultPending)
	pick := &models.Pick{
		ID:          uuid.NewString(),
		UserID:      userID,
		Team:        team,
		Bet:         bet,
		Odds:        raw,
		Stake:       in.Stake,
		PossibleWin: derived.PossibleWin,
		ProfitLoss:  derived.ProfitLoss,
		Result:      odds.ResultPending,
		League:      league,
		MatchDate:   in.MatchDate,
	}

	if err := s.DB.Create(pick).Error; err != nil {
		return nil, err
	}
	return pick, nil
}

// Update merges the provided fields over the stored pick, re-validates the
// merged record and recomputes both derived fields before persisting. A bad
// partial update leaves the stored record untouched.
func (s *PickService) Update(userID, id string, in UpdatePickInput) (*models.Pick, error) {
	unlock := s.lockPick(id)
	defer unlock()

	var updated *models.Pick
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var pick models.Pick
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&pick).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPickNotFound
			}
			return err
		}

		if in.Result != nil {
			if !models.ValidResult(*in.Result) {
				return validationErrorf("invalid result %q: must be pending, won or lost", *in.Result)
			}
			pick.Result = *in.Result
		}
		if in.Odds != nil {
			raw := acceptedOdds(*in.Odds)
			if !odds.ValidOdds(raw) {
				return validationErrorf("invalid odds %q", *in.Odds)
			}
			pick.Odds = raw
		}
		if in.Stake != nil {
			if !odds.ValidStake(*in.Stake) {
				return validationErrorf("stake must be a positive number")
			}
			pick.Stake = *in.Stake
		}

		parsed := odds.ParseOdds(pick.Odds)
		if !parsed.Valid {
			return validationErrorf("stored odds %q no longer parse: %s", pick.Odds, parsed.Reason)
		}
		derived := odds.ComputeDerived(pick.Stake, parsed.Decimal, pick.Result)
		pick.PossibleWin = derived.PossibleWin
		pick.ProfitLoss = derived.ProfitLoss

		if err := tx.Save(&pick).Error; err != nil {
			return err
		}
		updated = &pick
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get fetches a single pick scoped to its owner.
func (s *PickService) Get(userID, id string) (*models.Pick, error) {
	var pick models.Pick
	if err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&pick).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPickNotFound
		}
		return nil, err
	}
	return &pick, nil
}

// Delete removes the pick. No derived state elsewhere depends on it.
func (s *PickService) Delete(userID, id string) error {
	unlock := s.lockPick(id)
	defer unlock()

	res := s.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Pick{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPickNotFound
	}
	// The id is gone, so its lock entry can go too; a late updater just
	// allocates a fresh mutex and then fails the lookup.
	s.locks.Delete(id)
	return nil
}

// List returns the user's picks, newest first, with the optional dashboard
// filters applied.
func (s *PickService) List(userID string, filter utils.PickFilter) ([]models.Pick, error) {
	var picks []models.Pick
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&picks).Error; err != nil {
		return nil, err
	}
	return utils.FilterPicks(picks, filter), nil
}

// acceptedOdds canonicalizes the raw input before validation: surrounding
// whitespace goes, a comma decimal separator becomes a dot. What survives is
// what gets persisted.
func acceptedOdds(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
}

// --- HTTP handlers ---

func (s *PickService) ListPicks(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	picks, err := s.List(userID, utils.PickFilter{
		Team:   c.Query("team"),
		Result: c.Query("result"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	})
	if err != nil {
		log.Printf("❌ [PICKS] list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load picks"})
	}
	return c.JSON(picks)
}

func (s *PickService) CreatePick(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var body struct {
		Team      string  `json:"team"`
		Bet       string  `json:"bet"`
		Odds      any     `json:"odds"`
		Stake     float64 `json:"stake"`
		Result    string  `json:"result"`
		League    string  `json:"league"`
		MatchDate string  `json:"match_date"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	// Picks always start pending; settlement happens via update.
	if body.Result != "" && body.Result != odds.ResultPending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "new picks start as pending; settle them via PUT /api/picks/:id",
		})
	}

	pick, err := s.Create(userID, CreatePickInput{
		Team:      body.Team,
		Bet:       body.Bet,
		Odds:      oddsInputString(body.Odds),
		Stake:     body.Stake,
		League:    body.League,
		MatchDate: body.MatchDate,
	})
	if err != nil {
		return writePickError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Pick created", "pick": pick})
}

func (s *PickService) UpdatePick(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")

	var body struct {
		Result *string  `json:"result"`
		Odds   any      `json:"odds"`
		Stake  *float64 `json:"stake"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
	}

	in := UpdatePickInput{Result: body.Result, Stake: body.Stake}
	if body.Odds != nil {
		raw := oddsInputString(body.Odds)
		in.Odds = &raw
	}

	pick, err := s.Update(userID, id, in)
	if err != nil {
		return writePickError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Pick updated", "pick": pick})
}

func (s *PickService) DeletePick(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")

	if err := s.Delete(userID, id); err != nil {
		return writePickError(c, err)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Pick %s deleted successfully", id)})
}

// oddsInputString tolerates odds arriving as a string or a bare JSON number,
// depending on the client.
func oddsInputString(v any) string {
	switch o := v.(type) {
	case string:
		return o
	case float64:
		return strconv.FormatFloat(o, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(o)
	}
}

// writePickError maps service failures onto response codes: bad input is 400,
// a missing record is 404, anything else is an opaque 500.
func writePickError(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Reason})
	case errors.Is(err, ErrPickNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pick not found"})
	default:
		log.Printf("❌ [PICKS] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
