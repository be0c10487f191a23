package services

import (
	"errors"
	"log"
	"math"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/kevinsgzcode/dashboard-bets-core/models"
)

// Stats is the bankroll rollup over all of a user's picks, pending included.
type Stats struct {
	InitialBank     float64 `json:"initialBank"`
	CurrentBank     float64 `json:"currentBank"`
	TotalStake      float64 `json:"totalStake"`
	TotalProfitLoss float64 `json:"totalProfitLoss"`
	ROI             float64 `json:"ROI"` // percent, two decimals
}

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// Aggregate computes the rollup in a single SQL pass. A user with zero picks
// gets all-zero sums and their initial bank untouched.
func (s *StatsService) Aggregate(userID string) (*Stats, error) {
	initialBank := models.DefaultInitialBank
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else if user.InitialBank > 0 {
		initialBank = user.InitialBank
	}

	var row struct {
		TotalStake      float64
		TotalProfitLoss float64
	}
	if err := s.DB.Model(&models.Pick{}).
		Select("COALESCE(SUM(stake), 0) AS total_stake, COALESCE(SUM(profit_loss), 0) AS total_profit_loss").
		Where("user_id = ?", userID).
		Scan(&row).Error; err != nil {
		return nil, err
	}

	roi := 0.0
	if row.TotalStake > 0 {
		roi = round2(row.TotalProfitLoss * 100 / row.TotalStake)
	}

	return &Stats{
		InitialBank:     initialBank,
		CurrentBank:     initialBank + row.TotalProfitLoss,
		TotalStake:      row.TotalStake,
		TotalProfitLoss: row.TotalProfitLoss,
		ROI:             roi,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GetStats serves GET /api/stats for the authenticated user.
func (s *StatsService) GetStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	stats, err := s.Aggregate(userID)
	if err != nil {
		log.Printf("❌ [STATS] aggregate failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute stats"})
	}
	return c.JSON(stats)
}
