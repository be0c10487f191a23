package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/kevinsgzcode/dashboard-bets-core/middleware"
	"github.com/kevinsgzcode/dashboard-bets-core/services"
)

func SetupPickRoutes(app *fiber.App, db *gorm.DB, pickService *services.PickService, statsService *services.StatsService, settlementService *services.SettlementService) {
	// 🔐 Everything pick-related requires a valid session
	secured := app.Group("/api", middleware.SessionAuthMiddleware(db))

	// Pick CRUD
	secured.Get("/picks", pickService.ListPicks)
	secured.Post("/picks", pickService.CreatePick)
	secured.Put("/picks/:id", pickService.UpdatePick)
	secured.Delete("/picks/:id", pickService.DeletePick)

	// Bankroll rollup
	secured.Get("/stats", statsService.GetStats)

	// Settlement: manual reconciliation trigger + ad hoc score lookup
	secured.Get("/update-results", settlementService.UpdateResults)
	secured.Get("/scores", settlementService.GetTeamScore)
}
