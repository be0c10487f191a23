package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kevinsgzcode/dashboard-bets-core/services"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService) {
	// 🔓 Public: registration and login issue the session the pick routes need
	app.Post("/api/users", userService.Register)
	app.Post("/api/login", userService.Login)
	app.Get("/api/users", userService.ListUsers)
}
