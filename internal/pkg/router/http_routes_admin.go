package router

import (
	"github.com/hangarline/hangarline/app/controllers"
	"github.com/hangarline/hangarline/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	// The write guard covers an admin who flipped their own session into demo
	// mode; reads pass through it untouched.
	adminGroup := app.Group("/admin", middleware.RequireAdmin, middleware.DemoWriteGuard)
	adminGroup.Get("/", controllers.HandleAdminDashboard)

	// User management
	adminGroup.Get("/users", controllers.HandleAdminUsers)
	adminGroup.Post("/users/update/:id", controllers.HandleAdminUserUpdate)

	// Service request board
	adminGroup.Get("/board", controllers.HandleAdminBoard)
	adminGroup.Post("/board/move/:uuid", controllers.HandleAdminBoardMove)
	adminGroup.Post("/board/assign/:uuid", controllers.HandleAdminBoardAssign)
	adminGroup.Post("/board/schedule/:uuid", controllers.HandleAdminBoardSchedule)

	// Quote request triage
	adminGroup.Get("/quotes", controllers.HandleAdminQuotes)
	adminGroup.Post("/quotes/contacted/:uuid", controllers.HandleAdminQuoteContacted)
	adminGroup.Post("/quotes/close/:uuid", controllers.HandleAdminQuoteClose)

	// Credit rule configuration
	adminGroup.Get("/credit-rules", controllers.HandleAdminCreditRules)
	adminGroup.Post("/credit-rules", controllers.HandleAdminCreditRuleSave)

	// Pricing catalog refresh
	adminGroup.Post("/catalog/refresh", controllers.HandleAdminCatalogRefresh)
}
