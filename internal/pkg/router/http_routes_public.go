package router

import (
	"github.com/hangarline/hangarline/app/controllers"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Marketing pages
	app.Get("/about", loggedInMiddleware, controllers.HandleAbout)
	app.Get("/pricing", loggedInMiddleware, controllers.HandlePricing)

	// CMS page display
	app.Get("/page/:slug", loggedInMiddleware, controllers.HandlePage)

	// Account activation
	app.Get("/activate/:token", loggedInMiddleware, controllers.HandleAuthActivate)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)

	// Payment provider webhooks (no CSRF, signature-verified in controller)
	app.Post("/webhooks/checkout", controllers.HandleCheckoutWebhook)
}
