package router

import (
	"strings"
	"time"

	"github.com/hangarline/hangarline/app/controllers"
	"github.com/hangarline/hangarline/internal/pkg/env"
	"github.com/hangarline/hangarline/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/") ||
				strings.HasPrefix(c.Path(), "/webhooks/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleStart)

	// Auth
	group.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Get("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)

	// Contact form
	group.Get("/contact", loggedInMiddleware, controllers.HandleContact)
	group.Post("/contact", loggedInMiddleware, middleware.DemoWriteGuard, controllers.HandleContact)

	// Configurator (public; the quote preview POST only computes, so it stays
	// usable in demo mode, while the callback request persists a record)
	group.Get("/configurator", loggedInMiddleware, controllers.HandleConfigurator)
	group.Post("/configurator/quote", loggedInMiddleware, controllers.HandleConfiguratorQuote)
	group.Post("/configurator/request", loggedInMiddleware, middleware.DemoWriteGuard, controllers.HandleQuoteRequestSubmit)

	// Onboarding wizard
	group.Get("/onboarding", middleware.RequireAuth, controllers.HandleOnboarding)
	group.Post("/onboarding/aircraft", middleware.RequireAuth, middleware.DemoWriteGuard, controllers.HandleOnboardingAircraft)
	group.Post("/onboarding/plan", middleware.RequireAuth, middleware.DemoWriteGuard, controllers.HandleOnboardingPlan)
	group.Post("/onboarding/confirm", middleware.RequireAuth, middleware.DemoWriteGuard, controllers.HandleOnboardingConfirm)

	// Owner portal. Reads allow demo mode; writes are blocked by the guard.
	group.Get("/dashboard", middleware.RequireAuthOrDemo, controllers.HandleDashboard)
	group.Get("/fleet", middleware.RequireAuth, controllers.HandleAircraftList)
	group.Post("/fleet", middleware.RequireAuth, middleware.DemoWriteGuard, controllers.HandleAircraftCreate)
	group.Post("/fleet/hours/:uuid", middleware.RequireAuth, middleware.DemoWriteGuard, controllers.HandleAircraftUpdateHours)
	group.Post("/fleet/delete/:uuid", middleware.RequireAuth, middleware.DemoWriteGuard, controllers.HandleAircraftDelete)

	group.Get("/requests", middleware.RequireAuth, controllers.HandleServiceRequestList)
	group.Post("/requests", middleware.RequireAuth, middleware.DemoWriteGuard, controllers.HandleServiceRequestCreate)
	group.Post("/requests/cancel/:uuid", middleware.RequireAuth, middleware.DemoWriteGuard, controllers.HandleServiceRequestCancel)

	group.Get("/invoices", middleware.RequireAuth, controllers.HandleInvoiceList)
	group.Get("/invoices/success", middleware.RequireAuth, controllers.HandleCheckoutSuccess)
	group.Post("/invoices/pay/:number", middleware.RequireAuth, middleware.DemoWriteGuard, controllers.HandleInvoiceCheckout)
	group.Post("/invoices/resync/:number", middleware.RequireAuth, middleware.DemoWriteGuard, controllers.HandleInvoiceResync)

	// Admin CMS pages
	group.Get("/admin/pages", middleware.RequireAdmin, controllers.HandleAdminPages)
	group.Post("/admin/pages", middleware.RequireAdmin, middleware.DemoWriteGuard, controllers.HandleAdminPageSave)
	group.Post("/admin/pages/delete/:id", middleware.RequireAdmin, middleware.DemoWriteGuard, controllers.HandleAdminPageDelete)
}
