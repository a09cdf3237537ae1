package router

import (
	"github.com/hangarline/hangarline/internal/pkg/middleware"
	"github.com/hangarline/hangarline/internal/pkg/oauth"
	"github.com/hangarline/hangarline/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Public routes (OAuth, webhooks) sit in front of the CSRF layer on
	// purpose. Admin routes come last so the CSRF group covers them.
	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
	h.registerAdminRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContextMiddleware already set all user context
	// All user information is available via usercontext.GetUserContext(c)
	return c.Next()
}

// Auth middlewares live in internal/pkg/middleware/auth.go
