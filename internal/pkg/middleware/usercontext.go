package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hangarline/hangarline/app/controllers"
	"github.com/hangarline/hangarline/app/models"
	"github.com/hangarline/hangarline/internal/pkg/database"
	"github.com/hangarline/hangarline/internal/pkg/session"
	"github.com/hangarline/hangarline/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the complete user context for every request
// This centralizes user session handling and eliminates code duplication
func UserContextMiddleware(c *fiber.Ctx) error {
	// Avoid interfering with Goth/Fiber session handling on OAuth routes.
	// Goth uses its own fiber session store and relies on per-request locals.
	// We skip our app session on /auth/* to prevent cross-store collisions.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}
	// Get session with error handling
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		// On error: set as anonymous user
		c.Locals("USER_CONTEXT", usercontext.UserContext{
			IsLoggedIn: false,
			IsAdmin:    false,
			Mode:       usercontext.ModeLive,
		})
		c.Locals(controllers.FROM_PROTECTED, false)
		c.Locals(controllers.USER_IS_ADMIN, false)
		return c.Next()
	}

	mode := resolvePortalMode(c)

	// Get user ID from session
	userID := sess.Get(controllers.USER_ID)
	if userID == nil {
		// Anonymous user - no session data
		c.Locals("USER_CONTEXT", usercontext.UserContext{
			IsLoggedIn: false,
			IsAdmin:    false,
			Mode:       mode,
		})
		c.Locals(controllers.FROM_PROTECTED, false)
		c.Locals(controllers.USER_IS_ADMIN, false)
		return c.Next()
	}

	// User is logged in - get additional data
	username := session.GetSessionValue(c, controllers.USER_NAME)
	isAdmin := sess.Get(controllers.USER_IS_ADMIN)

	// Determine plan with session-first strategy
	plan := session.GetSessionValue(c, "user_plan")
	if plan == "" {
		plan = "none"
		if db := database.GetDB(); db != nil {
			if us, err := models.GetOrCreateUserSettings(db, userID.(uint)); err == nil && us != nil && us.Plan != "" {
				plan = us.Plan
			}
		}
		// cache in session for subsequent requests
		_ = session.SetSessionValue(c, "user_plan", plan)
	}
	// Set complete user context
	userCtx := usercontext.UserContext{
		UserID:     userID.(uint),
		Username:   username,
		IsLoggedIn: true,
		IsAdmin:    isAdmin != nil && isAdmin.(bool),
		Plan:       plan,
		Mode:       mode,
	}
	c.Locals("USER_CONTEXT", userCtx)

	// Legacy compatibility - keep existing Locals for backward compatibility
	c.Locals(controllers.FROM_PROTECTED, true)
	c.Locals(controllers.USER_NAME, username)
	c.Locals(controllers.USER_ID, userID.(uint))
	c.Locals(controllers.USER_IS_ADMIN, userCtx.IsAdmin)

	// Store username in user's individual session (multi-user safe)
	session.SetSessionValue(c, controllers.USER_NAME, username)

	return c.Next()
}

// resolvePortalMode decides live vs demo once per session. The mode is entered
// through the ?demo=1 query switch, persisted in the session, and left again
// with ?demo=0. Everything downstream reads the resolved mode, never the query.
func resolvePortalMode(c *fiber.Ctx) string {
	mode, persist := portalModeFor(c.Query("demo"), session.GetSessionValue(c, usercontext.KeyPortalMode))
	if persist {
		_ = session.SetSessionValue(c, usercontext.KeyPortalMode, mode)
	}
	return mode
}

// portalModeFor applies the switch rules: "1" enters demo, "0" leaves, any
// other query value is ignored and the stored mode wins. Only an explicit
// switch is written back to the session.
func portalModeFor(query, stored string) (mode string, persist bool) {
	switch query {
	case "1":
		return usercontext.ModeDemo, true
	case "0":
		return usercontext.ModeLive, true
	}
	if stored == usercontext.ModeDemo {
		return usercontext.ModeDemo, false
	}
	return usercontext.ModeLive, false
}
