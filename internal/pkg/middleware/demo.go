package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/hangarline/hangarline/internal/pkg/constants"
	"github.com/hangarline/hangarline/internal/pkg/usercontext"
)

// DemoWriteGuard rejects state-changing requests while the session browses in
// demo mode. The check is a capability decision made here, once, at the route
// layer; handlers never need to know the mode exists. Reads pass through so
// the demo portal stays fully clickable.
func DemoWriteGuard(c *fiber.Ctx) error {
	if !usercontext.IsDemo(c) {
		return c.Next()
	}

	switch c.Method() {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
	default:
		return c.Next()
	}

	fm := fiber.Map{
		"type":    "error",
		"message": "This action is disabled in the demo. Sign up to manage your own aircraft.",
	}
	target := c.Get("Referer")
	if target == "" {
		target = constants.DashboardRoute
	}
	return flash.WithError(c, fm).Redirect(target, fiber.StatusSeeOther)
}

// DemoWriteGuardAPI is the JSON variant for API routes.
func DemoWriteGuardAPI(c *fiber.Ctx) error {
	if !usercontext.IsDemo(c) {
		return c.Next()
	}

	switch c.Method() {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "demo_read_only",
			"message": "Write operations are disabled in demo mode",
		})
	}
	return c.Next()
}
