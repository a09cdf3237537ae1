package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/hangarline/hangarline/internal/pkg/usercontext"
)

const (
	AUTH_KEY       string = "authenticated"
	USER_ID        string = "user_id"
	USER_NAME      string = "username"
	USER_IS_ADMIN  string = "isAdmin"
	FROM_PROTECTED string = "from_protected"
)

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(FROM_PROTECTED); protectedValue != nil {
		fromProtected = protectedValue.(bool)
	}

	return fromProtected
}

// ExtractUsername gets the username from Locals (set by middleware)
func ExtractUsername(c *fiber.Ctx) string {
	// Get from Locals (set by authentication middleware)
	if userNameValue := c.Locals(USER_NAME); userNameValue != nil {
		if userName, ok := userNameValue.(string); ok {
			return userName
		}
	}

	return ""
}

// layoutData assembles the common template bindings every page needs:
// session state, flash message and the page title suffix.
func layoutData(c *fiber.Ctx, page string) fiber.Map {
	uc := usercontext.GetUserContext(c)
	csrfToken, _ := c.Locals("csrf").(string)
	return fiber.Map{
		"Page":          page,
		"FromProtected": uc.IsLoggedIn,
		"Username":      uc.Username,
		"IsAdmin":       uc.IsAdmin,
		"IsDemo":        uc.Mode == usercontext.ModeDemo,
		"Plan":          uc.Plan,
		"Msg":           flash.Get(c),
		"CSRFToken":     csrfToken,
	}
}

// GetClientIP determines the actual client IP address considering proxies.
// The first X-Forwarded-For entry wins, then CF-Connecting-IP, then the
// socket address.
func GetClientIP(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}
	return c.IP()
}
