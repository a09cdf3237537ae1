package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarline/hangarline/internal/pkg/usercontext"
)

func newGuardedApp(mode string, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("USER_CONTEXT", usercontext.UserContext{Mode: mode})
		return c.Next()
	})
	app.Get("/dashboard", guard, func(c *fiber.Ctx) error {
		return c.SendString("read ok")
	})
	app.Post("/fleet", guard, func(c *fiber.Ctx) error {
		return c.SendString("write ok")
	})
	return app
}

func TestDemoWriteGuardAllowsReads(t *testing.T) {
	app := newGuardedApp(usercontext.ModeDemo, DemoWriteGuard)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDemoWriteGuardBlocksWrites(t *testing.T) {
	app := newGuardedApp(usercontext.ModeDemo, DemoWriteGuard)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/fleet", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestDemoWriteGuardRedirectsToReferer(t *testing.T) {
	app := newGuardedApp(usercontext.ModeDemo, DemoWriteGuard)

	req := httptest.NewRequest(fiber.MethodPost, "/fleet", nil)
	req.Header.Set("Referer", "/fleet")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/fleet", resp.Header.Get("Location"))
}

func TestDemoWriteGuardPassesLiveSessions(t *testing.T) {
	app := newGuardedApp(usercontext.ModeLive, DemoWriteGuard)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/fleet", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDemoWriteGuardAPIBlocksWritesWithJSON(t *testing.T) {
	app := newGuardedApp(usercontext.ModeDemo, DemoWriteGuardAPI)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/fleet", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, fiber.MIMEApplicationJSON, resp.Header.Get("Content-Type"))
}

func TestDemoWriteGuardAPIAllowsReads(t *testing.T) {
	app := newGuardedApp(usercontext.ModeDemo, DemoWriteGuardAPI)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPortalModeFor(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		stored  string
		want    string
		persist bool
	}{
		{"enter demo", "1", "", usercontext.ModeDemo, true},
		{"leave demo", "0", usercontext.ModeDemo, usercontext.ModeLive, true},
		{"sticky demo", "", usercontext.ModeDemo, usercontext.ModeDemo, false},
		{"default live", "", "", usercontext.ModeLive, false},
		{"garbage query ignored", "yes", "", usercontext.ModeLive, false},
		{"garbage query keeps demo", "yes", usercontext.ModeDemo, usercontext.ModeDemo, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mode, persist := portalModeFor(tc.query, tc.stored)
			assert.Equal(t, tc.want, mode)
			assert.Equal(t, tc.persist, persist)
		})
	}
}
