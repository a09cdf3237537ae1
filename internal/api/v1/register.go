package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hangarline/hangarline/internal/pkg/middleware"
)

// RegisterHandlers wires the v1 endpoints onto the router group. Quote and
// ping are public; credits require a logged-in session.
func RegisterHandlers(router fiber.Router, s *APIServer) {
	router.Get("/ping", s.GetPing)
	router.Get("/quote", s.GetQuote)
	router.Get("/credits", middleware.RequireAPISessionAuth, s.GetCredits)
}
