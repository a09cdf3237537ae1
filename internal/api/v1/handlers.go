package apiv1

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hangarline/hangarline/app/controllers"
	"github.com/hangarline/hangarline/app/repository"
	"github.com/hangarline/hangarline/internal/pkg/credits"
	"github.com/hangarline/hangarline/internal/pkg/pricing"
)

// APIServer implements the v1 endpoints
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// Pong is the ping response body
type Pong struct {
	Ping string `json:"ping"`
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// quoteResponse is the JSON shape of a computed quote.
type quoteResponse struct {
	TierID       string         `json:"tier_id"`
	TierName     string         `json:"tier_name"`
	BandID       string         `json:"band_id"`
	BandLabel    string         `json:"band_label"`
	BaseMonthly  float64        `json:"base_monthly"`
	Multiplier   float64        `json:"multiplier"`
	MonthlyTotal float64        `json:"monthly_total"`
	Currency     string         `json:"currency"`
	Addons       []pricing.Addon `json:"addons,omitempty"`
}

// GetQuote computes a price quote for tier/hours/add-on query parameters.
func (s *APIServer) GetQuote(c *fiber.Ctx) error {
	catalog, err := controllers.GetCatalog()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "catalog_unavailable",
			"message": "Pricing is temporarily unavailable",
		})
	}

	hours, err := strconv.ParseFloat(strings.TrimSpace(c.Query("hours")), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "hours must be a number",
		})
	}

	quote, err := catalog.PriceFor(c.Query("tier"), hours)
	if err == nil {
		var addons []string
		if raw := c.Query("addons"); raw != "" {
			addons = strings.Split(raw, ",")
		}
		quote, err = catalog.ApplyAddons(quote, addons)
	}
	if err != nil {
		return quoteError(c, err)
	}

	return c.JSON(quoteResponse{
		TierID:       quote.TierID,
		TierName:     quote.TierName,
		BandID:       quote.Band.ID,
		BandLabel:    quote.Band.Label,
		BaseMonthly:  quote.BaseMonthly,
		Multiplier:   quote.Multiplier,
		MonthlyTotal: quote.MonthlyTotal,
		Currency:     "USD",
		Addons:       quote.Addons,
	})
}

// creditLineResponse is one service allocation in the credits response.
type creditLineResponse struct {
	ServiceType  string  `json:"service_type"`
	DisplayName  string  `json:"display_name"`
	BaseCredits  float64 `json:"base_credits"`
	Multiplier   float64 `json:"multiplier"`
	TotalCredits float64 `json:"total_credits"`
	RollsOver    bool    `json:"rolls_over"`
}

// GetCredits computes the monthly credit allocations for the given hours.
func (s *APIServer) GetCredits(c *fiber.Ctx) error {
	hours, err := strconv.ParseFloat(strings.TrimSpace(c.Query("hours")), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "hours must be a number",
		})
	}

	tierName, err := credits.TierNameForHours(hours)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": "hours must be a non-negative number",
		})
	}
	multiplier, _ := credits.MultiplierForHours(hours)

	ruleRows, err := repository.GetGlobalFactory().GetCreditRuleRepository().GetActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "internal_server_error",
			"message": "Could not load credit rules",
		})
	}
	rules := make([]credits.Rule, 0, len(ruleRows))
	for _, row := range ruleRows {
		rules = append(rules, row.EngineRule())
	}

	allocations, err := credits.ServiceCreditBatch(hours, rules)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "bad_request",
			"message": err.Error(),
		})
	}

	lines := make([]creditLineResponse, 0, len(ruleRows))
	for _, row := range ruleRows {
		alloc := allocations[row.ServiceType]
		lines = append(lines, creditLineResponse{
			ServiceType:  row.ServiceType,
			DisplayName:  row.DisplayName,
			BaseCredits:  alloc.BaseCredits,
			Multiplier:   alloc.Multiplier,
			TotalCredits: alloc.TotalCredits,
			RollsOver:    row.RollsOver,
		})
	}

	return c.JSON(fiber.Map{
		"activity_tier": string(tierName),
		"multiplier":    multiplier,
		"credits":       lines,
	})
}

func quoteError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := "internal_server_error"
	switch {
	case errors.Is(err, pricing.ErrInvalidHours):
		status, code = fiber.StatusBadRequest, "invalid_hours"
	case errors.Is(err, pricing.ErrTierNotFound):
		status, code = fiber.StatusNotFound, "tier_not_found"
	case errors.Is(err, pricing.ErrBandNotFound):
		status, code = fiber.StatusNotFound, "band_not_found"
	case errors.Is(err, pricing.ErrCatalogUnavailable):
		status, code = fiber.StatusServiceUnavailable, "catalog_unavailable"
	}
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": err.Error(),
	})
}
