package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/hangarline/hangarline/app/models"
	"github.com/hangarline/hangarline/app/repository"
	"github.com/hangarline/hangarline/internal/pkg/pricing"
	"github.com/hangarline/hangarline/internal/pkg/usercontext"
)

// HandlePricing renders the public pricing grid: every tier with its hour
// bands, features, add-ons and included services.
func HandlePricing(c *fiber.Ctx) error {
	data := layoutData(c, "Pricing")

	catalog, err := GetCatalog()
	if err != nil {
		data["PricingUnavailable"] = true
		return c.Render("pages/pricing", data, "layouts/main")
	}

	type tierView struct {
		Tier  pricing.Tier
		Bands []pricing.HourBand
	}
	views := make([]tierView, 0, len(catalog.Tiers))
	for _, tier := range catalog.Tiers {
		bands, err := catalog.BandsForTier(tier.ID)
		if err != nil {
			continue
		}
		views = append(views, tierView{Tier: tier, Bands: bands})
	}
	data["Tiers"] = views
	data["ServiceMap"] = catalog.ServiceMap
	data["Locations"] = catalog.Locations
	return c.Render("pages/pricing", data, "layouts/main")
}

// HandleConfigurator renders the interactive quote configurator.
func HandleConfigurator(c *fiber.Ctx) error {
	data := layoutData(c, "Build your plan")
	data["CSRFToken"] = c.Locals("csrf")

	catalog, err := GetCatalog()
	if err != nil {
		data["PricingUnavailable"] = true
		return c.Render("pages/configurator", data, "layouts/main")
	}
	data["Tiers"] = catalog.Tiers
	data["Locations"] = catalog.Locations
	return c.Render("pages/configurator", data, "layouts/main")
}

// HandleConfiguratorQuote computes a live quote for the current selection and
// renders the price panel partial (HTMX swap target).
func HandleConfiguratorQuote(c *fiber.Ctx) error {
	catalog, err := GetCatalog()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).Render("partials/quote_unavailable", fiber.Map{})
	}

	tierID := c.FormValue("tier")
	hours, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("hours")), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).Render("partials/quote_error", fiber.Map{
			"Message": "Enter your expected monthly flown hours.",
		})
	}

	quote, err := assembleQuote(catalog, tierID, hours, selectedAddons(c))
	if err != nil {
		status, msg := quoteErrorResponse(err)
		return c.Status(status).Render("partials/quote_error", fiber.Map{"Message": msg})
	}

	return c.Render("partials/quote", fiber.Map{
		"Quote":    quote,
		"Services": catalog.ServiceMap[quote.Band.ID],
	})
}

// HandleQuoteRequestSubmit files a configurator selection as a staff ticket.
func HandleQuoteRequestSubmit(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	catalog, err := GetCatalog()
	if err != nil {
		fm["message"] = "Pricing is temporarily unavailable. Please try again later."
		return flash.WithError(c, fm).Redirect("/configurator")
	}

	hours, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("hours")), 64)
	if err != nil {
		fm["message"] = "Enter your expected monthly flown hours."
		return flash.WithError(c, fm).Redirect("/configurator")
	}

	tierID := c.FormValue("tier")
	addons := selectedAddons(c)
	quote, err := assembleQuote(catalog, tierID, hours, addons)
	if err != nil {
		_, msg := quoteErrorResponse(err)
		fm["message"] = msg
		return flash.WithError(c, fm).Redirect("/configurator")
	}

	request := &models.QuoteRequest{
		Name:           strings.TrimSpace(c.FormValue("name")),
		Email:          strings.TrimSpace(c.FormValue("email")),
		Phone:          strings.TrimSpace(c.FormValue("phone")),
		TierID:         quote.TierID,
		HourBandID:     quote.Band.ID,
		MonthlyHours:   hours,
		QuotedPriceUSD: quote.MonthlyTotal,
		Message:        c.FormValue("message"),
		Status:         models.QuoteRequestStatusNew,
	}
	if uid := usercontext.GetUserID(c); uid != 0 {
		request.UserID = &uid
	}
	if err := request.SetAddonNames(addons); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		return flash.WithError(c, fm).Redirect("/configurator")
	}
	if err := request.Validate(); err != nil {
		fm["message"] = "Please check your name and email address."
		return flash.WithError(c, fm).Redirect("/configurator")
	}

	if err := repository.GetGlobalFactory().GetQuoteRequestRepository().Create(request); err != nil {
		fm["message"] = "Could not submit your request. Please try again."
		return flash.WithError(c, fm).Redirect("/configurator")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Request received. Our team will reach out within one business day.",
	}
	return flash.WithSuccess(c, fm).Redirect("/configurator")
}

// assembleQuote runs the two-step quote computation: band-priced base, then
// add-on deltas.
func assembleQuote(catalog *pricing.Catalog, tierID string, hours float64, addons []string) (pricing.Quote, error) {
	quote, err := catalog.PriceFor(tierID, hours)
	if err != nil {
		return pricing.Quote{}, err
	}
	return catalog.ApplyAddons(quote, addons)
}

// selectedAddons reads the repeated addon checkbox values.
func selectedAddons(c *fiber.Ctx) []string {
	var names []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		names = form.Value["addons"]
	}
	if len(names) == 0 {
		if v := c.FormValue("addons"); v != "" {
			names = strings.Split(v, ",")
		}
	}
	return names
}

func quoteErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, pricing.ErrInvalidHours):
		return fiber.StatusBadRequest, "Flown hours must be a non-negative number."
	case errors.Is(err, pricing.ErrTierNotFound):
		return fiber.StatusBadRequest, "Unknown membership tier."
	case errors.Is(err, pricing.ErrBandNotFound):
		return fiber.StatusBadRequest, "No hour band covers that usage."
	case errors.Is(err, pricing.ErrCatalogUnavailable):
		return fiber.StatusServiceUnavailable, "Pricing is temporarily unavailable."
	default:
		return fiber.StatusInternalServerError, "Could not compute a quote."
	}
}
