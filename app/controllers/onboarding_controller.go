package controllers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"github.com/hangarline/hangarline/app/models"
	"github.com/hangarline/hangarline/internal/pkg/database"
	"github.com/hangarline/hangarline/internal/pkg/pricing"
	"github.com/hangarline/hangarline/internal/pkg/session"
	"github.com/hangarline/hangarline/internal/pkg/usercontext"
)

const onboardingSessionKey = "onboarding_draft"

// onboardingDraft is the wizard state held in the session between steps.
// Nothing is persisted until the final confirmation, so abandoning the wizard
// leaves no half-created records.
type onboardingDraft struct {
	// Step 1: aircraft
	TailNumber string  `json:"tail_number"`
	Make       string  `json:"make"`
	Model      string  `json:"model"`
	Year       int     `json:"year"`
	HomeBase   string  `json:"home_base"`
	Hours      float64 `json:"hours"`

	// Step 2: plan
	TierID string   `json:"tier_id"`
	Addons []string `json:"addons"`

	Step int `json:"step"`
}

func loadDraft(c *fiber.Ctx) onboardingDraft {
	var draft onboardingDraft
	raw := session.GetSessionValue(c, onboardingSessionKey)
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &draft)
	}
	return draft
}

func saveDraft(c *fiber.Ctx, draft onboardingDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return session.SetSessionValue(c, onboardingSessionKey, string(raw))
}

// HandleOnboarding renders the current wizard step.
func HandleOnboarding(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	if uc.IsLoggedIn {
		var user models.User
		if err := database.GetDB().First(&user, uc.UserID).Error; err == nil && user.IsOnboarded() {
			return c.Redirect("/dashboard", fiber.StatusSeeOther)
		}
	}

	draft := loadDraft(c)
	data := layoutData(c, "Welcome aboard")
	data["CSRFToken"] = c.Locals("csrf")
	data["Draft"] = draft
	data["Step"] = draft.Step + 1

	if catalog, err := GetCatalog(); err == nil {
		data["Tiers"] = catalog.Tiers
		data["Locations"] = catalog.Locations
		if draft.TierID != "" {
			if quote, err := quoteForDraft(draft); err == nil {
				data["Quote"] = quote
			}
		}
	} else {
		data["PricingUnavailable"] = true
	}

	return c.Render("onboarding/wizard", data, "layouts/main")
}

// HandleOnboardingAircraft saves step 1 (aircraft details).
func HandleOnboardingAircraft(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	hours, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("hours", "0")), 64)
	if err != nil || hours < 0 {
		fm["message"] = "Monthly flown hours must be a non-negative number."
		return flash.WithError(c, fm).Redirect("/onboarding")
	}
	year, _ := strconv.Atoi(c.FormValue("year", "0"))

	draft := loadDraft(c)
	draft.TailNumber = strings.ToUpper(strings.TrimSpace(c.FormValue("tail_number")))
	draft.Make = strings.TrimSpace(c.FormValue("make"))
	draft.Model = strings.TrimSpace(c.FormValue("model"))
	draft.Year = year
	draft.HomeBase = strings.ToUpper(strings.TrimSpace(c.FormValue("home_base")))
	draft.Hours = hours

	if draft.TailNumber == "" || draft.Make == "" || draft.Model == "" {
		fm["message"] = "Tail number, make and model are required."
		return flash.WithError(c, fm).Redirect("/onboarding")
	}

	if draft.Step < 1 {
		draft.Step = 1
	}
	if err := saveDraft(c, draft); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		return flash.WithError(c, fm).Redirect("/onboarding")
	}
	return c.Redirect("/onboarding", fiber.StatusSeeOther)
}

// HandleOnboardingPlan saves step 2 (tier and add-on selection).
func HandleOnboardingPlan(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	catalog, err := GetCatalog()
	if err != nil {
		fm["message"] = "Pricing is temporarily unavailable. Please try again later."
		return flash.WithError(c, fm).Redirect("/onboarding")
	}

	draft := loadDraft(c)
	draft.TierID = c.FormValue("tier")
	draft.Addons = selectedAddons(c)

	if _, err := catalog.PriceFor(draft.TierID, draft.Hours); err != nil {
		_, msg := quoteErrorResponse(err)
		fm["message"] = msg
		return flash.WithError(c, fm).Redirect("/onboarding")
	}

	if draft.Step < 2 {
		draft.Step = 2
	}
	if err := saveDraft(c, draft); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		return flash.WithError(c, fm).Redirect("/onboarding")
	}
	return c.Redirect("/onboarding", fiber.StatusSeeOther)
}

// HandleOnboardingConfirm persists the draft: aircraft, membership and the
// onboarded flag, in one transaction.
func HandleOnboardingConfirm(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	uc := usercontext.GetUserContext(c)
	draft := loadDraft(c)
	if draft.Step < 2 {
		fm["message"] = "Please finish the earlier steps first."
		return flash.WithError(c, fm).Redirect("/onboarding")
	}

	quote, err := quoteForDraft(draft)
	if err != nil {
		_, msg := quoteErrorResponse(err)
		fm["message"] = msg
		return flash.WithError(c, fm).Redirect("/onboarding")
	}

	db := database.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		aircraft := &models.Aircraft{
			UserID:            uc.UserID,
			TailNumber:        draft.TailNumber,
			Make:              draft.Make,
			Model:             draft.Model,
			Year:              draft.Year,
			HomeBase:          draft.HomeBase,
			Status:            models.AircraftStatusReady,
			MonthlyFlownHours: draft.Hours,
		}
		if err := aircraft.Validate(); err != nil {
			return err
		}
		if err := tx.Create(aircraft).Error; err != nil {
			return err
		}

		membership := &models.Membership{
			UserID:          uc.UserID,
			AircraftID:      aircraft.ID,
			TierID:          quote.TierID,
			HourBandID:      quote.Band.ID,
			MonthlyPriceUSD: quote.MonthlyTotal,
			Status:          models.MembershipStatusActive,
		}
		if err := membership.SetAddons(draft.Addons); err != nil {
			return err
		}
		if err := tx.Create(membership).Error; err != nil {
			return err
		}

		// File a welcome ticket so staff schedule the intro call.
		var user models.User
		if err := tx.First(&user, uc.UserID).Error; err != nil {
			return err
		}
		welcome := &models.QuoteRequest{
			UserID:         &user.ID,
			Name:           user.Name,
			Email:          user.Email,
			TierID:         quote.TierID,
			HourBandID:     quote.Band.ID,
			MonthlyHours:   draft.Hours,
			QuotedPriceUSD: quote.MonthlyTotal,
			Message:        fmt.Sprintf("Welcome call for new member, aircraft %s.", draft.TailNumber),
			Status:         models.QuoteRequestStatusNew,
		}
		if err := welcome.SetAddonNames(draft.Addons); err != nil {
			return err
		}
		if err := tx.Create(welcome).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&models.User{}).Where("id = ?", uc.UserID).
			Update("onboarded_at", now).Error; err != nil {
			return err
		}
		return tx.Model(&models.UserSettings{}).Where("user_id = ?", uc.UserID).
			Update("plan", quote.TierName).Error
	})
	if err != nil {
		fm["message"] = fmt.Sprintf("Could not complete onboarding: %s", err)
		return flash.WithError(c, fm).Redirect("/onboarding")
	}

	_ = session.DeleteSessionValue(c, onboardingSessionKey)
	_ = session.SetSessionValue(c, "user_plan", quote.TierName)

	fm = fiber.Map{
		"type":    "success",
		"message": "Welcome to Hangarline! Your hangar is set up.",
	}
	return flash.WithSuccess(c, fm).Redirect("/dashboard")
}

func quoteForDraft(draft onboardingDraft) (pricing.Quote, error) {
	catalog, err := GetCatalog()
	if err != nil {
		return pricing.Quote{}, err
	}
	return assembleQuote(catalog, draft.TierID, draft.Hours, draft.Addons)
}
