package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/hangarline/hangarline/app/models"
	"github.com/hangarline/hangarline/app/repository"
)

// HandleAdminCreditRules lists the service credit configuration.
func HandleAdminCreditRules(c *fiber.Ctx) error {
	rules, err := repository.GetGlobalFactory().GetCreditRuleRepository().GetActive()
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not load credit rules."}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	data := layoutData(c, "Credit Rules")
	data["Rules"] = rules
	data["CSRFToken"] = c.Locals("csrf")
	return c.Render("admin/credit_rules", data, "layouts/admin")
}

// HandleAdminCreditRuleSave creates or updates a credit rule. Base fields
// left blank are stored as NULL; the engine treats them as zero.
func HandleAdminCreditRuleSave(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	serviceType := strings.TrimSpace(c.FormValue("service_type"))
	displayName := strings.TrimSpace(c.FormValue("display_name"))
	if serviceType == "" || displayName == "" {
		fm["message"] = "Service type and display name are required."
		return flash.WithError(c, fm).Redirect("/admin/credit-rules")
	}

	lowBase, err := parseOptionalBase(c.FormValue("low_activity_base"))
	if err != nil {
		fm["message"] = "Low-activity base must be a non-negative number."
		return flash.WithError(c, fm).Redirect("/admin/credit-rules")
	}
	highBase, err := parseOptionalBase(c.FormValue("high_activity_base"))
	if err != nil {
		fm["message"] = "High-activity base must be a non-negative number."
		return flash.WithError(c, fm).Redirect("/admin/credit-rules")
	}

	repo := repository.GetGlobalFactory().GetCreditRuleRepository()
	rule, err := repo.GetByServiceType(serviceType)
	if err != nil {
		rule = &models.ServiceCreditRule{ServiceType: serviceType}
	}
	rule.DisplayName = displayName
	rule.LowActivityBase = lowBase
	rule.HighActivityBase = highBase
	rule.RollsOver = c.FormValue("rolls_over") == "on"
	rule.IsActive = c.FormValue("is_active") == "on"

	if err := repo.Save(rule); err != nil {
		fm["message"] = fmt.Sprintf("Could not save the rule: %s", err)
		return flash.WithError(c, fm).Redirect("/admin/credit-rules")
	}

	fm = fiber.Map{"type": "success", "message": fmt.Sprintf("Rule %q saved.", serviceType)}
	return flash.WithSuccess(c, fm).Redirect("/admin/credit-rules")
}

// parseOptionalBase parses a blank-or-numeric base credit form field.
func parseOptionalBase(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("invalid base value %q", raw)
	}
	return &v, nil
}
