package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/hangarline/hangarline/app/models"
	"github.com/hangarline/hangarline/app/repository"
	"github.com/hangarline/hangarline/internal/pkg/usercontext"
)

// HandleAircraftList shows the owner's fleet.
func HandleAircraftList(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	fleet, err := repository.GetGlobalFactory().GetAircraftRepository().GetByUserID(uc.UserID)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not load your fleet."}
		return flash.WithError(c, fm).Redirect("/dashboard")
	}

	data := layoutData(c, "Fleet")
	data["Fleet"] = fleet
	data["CSRFToken"] = c.Locals("csrf")
	return c.Render("dashboard/fleet", data, "layouts/main")
}

// HandleAircraftCreate adds an aircraft to the owner's fleet.
func HandleAircraftCreate(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	fm := fiber.Map{"type": "error"}

	hours, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("hours", "0")), 64)
	if err != nil || hours < 0 {
		fm["message"] = "Monthly flown hours must be a non-negative number."
		return flash.WithError(c, fm).Redirect("/fleet")
	}
	year, _ := strconv.Atoi(c.FormValue("year", "0"))

	aircraft := &models.Aircraft{
		UserID:            uc.UserID,
		TailNumber:        strings.ToUpper(strings.TrimSpace(c.FormValue("tail_number"))),
		Make:              strings.TrimSpace(c.FormValue("make")),
		Model:             strings.TrimSpace(c.FormValue("model")),
		Year:              year,
		HomeBase:          strings.ToUpper(strings.TrimSpace(c.FormValue("home_base"))),
		Status:            models.AircraftStatusReady,
		MonthlyFlownHours: hours,
		Notes:             c.FormValue("notes"),
	}
	if err := aircraft.Validate(); err != nil {
		fm["message"] = "Please check the aircraft details."
		return flash.WithError(c, fm).Redirect("/fleet")
	}

	if err := repository.GetGlobalFactory().GetAircraftRepository().Create(aircraft); err != nil {
		fm["message"] = fmt.Sprintf("Could not add the aircraft: %s", err)
		return flash.WithError(c, fm).Redirect("/fleet")
	}

	fm = fiber.Map{"type": "success", "message": fmt.Sprintf("%s added to your fleet.", aircraft.TailNumber)}
	return flash.WithSuccess(c, fm).Redirect("/fleet")
}

// HandleAircraftUpdateHours updates the rolling monthly flown hours figure
// that drives hour-band pricing and credit allocation.
func HandleAircraftUpdateHours(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	fm := fiber.Map{"type": "error"}

	repo := repository.GetGlobalFactory().GetAircraftRepository()
	aircraft, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil || aircraft.UserID != uc.UserID {
		fm["message"] = "Aircraft not found."
		return flash.WithError(c, fm).Redirect("/fleet")
	}

	hours, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("hours")), 64)
	if err != nil || hours < 0 {
		fm["message"] = "Monthly flown hours must be a non-negative number."
		return flash.WithError(c, fm).Redirect("/fleet")
	}

	aircraft.MonthlyFlownHours = hours
	if err := repo.Update(aircraft); err != nil {
		fm["message"] = fmt.Sprintf("Could not update hours: %s", err)
		return flash.WithError(c, fm).Redirect("/fleet")
	}

	fm = fiber.Map{"type": "success", "message": fmt.Sprintf("Hours updated for %s.", aircraft.TailNumber)}
	return flash.WithSuccess(c, fm).Redirect("/fleet")
}

// HandleAircraftDelete removes an aircraft from the fleet.
func HandleAircraftDelete(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	fm := fiber.Map{"type": "error"}

	repo := repository.GetGlobalFactory().GetAircraftRepository()
	aircraft, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil || aircraft.UserID != uc.UserID {
		fm["message"] = "Aircraft not found."
		return flash.WithError(c, fm).Redirect("/fleet")
	}

	if err := repo.Delete(aircraft.ID); err != nil {
		fm["message"] = fmt.Sprintf("Could not remove the aircraft: %s", err)
		return flash.WithError(c, fm).Redirect("/fleet")
	}

	fm = fiber.Map{"type": "success", "message": fmt.Sprintf("%s removed.", aircraft.TailNumber)}
	return flash.WithSuccess(c, fm).Redirect("/fleet")
}
