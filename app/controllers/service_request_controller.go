package controllers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/hangarline/hangarline/app/models"
	"github.com/hangarline/hangarline/app/repository"
	"github.com/hangarline/hangarline/internal/pkg/entitlements"
	"github.com/hangarline/hangarline/internal/pkg/usercontext"
)

const requestsPerPage = 25

// HandleServiceRequestList shows the owner's service request history.
func HandleServiceRequestList(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	requests, err := repository.GetGlobalFactory().GetServiceRequestRepository().
		GetByUserID(uc.UserID, (page-1)*requestsPerPage, requestsPerPage)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not load your service requests."}
		return flash.WithError(c, fm).Redirect("/dashboard")
	}

	fleet, err := repository.GetGlobalFactory().GetAircraftRepository().GetByUserID(uc.UserID)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not load your fleet."}
		return flash.WithError(c, fm).Redirect("/dashboard")
	}

	data := layoutData(c, "Service Requests")
	data["Requests"] = requests
	data["Fleet"] = fleet
	data["PageNum"] = page
	data["CSRFToken"] = c.Locals("csrf")
	return c.Render("dashboard/requests", data, "layouts/main")
}

// HandleServiceRequestCreate files a new concierge request for one of the
// owner's aircraft.
func HandleServiceRequestCreate(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	fm := fiber.Map{"type": "error"}

	aircraft, err := repository.GetGlobalFactory().GetAircraftRepository().GetByUUID(c.FormValue("aircraft"))
	if err != nil || aircraft.UserID != uc.UserID {
		fm["message"] = "Pick one of your aircraft."
		return flash.WithError(c, fm).Redirect("/requests")
	}

	priority := c.FormValue("priority", models.RequestPriorityNormal)
	switch priority {
	case models.RequestPriorityNormal, models.RequestPriorityHigh, models.RequestPriorityAOG:
	default:
		priority = models.RequestPriorityNormal
	}
	if !entitlements.CanFilePriority(entitlements.Normalize(uc.Plan), priority) {
		fm["message"] = "Your membership does not include that priority level."
		return flash.WithError(c, fm).Redirect("/requests")
	}

	request := &models.ServiceRequest{
		UserID:      uc.UserID,
		AircraftID:  aircraft.ID,
		ServiceType: strings.TrimSpace(c.FormValue("service_type")),
		Title:       strings.TrimSpace(c.FormValue("title")),
		Details:     c.FormValue("details"),
		Status:      models.RequestStatusRequested,
		Priority:    priority,
	}
	if err := request.Validate(); err != nil {
		fm["message"] = "Please provide a service type and a short title."
		return flash.WithError(c, fm).Redirect("/requests")
	}

	if err := repository.GetGlobalFactory().GetServiceRequestRepository().Create(request); err != nil {
		fm["message"] = fmt.Sprintf("Could not file the request: %s", err)
		return flash.WithError(c, fm).Redirect("/requests")
	}

	fm = fiber.Map{"type": "success", "message": "Request filed. We are on it."}
	return flash.WithSuccess(c, fm).Redirect("/requests")
}

// HandleServiceRequestCancel lets the owner cancel a still-open request.
func HandleServiceRequestCancel(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	fm := fiber.Map{"type": "error"}

	repo := repository.GetGlobalFactory().GetServiceRequestRepository()
	request, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil || request.UserID != uc.UserID {
		fm["message"] = "Request not found."
		return flash.WithError(c, fm).Redirect("/requests")
	}

	if !request.CanTransitionTo(models.RequestStatusCanceled) {
		fm["message"] = "This request can no longer be canceled."
		return flash.WithError(c, fm).Redirect("/requests")
	}

	if err := repo.UpdateStatus(request.ID, models.RequestStatusCanceled, nil); err != nil {
		fm["message"] = fmt.Sprintf("Could not cancel the request: %s", err)
		return flash.WithError(c, fm).Redirect("/requests")
	}

	fm = fiber.Map{"type": "success", "message": "Request canceled."}
	return flash.WithSuccess(c, fm).Redirect("/requests")
}
