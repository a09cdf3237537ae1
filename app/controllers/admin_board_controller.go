package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/hangarline/hangarline/app/models"
	"github.com/hangarline/hangarline/app/repository"
	"github.com/hangarline/hangarline/internal/pkg/viewmodel"
)

// boardColumnTitles maps board statuses to their display headers.
var boardColumnTitles = map[string]string{
	models.RequestStatusRequested:  "Requested",
	models.RequestStatusScheduled:  "Scheduled",
	models.RequestStatusInProgress: "In Progress",
	models.RequestStatusCompleted:  "Completed",
}

// HandleAdminBoard renders the kanban service request board.
func HandleAdminBoard(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	board, err := repos.ServiceRequest.GetBoard()
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not load the board."}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	columns := make([]viewmodel.BoardColumn, 0, len(models.BoardStatuses))
	for _, status := range models.BoardStatuses {
		columns = append(columns, viewmodel.BoardColumn{
			Status: status,
			Title:  boardColumnTitles[status],
			Cards:  board[status],
		})
	}

	staff, err := repos.User.ListStaff()
	if err != nil {
		staff = nil
	}

	data := layoutData(c, "Service Board")
	data["Columns"] = columns
	data["Staff"] = staff
	data["CSRFToken"] = c.Locals("csrf")
	return c.Render("admin/board", data, "layouts/admin")
}

// HandleAdminBoardMove moves a card to another column, enforcing the request
// status state machine.
func HandleAdminBoardMove(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	repo := repository.GetGlobalFactory().GetServiceRequestRepository()
	request, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		fm["message"] = "Request not found."
		return flash.WithError(c, fm).Redirect("/admin/board")
	}

	next := c.FormValue("status")
	if !request.CanTransitionTo(next) {
		fm["message"] = fmt.Sprintf("Cannot move %q from %s to %s.", request.Title, request.Status, next)
		return flash.WithError(c, fm).Redirect("/admin/board")
	}

	var completedAt *time.Time
	if next == models.RequestStatusCompleted {
		now := time.Now()
		completedAt = &now
	}
	if err := repo.UpdateStatus(request.ID, next, completedAt); err != nil {
		fm["message"] = fmt.Sprintf("Could not move the card: %s", err)
		return flash.WithError(c, fm).Redirect("/admin/board")
	}

	fm = fiber.Map{"type": "success", "message": fmt.Sprintf("%q moved to %s.", request.Title, boardColumnTitles[next])}
	return flash.WithSuccess(c, fm).Redirect("/admin/board")
}

// HandleAdminBoardAssign assigns or unassigns a staff member on a card.
func HandleAdminBoardAssign(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	repo := repository.GetGlobalFactory().GetServiceRequestRepository()
	request, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		fm["message"] = "Request not found."
		return flash.WithError(c, fm).Redirect("/admin/board")
	}

	var staffID *uint
	if raw := c.FormValue("staff"); raw != "" && raw != "0" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			fm["message"] = "Invalid staff id."
			return flash.WithError(c, fm).Redirect("/admin/board")
		}
		staff, err := repository.GetGlobalFactory().GetUserRepository().GetByID(uint(id))
		if err != nil || staff.Role != models.ROLE_ADMIN {
			fm["message"] = "Pick a staff member."
			return flash.WithError(c, fm).Redirect("/admin/board")
		}
		staffID = &staff.ID
	}

	if err := repo.Assign(request.ID, staffID); err != nil {
		fm["message"] = fmt.Sprintf("Could not update the assignment: %s", err)
		return flash.WithError(c, fm).Redirect("/admin/board")
	}

	fm = fiber.Map{"type": "success", "message": "Assignment updated."}
	return flash.WithSuccess(c, fm).Redirect("/admin/board")
}

// HandleAdminBoardSchedule sets the scheduled date on a card.
func HandleAdminBoardSchedule(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	repo := repository.GetGlobalFactory().GetServiceRequestRepository()
	request, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		fm["message"] = "Request not found."
		return flash.WithError(c, fm).Redirect("/admin/board")
	}

	when, err := time.Parse("2006-01-02T15:04", c.FormValue("scheduled_for"))
	if err != nil {
		fm["message"] = "Enter a valid date and time."
		return flash.WithError(c, fm).Redirect("/admin/board")
	}

	request.ScheduledFor = &when
	if request.Status == models.RequestStatusRequested && request.CanTransitionTo(models.RequestStatusScheduled) {
		request.Status = models.RequestStatusScheduled
	}
	if err := repo.Update(request); err != nil {
		fm["message"] = fmt.Sprintf("Could not schedule the request: %s", err)
		return flash.WithError(c, fm).Redirect("/admin/board")
	}

	fm = fiber.Map{"type": "success", "message": fmt.Sprintf("%q scheduled for %s.", request.Title, when.Format("Jan 2, 15:04"))}
	return flash.WithSuccess(c, fm).Redirect("/admin/board")
}
