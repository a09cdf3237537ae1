package controllers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/hangarline/hangarline/app/models"
	"github.com/hangarline/hangarline/app/repository"
)

const adminUsersPerPage = 25

// HandleAdminDashboard shows operational counters for staff.
func HandleAdminDashboard(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	data := layoutData(c, "Admin")

	if counts, err := repos.ServiceRequest.CountByStatus(); err == nil {
		data["RequestCounts"] = counts
	}
	if userCount, err := repos.User.Count(); err == nil {
		data["UserCount"] = userCount
	}
	if quoteCount, err := repos.QuoteRequest.Count(); err == nil {
		data["QuoteCount"] = quoteCount
	}

	return c.Render("admin/dashboard", data, "layouts/admin")
}

// HandleAdminUsers lists and searches user accounts.
func HandleAdminUsers(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	query := c.Query("q")

	var (
		users []models.User
		err   error
	)
	if query != "" {
		users, err = repos.User.Search(query)
	} else {
		users, err = repos.User.List((page-1)*adminUsersPerPage, adminUsersPerPage)
	}
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not load users."}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	data := layoutData(c, "Users")
	data["Users"] = users
	data["Query"] = query
	data["PageNum"] = page
	data["CSRFToken"] = c.Locals("csrf")
	return c.Render("admin/users", data, "layouts/admin")
}

// HandleAdminUserUpdate changes a user's role or status.
func HandleAdminUserUpdate(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		fm["message"] = "Invalid user id."
		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(uint(id))
	if err != nil {
		fm["message"] = "User not found."
		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	if role := c.FormValue("role"); role == models.ROLE_MEMBER || role == models.ROLE_ADMIN {
		user.Role = role
	}
	switch status := c.FormValue("status"); status {
	case models.STATUS_ACTIVE, models.STATUS_INACTIVE, models.STATUS_DISABLED:
		user.Status = status
	}

	if err := repo.Update(user); err != nil {
		fm["message"] = fmt.Sprintf("Could not update the user: %s", err)
		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	fm = fiber.Map{"type": "success", "message": fmt.Sprintf("User %s updated.", user.Email)}
	return flash.WithSuccess(c, fm).Redirect("/admin/users")
}
