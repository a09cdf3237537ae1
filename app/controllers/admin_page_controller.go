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

// HandleAdminPages lists the CMS pages.
func HandleAdminPages(c *fiber.Ctx) error {
	pages, err := repository.GetGlobalFactory().GetPageRepository().GetActive()
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not load pages."}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	data := layoutData(c, "Pages")
	data["Pages"] = pages
	data["CSRFToken"] = c.Locals("csrf")
	return c.Render("admin/pages", data, "layouts/admin")
}

// HandleAdminPageSave creates or updates a CMS page.
func HandleAdminPageSave(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}
	repo := repository.GetGlobalFactory().GetPageRepository()

	page := &models.Page{
		Title:    strings.TrimSpace(c.FormValue("title")),
		Slug:     strings.TrimSpace(c.FormValue("slug")),
		Content:  c.FormValue("content"),
		IsActive: c.FormValue("is_active") == "on",
	}
	if err := page.Validate(); err != nil {
		fm["message"] = "Title, slug and content are required."
		return flash.WithError(c, fm).Redirect("/admin/pages")
	}

	if existing, err := repo.GetBySlug(page.Slug); err == nil {
		existing.Title = page.Title
		existing.Content = page.Content
		existing.IsActive = page.IsActive
		if err := repo.Update(existing); err != nil {
			fm["message"] = fmt.Sprintf("Could not update the page: %s", err)
			return flash.WithError(c, fm).Redirect("/admin/pages")
		}
	} else if err := repo.Create(page); err != nil {
		fm["message"] = fmt.Sprintf("Could not create the page: %s", err)
		return flash.WithError(c, fm).Redirect("/admin/pages")
	}

	fm = fiber.Map{"type": "success", "message": fmt.Sprintf("Page %q saved.", page.Slug)}
	return flash.WithSuccess(c, fm).Redirect("/admin/pages")
}

// HandleAdminPageDelete removes a CMS page.
func HandleAdminPageDelete(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		fm["message"] = "Invalid page id."
		return flash.WithError(c, fm).Redirect("/admin/pages")
	}

	if err := repository.GetGlobalFactory().GetPageRepository().Delete(uint(id)); err != nil {
		fm["message"] = fmt.Sprintf("Could not delete the page: %s", err)
		return flash.WithError(c, fm).Redirect("/admin/pages")
	}

	fm = fiber.Map{"type": "success", "message": "Page deleted."}
	return flash.WithSuccess(c, fm).Redirect("/admin/pages")
}
