package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/hangarline/hangarline/app/models"
	"github.com/hangarline/hangarline/app/repository"
	"github.com/hangarline/hangarline/internal/pkg/usercontext"
)

const quotesPerPage = 25

// HandleAdminQuotes lists configurator submissions for triage.
func HandleAdminQuotes(c *fiber.Ctx) error {
	status := c.Query("status", models.QuoteRequestStatusNew)
	switch status {
	case models.QuoteRequestStatusNew, models.QuoteRequestStatusContacted, models.QuoteRequestStatusClosed:
	default:
		status = models.QuoteRequestStatusNew
	}
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	quotes, err := repository.GetGlobalFactory().GetQuoteRequestRepository().
		GetByStatus(status, (page-1)*quotesPerPage, quotesPerPage)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not load quote requests."}
		return flash.WithError(c, fm).Redirect("/admin")
	}

	data := layoutData(c, "Quote Requests")
	data["Quotes"] = quotes
	data["Status"] = status
	data["PageNum"] = page
	data["CSRFToken"] = c.Locals("csrf")
	return c.Render("admin/quotes", data, "layouts/admin")
}

// HandleAdminQuoteContacted marks a quote request as contacted by the
// current staff member.
func HandleAdminQuoteContacted(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	repo := repository.GetGlobalFactory().GetQuoteRequestRepository()
	quote, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		fm["message"] = "Quote request not found."
		return flash.WithError(c, fm).Redirect("/admin/quotes")
	}

	staffID := usercontext.GetUserID(c)
	now := time.Now()
	quote.Status = models.QuoteRequestStatusContacted
	quote.ContactedByID = &staffID
	quote.ContactedAt = &now

	if err := repo.Update(quote); err != nil {
		fm["message"] = fmt.Sprintf("Could not update the quote request: %s", err)
		return flash.WithError(c, fm).Redirect("/admin/quotes")
	}

	fm = fiber.Map{"type": "success", "message": fmt.Sprintf("Marked %s as contacted.", quote.Email)}
	return flash.WithSuccess(c, fm).Redirect("/admin/quotes")
}

// HandleAdminQuoteClose closes a quote request.
func HandleAdminQuoteClose(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	repo := repository.GetGlobalFactory().GetQuoteRequestRepository()
	quote, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		fm["message"] = "Quote request not found."
		return flash.WithError(c, fm).Redirect("/admin/quotes")
	}

	quote.Status = models.QuoteRequestStatusClosed
	if err := repo.Update(quote); err != nil {
		fm["message"] = fmt.Sprintf("Could not close the quote request: %s", err)
		return flash.WithError(c, fm).Redirect("/admin/quotes")
	}

	fm = fiber.Map{"type": "success", "message": "Quote request closed."}
	return flash.WithSuccess(c, fm).Redirect("/admin/quotes")
}
