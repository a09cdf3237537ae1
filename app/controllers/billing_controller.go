package controllers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/hangarline/hangarline/app/models"
	"github.com/hangarline/hangarline/app/repository"
	"github.com/hangarline/hangarline/internal/pkg/env"
	"github.com/hangarline/hangarline/internal/pkg/payments"
	"github.com/hangarline/hangarline/internal/pkg/usercontext"
)

const invoicesPerPage = 25

// HandleInvoiceList shows the owner's invoices.
func HandleInvoiceList(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	invoices, err := repository.GetGlobalFactory().GetInvoiceRepository().
		GetByUserID(uc.UserID, (page-1)*invoicesPerPage, invoicesPerPage)
	if err != nil {
		fm := fiber.Map{"type": "error", "message": "Could not load your invoices."}
		return flash.WithError(c, fm).Redirect("/dashboard")
	}

	data := layoutData(c, "Invoices")
	data["Invoices"] = invoices
	data["PageNum"] = page
	data["CSRFToken"] = c.Locals("csrf")
	return c.Render("dashboard/invoices", data, "layouts/main")
}

// HandleInvoiceCheckout opens a hosted checkout session for an open invoice
// and redirects the owner to the payment page.
func HandleInvoiceCheckout(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	fm := fiber.Map{"type": "error"}

	repo := repository.GetGlobalFactory().GetInvoiceRepository()
	invoice, err := repo.GetByNumber(c.Params("number"))
	if err != nil || invoice.UserID != uc.UserID {
		fm["message"] = "Invoice not found."
		return flash.WithError(c, fm).Redirect("/invoices")
	}
	if !invoice.IsPayable() {
		fm["message"] = "This invoice is already settled."
		return flash.WithError(c, fm).Redirect("/invoices")
	}

	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", "http://localhost:"+env.GetEnv("APP_PORT", "4000")), "/")
	client := payments.NewCheckoutClientFromEnv()
	sess, err := client.CreateSession(c.Context(), invoice.Number, invoice.AmountCents, invoice.Currency,
		base+"/invoices/success", base+"/invoices")
	if err != nil {
		log.Printf("checkout session for %s failed: %v", invoice.Number, err)
		fm["message"] = fmt.Sprintf("Payment could not be started: %s", err)
		return flash.WithError(c, fm).Redirect("/invoices")
	}

	invoice.CheckoutSessionID = sess.ID
	if err := repo.Update(invoice); err != nil {
		fm["message"] = "Payment could not be started. Please try again."
		return flash.WithError(c, fm).Redirect("/invoices")
	}

	return c.Redirect(sess.URL, fiber.StatusSeeOther)
}

// HandleCheckoutSuccess is where the provider sends the owner back. Payment
// state is confirmed by the webhook; this page only thanks and refreshes.
func HandleCheckoutSuccess(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type":    "success",
		"message": "Thanks! Your payment is being confirmed and will show up shortly.",
	}
	return flash.WithSuccess(c, fm).Redirect("/invoices")
}

// HandleCheckoutWebhook reconciles provider events. The signature is verified
// before the payload is trusted; unknown sessions are acknowledged so the
// provider stops retrying.
func HandleCheckoutWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("X-Checkout-Signature")
	secret := env.GetEnv("CHECKOUT_WEBHOOK_SECRET", "")

	if !payments.VerifyWebhookSignature(payload, signature, secret) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}

	event, err := payments.ParseWebhookEvent(payload)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}

	if event.Type != "checkout.completed" {
		return c.JSON(fiber.Map{"received": true})
	}

	repo := repository.GetGlobalFactory().GetInvoiceRepository()
	invoice, err := repo.GetByCheckoutSessionID(event.SessionID)
	if err != nil {
		log.Printf("webhook for unknown checkout session %s", event.SessionID)
		return c.JSON(fiber.Map{"received": true})
	}

	if invoice.Status != models.InvoiceStatusPaid {
		paidAt := time.Now()
		if event.PaidAt > 0 {
			paidAt = time.Unix(event.PaidAt, 0)
		}
		invoice.MarkPaid(paidAt)
		if err := repo.Update(invoice); err != nil {
			log.Printf("failed to mark invoice %s paid: %v", invoice.Number, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "persist_failed"})
		}
	}

	return c.JSON(fiber.Map{"received": true})
}

// HandleInvoiceResync re-reads the checkout session state for an invoice,
// covering the case where the webhook was missed.
func HandleInvoiceResync(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	fm := fiber.Map{"type": "error"}

	repo := repository.GetGlobalFactory().GetInvoiceRepository()
	invoice, err := repo.GetByNumber(c.Params("number"))
	if err != nil || invoice.UserID != uc.UserID {
		fm["message"] = "Invoice not found."
		return flash.WithError(c, fm).Redirect("/invoices")
	}
	if invoice.CheckoutSessionID == "" {
		fm["message"] = "No payment attempt on record for this invoice."
		return flash.WithError(c, fm).Redirect("/invoices")
	}

	client := payments.NewCheckoutClientFromEnv()
	sess, err := client.GetSession(c.Context(), invoice.CheckoutSessionID)
	if err != nil {
		fm["message"] = fmt.Sprintf("Could not check payment state: %s", err)
		return flash.WithError(c, fm).Redirect("/invoices")
	}

	if sess.Status == payments.SessionStatusComplete && invoice.Status != models.InvoiceStatusPaid {
		invoice.MarkPaid(time.Now())
		if err := repo.Update(invoice); err != nil {
			fm["message"] = "Could not update the invoice. Please contact support."
			return flash.WithError(c, fm).Redirect("/invoices")
		}
		fm = fiber.Map{"type": "success", "message": fmt.Sprintf("Invoice %s is paid.", invoice.Number)}
		return flash.WithSuccess(c, fm).Redirect("/invoices")
	}

	fm = fiber.Map{"type": "info", "message": "No new payment found for this invoice."}
	return flash.WithInfo(c, fm).Redirect("/invoices")
}
