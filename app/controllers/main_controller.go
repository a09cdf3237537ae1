package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/hangarline/hangarline/app/repository"
	"github.com/hangarline/hangarline/internal/pkg/env"
	"github.com/hangarline/hangarline/internal/pkg/hcaptcha"
	"github.com/hangarline/hangarline/internal/pkg/mail"
	"github.com/hangarline/hangarline/internal/pkg/statistics"
	"github.com/hangarline/hangarline/internal/pkg/utils"
)

// HandleStart renders the marketing home page with the tier overview and
// serviced locations pulled from the catalog.
func HandleStart(c *fiber.Ctx) error {
	data := layoutData(c, "Hangarline")

	catalog, err := GetCatalog()
	if err == nil {
		data["Tiers"] = catalog.Tiers
		data["Locations"] = catalog.Locations
	} else {
		data["PricingUnavailable"] = true
	}

	statistics.UpdateCacheIfNeeded()
	data["Stats"] = statistics.GetStatistics()

	return c.Render("pages/home", data, "layouts/main")
}

func HandleAbout(c *fiber.Ctx) error {
	return c.Render("pages/about", layoutData(c, "About"), "layouts/main")
}

// HandleContact renders the contact form and handles its submission.
func HandleContact(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		hcaptchaToken := c.FormValue("h-captcha-response")
		valid, err := hcaptcha.Verify(hcaptchaToken)
		if err != nil || !valid {
			errorMsg := "Captcha validation failed. Please try again."
			if err != nil && env.IsDev() {
				errorMsg = fmt.Sprintf("Captcha validation failed: %v", err)
			}
			fm := fiber.Map{"type": "error", "message": errorMsg}
			return flash.WithError(c, fm).Redirect("/contact")
		}

		name := c.FormValue("name")
		email := c.FormValue("email")
		message := c.FormValue("message")
		if name == "" || email == "" || message == "" {
			fm := fiber.Map{"type": "error", "message": "Please fill in all fields."}
			return flash.WithError(c, fm).Redirect("/contact")
		}

		to := env.GetEnv("CONTACT_RECIPIENT", "ops@hangarline.example")
		body := fmt.Sprintf("<p>From: %s (%s)</p><p>%s</p>", name, email, message)
		if err := mail.SendMail(to, "Contact form: "+name, body); err != nil {
			fm := fiber.Map{"type": "error", "message": "Could not send your message. Please try again later."}
			return flash.WithError(c, fm).Redirect("/contact")
		}

		fm := fiber.Map{"type": "success", "message": "Thanks! We will get back to you shortly."}
		return flash.WithSuccess(c, fm).Redirect("/contact")
	}

	data := layoutData(c, "Contact")
	data["CSRFToken"] = c.Locals("csrf")
	data["HCaptchaSiteKey"] = env.GetEnv("HCAPTCHA_SITEKEY", "")
	return c.Render("pages/contact", data, "layouts/main")
}

// HandlePage renders a CMS page by slug.
func HandlePage(c *fiber.Ctx) error {
	slug := c.Params("slug")
	page, err := repository.GetGlobalFactory().GetPageRepository().GetBySlug(slug)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("pages/404", layoutData(c, "Not Found"), "layouts/main")
	}

	data := layoutData(c, page.Title)
	data["PageModel"] = page
	data["ContentHTML"] = utils.ProcessHTMLContent(page.Content)
	return c.Render("pages/page", data, "layouts/main")
}
