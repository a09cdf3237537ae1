package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/hangarline/hangarline/app/repository"
)

// HandleAdminCatalogRefresh rebuilds the pricing snapshot from the database
// and swaps it in atomically. In-flight requests keep the snapshot they
// already read.
func HandleAdminCatalogRefresh(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	catalog, err := repository.GetGlobalFactory().GetPricingRepository().LoadCatalog()
	if err != nil {
		log.Printf("catalog refresh failed: %v", err)
		fm["message"] = fmt.Sprintf("Catalog refresh failed: %s", err)
		return flash.WithError(c, fm).Redirect("/admin")
	}

	SetCatalog(catalog)

	fm = fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Catalog refreshed: %d tiers loaded.", len(catalog.Tiers)),
	}
	return flash.WithSuccess(c, fm).Redirect("/admin")
}
