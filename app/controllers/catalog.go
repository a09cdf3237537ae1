package controllers

import (
	"sync/atomic"

	"github.com/hangarline/hangarline/internal/pkg/pricing"
)

// currentCatalog holds the active pricing snapshot. It is loaded once at
// startup and replaced wholesale by the admin refresh action; handlers read
// the pointer once per request and pass the catalog down explicitly, so a
// swap mid-request never mixes two snapshots.
var currentCatalog atomic.Pointer[pricing.Catalog]

// SetCatalog swaps in a new pricing snapshot.
func SetCatalog(c *pricing.Catalog) {
	currentCatalog.Store(c)
}

// GetCatalog returns the active snapshot, or ErrCatalogUnavailable when none
// was loaded. Callers surface that as a visible "pricing unavailable" state.
func GetCatalog() (*pricing.Catalog, error) {
	c := currentCatalog.Load()
	if c == nil {
		return nil, pricing.ErrCatalogUnavailable
	}
	return c, nil
}
