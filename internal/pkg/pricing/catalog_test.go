package pricing

import (
	"errors"
	"testing"
)

func TestBuildCatalogEmptyGrid(t *testing.T) {
	if _, err := BuildCatalog(nil, nil, nil, nil, nil); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable for empty grid, got %v", err)
	}
}

func TestBuildCatalogRejectsGapBetweenBands(t *testing.T) {
	max5 := 5.0
	grid := []GridRow{
		{TierID: "t1", TierName: "T1", BaseMonthly: 100, BandID: "a", MinHours: 0, MaxHours: &max5, PriceMultiplier: 1},
		{TierID: "t1", TierName: "T1", BaseMonthly: 100, BandID: "b", MinHours: 7, PriceMultiplier: 1.2},
	}
	if _, err := BuildCatalog(grid, nil, nil, nil, nil); err == nil {
		t.Fatalf("expected error for non-contiguous bands")
	}
}

func TestBuildCatalogRequiresUnboundedTopBand(t *testing.T) {
	max5 := 5.0
	max20 := 20.0
	grid := []GridRow{
		{TierID: "t1", TierName: "T1", BaseMonthly: 100, BandID: "a", MinHours: 0, MaxHours: &max5, PriceMultiplier: 1},
		{TierID: "t1", TierName: "T1", BaseMonthly: 100, BandID: "b", MinHours: 5, MaxHours: &max20, PriceMultiplier: 1.2},
	}
	if _, err := BuildCatalog(grid, nil, nil, nil, nil); err == nil {
		t.Fatalf("expected error when no band is unbounded at the top")
	}
}

func TestBuildCatalogRejectsNonPositiveMultiplier(t *testing.T) {
	grid := []GridRow{
		{TierID: "t1", TierName: "T1", BaseMonthly: 100, BandID: "a", MinHours: 0, PriceMultiplier: 0},
	}
	if _, err := BuildCatalog(grid, nil, nil, nil, nil); err == nil {
		t.Fatalf("expected error for zero multiplier")
	}
}

func TestBuildCatalogRejectsNegativeBasePrice(t *testing.T) {
	grid := []GridRow{
		{TierID: "t1", TierName: "T1", BaseMonthly: -10, BandID: "a", MinHours: 0, PriceMultiplier: 1},
	}
	if _, err := BuildCatalog(grid, nil, nil, nil, nil); err == nil {
		t.Fatalf("expected error for negative base price")
	}
}

func TestBuildCatalogAssemblesFeaturesAndAddons(t *testing.T) {
	c := fixtureCatalog(t)

	tier, err := c.TierByID("class_1")
	if err != nil {
		t.Fatalf("TierByID: %v", err)
	}
	if len(tier.Features) != 2 || tier.Features[0] != "Dedicated concierge" {
		t.Fatalf("unexpected features: %v", tier.Features)
	}
	if len(tier.Addons) != 2 {
		t.Fatalf("expected 2 addons, got %d", len(tier.Addons))
	}
	if len(c.Locations) != 1 || c.Locations[0].Code != "KAPA" {
		t.Fatalf("unexpected locations: %v", c.Locations)
	}
	if svcs := c.ServiceMap["band_low"]; len(svcs) != 1 || svcs[0] != "Monthly wash" {
		t.Fatalf("unexpected service map: %v", c.ServiceMap)
	}
}

func TestTierByIDOnNilCatalog(t *testing.T) {
	var c *Catalog
	if _, err := c.TierByID("class_1"); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable on nil catalog, got %v", err)
	}
}
