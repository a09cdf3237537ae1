package pricing

import (
	"errors"
	"math"
	"testing"
)

func fixtureCatalog(t *testing.T) *Catalog {
	t.Helper()

	max10 := 10.0
	max25 := 25.0
	grid := []GridRow{
		{TierID: "class_1", TierName: "Class I", BaseMonthly: 550, BandID: "band_low", BandLabel: "0-10 hrs", MinHours: 0, MaxHours: &max10, PriceMultiplier: 1.0, DetailsPerMonth: "1 detail", ServiceFrequency: "monthly"},
		{TierID: "class_1", TierName: "Class I", BaseMonthly: 550, BandID: "band_mid", BandLabel: "10-25 hrs", MinHours: 10, MaxHours: &max25, PriceMultiplier: 1.45, DetailsPerMonth: "2 details", ServiceFrequency: "biweekly"},
		{TierID: "class_1", TierName: "Class I", BaseMonthly: 550, BandID: "band_high", BandLabel: "25+ hrs", MinHours: 25, PriceMultiplier: 1.9, DetailsPerMonth: "4 details", ServiceFrequency: "weekly"},
		{TierID: "class_2", TierName: "Class II", BaseMonthly: 950, BandID: "c2_low", BandLabel: "0-10 hrs", MinHours: 0, MaxHours: &max10, PriceMultiplier: 1.0},
		{TierID: "class_2", TierName: "Class II", BaseMonthly: 950, BandID: "c2_high", BandLabel: "10+ hrs", MinHours: 10, PriceMultiplier: 1.5},
	}
	features := []FeatureRow{
		{TierID: "class_1", Position: 1, Text: "Dedicated concierge"},
		{TierID: "class_1", Position: 2, Text: "Hangar coordination"},
	}
	addons := []AddonRow{
		{TierID: "class_1", Name: "Interior Plus", PriceDeltaMonthly: 125, Feature: "Deep interior detail"},
		{TierID: "class_1", Name: "Avionics Care", PriceDeltaMonthly: 80.25},
	}
	locations := []Location{{Code: "KAPA", Name: "Centennial"}}
	serviceMap := []ServiceMapRow{{BandID: "band_low", Service: "Monthly wash"}}

	c, err := BuildCatalog(grid, features, addons, locations, serviceMap)
	if err != nil {
		t.Fatalf("BuildCatalog: %v", err)
	}
	return c
}

func TestFindBand(t *testing.T) {
	c := fixtureCatalog(t)

	tests := []struct {
		hours float64
		want  string
	}{
		{hours: 0, want: "band_low"},
		{hours: 9.99, want: "band_low"},
		{hours: 10, want: "band_mid"},
		{hours: 24.9, want: "band_mid"},
		{hours: 25, want: "band_high"},
		{hours: 500, want: "band_high"},
	}
	for _, tt := range tests {
		band, err := c.FindBand("class_1", tt.hours)
		if err != nil {
			t.Fatalf("FindBand(class_1, %v) unexpected error: %v", tt.hours, err)
		}
		if band.ID != tt.want {
			t.Fatalf("FindBand(class_1, %v) = %q, want %q", tt.hours, band.ID, tt.want)
		}
	}

	if _, err := c.FindBand("class_1", -1); !errors.Is(err, ErrInvalidHours) {
		t.Fatalf("expected ErrInvalidHours for negative hours, got %v", err)
	}
	if _, err := c.FindBand("class_1", math.NaN()); !errors.Is(err, ErrInvalidHours) {
		t.Fatalf("expected ErrInvalidHours for NaN hours, got %v", err)
	}
	if _, err := c.FindBand("no_such_tier", 5); !errors.Is(err, ErrTierNotFound) {
		t.Fatalf("expected ErrTierNotFound, got %v", err)
	}
}

func TestPriceForRounding(t *testing.T) {
	c := fixtureCatalog(t)

	// 550 x 1.45 = 797.50 exactly; the cent boundary must survive rounding.
	q, err := c.PriceFor("class_1", 12)
	if err != nil {
		t.Fatalf("PriceFor: %v", err)
	}
	if q.MonthlyTotal != 797.50 {
		t.Fatalf("PriceFor(class_1, 12) total = %v, want 797.50", q.MonthlyTotal)
	}
	if q.BaseMonthly != 550 || q.Multiplier != 1.45 {
		t.Fatalf("unexpected price parts: base=%v multiplier=%v", q.BaseMonthly, q.Multiplier)
	}
	if q.Band.ID != "band_mid" {
		t.Fatalf("expected band_mid, got %q", q.Band.ID)
	}
}

func TestPriceForUnknownTier(t *testing.T) {
	c := fixtureCatalog(t)
	if _, err := c.PriceFor("class_9", 5); !errors.Is(err, ErrTierNotFound) {
		t.Fatalf("expected ErrTierNotFound, never a zero price, got %v", err)
	}
}

func TestApplyAddons(t *testing.T) {
	c := fixtureCatalog(t)
	q, err := c.PriceFor("class_1", 12)
	if err != nil {
		t.Fatalf("PriceFor: %v", err)
	}

	got, err := c.ApplyAddons(q, []string{"Interior Plus", "Avionics Care"})
	if err != nil {
		t.Fatalf("ApplyAddons: %v", err)
	}
	if got.MonthlyTotal != 1002.75 {
		t.Fatalf("expected 797.50 + 125 + 80.25 = 1002.75, got %v", got.MonthlyTotal)
	}
	if len(got.Addons) != 2 {
		t.Fatalf("expected 2 applied addons, got %d", len(got.Addons))
	}

	// Unknown names are a stale client cache, not an error.
	got, err = c.ApplyAddons(q, []string{"Interior Plus", "Gold Wings Package"})
	if err != nil {
		t.Fatalf("ApplyAddons with unknown name: %v", err)
	}
	if got.MonthlyTotal != 922.50 {
		t.Fatalf("expected unknown addon to be ignored: total = %v, want 922.50", got.MonthlyTotal)
	}
	if len(got.Addons) != 1 {
		t.Fatalf("expected 1 applied addon, got %d", len(got.Addons))
	}
}

func TestQuoteIdempotence(t *testing.T) {
	c := fixtureCatalog(t)
	a, err := c.PriceFor("class_1", 12.34)
	if err != nil {
		t.Fatalf("PriceFor: %v", err)
	}
	b, err := c.PriceFor("class_1", 12.34)
	if err != nil {
		t.Fatalf("PriceFor: %v", err)
	}
	if a.MonthlyTotal != b.MonthlyTotal || a.Band.ID != b.Band.ID || a.Multiplier != b.Multiplier {
		t.Fatalf("expected identical quotes for identical inputs: %+v vs %+v", a, b)
	}
}

func TestBandTotalitySweep(t *testing.T) {
	c := fixtureCatalog(t)

	for h := 0.0; h <= 80; h += 0.25 {
		bands, err := c.BandsForTier("class_1")
		if err != nil {
			t.Fatalf("BandsForTier: %v", err)
		}
		matches := 0
		for _, b := range bands {
			if b.Contains(h) {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("hours %v matched %d bands, want exactly 1", h, matches)
		}
	}
}
