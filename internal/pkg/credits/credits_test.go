package credits

import (
	"errors"
	"math"
	"testing"
)

func TestTierNameForHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  ActivityTier
	}{
		{hours: 0, want: TierLightFlyer},
		{hours: 2.5, want: TierLightFlyer},
		{hours: 4.99, want: TierLightFlyer},
		{hours: 5, want: TierRegularFlyer},
		{hours: 14.9, want: TierRegularFlyer},
		{hours: 15, want: TierFrequentFlyer},
		{hours: 29.99, want: TierFrequentFlyer},
		{hours: 30, want: TierProfessional},
		{hours: 120, want: TierProfessional},
	}

	for _, tt := range tests {
		got, err := TierNameForHours(tt.hours)
		if err != nil {
			t.Fatalf("TierNameForHours(%v) unexpected error: %v", tt.hours, err)
		}
		if got != tt.want {
			t.Fatalf("TierNameForHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestMultiplierForHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  float64
	}{
		{hours: 0, want: 0.5},
		{hours: 4.99, want: 0.5},
		{hours: 5, want: 1.0},
		{hours: 14.9, want: 1.0},
		{hours: 15, want: 1.5},
		{hours: 30, want: 2.0},
	}

	for _, tt := range tests {
		got, err := MultiplierForHours(tt.hours)
		if err != nil {
			t.Fatalf("MultiplierForHours(%v) unexpected error: %v", tt.hours, err)
		}
		if got != tt.want {
			t.Fatalf("MultiplierForHours(%v) = %v, want %v", tt.hours, got, tt.want)
		}
	}
}

func TestInvalidHoursRejected(t *testing.T) {
	for _, h := range []float64{-1, -0.001, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := TierNameForHours(h); !errors.Is(err, ErrInvalidHours) {
			t.Fatalf("TierNameForHours(%v) error = %v, want ErrInvalidHours", h, err)
		}
		if _, err := MultiplierForHours(h); !errors.Is(err, ErrInvalidHours) {
			t.Fatalf("MultiplierForHours(%v) error = %v, want ErrInvalidHours", h, err)
		}
		if _, err := MonthlyCredits(h, 100, 200); !errors.Is(err, ErrInvalidHours) {
			t.Fatalf("MonthlyCredits(%v) error = %v, want ErrInvalidHours", h, err)
		}
	}

	// Zero is the boundary of the reject policy and must be valid.
	if _, err := TierNameForHours(0); err != nil {
		t.Fatalf("TierNameForHours(0) unexpected error: %v", err)
	}
}

func TestMonthlyCreditsLowActivityBase(t *testing.T) {
	alloc, err := MonthlyCredits(5, 100, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alloc.BaseCredits != 100 {
		t.Fatalf("expected low base 100 below the 10 hour cutoff, got %v", alloc.BaseCredits)
	}
	if alloc.Multiplier != 1.0 {
		t.Fatalf("expected default multiplier 1.0, got %v", alloc.Multiplier)
	}
	if alloc.TotalCredits != 100 {
		t.Fatalf("expected total 100, got %v", alloc.TotalCredits)
	}
	if alloc.TierName != TierRegularFlyer {
		t.Fatalf("expected tier name %q, got %q", TierRegularFlyer, alloc.TierName)
	}
}

func TestMonthlyCreditsHighActivityCutoff(t *testing.T) {
	alloc, err := MonthlyCredits(10, 100, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alloc.BaseCredits != 200 {
		t.Fatalf("expected high base 200 at exactly 10 hours, got %v", alloc.BaseCredits)
	}
	if alloc.TotalCredits != 200 {
		t.Fatalf("expected total 200, got %v", alloc.TotalCredits)
	}
}

func TestMonthlyCreditsExplicitMultiplier(t *testing.T) {
	alloc, err := MonthlyCreditsWithMultiplier(5, 100, 200, 2.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alloc.TotalCredits != 200 {
		t.Fatalf("expected explicit multiplier to override default: total = %v, want 200", alloc.TotalCredits)
	}

	// The default multiplier is 1.0, deliberately not MultiplierForHours.
	// 20 hours would map to 1.5 on the activity scale.
	alloc, err = MonthlyCredits(20, 100, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alloc.Multiplier != 1.0 || alloc.TotalCredits != 200 {
		t.Fatalf("expected activity multiplier to stay opt-in, got multiplier=%v total=%v", alloc.Multiplier, alloc.TotalCredits)
	}
}

func TestServiceCreditBatch(t *testing.T) {
	rules := []Rule{
		{ServiceType: "detail", LowActivityBase: 50, HighActivityBase: 100, RollsOver: true},
		{ServiceType: "hangar_wash", LowActivityBase: 75, HighActivityBase: 150},
	}

	got, err := ServiceCreditBatchWithMultiplier(15, rules, 1.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(got))
	}
	if got["detail"].TotalCredits != 150 {
		t.Fatalf("detail: expected 100 x 1.5 = 150, got %v", got["detail"].TotalCredits)
	}
	if got["hangar_wash"].TotalCredits != 225 {
		t.Fatalf("hangar_wash: expected 150 x 1.5 = 225, got %v", got["hangar_wash"].TotalCredits)
	}
	for svc, alloc := range got {
		if alloc.TierName != TierFrequentFlyer {
			t.Fatalf("%s: expected tier %q, got %q", svc, TierFrequentFlyer, alloc.TierName)
		}
	}
}

func TestServiceCreditBatchZeroBases(t *testing.T) {
	// Rules populated from forms may omit base values entirely. That must
	// produce a zero allocation, never an error.
	got, err := ServiceCreditBatch(12, []Rule{{ServiceType: "oxygen_service"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alloc := got["oxygen_service"]
	if alloc.BaseCredits != 0 || alloc.TotalCredits != 0 {
		t.Fatalf("expected zero allocation, got base=%v total=%v", alloc.BaseCredits, alloc.TotalCredits)
	}
}

func TestAllocationIdempotence(t *testing.T) {
	a, err := MonthlyCreditsWithMultiplier(17.3, 80, 160, 1.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := MonthlyCreditsWithMultiplier(17.3, 80, 160, 1.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("expected identical allocations for identical inputs: %+v vs %+v", a, b)
	}
}

func TestBracketTotality(t *testing.T) {
	// Every non-negative hours value must map to exactly one bracket.
	for h := 0.0; h <= 60; h += 0.1 {
		matches := 0
		bounds := []struct {
			lo, hi float64
		}{
			{0, 5}, {5, 15}, {15, 30}, {30, math.Inf(1)},
		}
		for _, b := range bounds {
			if h >= b.lo && h < b.hi {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("hours %v matched %d brackets, want exactly 1", h, matches)
		}
		if _, err := TierNameForHours(h); err != nil {
			t.Fatalf("TierNameForHours(%v) unexpected error: %v", h, err)
		}
	}
}
