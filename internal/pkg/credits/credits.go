package credits

import (
	"errors"
	"fmt"
	"math"
)

// ActivityTier is the four-level classification of monthly flown hours used
// for credit multiplier naming and dashboard display. It is distinct from a
// membership tier (Class I/II/III): activity tiers describe how much an
// owner flies, not what level of service they pay for.
type ActivityTier string

const (
	TierLightFlyer    ActivityTier = "Light Flyer"
	TierRegularFlyer  ActivityTier = "Regular Flyer"
	TierFrequentFlyer ActivityTier = "Frequent Flyer"
	TierProfessional  ActivityTier = "Professional"
)

// highActivityCutoffHours is the fixed cutoff that selects the high-activity
// base credit figure. It is a deliberately coarser split than the four
// activity brackets and independent of them.
const highActivityCutoffHours = 10

// ErrInvalidHours is returned when negative or non-finite hours reach the
// engine. Negative hours are a caller contract violation and are rejected,
// never clamped.
var ErrInvalidHours = errors.New("credits: hours must be a non-negative finite number")

// ErrInvalidMultiplier is returned for a non-positive or non-finite explicit
// multiplier override.
var ErrInvalidMultiplier = errors.New("credits: multiplier must be a positive finite number")

// Rule is the per-service credit configuration: a base credit figure for
// low-activity and high-activity months plus rollover eligibility. Base
// values left unset by the configuring form count as zero.
type Rule struct {
	ServiceType      string
	LowActivityBase  float64
	HighActivityBase float64
	RollsOver        bool
}

// Allocation is the computed monthly credit result for one service.
type Allocation struct {
	BaseCredits  float64
	Multiplier   float64
	TotalCredits float64
	TierName     ActivityTier
}

// TierNameForHours maps flown hours to the activity tier bracket. Lower
// bounds are inclusive: exactly 5 hours is a Regular Flyer, not a Light
// Flyer.
func TierNameForHours(hours float64) (ActivityTier, error) {
	if !validHours(hours) {
		return "", fmt.Errorf("%w: got %v", ErrInvalidHours, hours)
	}
	switch {
	case hours < 5:
		return TierLightFlyer, nil
	case hours < 15:
		return TierRegularFlyer, nil
	case hours < 30:
		return TierFrequentFlyer, nil
	default:
		return TierProfessional, nil
	}
}

// MultiplierForHours returns the activity tier multiplier for the same four
// brackets as TierNameForHours. The multiplier is informational: it is not
// applied by MonthlyCredits unless a caller passes it in explicitly.
func MultiplierForHours(hours float64) (float64, error) {
	tier, err := TierNameForHours(hours)
	if err != nil {
		return 0, err
	}
	switch tier {
	case TierLightFlyer:
		return 0.5, nil
	case TierRegularFlyer:
		return 1.0, nil
	case TierFrequentFlyer:
		return 1.5, nil
	default:
		return 2.0, nil
	}
}

// MonthlyCredits computes the credit allocation for one service. The base
// figure is highBase when hours meet the fixed 10-hour cutoff, lowBase
// otherwise, and the multiplier defaults to 1.0. The activity tier name is
// always reported from the four-bracket classification regardless of which
// base figure applied.
func MonthlyCredits(hours, lowBase, highBase float64) (Allocation, error) {
	return MonthlyCreditsWithMultiplier(hours, lowBase, highBase, 1.0)
}

// MonthlyCreditsWithMultiplier is MonthlyCredits with an explicit multiplier
// override. Membership-tier rewards opt in to scaling this way; the engine
// never conflates the override with MultiplierForHours.
func MonthlyCreditsWithMultiplier(hours, lowBase, highBase, multiplier float64) (Allocation, error) {
	tier, err := TierNameForHours(hours)
	if err != nil {
		return Allocation{}, err
	}
	if multiplier <= 0 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return Allocation{}, fmt.Errorf("%w: got %v", ErrInvalidMultiplier, multiplier)
	}

	base := sanitizeBase(lowBase)
	if hours >= highActivityCutoffHours {
		base = sanitizeBase(highBase)
	}
	return Allocation{
		BaseCredits:  base,
		Multiplier:   multiplier,
		TotalCredits: base * multiplier,
		TierName:     tier,
	}, nil
}

// ServiceCreditBatch computes allocations for every rule, keyed by service
// type, using each rule's own base figures.
func ServiceCreditBatch(hours float64, rules []Rule) (map[string]Allocation, error) {
	return ServiceCreditBatchWithMultiplier(hours, rules, 1.0)
}

// ServiceCreditBatchWithMultiplier applies the explicit multiplier to every
// rule in the batch.
func ServiceCreditBatchWithMultiplier(hours float64, rules []Rule, multiplier float64) (map[string]Allocation, error) {
	out := make(map[string]Allocation, len(rules))
	for _, r := range rules {
		alloc, err := MonthlyCreditsWithMultiplier(hours, r.LowActivityBase, r.HighActivityBase, multiplier)
		if err != nil {
			return nil, err
		}
		out[r.ServiceType] = alloc
	}
	return out, nil
}

// sanitizeBase treats unset or malformed base figures as zero credits. Rule
// rows come from admin forms that may omit fields; an absent base is a zero
// allocation, never an error.
func sanitizeBase(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func validHours(h float64) bool {
	return h >= 0 && !math.IsNaN(h) && !math.IsInf(h, 0)
}
