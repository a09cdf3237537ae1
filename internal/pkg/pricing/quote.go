package pricing

import (
	"fmt"
	"math"
	"strings"
)

// Quote is an ephemeral price + feature bundle for a tier/hours/add-on
// selection. It is computed fresh on every call and never persisted or
// cached by this package; callers hand it to checkout, display or storage.
type Quote struct {
	TierID       string
	TierName     string
	Band         HourBand
	BaseMonthly  float64
	Multiplier   float64
	MonthlyTotal float64
	Addons       []Addon
}

// FindBand selects the unique hour band of the tier whose [min,max) range
// contains hours. Negative or non-finite hours are rejected with
// ErrInvalidHours; a catalog that passed BuildCatalog validation guarantees
// that every valid hours value matches exactly one band.
func (c *Catalog) FindBand(tierID string, hours float64) (HourBand, error) {
	if !validHours(hours) {
		return HourBand{}, fmt.Errorf("%w: got %v", ErrInvalidHours, hours)
	}
	bands, err := c.BandsForTier(tierID)
	if err != nil {
		return HourBand{}, err
	}
	for _, b := range bands {
		if b.Contains(hours) {
			return b, nil
		}
	}
	return HourBand{}, fmt.Errorf("%w: tier %q, %v hours", ErrBandNotFound, tierID, hours)
}

// PriceFor computes the monthly price of a tier at the given flown hours:
// the tier's base monthly price scaled by the matched band multiplier,
// rounded half-up to the nearest cent. Prices are USD; the presentation
// layer may relabel the currency but not recompute.
func (c *Catalog) PriceFor(tierID string, hours float64) (Quote, error) {
	tier, err := c.TierByID(tierID)
	if err != nil {
		return Quote{}, err
	}
	band, err := c.FindBand(tierID, hours)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		TierID:       tier.ID,
		TierName:     tier.Name,
		Band:         band,
		BaseMonthly:  tier.BaseMonthly,
		Multiplier:   band.PriceMultiplier,
		MonthlyTotal: roundCents(tier.BaseMonthly * band.PriceMultiplier),
	}, nil
}

// ApplyAddons extends a quote with the selected add-ons of its tier and
// returns a new quote with the deltas added to the monthly total. Unknown
// add-on names are ignored: selection lists are derived from this same
// catalog, so a mismatch indicates a stale client cache, not a fatal
// condition.
func (c *Catalog) ApplyAddons(q Quote, selected []string) (Quote, error) {
	tier, err := c.TierByID(q.TierID)
	if err != nil {
		return Quote{}, err
	}

	out := q
	out.Addons = nil
	total := q.MonthlyTotal
	for _, name := range selected {
		name = strings.TrimSpace(name)
		for _, a := range tier.Addons {
			if a.Name == name {
				out.Addons = append(out.Addons, a)
				total += a.PriceDeltaMonthly
				break
			}
		}
	}
	out.MonthlyTotal = roundCents(total)
	return out, nil
}

// roundCents rounds to two decimal places, half up.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
