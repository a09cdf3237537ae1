package pricing

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	// ErrInvalidHours is returned when a lookup receives negative or
	// non-finite flown hours. Callers must validate form input before
	// asking for a price; we never clamp silently.
	ErrInvalidHours = errors.New("pricing: hours must be a non-negative finite number")

	// ErrTierNotFound is returned for unknown tier identifiers. A wrong
	// price is worse than a visible failure, so this is never defaulted.
	ErrTierNotFound = errors.New("pricing: membership tier not found")

	// ErrBandNotFound is returned when no hour band covers the requested
	// hours value for a tier.
	ErrBandNotFound = errors.New("pricing: no hour band matches the requested hours")

	// ErrCatalogUnavailable is returned when the upstream rows are empty or
	// partial. Quote endpoints must degrade to a visible "pricing
	// unavailable" state instead of computing against an empty grid.
	ErrCatalogUnavailable = errors.New("pricing: catalog unavailable")
)

// Addon is an optional per-tier extra with a monthly price delta.
type Addon struct {
	Name              string
	PriceDeltaMonthly float64
	Features          []string
}

// Tier is a membership service level (Class I/II/III) with a base monthly
// price. The effective monthly price is BaseMonthly scaled by the matched
// hour band multiplier.
type Tier struct {
	ID          string
	Name        string
	Description string
	BaseMonthly float64
	Features    []string
	Addons      []Addon
}

// HourBand is a bracket of monthly flown hours. MaxHours == nil means the
// band is unbounded at the top. A band matches hours h when
// MinHours <= h < MaxHours (or h >= MinHours for the unbounded band).
type HourBand struct {
	ID               string
	Label            string
	MinHours         float64
	MaxHours         *float64
	PriceMultiplier  float64
	DetailsPerMonth  string
	ServiceFrequency string
}

// Contains reports whether the band covers the given hours value.
func (b HourBand) Contains(hours float64) bool {
	if hours < b.MinHours {
		return false
	}
	return b.MaxHours == nil || hours < *b.MaxHours
}

// Location is a serviced home-base airport.
type Location struct {
	Code string
	Name string
}

// GridRow is one denormalized row of the tier x band price grid as read from
// the upstream store: tier and band attributes are carried together so the
// catalog can be assembled in a single pass.
type GridRow struct {
	TierID           string
	TierName         string
	TierDescription  string
	BaseMonthly      float64
	BandID           string
	BandLabel        string
	MinHours         float64
	MaxHours         *float64
	PriceMultiplier  float64
	DetailsPerMonth  string
	ServiceFrequency string
}

// AddonRow is an upstream add-on row keyed by tier.
type AddonRow struct {
	TierID            string
	Name              string
	PriceDeltaMonthly float64
	Feature           string
}

// FeatureRow is an upstream tier feature bullet with an ordering position.
type FeatureRow struct {
	TierID   string
	Position int
	Text     string
}

// ServiceMapRow maps an hour band to one included service description.
type ServiceMapRow struct {
	BandID  string
	Service string
}

// Catalog is the immutable pricing snapshot used by the marketing page, the
// configurator and the quote assembler. It is built once from upstream rows
// and passed explicitly into every call; refreshing means building a new
// Catalog and atomically swapping the reference, never mutating in place.
type Catalog struct {
	Tiers      []Tier
	Locations  []Location
	ServiceMap map[string][]string

	tiersByID map[string]int
	bands     map[string][]HourBand
}

// TierByID returns the tier for the given identifier.
func (c *Catalog) TierByID(id string) (Tier, error) {
	if c == nil || len(c.Tiers) == 0 {
		return Tier{}, ErrCatalogUnavailable
	}
	idx, ok := c.tiersByID[strings.TrimSpace(id)]
	if !ok {
		return Tier{}, fmt.Errorf("%w: %q", ErrTierNotFound, id)
	}
	return c.Tiers[idx], nil
}

// BandsForTier returns the ordered hour bands of a tier.
func (c *Catalog) BandsForTier(id string) ([]HourBand, error) {
	if _, err := c.TierByID(id); err != nil {
		return nil, err
	}
	return c.bands[strings.TrimSpace(id)], nil
}

// validHours reports whether h is usable in band and bracket lookups.
func validHours(h float64) bool {
	return h >= 0 && !math.IsNaN(h) && !math.IsInf(h, 0)
}

// BuildCatalog assembles and validates a catalog from upstream rows.
//
// Validation enforces the catalog invariants: unique tier IDs, non-negative
// base prices, positive multipliers, contiguous non-overlapping bands per
// tier, and exactly one unbounded top band per tier so that any non-negative
// hours value matches exactly one band.
func BuildCatalog(grid []GridRow, features []FeatureRow, addons []AddonRow, locations []Location, serviceMap []ServiceMapRow) (*Catalog, error) {
	if len(grid) == 0 {
		return nil, ErrCatalogUnavailable
	}

	c := &Catalog{
		ServiceMap: make(map[string][]string),
		tiersByID:  make(map[string]int),
		bands:      make(map[string][]HourBand),
	}

	for _, row := range grid {
		tierID := strings.TrimSpace(row.TierID)
		if tierID == "" {
			return nil, fmt.Errorf("%w: grid row without tier id", ErrCatalogUnavailable)
		}
		if row.BaseMonthly < 0 {
			return nil, fmt.Errorf("pricing: tier %q has negative base price", tierID)
		}
		if row.PriceMultiplier <= 0 {
			return nil, fmt.Errorf("pricing: band %q of tier %q has non-positive multiplier", row.BandID, tierID)
		}

		if _, seen := c.tiersByID[tierID]; !seen {
			c.tiersByID[tierID] = len(c.Tiers)
			c.Tiers = append(c.Tiers, Tier{
				ID:          tierID,
				Name:        row.TierName,
				Description: row.TierDescription,
				BaseMonthly: row.BaseMonthly,
			})
		}
		c.bands[tierID] = append(c.bands[tierID], HourBand{
			ID:               row.BandID,
			Label:            row.BandLabel,
			MinHours:         row.MinHours,
			MaxHours:         row.MaxHours,
			PriceMultiplier:  row.PriceMultiplier,
			DetailsPerMonth:  row.DetailsPerMonth,
			ServiceFrequency: row.ServiceFrequency,
		})
	}

	for tierID, bands := range c.bands {
		sort.Slice(bands, func(i, j int) bool { return bands[i].MinHours < bands[j].MinHours })
		if err := validateBands(tierID, bands); err != nil {
			return nil, err
		}
		c.bands[tierID] = bands
	}

	sort.Slice(features, func(i, j int) bool { return features[i].Position < features[j].Position })
	for _, f := range features {
		if idx, ok := c.tiersByID[f.TierID]; ok {
			c.Tiers[idx].Features = append(c.Tiers[idx].Features, f.Text)
		}
	}

	addonsByTier := make(map[string]map[string]int)
	for _, a := range addons {
		idx, ok := c.tiersByID[a.TierID]
		if !ok {
			continue
		}
		byName, ok := addonsByTier[a.TierID]
		if !ok {
			byName = make(map[string]int)
			addonsByTier[a.TierID] = byName
		}
		pos, ok := byName[a.Name]
		if !ok {
			pos = len(c.Tiers[idx].Addons)
			byName[a.Name] = pos
			c.Tiers[idx].Addons = append(c.Tiers[idx].Addons, Addon{
				Name:              a.Name,
				PriceDeltaMonthly: a.PriceDeltaMonthly,
			})
		}
		if a.Feature != "" {
			c.Tiers[idx].Addons[pos].Features = append(c.Tiers[idx].Addons[pos].Features, a.Feature)
		}
	}

	c.Locations = append(c.Locations, locations...)
	for _, sm := range serviceMap {
		c.ServiceMap[sm.BandID] = append(c.ServiceMap[sm.BandID], sm.Service)
	}

	return c, nil
}

func validateBands(tierID string, bands []HourBand) error {
	if len(bands) == 0 {
		return fmt.Errorf("%w: tier %q has no hour bands", ErrCatalogUnavailable, tierID)
	}
	if bands[0].MinHours != 0 {
		return fmt.Errorf("pricing: tier %q bands do not start at 0 hours", tierID)
	}
	for i, b := range bands {
		last := i == len(bands)-1
		if last {
			if b.MaxHours != nil {
				return fmt.Errorf("pricing: tier %q has no unbounded top band", tierID)
			}
			continue
		}
		if b.MaxHours == nil {
			return fmt.Errorf("pricing: tier %q has an unbounded band below the top band", tierID)
		}
		if *b.MaxHours <= b.MinHours {
			return fmt.Errorf("pricing: tier %q band %q is empty or inverted", tierID, b.ID)
		}
		if next := bands[i+1]; next.MinHours != *b.MaxHours {
			return fmt.Errorf("pricing: tier %q bands %q and %q are not contiguous", tierID, b.ID, next.ID)
		}
	}
	return nil
}
