package repository

import (
	"github.com/hangarline/hangarline/app/models"
	"github.com/hangarline/hangarline/internal/pkg/pricing"
	"gorm.io/gorm"
)

// pricingRepository implements the PricingRepository interface
type pricingRepository struct {
	db *gorm.DB
}

// NewPricingRepository creates a new pricing repository instance
func NewPricingRepository(db *gorm.DB) PricingRepository {
	return &pricingRepository{db: db}
}

// LoadGridRows reads the denormalized tier x band price grid. Tier and band
// attributes travel together so the catalog is assembled in one pass.
func (r *pricingRepository) LoadGridRows() ([]pricing.GridRow, error) {
	var rows []pricing.GridRow
	err := r.db.Table("pricing_tiers t").
		Select(`t.tier_id, t.name AS tier_name, t.description AS tier_description,
			t.base_monthly, b.band_id, b.label AS band_label, b.min_hours, b.max_hours,
			b.price_multiplier, b.details_per_month, b.service_frequency`).
		Joins("JOIN pricing_hour_bands b ON b.tier_id = t.tier_id").
		Where("t.is_active = ?", true).
		Order("t.position ASC, b.min_hours ASC").
		Scan(&rows).Error
	return rows, err
}

// LoadLocations reads the active home-base airports.
func (r *pricingRepository) LoadLocations() ([]pricing.Location, error) {
	var locs []models.Location
	if err := r.db.Where("is_active = ?", true).Order("code ASC").Find(&locs).Error; err != nil {
		return nil, err
	}
	out := make([]pricing.Location, 0, len(locs))
	for _, l := range locs {
		out = append(out, pricing.Location{Code: l.Code, Name: l.Name})
	}
	return out, nil
}

// LoadServiceMap reads the band to included-service rows.
func (r *pricingRepository) LoadServiceMap() ([]pricing.ServiceMapRow, error) {
	var rows []models.BandServiceMap
	if err := r.db.Order("band_id ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]pricing.ServiceMapRow, 0, len(rows))
	for _, sm := range rows {
		out = append(out, pricing.ServiceMapRow{BandID: sm.BandID, Service: sm.Service})
	}
	return out, nil
}

// LoadCatalog issues the catalog reads and assembles a validated immutable
// snapshot. Any empty or inconsistent grid surfaces as
// pricing.ErrCatalogUnavailable so callers can degrade visibly.
func (r *pricingRepository) LoadCatalog() (*pricing.Catalog, error) {
	grid, err := r.LoadGridRows()
	if err != nil {
		return nil, err
	}

	var featureRows []models.TierFeature
	if err := r.db.Order("tier_id ASC, position ASC").Find(&featureRows).Error; err != nil {
		return nil, err
	}
	features := make([]pricing.FeatureRow, 0, len(featureRows))
	for _, f := range featureRows {
		features = append(features, pricing.FeatureRow{TierID: f.TierID, Position: f.Position, Text: f.Text})
	}

	var addonRows []models.TierAddon
	if err := r.db.Order("tier_id ASC, id ASC").Find(&addonRows).Error; err != nil {
		return nil, err
	}
	addons := make([]pricing.AddonRow, 0, len(addonRows))
	for _, a := range addonRows {
		addons = append(addons, pricing.AddonRow{
			TierID:            a.TierID,
			Name:              a.Name,
			PriceDeltaMonthly: a.PriceDeltaMonthly,
			Feature:           a.Feature,
		})
	}

	locations, err := r.LoadLocations()
	if err != nil {
		return nil, err
	}

	serviceMap, err := r.LoadServiceMap()
	if err != nil {
		return nil, err
	}

	return pricing.BuildCatalog(grid, features, addons, locations, serviceMap)
}
