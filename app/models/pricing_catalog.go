package models

import "time"

// The pricing tables are configuration: loaded at process start (or on an
// admin-triggered refresh) into an immutable pricing.Catalog snapshot and
// treated as read-only for the lifetime of a request.

// PricingTier is a membership service level row (Class I/II/III).
type PricingTier struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TierID      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"tier_id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	BaseMonthly float64   `gorm:"type:decimal(10,2);not null;default:0" json:"base_monthly"`
	Position    int       `gorm:"default:0;index" json:"position"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PricingHourBand is a flown-hours bracket row for a tier. A NULL MaxHours
// marks the unbounded top band; the catalog build rejects tiers without one.
type PricingHourBand struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	BandID           string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"band_id"`
	TierID           string    `gorm:"type:varchar(50);not null;index" json:"tier_id"`
	Label            string    `gorm:"type:varchar(100);not null" json:"label"`
	MinHours         float64   `gorm:"type:decimal(6,1);not null;default:0" json:"min_hours"`
	MaxHours         *float64  `gorm:"type:decimal(6,1);default:null" json:"max_hours,omitempty"`
	PriceMultiplier  float64   `gorm:"type:decimal(5,2);not null;default:1" json:"price_multiplier"`
	DetailsPerMonth  string    `gorm:"type:varchar(100)" json:"details_per_month"`
	ServiceFrequency string    `gorm:"type:varchar(100)" json:"service_frequency"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TierFeature is one ordered feature bullet of a tier.
type TierFeature struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TierID   string `gorm:"type:varchar(50);not null;index" json:"tier_id"`
	Position int    `gorm:"default:0" json:"position"`
	Text     string `gorm:"type:varchar(255);not null" json:"text"`
}

// TierAddon is an optional extra for a tier with a monthly price delta.
// Multiple rows with the same addon name carry its feature bullets.
type TierAddon struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	TierID            string  `gorm:"type:varchar(50);not null;index" json:"tier_id"`
	Name              string  `gorm:"type:varchar(100);not null" json:"name"`
	PriceDeltaMonthly float64 `gorm:"type:decimal(8,2);not null;default:0" json:"price_delta_monthly"`
	Feature           string  `gorm:"type:varchar(255)" json:"feature"`
}

// Location is a serviced home-base airport.
type Location struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Code     string `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	IsActive bool   `gorm:"default:true;index" json:"is_active"`
}

// BandServiceMap lists the services included in an hour band.
type BandServiceMap struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	BandID  string `gorm:"type:varchar(50);not null;index" json:"band_id"`
	Service string `gorm:"type:varchar(150);not null" json:"service"`
}
