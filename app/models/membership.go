package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

const (
	MembershipStatusActive   = "active"
	MembershipStatusPastDue  = "past_due"
	MembershipStatusCanceled = "canceled"
)

// Membership is an owner's tier + hour-band selection with optional add-ons.
// TierID and HourBandID reference catalog identifiers, not local rows: the
// catalog is configuration owned by the pricing tables and may be reloaded
// without touching memberships.
type Membership struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	User            *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AircraftID      uint           `gorm:"not null;index" json:"aircraft_id"`
	Aircraft        *Aircraft      `gorm:"foreignKey:AircraftID" json:"aircraft,omitempty"`
	TierID          string         `gorm:"type:varchar(50);not null;index" json:"tier_id"`
	HourBandID      string         `gorm:"type:varchar(50);not null" json:"hour_band_id"`
	AddonsJSON      string         `gorm:"type:text" json:"-"`
	MonthlyPriceUSD float64        `gorm:"type:decimal(10,2);not null;default:0" json:"monthly_price_usd"`
	Status          string         `gorm:"type:varchar(20);default:'active';index" json:"status"`
	StartedAt       time.Time      `gorm:"autoCreateTime" json:"started_at"`
	CanceledAt      *time.Time     `gorm:"type:timestamp;default:null" json:"canceled_at,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// Addons decodes the selected add-on names.
func (m *Membership) Addons() []string {
	if m.AddonsJSON == "" {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(m.AddonsJSON), &names); err != nil {
		return nil
	}
	return names
}

// SetAddons encodes the selected add-on names.
func (m *Membership) SetAddons(names []string) error {
	if len(names) == 0 {
		m.AddonsJSON = ""
		return nil
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return err
	}
	m.AddonsJSON = string(raw)
	return nil
}

// IsEntitled reports whether the membership still entitles services.
func (m *Membership) IsEntitled() bool {
	return m.Status == MembershipStatusActive || m.Status == MembershipStatusPastDue
}

// ActiveMembershipForUser returns the user's current entitling membership.
func ActiveMembershipForUser(db *gorm.DB, userID uint) (*Membership, error) {
	var m Membership
	err := db.Where("user_id = ? AND status IN ?", userID, []string{MembershipStatusActive, MembershipStatusPastDue}).
		Order("started_at DESC").First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}
