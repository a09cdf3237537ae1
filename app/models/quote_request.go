package models

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	QuoteRequestStatusNew       = "new"
	QuoteRequestStatusContacted = "contacted"
	QuoteRequestStatusClosed    = "closed"
)

// QuoteRequest is a configurator submission: the visitor's tier/hours/add-on
// selection snapshot plus contact details, filed as a support-ticket-style
// record for staff follow-up. The quoted price is a snapshot for triage, not
// an offer; staff re-quote against the live catalog.
type QuoteRequest struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UUID            string         `gorm:"type:char(36);uniqueIndex" json:"uuid"`
	UserID          *uint          `gorm:"index" json:"user_id,omitempty"`
	Name            string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Email           string         `gorm:"type:varchar(200);not null" json:"email" validate:"required,email,max=200"`
	Phone           string         `gorm:"type:varchar(30)" json:"phone" validate:"max=30"`
	TierID          string         `gorm:"type:varchar(50);not null" json:"tier_id" validate:"required,max=50"`
	HourBandID      string         `gorm:"type:varchar(50)" json:"hour_band_id"`
	MonthlyHours    float64        `gorm:"type:decimal(6,1);default:0" json:"monthly_hours" validate:"min=0"`
	AddonsJSON      string         `gorm:"type:text" json:"-"`
	QuotedPriceUSD  float64        `gorm:"type:decimal(10,2);default:0" json:"quoted_price_usd"`
	Message         string         `gorm:"type:text" json:"message"`
	Status          string         `gorm:"type:varchar(20);default:'new';index" json:"status"`
	ContactedByID   *uint          `gorm:"index" json:"contacted_by_id,omitempty"`
	ContactedAt     *time.Time     `gorm:"type:timestamp;default:null" json:"contacted_at,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *QuoteRequest) Validate() error {
	v := validator.New()
	return v.Struct(q)
}

func (q *QuoteRequest) BeforeCreate(tx *gorm.DB) error {
	if q.UUID == "" {
		q.UUID = uuid.New().String()
	}
	return nil
}

// AddonNames decodes the snapshotted add-on selection.
func (q *QuoteRequest) AddonNames() []string {
	if q.AddonsJSON == "" {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(q.AddonsJSON), &names); err != nil {
		return nil
	}
	return names
}

// SetAddonNames encodes the snapshotted add-on selection.
func (q *QuoteRequest) SetAddonNames(names []string) error {
	if len(names) == 0 {
		q.AddonsJSON = ""
		return nil
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return err
	}
	q.AddonsJSON = string(raw)
	return nil
}
