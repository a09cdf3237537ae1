package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	InvoiceStatusOpen = "open"
	InvoiceStatusPaid = "paid"
	InvoiceStatusVoid = "void"
)

// Invoice is a monthly membership or service invoice. Amounts are stored in
// cents; payment happens through a hosted checkout session whose reference
// is kept for webhook reconciliation.
type Invoice struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Number            string         `gorm:"type:varchar(30);uniqueIndex;not null" json:"number"`
	UserID            uint           `gorm:"not null;index" json:"user_id"`
	User              *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	MembershipID      *uint          `gorm:"index" json:"membership_id,omitempty"`
	Description       string         `gorm:"type:varchar(255)" json:"description"`
	AmountCents       int64          `gorm:"not null;default:0" json:"amount_cents"`
	Currency          string         `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Status            string         `gorm:"type:varchar(20);default:'open';index" json:"status"`
	DueAt             *time.Time     `gorm:"type:timestamp;default:null" json:"due_at,omitempty"`
	PaidAt            *time.Time     `gorm:"type:timestamp;default:null" json:"paid_at,omitempty"`
	CheckoutSessionID string         `gorm:"type:varchar(191);default:'';index" json:"-"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// AmountUSD renders the cent amount as a display string.
func (i Invoice) AmountUSD() string {
	return fmt.Sprintf("$%.2f", float64(i.AmountCents)/100)
}

// IsPayable reports whether the invoice can still be sent to checkout.
func (i Invoice) IsPayable() bool {
	return i.Status == InvoiceStatusOpen
}

// MarkPaid sets the paid status and timestamp. Persisting is the caller's job.
func (i *Invoice) MarkPaid(at time.Time) {
	i.Status = InvoiceStatusPaid
	i.PaidAt = &at
}

// FindInvoiceByNumber returns the invoice with the given public number.
func FindInvoiceByNumber(db *gorm.DB, number string) (*Invoice, error) {
	var inv Invoice
	if err := db.Where("number = ?", number).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}
