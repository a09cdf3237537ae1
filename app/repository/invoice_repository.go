package repository

import (
	"fmt"
	"time"

	"github.com/hangarline/hangarline/app/models"
	"gorm.io/gorm"
)

// invoiceRepository implements the InvoiceRepository interface
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository instance
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

func (r *invoiceRepository) GetByNumber(number string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.Where("number = ?", number).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) GetByCheckoutSessionID(sessionID string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.Where("checkout_session_id = ?", sessionID).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) GetByUserID(userID uint, offset, limit int) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) GetOpenByUserID(userID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Where("user_id = ? AND status = ?", userID, models.InvoiceStatusOpen).
		Order("due_at ASC").Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) Update(invoice *models.Invoice) error {
	return r.db.Save(invoice).Error
}

// NextNumber produces the next public invoice number in the form
// INV-YYYYMM-NNNN, counting per calendar month. Soft-deleted invoices keep
// their number, so the count runs unscoped.
func (r *invoiceRepository) NextNumber() (string, error) {
	prefix := fmt.Sprintf("INV-%s-", time.Now().UTC().Format("200601"))
	var count int64
	err := r.db.Unscoped().Model(&models.Invoice{}).
		Where("number LIKE ?", prefix+"%").Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}
