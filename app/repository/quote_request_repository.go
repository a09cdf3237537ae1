package repository

import (
	"github.com/hangarline/hangarline/app/models"
	"gorm.io/gorm"
)

// quoteRequestRepository implements the QuoteRequestRepository interface
type quoteRequestRepository struct {
	db *gorm.DB
}

// NewQuoteRequestRepository creates a new quote request repository instance
func NewQuoteRequestRepository(db *gorm.DB) QuoteRequestRepository {
	return &quoteRequestRepository{db: db}
}

func (r *quoteRequestRepository) Create(request *models.QuoteRequest) error {
	return r.db.Create(request).Error
}

func (r *quoteRequestRepository) GetByUUID(uuid string) (*models.QuoteRequest, error) {
	var request models.QuoteRequest
	if err := r.db.Where("uuid = ?", uuid).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *quoteRequestRepository) GetByStatus(status string, offset, limit int) ([]models.QuoteRequest, error) {
	var requests []models.QuoteRequest
	err := r.db.Where("status = ?", status).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&requests).Error
	return requests, err
}

func (r *quoteRequestRepository) Update(request *models.QuoteRequest) error {
	return r.db.Save(request).Error
}

func (r *quoteRequestRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.QuoteRequest{}).Count(&count).Error
	return count, err
}
