package repository

import (
	"github.com/hangarline/hangarline/app/models"
	"gorm.io/gorm"
)

// aircraftRepository implements the AircraftRepository interface
type aircraftRepository struct {
	db *gorm.DB
}

// NewAircraftRepository creates a new aircraft repository instance
func NewAircraftRepository(db *gorm.DB) AircraftRepository {
	return &aircraftRepository{db: db}
}

func (r *aircraftRepository) Create(aircraft *models.Aircraft) error {
	return r.db.Create(aircraft).Error
}

func (r *aircraftRepository) GetByID(id uint) (*models.Aircraft, error) {
	var aircraft models.Aircraft
	if err := r.db.First(&aircraft, id).Error; err != nil {
		return nil, err
	}
	return &aircraft, nil
}

func (r *aircraftRepository) GetByUUID(uuid string) (*models.Aircraft, error) {
	var aircraft models.Aircraft
	if err := r.db.Where("uuid = ?", uuid).First(&aircraft).Error; err != nil {
		return nil, err
	}
	return &aircraft, nil
}

func (r *aircraftRepository) GetByUserID(userID uint) ([]models.Aircraft, error) {
	var fleet []models.Aircraft
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&fleet).Error
	return fleet, err
}

func (r *aircraftRepository) Update(aircraft *models.Aircraft) error {
	return r.db.Save(aircraft).Error
}

func (r *aircraftRepository) Delete(id uint) error {
	return r.db.Delete(&models.Aircraft{}, id).Error
}

func (r *aircraftRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Aircraft{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
