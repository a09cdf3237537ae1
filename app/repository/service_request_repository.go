package repository

import (
	"time"

	"github.com/hangarline/hangarline/app/models"
	"gorm.io/gorm"
)

// serviceRequestRepository implements the ServiceRequestRepository interface
type serviceRequestRepository struct {
	db *gorm.DB
}

// NewServiceRequestRepository creates a new service request repository instance
func NewServiceRequestRepository(db *gorm.DB) ServiceRequestRepository {
	return &serviceRequestRepository{db: db}
}

func (r *serviceRequestRepository) Create(request *models.ServiceRequest) error {
	return r.db.Create(request).Error
}

func (r *serviceRequestRepository) GetByID(id uint) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	if err := r.db.Preload("Aircraft").Preload("AssignedTo").First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *serviceRequestRepository) GetByUUID(uuid string) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	if err := r.db.Preload("Aircraft").Preload("AssignedTo").Where("uuid = ?", uuid).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *serviceRequestRepository) GetByUserID(userID uint, offset, limit int) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.Preload("Aircraft").Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&requests).Error
	return requests, err
}

func (r *serviceRequestRepository) GetOpenByUserID(userID uint) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.Preload("Aircraft").
		Where("user_id = ? AND status IN ?", userID, []string{
			models.RequestStatusRequested, models.RequestStatusScheduled, models.RequestStatusInProgress,
		}).
		Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// GetBoard returns all board-visible requests grouped by status column.
func (r *serviceRequestRepository) GetBoard() (map[string][]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.Preload("Aircraft").Preload("User").Preload("AssignedTo").
		Where("status IN ?", models.BoardStatuses).
		Order("priority = 'aog' DESC, created_at ASC").Find(&requests).Error
	if err != nil {
		return nil, err
	}

	board := make(map[string][]models.ServiceRequest, len(models.BoardStatuses))
	for _, status := range models.BoardStatuses {
		board[status] = []models.ServiceRequest{}
	}
	for _, req := range requests {
		board[req.Status] = append(board[req.Status], req)
	}
	return board, nil
}

func (r *serviceRequestRepository) Update(request *models.ServiceRequest) error {
	return r.db.Save(request).Error
}

func (r *serviceRequestRepository) UpdateStatus(id uint, status string, completedAt *time.Time) error {
	updates := map[string]interface{}{
		"status":       status,
		"completed_at": completedAt,
	}
	return r.db.Model(&models.ServiceRequest{}).Where("id = ?", id).Updates(updates).Error
}

func (r *serviceRequestRepository) Assign(id uint, staffID *uint) error {
	return r.db.Model(&models.ServiceRequest{}).Where("id = ?", id).Update("assigned_to_id", staffID).Error
}

func (r *serviceRequestRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.ServiceRequest{}).
		Select("status, COUNT(*) as count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
