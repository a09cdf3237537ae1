package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RequestStatusRequested  = "requested"
	RequestStatusScheduled  = "scheduled"
	RequestStatusInProgress = "in_progress"
	RequestStatusCompleted  = "completed"
	RequestStatusCanceled   = "canceled"
)

const (
	RequestPriorityNormal = "normal"
	RequestPriorityHigh   = "high"
	RequestPriorityAOG    = "aog"
)

// BoardStatuses are the kanban columns of the staff service board, in
// display order. Canceled requests are not shown on the board.
var BoardStatuses = []string{
	RequestStatusRequested,
	RequestStatusScheduled,
	RequestStatusInProgress,
	RequestStatusCompleted,
}

// ServiceRequest is one concierge work item: a card on the staff board and a
// row in the owner's dashboard.
type ServiceRequest struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UUID         string         `gorm:"type:char(36);uniqueIndex" json:"uuid"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	User         *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AircraftID   uint           `gorm:"not null;index" json:"aircraft_id"`
	Aircraft     *Aircraft      `gorm:"foreignKey:AircraftID" json:"aircraft,omitempty"`
	ServiceType  string         `gorm:"type:varchar(50);not null;index" json:"service_type" validate:"required,max=50"`
	Title        string         `gorm:"type:varchar(200);not null" json:"title" validate:"required,min=3,max=200"`
	Details      string         `gorm:"type:text" json:"details"`
	Status       string         `gorm:"type:varchar(20);default:'requested';index" json:"status" validate:"oneof=requested scheduled in_progress completed canceled"`
	Priority     string         `gorm:"type:varchar(10);default:'normal'" json:"priority" validate:"oneof=normal high aog"`
	AssignedToID *uint          `gorm:"index" json:"assigned_to_id,omitempty"`
	AssignedTo   *User          `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	ScheduledFor *time.Time     `gorm:"type:timestamp;default:null" json:"scheduled_for,omitempty"`
	CompletedAt  *time.Time     `gorm:"type:timestamp;default:null" json:"completed_at,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *ServiceRequest) Validate() error {
	v := validator.New()
	return v.Struct(r)
}

func (r *ServiceRequest) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == "" {
		r.UUID = uuid.New().String()
	}
	return nil
}

// IsOpen reports whether the request still occupies an active board column.
func (r ServiceRequest) IsOpen() bool {
	switch r.Status {
	case RequestStatusRequested, RequestStatusScheduled, RequestStatusInProgress:
		return true
	default:
		return false
	}
}

// IsValidRequestStatus reports whether s is a known request status.
func IsValidRequestStatus(s string) bool {
	switch s {
	case RequestStatusRequested, RequestStatusScheduled, RequestStatusInProgress,
		RequestStatusCompleted, RequestStatusCanceled:
		return true
	default:
		return false
	}
}

// CanTransitionTo encodes the board's allowed card moves. Completed and
// canceled are terminal except for reopening a completed card back to
// in_progress.
func (r *ServiceRequest) CanTransitionTo(next string) bool {
	if !IsValidRequestStatus(next) || next == r.Status {
		return false
	}
	switch r.Status {
	case RequestStatusRequested:
		return next == RequestStatusScheduled || next == RequestStatusInProgress || next == RequestStatusCanceled
	case RequestStatusScheduled:
		return next == RequestStatusRequested || next == RequestStatusInProgress || next == RequestStatusCanceled
	case RequestStatusInProgress:
		return next == RequestStatusScheduled || next == RequestStatusCompleted || next == RequestStatusCanceled
	case RequestStatusCompleted:
		return next == RequestStatusInProgress
	default:
		return false
	}
}
