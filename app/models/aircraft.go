package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AircraftStatusReady     = "ready"
	AircraftStatusInService = "in_service"
	AircraftStatusGrounded  = "grounded"
)

// Aircraft is an owner's managed aircraft. MonthlyFlownHours is the rolling
// figure the credit engine and the hour-band pricing read.
type Aircraft struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	UUID              string         `gorm:"type:char(36);uniqueIndex" json:"uuid"`
	UserID            uint           `gorm:"not null;index" json:"user_id"`
	User              *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TailNumber        string         `gorm:"type:varchar(10);uniqueIndex;not null" json:"tail_number" validate:"required,min=2,max=10"`
	Make              string         `gorm:"type:varchar(100);not null" json:"make" validate:"required,max=100"`
	Model             string         `gorm:"type:varchar(100);not null" json:"model" validate:"required,max=100"`
	Year              int            `gorm:"default:0" json:"year" validate:"omitempty,min=1903,max=2100"`
	HomeBase          string         `gorm:"type:varchar(10);index" json:"home_base" validate:"max=10"`
	Status            string         `gorm:"type:varchar(20);default:'ready';index" json:"status" validate:"oneof=ready in_service grounded"`
	MonthlyFlownHours float64        `gorm:"type:decimal(6,1);default:0" json:"monthly_flown_hours" validate:"min=0"`
	Notes             string         `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Aircraft) Validate() error {
	v := validator.New()
	return v.Struct(a)
}

func (a *Aircraft) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == "" {
		a.UUID = uuid.New().String()
	}
	return nil
}

// IsReady reports whether the aircraft is available to its owner.
func (a *Aircraft) IsReady() bool {
	return a.Status == AircraftStatusReady
}
