package models

import (
	"time"

	"github.com/hangarline/hangarline/internal/pkg/credits"
)

// ServiceCreditRule configures monthly credit allocation for one service
// type: a base figure for low-activity and high-activity months and whether
// unused credits roll over. Base columns are nullable because the admin form
// may leave them blank; the engine treats absent values as zero.
type ServiceCreditRule struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ServiceType      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"service_type"`
	DisplayName      string    `gorm:"type:varchar(100);not null" json:"display_name"`
	LowActivityBase  *float64  `gorm:"type:decimal(8,2);default:null" json:"low_activity_base,omitempty"`
	HighActivityBase *float64  `gorm:"type:decimal(8,2);default:null" json:"high_activity_base,omitempty"`
	RollsOver        bool      `gorm:"default:false" json:"rolls_over"`
	IsActive         bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// EngineRule converts the row into the credit engine's rule shape, mapping
// absent base values to zero.
func (r *ServiceCreditRule) EngineRule() credits.Rule {
	rule := credits.Rule{
		ServiceType: r.ServiceType,
		RollsOver:   r.RollsOver,
	}
	if r.LowActivityBase != nil {
		rule.LowActivityBase = *r.LowActivityBase
	}
	if r.HighActivityBase != nil {
		rule.HighActivityBase = *r.HighActivityBase
	}
	return rule
}
