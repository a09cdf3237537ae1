package repository

import (
	"github.com/hangarline/hangarline/app/models"
	"gorm.io/gorm"
)

// creditRuleRepository implements the CreditRuleRepository interface
type creditRuleRepository struct {
	db *gorm.DB
}

// NewCreditRuleRepository creates a new credit rule repository instance
func NewCreditRuleRepository(db *gorm.DB) CreditRuleRepository {
	return &creditRuleRepository{db: db}
}

func (r *creditRuleRepository) GetActive() ([]models.ServiceCreditRule, error) {
	var rules []models.ServiceCreditRule
	err := r.db.Where("is_active = ?", true).Order("service_type ASC").Find(&rules).Error
	return rules, err
}

func (r *creditRuleRepository) GetByServiceType(serviceType string) (*models.ServiceCreditRule, error) {
	var rule models.ServiceCreditRule
	if err := r.db.Where("service_type = ?", serviceType).First(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *creditRuleRepository) Save(rule *models.ServiceCreditRule) error {
	return r.db.Save(rule).Error
}
