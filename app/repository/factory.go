package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetAircraftRepository returns the aircraft repository instance
func (f *Factory) GetAircraftRepository() AircraftRepository {
	return f.GetRepositories().Aircraft
}

// GetServiceRequestRepository returns the service request repository instance
func (f *Factory) GetServiceRequestRepository() ServiceRequestRepository {
	return f.GetRepositories().ServiceRequest
}

// GetInvoiceRepository returns the invoice repository instance
func (f *Factory) GetInvoiceRepository() InvoiceRepository {
	return f.GetRepositories().Invoice
}

// GetQuoteRequestRepository returns the quote request repository instance
func (f *Factory) GetQuoteRequestRepository() QuoteRequestRepository {
	return f.GetRepositories().QuoteRequest
}

// GetCreditRuleRepository returns the credit rule repository instance
func (f *Factory) GetCreditRuleRepository() CreditRuleRepository {
	return f.GetRepositories().CreditRule
}

// GetPricingRepository returns the pricing repository instance
func (f *Factory) GetPricingRepository() PricingRepository {
	return f.GetRepositories().Pricing
}

// GetPageRepository returns the page repository instance
func (f *Factory) GetPageRepository() PageRepository {
	return f.GetRepositories().Page
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}
