package repository

import (
	"time"

	"github.com/hangarline/hangarline/app/models"
	"github.com/hangarline/hangarline/internal/pkg/pricing"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByActivationToken(token string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	Search(query string) ([]models.User, error)
	ListStaff() ([]models.User, error)
}

// AircraftRepository defines the interface for aircraft database operations
type AircraftRepository interface {
	Create(aircraft *models.Aircraft) error
	GetByID(id uint) (*models.Aircraft, error)
	GetByUUID(uuid string) (*models.Aircraft, error)
	GetByUserID(userID uint) ([]models.Aircraft, error)
	Update(aircraft *models.Aircraft) error
	Delete(id uint) error
	CountByUserID(userID uint) (int64, error)
}

// ServiceRequestRepository defines the interface for service request operations
type ServiceRequestRepository interface {
	Create(request *models.ServiceRequest) error
	GetByID(id uint) (*models.ServiceRequest, error)
	GetByUUID(uuid string) (*models.ServiceRequest, error)
	GetByUserID(userID uint, offset, limit int) ([]models.ServiceRequest, error)
	GetOpenByUserID(userID uint) ([]models.ServiceRequest, error)
	GetBoard() (map[string][]models.ServiceRequest, error)
	Update(request *models.ServiceRequest) error
	UpdateStatus(id uint, status string, completedAt *time.Time) error
	Assign(id uint, staffID *uint) error
	CountByStatus() (map[string]int64, error)
}

// InvoiceRepository defines the interface for invoice operations
type InvoiceRepository interface {
	Create(invoice *models.Invoice) error
	GetByNumber(number string) (*models.Invoice, error)
	GetByCheckoutSessionID(sessionID string) (*models.Invoice, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Invoice, error)
	GetOpenByUserID(userID uint) ([]models.Invoice, error)
	Update(invoice *models.Invoice) error
	NextNumber() (string, error)
}

// QuoteRequestRepository defines the interface for configurator submissions
type QuoteRequestRepository interface {
	Create(request *models.QuoteRequest) error
	GetByUUID(uuid string) (*models.QuoteRequest, error)
	GetByStatus(status string, offset, limit int) ([]models.QuoteRequest, error)
	Update(request *models.QuoteRequest) error
	Count() (int64, error)
}

// CreditRuleRepository defines the interface for service credit rule rows
type CreditRuleRepository interface {
	GetActive() ([]models.ServiceCreditRule, error)
	GetByServiceType(serviceType string) (*models.ServiceCreditRule, error)
	Save(rule *models.ServiceCreditRule) error
}

// PricingRepository loads the pricing configuration rows. LoadCatalog issues
// the three catalog reads (denormalized tier x band price grid, locations,
// band service map) plus the feature/addon rows and assembles an immutable
// pricing.Catalog snapshot.
type PricingRepository interface {
	LoadCatalog() (*pricing.Catalog, error)
	LoadGridRows() ([]pricing.GridRow, error)
	LoadLocations() ([]pricing.Location, error)
	LoadServiceMap() ([]pricing.ServiceMapRow, error)
}

// PageRepository defines the interface for page-related operations
type PageRepository interface {
	Create(page *models.Page) error
	GetBySlug(slug string) (*models.Page, error)
	GetActive() ([]models.Page, error)
	Update(page *models.Page) error
	Delete(id uint) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User           UserRepository
	Aircraft       AircraftRepository
	ServiceRequest ServiceRequestRepository
	Invoice        InvoiceRepository
	QuoteRequest   QuoteRequestRepository
	CreditRule     CreditRuleRepository
	Pricing        PricingRepository
	Page           PageRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:           NewUserRepository(db),
		Aircraft:       NewAircraftRepository(db),
		ServiceRequest: NewServiceRequestRepository(db),
		Invoice:        NewInvoiceRepository(db),
		QuoteRequest:   NewQuoteRequestRepository(db),
		CreditRule:     NewCreditRuleRepository(db),
		Pricing:        NewPricingRepository(db),
		Page:           NewPageRepository(db),
	}
}
