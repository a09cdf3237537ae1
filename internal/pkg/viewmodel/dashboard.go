package viewmodel

import (
	"github.com/hangarline/hangarline/app/models"
	"github.com/hangarline/hangarline/internal/pkg/credits"
)

// AircraftCard is one fleet entry on the owner dashboard.
type AircraftCard struct {
	UUID             string
	TailNumber       string
	MakeModel        string
	Status           string
	MonthlyFlownHours float64
	OpenRequests     int
}

// CreditLine is one service credit row on the dashboard: the configured rule
// plus the allocation computed for the aircraft's current activity.
type CreditLine struct {
	ServiceType string
	DisplayName string
	Allocation  credits.Allocation
	RollsOver   bool
}

// Dashboard aggregates everything the owner portal landing page renders.
type Dashboard struct {
	Fleet        []AircraftCard
	ActivityTier string
	Multiplier   float64
	Credits      []CreditLine
	OpenRequests []models.ServiceRequest
	OpenInvoices []models.Invoice
	PlanName     string
}

// BoardColumn is one kanban column of the staff service request board.
type BoardColumn struct {
	Status string
	Title  string
	Cards  []models.ServiceRequest
}
