package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hangarline/hangarline/app/models"
	"github.com/hangarline/hangarline/app/repository"
	"github.com/hangarline/hangarline/internal/pkg/credits"
	"github.com/hangarline/hangarline/internal/pkg/database"
	"github.com/hangarline/hangarline/internal/pkg/usercontext"
	"github.com/hangarline/hangarline/internal/pkg/viewmodel"
)

// HandleDashboard renders the owner portal landing page: fleet status, the
// month's service credits, open requests and open invoices.
func HandleDashboard(c *fiber.Ctx) error {
	data := layoutData(c, "Dashboard")

	if usercontext.IsDemo(c) {
		data["Dashboard"] = demoDashboard()
		return c.Render("dashboard/index", data, "layouts/main")
	}

	uc := usercontext.GetUserContext(c)
	vm, err := buildDashboard(uc.UserID)
	if err != nil {
		data["LoadError"] = true
		return c.Render("dashboard/index", data, "layouts/main")
	}
	vm.PlanName = uc.Plan

	data["Dashboard"] = vm
	return c.Render("dashboard/index", data, "layouts/main")
}

// buildDashboard assembles the dashboard view model for one owner. Activity
// classification uses the fleet's highest monthly flown hours: credits are a
// per-owner allowance, so the busiest aircraft sets the tier.
func buildDashboard(userID uint) (viewmodel.Dashboard, error) {
	repos := repository.GetGlobalRepositories()

	fleet, err := repos.Aircraft.GetByUserID(userID)
	if err != nil {
		return viewmodel.Dashboard{}, err
	}

	openRequests, err := repos.ServiceRequest.GetOpenByUserID(userID)
	if err != nil {
		return viewmodel.Dashboard{}, err
	}
	openByAircraft := make(map[uint]int)
	for _, req := range openRequests {
		openByAircraft[req.AircraftID]++
	}

	var vm viewmodel.Dashboard
	maxHours := 0.0
	for _, a := range fleet {
		vm.Fleet = append(vm.Fleet, viewmodel.AircraftCard{
			UUID:              a.UUID,
			TailNumber:        a.TailNumber,
			MakeModel:         a.Make + " " + a.Model,
			Status:            a.Status,
			MonthlyFlownHours: a.MonthlyFlownHours,
			OpenRequests:      openByAircraft[a.ID],
		})
		if a.MonthlyFlownHours > maxHours {
			maxHours = a.MonthlyFlownHours
		}
	}
	vm.OpenRequests = openRequests

	tierName, err := credits.TierNameForHours(maxHours)
	if err != nil {
		return viewmodel.Dashboard{}, err
	}
	multiplier, err := credits.MultiplierForHours(maxHours)
	if err != nil {
		return viewmodel.Dashboard{}, err
	}
	vm.ActivityTier = string(tierName)
	vm.Multiplier = multiplier

	ruleRows, err := repos.CreditRule.GetActive()
	if err != nil {
		return viewmodel.Dashboard{}, err
	}
	rules := make([]credits.Rule, 0, len(ruleRows))
	for _, row := range ruleRows {
		rules = append(rules, row.EngineRule())
	}
	allocations, err := credits.ServiceCreditBatch(maxHours, rules)
	if err != nil {
		return viewmodel.Dashboard{}, err
	}
	for _, row := range ruleRows {
		vm.Credits = append(vm.Credits, viewmodel.CreditLine{
			ServiceType: row.ServiceType,
			DisplayName: row.DisplayName,
			Allocation:  allocations[row.ServiceType],
			RollsOver:   row.RollsOver,
		})
	}

	invoices, err := repos.Invoice.GetOpenByUserID(userID)
	if err != nil {
		return viewmodel.Dashboard{}, err
	}
	vm.OpenInvoices = invoices

	if m, err := models.ActiveMembershipForUser(database.GetDB(), userID); err == nil {
		vm.PlanName = m.TierID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return viewmodel.Dashboard{}, err
	}

	return vm, nil
}

// demoDashboard is the canned read-only data set the demo session browses.
func demoDashboard() viewmodel.Dashboard {
	tierName, _ := credits.TierNameForHours(18)
	multiplier, _ := credits.MultiplierForHours(18)
	detailAlloc, _ := credits.MonthlyCredits(18, 1, 2)
	washAlloc, _ := credits.MonthlyCredits(18, 2, 4)

	return viewmodel.Dashboard{
		Fleet: []viewmodel.AircraftCard{
			{UUID: "demo-sr22", TailNumber: "N421HL", MakeModel: "Cirrus SR22T", Status: models.AircraftStatusReady, MonthlyFlownHours: 18, OpenRequests: 1},
			{UUID: "demo-tbm", TailNumber: "N88QT", MakeModel: "Daher TBM 930", Status: models.AircraftStatusInService, MonthlyFlownHours: 9, OpenRequests: 1},
		},
		ActivityTier: string(tierName),
		Multiplier:   multiplier,
		Credits: []viewmodel.CreditLine{
			{ServiceType: "detailing", DisplayName: "Detailing", Allocation: detailAlloc, RollsOver: false},
			{ServiceType: "wash", DisplayName: "Exterior Wash", Allocation: washAlloc, RollsOver: true},
		},
		PlanName: "Class II",
	}
}
