package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hangarline/hangarline/internal/pkg/pricing"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db, mock
}

func gridColumns() []string {
	return []string{
		"tier_id", "tier_name", "tier_description", "base_monthly",
		"band_id", "band_label", "min_hours", "max_hours",
		"price_multiplier", "details_per_month", "service_frequency",
	}
}

func TestLoadCatalogAssemblesSnapshot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPricingRepository(db)

	mock.ExpectQuery("SELECT .* FROM `pricing_tiers`.*JOIN pricing_hour_bands").
		WillReturnRows(sqlmock.NewRows(gridColumns()).
			AddRow("class_1", "Class I", "Light singles", 550.0, "c1_low", "0-10 hrs", 0.0, 10.0, 1.0, "2 details", "weekly").
			AddRow("class_1", "Class I", "Light singles", 550.0, "c1_mid", "10-25 hrs", 10.0, 25.0, 1.45, "3 details", "twice weekly").
			AddRow("class_1", "Class I", "Light singles", 550.0, "c1_top", "25+ hrs", 25.0, nil, 1.9, "4 details", "daily"))

	mock.ExpectQuery("SELECT .* FROM `tier_features`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tier_id", "position", "text"}).
			AddRow(1, "class_1", 0, "Hangar storage").
			AddRow(2, "class_1", 1, "Monthly wash"))

	mock.ExpectQuery("SELECT .* FROM `tier_addons`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tier_id", "name", "price_delta_monthly", "feature"}).
			AddRow(1, "class_1", "Detail Plus", 125.0, "Interior deep clean"))

	mock.ExpectQuery("SELECT .* FROM `locations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "is_active"}).
			AddRow(1, "KAPA", "Centennial", true))

	mock.ExpectQuery("SELECT .* FROM `band_service_maps`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "band_id", "service"}).
			AddRow(1, "c1_low", "Pre-flight detail"))

	catalog, err := repo.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}

	tier, err := catalog.TierByID("class_1")
	if err != nil {
		t.Fatalf("TierByID(class_1): %v", err)
	}
	if tier.BaseMonthly != 550.0 {
		t.Errorf("expected base monthly 550, got %v", tier.BaseMonthly)
	}
	if len(tier.Features) != 2 {
		t.Errorf("expected 2 features, got %d", len(tier.Features))
	}
	if len(tier.Addons) != 1 || tier.Addons[0].Name != "Detail Plus" {
		t.Errorf("unexpected addons: %+v", tier.Addons)
	}

	bands, err := catalog.BandsForTier("class_1")
	if err != nil {
		t.Fatalf("BandsForTier(class_1): %v", err)
	}
	if len(bands) != 3 {
		t.Fatalf("expected 3 bands, got %d", len(bands))
	}
	if bands[2].MaxHours != nil {
		t.Errorf("expected top band to be unbounded")
	}

	if len(catalog.Locations) != 1 || catalog.Locations[0].Code != "KAPA" {
		t.Errorf("unexpected locations: %+v", catalog.Locations)
	}
	if services := catalog.ServiceMap["c1_low"]; len(services) != 1 {
		t.Errorf("expected one mapped service for c1_low, got %v", services)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestLoadCatalogEmptyGrid(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPricingRepository(db)

	mock.ExpectQuery("SELECT .* FROM `pricing_tiers`.*JOIN pricing_hour_bands").
		WillReturnRows(sqlmock.NewRows(gridColumns()))

	_, err := repo.LoadCatalog()
	if !errors.Is(err, pricing.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}
