package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm over sqlmock: %v", err)
	}
	return gormDB, mock
}

func expectUserLookup(mock sqlmock.Sqlmock, initialBank float64) {
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "initial_bank"}).
			AddRow("user-1", "kevin", initialBank))
}

func expectPickSums(mock sqlmock.Sqlmock, totalStake, totalProfitLoss float64) {
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(stake\), 0\)`).
		WillReturnRows(sqlmock.NewRows([]string{"total_stake", "total_profit_loss"}).
			AddRow(totalStake, totalProfitLoss))
}

func TestAggregateZeroPicks(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	expectUserLookup(mock, 100)
	expectPickSums(mock, 0, 0)

	stats, err := svc.Aggregate("user-1")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if stats.TotalStake != 0 || stats.TotalProfitLoss != 0 || stats.ROI != 0 {
		t.Errorf("zero-pick aggregate = %+v, want all-zero sums", stats)
	}
	if stats.InitialBank != 100 || stats.CurrentBank != 100 {
		t.Errorf("banks = (%v, %v), want both 100", stats.InitialBank, stats.CurrentBank)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAggregateRollup(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	expectUserLookup(mock, 200)
	expectPickSums(mock, 300, 50)

	stats, err := svc.Aggregate("user-1")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if stats.TotalStake != 300 || stats.TotalProfitLoss != 50 {
		t.Errorf("sums = (%v, %v), want (300, 50)", stats.TotalStake, stats.TotalProfitLoss)
	}
	// 50 * 100 / 300 = 16.666..., reported to two decimals.
	if stats.ROI != 16.67 {
		t.Errorf("ROI = %v, want 16.67", stats.ROI)
	}
	if stats.CurrentBank != 250 {
		t.Errorf("CurrentBank = %v, want 250", stats.CurrentBank)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAggregateNegativeProfit(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	expectUserLookup(mock, 100)
	expectPickSums(mock, 200, -80)

	stats, err := svc.Aggregate("user-1")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if stats.ROI != -40 {
		t.Errorf("ROI = %v, want -40", stats.ROI)
	}
	if stats.CurrentBank != 20 {
		t.Errorf("CurrentBank = %v, want 20", stats.CurrentBank)
	}
}

// An unknown user id still aggregates, with the default bankroll.
func TestAggregateUnknownUserDefaultsBank(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewStatsService(db)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "initial_bank"}))
	expectPickSums(mock, 0, 0)

	stats, err := svc.Aggregate("ghost")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if stats.InitialBank != 100 {
		t.Errorf("InitialBank = %v, want default 100", stats.InitialBank)
	}
}
