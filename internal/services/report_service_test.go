package services

import (
	"testing"
	"time"

	"wheresmymoney/internal/models"
	"wheresmymoney/internal/testutil"
)

func TestReportService_GetReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	now := func() time.Time { return time.Date(2026, 10, 22, 8, 0, 0, 0, time.UTC) }
	svc := NewReportService(NewLedgerStore(db), now)

	testutil.CreateTestCategoryNamed(t, db, "Rent", models.PeriodMonthly, "1200")
	testutil.CreateTestCategoryNamed(t, db, "Salary", models.PeriodMonthly, "-4000")
	testutil.CreateTestCategoryNamed(t, db, "Insurance", models.PeriodYearly, "730")
	testutil.CreateTestTransaction(t, db, "Salary", "-100", testutil.Date(2026, 10, 22))
	testutil.CreateTestTransaction(t, db, "Rent", "50", testutil.Date(2026, 10, 22))

	t.Run("monthly", func(t *testing.T) {
		report, err := svc.GetReport("m")
		testutil.AssertNoError(t, err)

		if report.TimeName != "Month" {
			t.Errorf("expected Month, got %s", report.TimeName)
		}
		if !report.StartDate.Equal(testutil.Date(2026, 10, 1)) || !report.EndDate.Equal(testutil.Date(2026, 11, 1)) {
			t.Errorf("unexpected range %s..%s", report.StartDate, report.EndDate)
		}
		if !report.ActualIncome.Equal(dec("100")) || !report.AnticipatedIncome.Equal(dec("4000")) {
			t.Errorf("unexpected income %s / %s", report.ActualIncome, report.AnticipatedIncome)
		}
		rent, ok := report.CategoryTransactions.Get("Rent")
		if !ok || !rent.TotalSpent.Equal(dec("50")) || !rent.Budget.Equal(dec("1200")) {
			t.Errorf("unexpected Rent line %+v", rent)
		}
		if _, ok := report.CategoryTransactions.Get("Insurance"); ok {
			t.Error("yearly category must not appear in a monthly report")
		}
	})

	t.Run("yearly_includes_everything", func(t *testing.T) {
		report, err := svc.GetReport("Y")
		testutil.AssertNoError(t, err)
		if len(report.CategoryTransactions) != 3 {
			t.Errorf("expected 3 lines, got %d", len(report.CategoryTransactions))
		}
		if !report.AnticipatedIncome.Equal(dec("48666.67")) {
			t.Errorf("expected 48666.67, got %s", report.AnticipatedIncome)
		}
	})

	t.Run("invalid_period", func(t *testing.T) {
		_, err := svc.GetReport("Q")
		testutil.AssertAppError(t, err, "INVALID_PERIOD")
	})
}
