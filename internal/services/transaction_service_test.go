package services

import (
	"testing"
	"time"

	"wheresmymoney/internal/models"
	"wheresmymoney/internal/pagination"
	"wheresmymoney/internal/testutil"
)

// fixedNow is 22:30 on 2026-10-21 in UTC-5, which is already the 22nd in UTC.
func fixedNow() time.Time {
	return time.Date(2026, 10, 21, 22, 30, 0, 0, time.FixedZone("EST", -5*3600))
}

func TestCreateTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, fixedNow)
		testutil.CreateTestCategoryNamed(t, db, "Food", models.PeriodWeekly, "100")

		date := time.Date(2026, 10, 3, 18, 45, 0, 0, time.UTC)
		tx, err := svc.CreateTransaction(&date, dec("12.40"), "lunch", "sandwich", "Food")
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected generated ID")
		}
		if !tx.Date.Equal(testutil.Date(2026, 10, 3)) {
			t.Errorf("expected date 2026-10-03, got %s", tx.Date)
		}
		if tx.IsIncome() {
			t.Error("positive amount should be an expense")
		}
	})

	t.Run("defaults_to_today_in_clock_zone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, fixedNow)
		testutil.CreateTestCategoryNamed(t, db, "Salary", models.PeriodMonthly, "-4000")

		tx, err := svc.CreateTransaction(nil, dec("-100"), "", "", "Salary")
		testutil.AssertNoError(t, err)

		if !tx.Date.Equal(testutil.Date(2026, 10, 21)) {
			t.Errorf("expected date 2026-10-21, got %s", tx.Date)
		}
		if !tx.IsIncome() {
			t.Error("negative amount should be income")
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, fixedNow)

		_, err := svc.CreateTransaction(nil, dec("1"), "", "", "Nope")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("invalid_input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, fixedNow)
		testutil.CreateTestCategoryNamed(t, db, "Food", models.PeriodWeekly, "100")

		long := string(make([]byte, 201))
		_, err := svc.CreateTransaction(nil, dec("1"), long, "", "Food")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateTransaction(nil, dec("1"), "", long, "Food")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateTransaction(nil, dec("0.001"), "", "", "Food")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db, fixedNow)

	testutil.CreateTestCategoryNamed(t, db, "Food", models.PeriodWeekly, "100")
	testutil.CreateTestCategoryNamed(t, db, "Salary", models.PeriodMonthly, "-4000")
	testutil.CreateTestTransaction(t, db, "Food", "10", testutil.Date(2026, 9, 30))
	testutil.CreateTestTransaction(t, db, "Food", "20", testutil.Date(2026, 10, 5))
	testutil.CreateTestTransaction(t, db, "Salary", "-4000", testutil.Date(2026, 10, 1))
	last := testutil.CreateTestTransaction(t, db, "Food", "30", testutil.Date(2026, 10, 20))

	t.Run("all_newest_first", func(t *testing.T) {
		result, err := svc.GetTransactions(pagination.PageRequest{}, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 4 {
			t.Fatalf("expected 4, got %d", result.TotalItems)
		}
		if result.Data[0].ID != last.ID {
			t.Error("expected newest transaction first")
		}
	})

	t.Run("date_range", func(t *testing.T) {
		from, to := testutil.Date(2026, 10, 1), testutil.Date(2026, 10, 5)
		result, err := svc.GetTransactions(pagination.PageRequest{}, TransactionFilter{FromDate: &from, ToDate: &to})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 transactions in range (bounds inclusive), got %d", result.TotalItems)
		}
	})

	t.Run("category", func(t *testing.T) {
		result, err := svc.GetTransactions(pagination.PageRequest{}, TransactionFilter{CategoryName: strPtr("Salary")})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 salary transaction, got %d", result.TotalItems)
		}
	})

	t.Run("income_and_expense", func(t *testing.T) {
		income, expense := true, false
		result, err := svc.GetTransactions(pagination.PageRequest{}, TransactionFilter{IncomeOnly: &income})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 income transaction, got %d", result.TotalItems)
		}
		result, err = svc.GetTransactions(pagination.PageRequest{}, TransactionFilter{IncomeOnly: &expense})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 3 {
			t.Errorf("expected 3 expense transactions, got %d", result.TotalItems)
		}
	})

	t.Run("export_ignores_paging", func(t *testing.T) {
		all, err := svc.ExportTransactions(TransactionFilter{CategoryName: strPtr("Food")})
		testutil.AssertNoError(t, err)
		if len(all) != 3 {
			t.Errorf("expected 3 food transactions, got %d", len(all))
		}
	})
}

func TestGetLatestTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db, fixedNow)

	testutil.CreateTestCategoryNamed(t, db, "Food", models.PeriodWeekly, "100")
	var ids []string
	for day := 1; day <= 7; day++ {
		ids = append(ids, testutil.CreateTestTransaction(t, db, "Food", "1", testutil.Date(2026, 10, day)).ID)
	}
	// Same date as the last one; created later so its id sorts higher.
	sameDay := testutil.CreateTestTransaction(t, db, "Food", "2", testutil.Date(2026, 10, 7))

	latest, err := svc.GetLatestTransactions(0)
	testutil.AssertNoError(t, err)
	if len(latest) != 5 {
		t.Fatalf("expected default of 5, got %d", len(latest))
	}
	if latest[0].ID != sameDay.ID || latest[1].ID != ids[6] {
		t.Error("expected date desc then id desc ordering")
	}

	latest, err = svc.GetLatestTransactions(2)
	testutil.AssertNoError(t, err)
	if len(latest) != 2 {
		t.Errorf("expected 2, got %d", len(latest))
	}
}

func TestUpdateTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db, fixedNow)

	testutil.CreateTestCategoryNamed(t, db, "Food", models.PeriodWeekly, "100")
	testutil.CreateTestCategoryNamed(t, db, "Fun", models.PeriodMonthly, "50")
	tx := testutil.CreateTestTransaction(t, db, "Food", "10", testutil.Date(2026, 10, 1))

	t.Run("partial", func(t *testing.T) {
		amount := dec("11.25")
		notes := "corrected"
		updated, err := svc.UpdateTransaction(tx.ID, TransactionUpdate{Amount: &amount, Notes: &notes, CategoryName: strPtr("Fun")})
		testutil.AssertNoError(t, err)

		if !updated.Amount.Equal(amount) || updated.Notes != "corrected" || updated.CategoryName != "Fun" {
			t.Errorf("update not applied: %+v", updated)
		}
		if updated.Tags != tx.Tags {
			t.Errorf("tags should be unchanged, got %q", updated.Tags)
		}
		if !updated.Date.Equal(tx.Date) {
			t.Errorf("date should be unchanged, got %s", updated.Date)
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		_, err := svc.UpdateTransaction(tx.ID, TransactionUpdate{CategoryName: strPtr("Nope")})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := svc.UpdateTransaction("0192b4c8-6f4e-7c2a-9d1b-3a5e8f7c6d21", TransactionUpdate{})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db, fixedNow)

	testutil.CreateTestCategoryNamed(t, db, "Food", models.PeriodWeekly, "100")
	tx := testutil.CreateTestTransaction(t, db, "Food", "10", testutil.Date(2026, 10, 1))

	testutil.AssertNoError(t, svc.DeleteTransaction(tx.ID))

	_, err := svc.GetTransactionByID(tx.ID)
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

	testutil.AssertAppError(t, svc.DeleteTransaction(tx.ID), "TRANSACTION_NOT_FOUND")
}
