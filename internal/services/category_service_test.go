package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"wheresmymoney/internal/models"
	"wheresmymoney/internal/pagination"
	"wheresmymoney/internal/testutil"
)

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cat, err := svc.CreateCategory("Groceries", models.PeriodWeekly, dec("120.50"), nil)
		testutil.AssertNoError(t, err)

		if cat.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", cat.Name)
		}
		if cat.Type != models.PeriodWeekly {
			t.Errorf("expected type W, got %s", cat.Type)
		}

		stored, err := svc.GetCategory("Groceries")
		testutil.AssertNoError(t, err)
		if !stored.Budget.Equal(dec("120.50")) {
			t.Errorf("expected budget 120.50, got %s", stored.Budget)
		}
	})

	t.Run("income_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cat, err := svc.CreateCategory("Salary", models.PeriodMonthly, dec("-4000"), nil)
		testutil.AssertNoError(t, err)
		if !cat.Budget.IsNegative() {
			t.Errorf("expected negative budget, got %s", cat.Budget)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Food", models.PeriodWeekly, dec("50"), nil)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory("Food", models.PeriodMonthly, dec("10"), nil)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("with_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Food", models.PeriodWeekly, dec("100"), nil)
		testutil.AssertNoError(t, err)

		child, err := svc.CreateCategory("Snacks", models.PeriodWeekly, dec("10"), strPtr("Food"))
		testutil.AssertNoError(t, err)

		if child.ParentName == nil || *child.ParentName != "Food" {
			t.Errorf("expected parent Food, got %v", child.ParentName)
		}
	})

	t.Run("invalid_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Orphan", models.PeriodWeekly, dec("1"), strPtr("Missing"))
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("self_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Loop", models.PeriodWeekly, dec("1"), strPtr("Loop"))
		testutil.AssertAppError(t, err, "SELF_PARENT_CATEGORY")
	})

	t.Run("invalid_input", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cases := []struct {
			name       string
			periodType models.PeriodType
			budget     string
		}{
			{"", models.PeriodWeekly, "1"},
			{"   ", models.PeriodWeekly, "1"},
			{"Quarterly", models.PeriodType("Q"), "1"},
			{"Fractions", models.PeriodWeekly, "1.005"},
			{"Huge", models.PeriodWeekly, "100000000"},
			{"Food/Groceries", models.PeriodWeekly, "1"},
		}
		for _, c := range cases {
			_, err := svc.CreateCategory(c.name, c.periodType, dec(c.budget), nil)
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}
	})
}

func TestGetCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)

	testutil.CreateTestCategoryNamed(t, db, "Rent", models.PeriodMonthly, "1200")
	testutil.CreateTestCategoryNamed(t, db, "Coffee", models.PeriodWeekly, "20")
	testutil.CreateTestCategoryNamed(t, db, "Bills", models.PeriodMonthly, "300")

	t.Run("ordered_by_name", func(t *testing.T) {
		result, err := svc.GetCategories(pagination.PageRequest{}, nil)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Fatalf("expected 3 categories, got %d", result.TotalItems)
		}
		if result.Data[0].Name != "Bills" || result.Data[2].Name != "Rent" {
			t.Errorf("expected alphabetical order, got %s..%s", result.Data[0].Name, result.Data[2].Name)
		}
	})

	t.Run("filtered_by_type", func(t *testing.T) {
		monthly := models.PeriodMonthly
		result, err := svc.GetCategories(pagination.PageRequest{Page: 1, PageSize: 1}, &monthly)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 || result.TotalPages != 2 {
			t.Errorf("expected 2 monthly categories over 2 pages, got %d over %d", result.TotalItems, result.TotalPages)
		}
		if len(result.Data) != 1 || result.Data[0].Name != "Bills" {
			t.Errorf("unexpected first page: %+v", result.Data)
		}
	})
}

func TestGetCategoryDetail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)

	food := testutil.CreateTestCategoryNamed(t, db, "Food", models.PeriodWeekly, "100")
	testutil.CreateTestSubcategory(t, db, food)
	older := testutil.CreateTestTransaction(t, db, "Food", "10", testutil.Date(2026, 10, 1))
	newer := testutil.CreateTestTransaction(t, db, "Food", "12", testutil.Date(2026, 10, 20))

	detail, err := svc.GetCategoryDetail("Food")
	testutil.AssertNoError(t, err)

	if len(detail.Children) != 1 {
		t.Errorf("expected 1 child, got %d", len(detail.Children))
	}
	if len(detail.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(detail.Transactions))
	}
	if detail.Transactions[0].ID != newer.ID || detail.Transactions[1].ID != older.ID {
		t.Error("expected transactions newest first")
	}

	_, err = svc.GetCategoryDetail("Nope")
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestUpdateCategory(t *testing.T) {
	t.Run("type_and_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		testutil.CreateTestCategoryNamed(t, db, "Gym", models.PeriodMonthly, "50")

		yearly := models.PeriodYearly
		budget := dec("600")
		cat, err := svc.UpdateCategory("Gym", CategoryUpdate{Type: &yearly, Budget: &budget})
		testutil.AssertNoError(t, err)

		if cat.Type != models.PeriodYearly || !cat.Budget.Equal(budget) {
			t.Errorf("update not applied: %+v", cat)
		}
		if cat.Name != "Gym" {
			t.Errorf("name must not change, got %s", cat.Name)
		}
	})

	t.Run("reparent_and_clear", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		testutil.CreateTestCategoryNamed(t, db, "Home", models.PeriodMonthly, "0")
		testutil.CreateTestCategoryNamed(t, db, "Rent", models.PeriodMonthly, "1200")

		cat, err := svc.UpdateCategory("Rent", CategoryUpdate{ParentName: strPtr("Home")})
		testutil.AssertNoError(t, err)
		if cat.ParentName == nil || *cat.ParentName != "Home" {
			t.Fatalf("expected parent Home, got %v", cat.ParentName)
		}

		cat, err = svc.UpdateCategory("Rent", CategoryUpdate{ClearParent: true})
		testutil.AssertNoError(t, err)
		if cat.ParentName != nil {
			t.Errorf("expected no parent, got %s", *cat.ParentName)
		}
	})

	t.Run("self_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		testutil.CreateTestCategoryNamed(t, db, "Home", models.PeriodMonthly, "0")

		_, err := svc.UpdateCategory("Home", CategoryUpdate{ParentName: strPtr("Home")})
		testutil.AssertAppError(t, err, "SELF_PARENT_CATEGORY")
	})

	t.Run("cycle", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("A", models.PeriodMonthly, dec("0"), nil)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory("B", models.PeriodMonthly, dec("0"), strPtr("A"))
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory("C", models.PeriodMonthly, dec("0"), strPtr("B"))
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateCategory("A", CategoryUpdate{ParentName: strPtr("C")})
		testutil.AssertAppError(t, err, "CATEGORY_CYCLE")

		a, err := svc.GetCategory("A")
		testutil.AssertNoError(t, err)
		if a.ParentName != nil {
			t.Errorf("rejected update must not change the parent, got %s", *a.ParentName)
		}
	})

	t.Run("unknown_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		testutil.CreateTestCategoryNamed(t, db, "Home", models.PeriodMonthly, "0")

		_, err := svc.UpdateCategory("Home", CategoryUpdate{ParentName: strPtr("Nowhere")})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.UpdateCategory("Nope", CategoryUpdate{})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		testutil.CreateTestCategoryNamed(t, db, "Home", models.PeriodMonthly, "0")

		bad := models.PeriodType("D")
		_, err := svc.UpdateCategory("Home", CategoryUpdate{Type: &bad})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("cascades_to_subtree_and_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		home := testutil.CreateTestCategoryNamed(t, db, "Home", models.PeriodMonthly, "0")
		utilities := testutil.CreateTestSubcategory(t, db, home)
		power := testutil.CreateTestSubcategory(t, db, utilities)
		keep := testutil.CreateTestCategoryNamed(t, db, "Food", models.PeriodWeekly, "100")

		testutil.CreateTestTransaction(t, db, home.Name, "5", testutil.Date(2026, 10, 1))
		testutil.CreateTestTransaction(t, db, power.Name, "80", testutil.Date(2026, 10, 2))
		kept := testutil.CreateTestTransaction(t, db, keep.Name, "15", testutil.Date(2026, 10, 3))

		deletion, err := svc.DeleteCategory("Home")
		testutil.AssertNoError(t, err)

		if len(deletion.Categories) != 3 || deletion.Categories[0] != "Home" {
			t.Errorf("expected Home and its 2 descendants, got %v", deletion.Categories)
		}
		if deletion.Transactions != 2 {
			t.Errorf("expected 2 deleted transactions, got %d", deletion.Transactions)
		}

		var categories, transactions int64
		db.Model(&models.Category{}).Count(&categories)
		db.Model(&models.Transaction{}).Count(&transactions)
		if categories != 1 || transactions != 1 {
			t.Errorf("expected 1 category and 1 transaction left, got %d and %d", categories, transactions)
		}

		var remaining models.Transaction
		testutil.AssertNoError(t, db.First(&remaining).Error)
		if remaining.ID != kept.ID {
			t.Errorf("expected %s to survive, got %s", kept.ID, remaining.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.DeleteCategory("Nope")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
