package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"wheresmymoney/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date returns the UTC calendar date y-m-d.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, periodType models.PeriodType, budget string) *models.Category {
	t.Helper()
	return CreateTestCategoryNamed(t, db, fmt.Sprintf("Test Category %d", nextID()), periodType, budget)
}

// CreateTestCategoryNamed creates a category with the given name.
func CreateTestCategoryNamed(t *testing.T, db *gorm.DB, name string, periodType models.PeriodType, budget string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:   name,
		Type:   periodType,
		Budget: decimal.RequireFromString(budget),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestSubcategory creates a category under parent.
func CreateTestSubcategory(t *testing.T, db *gorm.DB, parent *models.Category) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:       fmt.Sprintf("Test Subcategory %d", nextID()),
		Type:       parent.Type,
		Budget:     decimal.Zero,
		ParentName: &parent.Name,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test subcategory: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction in the named category.
func CreateTestTransaction(t *testing.T, db *gorm.DB, categoryName, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Date:         models.DateOf(date),
		Amount:       decimal.RequireFromString(amount),
		Tags:         gofakeit.Word(),
		Notes:        gofakeit.Sentence(4),
		CategoryName: categoryName,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestLetter creates a letter dated date.
func CreateTestLetter(t *testing.T, db *gorm.DB, date time.Time) *models.Letter {
	t.Helper()

	letter := &models.Letter{
		Date: models.DateOf(date),
		Body: gofakeit.Paragraph(1, 3, 8, " "),
		Tags: gofakeit.Word(),
	}
	if err := db.Create(letter).Error; err != nil {
		t.Fatalf("failed to create test letter: %v", err)
	}
	return letter
}
