package services

import (
	"gorm.io/gorm"

	"wheresmymoney/internal/budget"
	apperrors "wheresmymoney/internal/errors"
	"wheresmymoney/internal/models"
)

// ledgerStore is the GORM-backed budget.Storage.
type ledgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates a budget.Storage reading from db.
func NewLedgerStore(db *gorm.DB) budget.Storage {
	return &ledgerStore{db: db}
}

// ListCategories implements budget.Storage.
func (s *ledgerStore) ListCategories(filter budget.CategoryFilter) ([]models.Category, error) {
	query := s.db.Model(&models.Category{})
	if filter.BudgetLTZero {
		query = query.Where("budget < 0")
	}
	if filter.TypeIn != nil {
		query = query.Where("type IN ?", filter.TypeIn)
	}

	var categories []models.Category
	if err := query.Order("budget ASC").Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// ListTransactions implements budget.Storage.
func (s *ledgerStore) ListTransactions(filter budget.TransactionFilter) ([]models.Transaction, error) {
	query := s.db.Model(&models.Transaction{})
	if filter.AmountLTZero {
		query = query.Where("amount < 0")
	}
	if filter.From != nil {
		query = query.Where("date >= ?", models.DateOf(*filter.From))
	}
	if filter.To != nil {
		query = query.Where("date <= ?", models.DateOf(*filter.To))
	}
	if filter.Category != nil {
		query = query.Where("category_name = ?", *filter.Category)
	}

	var transactions []models.Transaction
	if err := query.Order("date DESC").Order("id DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
