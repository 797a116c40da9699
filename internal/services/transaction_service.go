package services

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "wheresmymoney/internal/errors"
	"wheresmymoney/internal/models"
	"wheresmymoney/internal/pagination"
)

const (
	maxTextLength      = 200
	defaultLatestLimit = 5
	maxLatestLimit     = 100
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTransactionService creates a new TransactionServicer. now supplies the
// default date of transactions created without one.
func NewTransactionService(db *gorm.DB, now func() time.Time) TransactionServicer {
	if now == nil {
		now = time.Now
	}
	return &transactionService{db: db, now: now}
}

// CreateTransaction records a transaction in an existing category. A nil
// date means today.
func (s *transactionService) CreateTransaction(date *time.Time, amount decimal.Decimal, tags, notes, categoryName string) (*models.Transaction, error) {
	if err := checkMoney(amount); err != nil {
		return nil, err
	}
	if err := checkText(tags, notes); err != nil {
		return nil, err
	}
	if err := s.requireCategory(categoryName); err != nil {
		return nil, err
	}

	day := models.DateOf(s.now())
	if date != nil {
		day = models.DateOf(*date)
	}

	tx := &models.Transaction{
		Date:         day,
		Amount:       amount,
		Tags:         tags,
		Notes:        notes,
		CategoryName: categoryName,
	}
	if err := s.db.Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return tx, nil
}

// GetTransactions retrieves a paginated, filtered list of transactions,
// newest first.
func (s *transactionService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	result, err := pagination.Fetch[models.Transaction](s.filtered(filter), page, "date DESC, id DESC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// ExportTransactions returns every transaction matching filter, newest first.
func (s *transactionService) ExportTransactions(filter TransactionFilter) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.filtered(filter).Order("date DESC").Order("id DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetLatestTransactions returns the limit most recent transactions. A
// non-positive limit means 5.
func (s *transactionService) GetLatestTransactions(limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = defaultLatestLimit
	}
	if limit > maxLatestLimit {
		limit = maxLatestLimit
	}

	transactions := []models.Transaction{}
	if err := s.db.Order("date DESC").Order("id DESC").Limit(limit).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetTransactionByID retrieves a transaction by ID.
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Where("id = ?", id).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tx, nil
}

// UpdateTransaction applies the non-nil fields of update.
func (s *transactionService) UpdateTransaction(id string, update TransactionUpdate) (*models.Transaction, error) {
	tx, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Date != nil {
		updates["date"] = models.DateOf(*update.Date)
	}
	if update.Amount != nil {
		if err := checkMoney(*update.Amount); err != nil {
			return nil, err
		}
		updates["amount"] = *update.Amount
	}
	if update.Tags != nil {
		if err := checkText(*update.Tags, ""); err != nil {
			return nil, err
		}
		updates["tags"] = *update.Tags
	}
	if update.Notes != nil {
		if err := checkText("", *update.Notes); err != nil {
			return nil, err
		}
		updates["notes"] = *update.Notes
	}
	if update.CategoryName != nil {
		if err := s.requireCategory(*update.CategoryName); err != nil {
			return nil, err
		}
		updates["category_name"] = *update.CategoryName
	}

	if len(updates) > 0 {
		if err := s.db.Model(tx).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetTransactionByID(id)
}

// DeleteTransaction deletes a transaction.
func (s *transactionService) DeleteTransaction(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

func (s *transactionService) filtered(filter TransactionFilter) *gorm.DB {
	query := s.db.Model(&models.Transaction{})
	if filter.FromDate != nil {
		query = query.Where("date >= ?", models.DateOf(*filter.FromDate))
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", models.DateOf(*filter.ToDate))
	}
	if filter.CategoryName != nil {
		query = query.Where("category_name = ?", *filter.CategoryName)
	}
	if filter.IncomeOnly != nil {
		if *filter.IncomeOnly {
			query = query.Where("amount < 0")
		} else {
			query = query.Where("amount >= 0")
		}
	}
	return query
}

func (s *transactionService) requireCategory(name string) error {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

func checkText(tags, notes string) error {
	if utf8.RuneCountInString(tags) > maxTextLength {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "tags must be at most 200 characters")
	}
	if utf8.RuneCountInString(notes) > maxTextLength {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "notes must be at most 200 characters")
	}
	return nil
}
