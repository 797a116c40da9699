package services

import (
	"time"

	"github.com/shopspring/decimal"

	"wheresmymoney/internal/budget"
	"wheresmymoney/internal/models"
	"wheresmymoney/internal/pagination"
)

// CategoryUpdate holds the optional fields of a category update. The name is
// the key and is never changed.
type CategoryUpdate struct {
	Type        *models.PeriodType
	Budget      *decimal.Decimal
	ParentName  *string
	ClearParent bool
}

// CategoryDetail is a category with its direct children and its transactions,
// newest first.
type CategoryDetail struct {
	Category     models.Category      `json:"category"`
	Children     []models.Category    `json:"children"`
	Transactions []models.Transaction `json:"transactions"`
}

// CategoryDeletion lists what a cascading category delete removed.
type CategoryDeletion struct {
	Categories   []string `json:"deleted_categories"`
	Transactions int64    `json:"deleted_transactions"`
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string, periodType models.PeriodType, amount decimal.Decimal, parentName *string) (*models.Category, error)
	GetCategories(page pagination.PageRequest, periodType *models.PeriodType) (*pagination.PageResponse[models.Category], error)
	GetCategory(name string) (*models.Category, error)
	GetCategoryDetail(name string) (*CategoryDetail, error)
	UpdateCategory(name string, update CategoryUpdate) (*models.Category, error)
	DeleteCategory(name string) (*CategoryDeletion, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate     *time.Time
	ToDate       *time.Time
	CategoryName *string
	// IncomeOnly keeps negative amounts when true and non-negative amounts
	// when false.
	IncomeOnly *bool
}

// TransactionUpdate holds the optional fields of a transaction update.
type TransactionUpdate struct {
	Date         *time.Time
	Amount       *decimal.Decimal
	Tags         *string
	Notes        *string
	CategoryName *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(date *time.Time, amount decimal.Decimal, tags, notes, categoryName string) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	ExportTransactions(filter TransactionFilter) ([]models.Transaction, error)
	GetLatestTransactions(limit int) ([]models.Transaction, error)
	GetTransactionByID(id string) (*models.Transaction, error)
	UpdateTransaction(id string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(id string) error
}

// LetterUpdate holds the optional fields of a letter update.
type LetterUpdate struct {
	Date *time.Time
	Body *string
	Tags *string
}

// LetterServicer defines the contract for journal letters.
type LetterServicer interface {
	CreateLetter(date *time.Time, body, tags string) (*models.Letter, error)
	GetLetters(page pagination.PageRequest) (*pagination.PageResponse[models.Letter], error)
	GetLetterByID(id string) (*models.Letter, error)
	UpdateLetter(id string, update LetterUpdate) (*models.Letter, error)
	DeleteLetter(id string) error
}

// ReportServicer defines the contract for budget reports.
type ReportServicer interface {
	GetReport(period string) (*budget.Report, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
