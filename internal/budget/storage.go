package budget

import (
	"slices"
	"sort"
	"strings"
	"time"

	"wheresmymoney/internal/models"
)

// CategoryFilter narrows ListCategories. Zero values disable a filter.
type CategoryFilter struct {
	BudgetLTZero bool
	TypeIn       []models.PeriodType
}

// TransactionFilter narrows ListTransactions. Zero values disable a filter.
// From and To are inclusive calendar dates.
type TransactionFilter struct {
	AmountLTZero bool
	From         *time.Time
	To           *time.Time
	Category     *string
}

// Storage is the read-only view of the ledger the aggregator works from.
// Categories come back ordered by budget ascending then name, transactions
// by date descending then id descending.
type Storage interface {
	ListCategories(filter CategoryFilter) ([]models.Category, error)
	ListTransactions(filter TransactionFilter) ([]models.Transaction, error)
}

// Snapshot is an in-memory Storage over fixed slices of records.
type Snapshot struct {
	Categories   []models.Category
	Transactions []models.Transaction
}

// ListCategories implements Storage.
func (s *Snapshot) ListCategories(filter CategoryFilter) ([]models.Category, error) {
	out := make([]models.Category, 0, len(s.Categories))
	for _, c := range s.Categories {
		if filter.BudgetLTZero && !c.Budget.IsNegative() {
			continue
		}
		if filter.TypeIn != nil && !slices.Contains(filter.TypeIn, c.Type) {
			continue
		}
		out = append(out, c)
	}
	SortCategories(out)
	return out, nil
}

// ListTransactions implements Storage.
func (s *Snapshot) ListTransactions(filter TransactionFilter) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		if filter.AmountLTZero && !t.Amount.IsNegative() {
			continue
		}
		d := models.DateOf(t.Date)
		if filter.From != nil && d.Before(models.DateOf(*filter.From)) {
			continue
		}
		if filter.To != nil && d.After(models.DateOf(*filter.To)) {
			continue
		}
		if filter.Category != nil && t.CategoryName != *filter.Category {
			continue
		}
		out = append(out, t)
	}
	SortTransactions(out)
	return out, nil
}

// SortCategories orders categories by raw budget ascending, so income-like
// categories come first, breaking ties by name.
func SortCategories(cats []models.Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		if c := cats[i].Budget.Cmp(cats[j].Budget); c != 0 {
			return c < 0
		}
		return cats[i].Name < cats[j].Name
	})
}

// SortTransactions orders transactions newest date first, breaking ties by
// id descending (ids are time ordered).
func SortTransactions(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		di, dj := models.DateOf(txs[i].Date), models.DateOf(txs[j].Date)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return strings.Compare(txs[i].ID, txs[j].ID) > 0
	})
}
