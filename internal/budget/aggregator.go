// Package budget computes budget-vs-actual reports over a snapshot of the
// ledger. It never writes: storage is only read through the Storage contract.
package budget

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "wheresmymoney/internal/errors"
	"wheresmymoney/internal/logger"
	"wheresmymoney/internal/models"
)

// Aggregator builds reports from a Storage.
type Aggregator struct {
	store Storage
	now   func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock sets the source of "today". The clock's location decides which
// calendar day it is.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// NewAggregator creates an Aggregator reading from store.
func NewAggregator(store Storage, opts ...Option) *Aggregator {
	a := &Aggregator{store: store, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ResolvePeriod returns the date range of the current period of kind p.
func (a *Aggregator) ResolvePeriod(p models.PeriodType) (time.Time, time.Time, error) {
	return ResolvePeriod(p, a.now())
}

// ComputeIncome returns the actual and anticipated income of the period, as
// negative internal values.
func (a *Aggregator) ComputeIncome(p models.PeriodType, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	if !p.Valid() {
		return decimal.Zero, decimal.Zero, invalidPeriod(p)
	}

	categories, err := a.store.ListCategories(CategoryFilter{BudgetLTZero: true})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	transactions, err := a.store.ListTransactions(TransactionFilter{AmountLTZero: true, From: &start, To: &end})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	actual, anticipated, problems := ReduceIncome(p, categories, transactions, start, end)
	warn(problems)
	return actual, anticipated, nil
}

// CategorizeExpenses returns the per-category lines of the period.
func (a *Aggregator) CategorizeExpenses(p models.PeriodType, start, end time.Time) (Breakdown, error) {
	if !p.Valid() {
		return nil, invalidPeriod(p)
	}

	categories, err := a.store.ListCategories(CategoryFilter{TypeIn: EligibleTypes(p)})
	if err != nil {
		return nil, err
	}
	transactions, err := a.store.ListTransactions(TransactionFilter{From: &start, To: &end})
	if err != nil {
		return nil, err
	}

	lines, problems := ReduceExpenses(p, categories, transactions, start, end)
	warn(problems)
	return lines, nil
}

// Report computes the full report of the current period of kind p. It reads
// one snapshot (all categories, transactions of the period) and reduces it in
// memory; data integrity problems are skipped and listed in Warnings.
func (a *Aggregator) Report(p models.PeriodType) (*Report, error) {
	start, end, err := a.ResolvePeriod(p)
	if err != nil {
		return nil, err
	}

	categories, err := a.store.ListCategories(CategoryFilter{})
	if err != nil {
		return nil, err
	}
	transactions, err := a.store.ListTransactions(TransactionFilter{From: &start, To: &end})
	if err != nil {
		return nil, err
	}

	actualIncome, anticipatedIncome, incomeProblems := ReduceIncome(p, categories, transactions, start, end)
	lines, expenseProblems := ReduceExpenses(p, categories, transactions, start, end)

	problems := append(incomeProblems, expenseProblems...)
	problems = append(problems, Orphans(categories, transactions)...)
	warn(problems)

	report := Summarize(p, start, end, actualIncome, anticipatedIncome, lines)
	report.Warnings = dedupe(problems)
	return report, nil
}

func invalidPeriod(p models.PeriodType) error {
	_, err := ParsePeriod(string(p))
	if err == nil {
		err = apperrors.ErrInvalidPeriod
	}
	return err
}

func warn(problems []error) {
	for _, p := range problems {
		logger.Get().Warnw("skipping inconsistent record in budget report", "error", p.Error())
	}
}

func dedupe(problems []error) []string {
	if len(problems) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(problems))
	out := make([]string, 0, len(problems))
	for _, p := range problems {
		msg := p.Error()
		if _, ok := seen[msg]; ok {
			continue
		}
		seen[msg] = struct{}{}
		out = append(out, msg)
	}
	return out
}
