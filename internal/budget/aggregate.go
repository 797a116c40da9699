package budget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	apperrors "wheresmymoney/internal/errors"
	"wheresmymoney/internal/models"
)

// CategorySummary is one category line of a report.
type CategorySummary struct {
	Name         string               `json:"-"`
	Budget       decimal.Decimal      `json:"budget"`
	Transactions []models.Transaction `json:"transactions"`
	TotalSpent   decimal.Decimal      `json:"total_spent"`
}

// Breakdown is the ordered list of category lines. It encodes to a JSON
// object keyed by category name that keeps the iteration order.
type Breakdown []CategorySummary

// Get returns the line of the named category.
func (b Breakdown) Get(name string) (CategorySummary, bool) {
	for _, line := range b {
		if line.Name == name {
			return line, true
		}
	}
	return CategorySummary{}, false
}

// MarshalJSON implements json.Marshaler.
func (b Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, line := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(line.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(line)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Report is the budget-vs-actual summary of one period. Income figures are
// reported as positive numbers even though income is stored negative.
type Report struct {
	Period               models.PeriodType `json:"period"`
	TimeName             string            `json:"time_name"`
	StartDate            time.Time         `json:"start_date"`
	EndDate              time.Time         `json:"end_date"`
	CategoryTransactions Breakdown         `json:"category_transactions"`
	AnticipatedIncome    decimal.Decimal   `json:"anticipated_income"`
	ActualIncome         decimal.Decimal   `json:"actual_income"`
	AnticipatedExpenses  decimal.Decimal   `json:"anticipated_expenses"`
	ActualExpenses       decimal.Decimal   `json:"actual_expenses"`
	NetIncome            decimal.Decimal   `json:"net_income"`
	NetExpenses          decimal.Decimal   `json:"net_expenses"`
	AnticipatedNetWorth  decimal.Decimal   `json:"anticipated_net_worth"`
	ActualNetWorth       decimal.Decimal   `json:"actual_net_worth"`
	Warnings             []string          `json:"warnings,omitempty"`
}

func inRange(d, start, end time.Time) bool {
	d = models.DateOf(d)
	return !d.Before(start) && !d.After(end)
}

// ReduceIncome sums actual income (negative transactions in range) and
// anticipated income (every negative-budget category pro-rated to the report
// period). Both results are negative or zero. Categories with an unknown
// type are skipped and returned as problems.
func ReduceIncome(p models.PeriodType, categories []models.Category, transactions []models.Transaction, start, end time.Time) (actual, anticipated decimal.Decimal, problems []error) {
	actual, anticipated = decimal.Zero, decimal.Zero

	for _, t := range transactions {
		if t.Amount.IsNegative() && inRange(t.Date, start, end) {
			actual = actual.Add(t.Amount)
		}
	}

	for _, c := range categories {
		if !c.Budget.IsNegative() {
			continue
		}
		share, err := ProRate(c.Budget, c.Type, p)
		if err != nil {
			problems = append(problems, categoryProblem(c, err))
			continue
		}
		anticipated = anticipated.Add(share)
	}

	return round2(actual), anticipated, problems
}

// ReduceExpenses groups the in-range transactions under every category
// eligible for the report period. Transactions of other categories are left
// out. Lines follow the category order of SortCategories.
func ReduceExpenses(p models.PeriodType, categories []models.Category, transactions []models.Transaction, start, end time.Time) (Breakdown, []error) {
	eligible := EligibleTypes(p)
	ordered := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if slices.Contains(eligible, c.Type) {
			ordered = append(ordered, c)
		}
	}
	SortCategories(ordered)

	var problems []error
	lines := make(Breakdown, 0, len(ordered))
	index := make(map[string]int, len(ordered))
	for _, c := range ordered {
		budget, err := ProRate(c.Budget, c.Type, p)
		if err != nil {
			problems = append(problems, categoryProblem(c, err))
			continue
		}
		index[c.Name] = len(lines)
		lines = append(lines, CategorySummary{
			Name:         c.Name,
			Budget:       budget,
			Transactions: []models.Transaction{},
			TotalSpent:   decimal.Zero,
		})
	}

	inPeriod := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if inRange(t.Date, start, end) {
			inPeriod = append(inPeriod, t)
		}
	}
	SortTransactions(inPeriod)

	for _, t := range inPeriod {
		i, ok := index[t.CategoryName]
		if !ok {
			continue
		}
		lines[i].Transactions = append(lines[i].Transactions, t)
		lines[i].TotalSpent = lines[i].TotalSpent.Add(t.Amount)
	}

	return lines, problems
}

// ExpenseTotals returns the anticipated expenses (displayed budgets of
// non-negative categories) and actual expenses (spending of every line,
// income categories included).
func ExpenseTotals(lines Breakdown) (anticipated, actual decimal.Decimal) {
	anticipated, actual = decimal.Zero, decimal.Zero
	for _, line := range lines {
		if !line.Budget.IsNegative() {
			anticipated = anticipated.Add(line.Budget)
		}
		actual = actual.Add(line.TotalSpent)
	}
	return anticipated, actual
}

// Orphans reports transactions whose category does not exist.
func Orphans(categories []models.Category, transactions []models.Transaction) []error {
	known := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		known[c.Name] = struct{}{}
	}
	var problems []error
	for _, t := range transactions {
		if _, ok := known[t.CategoryName]; !ok {
			problems = append(problems, apperrors.WithMessage(apperrors.ErrDataIntegrity,
				fmt.Sprintf("transaction %s references missing category %q", t.ID, t.CategoryName)))
		}
	}
	return problems
}

// Summarize assembles a report from the reduced figures. actualIncome and
// anticipatedIncome are the negative internal values.
func Summarize(p models.PeriodType, start, end time.Time, actualIncome, anticipatedIncome decimal.Decimal, lines Breakdown) *Report {
	anticipatedExpenses, actualExpenses := ExpenseTotals(lines)

	return &Report{
		Period:               p,
		TimeName:             TimeName(p),
		StartDate:            start,
		EndDate:              end,
		CategoryTransactions: lines,
		AnticipatedIncome:    anticipatedIncome.Neg(),
		ActualIncome:         actualIncome.Neg(),
		AnticipatedExpenses:  anticipatedExpenses,
		ActualExpenses:       actualExpenses,
		NetIncome:            anticipatedIncome.Sub(actualIncome),
		NetExpenses:          actualExpenses.Sub(anticipatedExpenses),
		AnticipatedNetWorth:  anticipatedIncome.Neg().Sub(anticipatedExpenses),
		ActualNetWorth:       actualIncome.Neg().Sub(actualExpenses),
	}
}

func categoryProblem(c models.Category, err error) error {
	return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrDataIntegrity,
		fmt.Sprintf("category %q has unknown type %q", c.Name, c.Type)), err)
}
