package budget

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "wheresmymoney/internal/errors"
	"wheresmymoney/internal/models"
)

// Day-count factors used to pro-rate budgets between periods. They are a
// fixed approximation, not calendar lengths, so reports stay comparable
// across months and leap years.
var (
	WeeklyFactor  = decimal.NewFromInt(7)
	MonthlyFactor = decimal.NewFromInt(30)
	YearlyFactor  = decimal.NewFromInt(365)
)

// Factor returns the day-count factor of a period type.
func Factor(p models.PeriodType) (decimal.Decimal, bool) {
	switch p {
	case models.PeriodWeekly:
		return WeeklyFactor, true
	case models.PeriodMonthly:
		return MonthlyFactor, true
	case models.PeriodYearly:
		return YearlyFactor, true
	}
	return decimal.Zero, false
}

// TimeName is the human label of a report period.
func TimeName(p models.PeriodType) string {
	switch p {
	case models.PeriodWeekly:
		return "Week"
	case models.PeriodMonthly:
		return "Month"
	case models.PeriodYearly:
		return "Year"
	}
	return ""
}

// EligibleTypes lists the category types shown in a report of the given
// granularity. A shorter report never shows longer-period budgets.
func EligibleTypes(p models.PeriodType) []models.PeriodType {
	switch p {
	case models.PeriodWeekly:
		return []models.PeriodType{models.PeriodWeekly}
	case models.PeriodMonthly:
		return []models.PeriodType{models.PeriodWeekly, models.PeriodMonthly}
	case models.PeriodYearly:
		return []models.PeriodType{models.PeriodWeekly, models.PeriodMonthly, models.PeriodYearly}
	}
	return nil
}

// ParsePeriod turns a report token (W, M or Y, any case) into a period type.
func ParsePeriod(token string) (models.PeriodType, error) {
	p := models.PeriodType(strings.ToUpper(strings.TrimSpace(token)))
	if !p.Valid() {
		return "", apperrors.WithMessage(apperrors.ErrInvalidPeriod, fmt.Sprintf("invalid period %q: must be W, M or Y", token))
	}
	return p, nil
}

// ResolvePeriod returns the inclusive date range of the report period that
// contains today. Both dates are UTC midnights.
//
// The monthly end date is start plus the number of days in the month, which
// lands on the first day of the following month. Yearly ranges always span
// 365 days.
func ResolvePeriod(p models.PeriodType, today time.Time) (time.Time, time.Time, error) {
	day := models.DateOf(today)

	switch p {
	case models.PeriodWeekly:
		start := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
		return start, start.AddDate(0, 0, 6), nil
	case models.PeriodMonthly:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 0, daysInMonth(start)), nil
	case models.PeriodYearly:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 0, 364), nil
	}
	return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidPeriod, fmt.Sprintf("invalid period %q: must be W, M or Y", p))
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ProRate scales a budget from its own period to the report period and
// rounds it to cents.
func ProRate(amount decimal.Decimal, from, to models.PeriodType) (decimal.Decimal, error) {
	fromFactor, ok := Factor(from)
	if !ok {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrDataIntegrity, fmt.Sprintf("unknown period type %q", from))
	}
	toFactor, ok := Factor(to)
	if !ok {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidPeriod, fmt.Sprintf("invalid period %q: must be W, M or Y", to))
	}
	return round2(amount.Div(fromFactor).Mul(toFactor)), nil
}

// round2 is the single rounding policy of every report figure: half to even.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}
