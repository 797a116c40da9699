package services

import (
	"time"

	"wheresmymoney/internal/budget"
)

// reportService computes budget reports on demand.
type reportService struct {
	aggregator *budget.Aggregator
}

// NewReportService creates a ReportServicer reading from store. now decides
// the current date; its location is the reporting time zone.
func NewReportService(store budget.Storage, now func() time.Time) ReportServicer {
	return &reportService{aggregator: budget.NewAggregator(store, budget.WithClock(now))}
}

// GetReport parses period (W, M or Y, any case) and computes the report of
// the current period.
func (s *reportService) GetReport(period string) (*budget.Report, error) {
	p, err := budget.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	return s.aggregator.Report(p)
}
