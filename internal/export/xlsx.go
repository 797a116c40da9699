// Package export renders reports and transaction lists as downloadable
// spreadsheets and PDF documents.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"wheresmymoney/internal/budget"
	"wheresmymoney/internal/models"
)

// Content types of the exported documents.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

const (
	summarySheet      = "Summary"
	transactionsSheet = "Transactions"
)

var transactionHeaders = []string{"Date", "Category", "Amount", "Tags", "Notes"}

// ReportXLSX writes report as a workbook with a summary sheet (one row per
// category line, then the totals) and a sheet listing every transaction.
func ReportXLSX(w io.Writer, report *budget.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}

	title := fmt.Sprintf("%s budget %s to %s", report.TimeName,
		report.StartDate.Format(time.DateOnly), report.EndDate.Format(time.DateOnly))
	rows := [][]interface{}{
		{title},
		{},
		{"Category", "Budget", "Spent", "Remaining", "Transactions"},
	}
	for _, line := range report.CategoryTransactions {
		rows = append(rows, []interface{}{
			line.Name,
			money(line.Budget),
			money(line.TotalSpent),
			money(line.Budget.Sub(line.TotalSpent)),
			len(line.Transactions),
		})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"", "Anticipated", "Actual", "Net"},
		[]interface{}{"Income", money(report.AnticipatedIncome), money(report.ActualIncome), money(report.NetIncome)},
		[]interface{}{"Expenses", money(report.AnticipatedExpenses), money(report.ActualExpenses), money(report.NetExpenses)},
		[]interface{}{"Net worth", money(report.AnticipatedNetWorth), money(report.ActualNetWorth)},
	)
	for _, warning := range report.Warnings {
		rows = append(rows, []interface{}{"Warning", warning})
	}
	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 24)
	_ = f.SetColWidth(summarySheet, "B", "E", 14)

	if _, err := f.NewSheet(transactionsSheet); err != nil {
		return err
	}
	var txs []models.Transaction
	for _, line := range report.CategoryTransactions {
		txs = append(txs, line.Transactions...)
	}
	budget.SortTransactions(txs)
	if err := writeTransactions(f, transactionsSheet, txs); err != nil {
		return err
	}

	return f.Write(w)
}

// TransactionsXLSX writes txs as a single-sheet workbook.
func TransactionsXLSX(w io.Writer, txs []models.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return err
	}
	if err := writeTransactions(f, transactionsSheet, txs); err != nil {
		return err
	}
	return f.Write(w)
}

func writeTransactions(f *excelize.File, sheet string, txs []models.Transaction) error {
	rows := make([][]interface{}, 0, len(txs)+1)
	header := make([]interface{}, len(transactionHeaders))
	for i, h := range transactionHeaders {
		header[i] = h
	}
	rows = append(rows, header)
	for _, tx := range txs {
		rows = append(rows, []interface{}{
			tx.Date.Format(time.DateOnly),
			tx.CategoryName,
			money(tx.Amount),
			tx.Tags,
			tx.Notes,
		})
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 20)
	_ = f.SetColWidth(sheet, "C", "C", 12)
	_ = f.SetColWidth(sheet, "D", "E", 30)
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// money converts d to a float for a numeric spreadsheet cell. Report figures
// are already at cents, so the float only ever carries two decimals.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
