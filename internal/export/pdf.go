package export

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"wheresmymoney/internal/budget"
)

// ReportPDF writes report as a one-section A4 statement.
func ReportPDF(w io.Writer, report *budget.Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("%s budget report", report.TimeName), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, fmt.Sprintf("%s budget", report.TimeName))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s to %s",
		report.StartDate.Format(time.DateOnly), report.EndDate.Format(time.DateOnly)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(70, 7, "Category", "B", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Budget", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Spent", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Remaining", "B", 0, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range report.CategoryTransactions {
		pdf.CellFormat(70, 7, tr(line.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, amount(line.Budget), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, amount(line.TotalSpent), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, amount(line.Budget.Sub(line.TotalSpent)), "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(70, 7, "", "B", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Anticipated", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Actual", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Net", "B", 0, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	totals := []struct {
		label                    string
		anticipated, actual, net decimal.Decimal
		hasNet                   bool
	}{
		{"Income", report.AnticipatedIncome, report.ActualIncome, report.NetIncome, true},
		{"Expenses", report.AnticipatedExpenses, report.ActualExpenses, report.NetExpenses, true},
		{"Net worth", report.AnticipatedNetWorth, report.ActualNetWorth, decimal.Zero, false},
	}
	for _, row := range totals {
		net := ""
		if row.hasNet {
			net = amount(row.net)
		}
		pdf.CellFormat(70, 7, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, amount(row.anticipated), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, amount(row.actual), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, net, "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}

	if len(report.Warnings) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, "Warnings")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 10)
		for _, warning := range report.Warnings {
			pdf.MultiCell(0, 6, tr(warning), "", "L", false)
		}
	}

	return pdf.Output(w)
}

func amount(d decimal.Decimal) string {
	return d.StringFixedBank(2)
}
