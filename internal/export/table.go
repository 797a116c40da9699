package export

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"wheresmymoney/internal/budget"
)

// ReportTable writes report as an aligned plain-text table for terminals.
func ReportTable(w io.Writer, report *budget.Report) error {
	fmt.Fprintf(w, "%s budget %s to %s\n\n", report.TimeName,
		report.StartDate.Format(time.DateOnly), report.EndDate.Format(time.DateOnly))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Category\tBudget\tSpent\tRemaining\t")
	for _, line := range report.CategoryTransactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", line.Name,
			amount(line.Budget), amount(line.TotalSpent), amount(line.Budget.Sub(line.TotalSpent)))
	}
	fmt.Fprintln(tw, "\t\t\t\t")
	fmt.Fprintln(tw, "\tAnticipated\tActual\tNet\t")
	fmt.Fprintf(tw, "Income\t%s\t%s\t%s\t\n",
		amount(report.AnticipatedIncome), amount(report.ActualIncome), amount(report.NetIncome))
	fmt.Fprintf(tw, "Expenses\t%s\t%s\t%s\t\n",
		amount(report.AnticipatedExpenses), amount(report.ActualExpenses), amount(report.NetExpenses))
	fmt.Fprintf(tw, "Net worth\t%s\t%s\t\t\n",
		amount(report.AnticipatedNetWorth), amount(report.ActualNetWorth))
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, warning := range report.Warnings {
		if _, err := fmt.Fprintf(w, "warning: %s\n", warning); err != nil {
			return err
		}
	}
	return nil
}
