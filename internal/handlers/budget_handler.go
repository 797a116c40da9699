package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "wheresmymoney/internal/errors"
	"wheresmymoney/internal/export"
	"wheresmymoney/internal/services"
)

// BudgetHandler serves budget-vs-actual reports.
type BudgetHandler struct {
	reportService services.ReportServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(reportService services.ReportServicer) *BudgetHandler {
	return &BudgetHandler{reportService: reportService}
}

// BudgetPathParams holds the path parameters of the budget routes.
type BudgetPathParams struct {
	Period string `uri:"period" binding:"required,period_token"`
}

// bindPeriod reads the period token, responding with INVALID_PERIOD when it
// is not one of W, M or Y.
func bindPeriod(c *gin.Context) (string, bool) {
	var params BudgetPathParams
	if err := c.ShouldBindUri(&params); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidPeriod,
			fmt.Sprintf("invalid period %q: must be W, M or Y", c.Param("period"))))
		return "", false
	}
	return params.Period, true
}

// GetBudget returns the report of the current week, month or year.
// @Summary     Get budget report
// @Description Budget vs actual for the current period. Income figures are positive; category_transactions keeps category order.
// @Tags        budget
// @Produce     json
// @Param       period path string true "Period: W, M or Y"
// @Success     200 {object} budget.Report "Budget report"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/{period} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	period, ok := bindPeriod(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportBudget downloads the report as a spreadsheet or PDF.
// @Summary     Export budget report
// @Description Download the current period's report as XLSX (default) or PDF
// @Tags        budget
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce     application/pdf
// @Param       period path  string true  "Period: W, M or Y"
// @Param       format query string false "xlsx or pdf"
// @Success     200 {file} file "Report document"
// @Failure     400 {object} ErrorResponse "Invalid period or format"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/{period}/export [get]
func (h *BudgetHandler) ExportBudget(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))
	if format != "xlsx" && format != "pdf" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "format must be 'xlsx' or 'pdf'"))
		return
	}

	period, ok := bindPeriod(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(period)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	contentType := export.ContentTypeXLSX
	if format == "pdf" {
		contentType = export.ContentTypePDF
		err = export.ReportPDF(&buf, report)
	} else {
		err = export.ReportXLSX(&buf, report)
	}
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	filename := fmt.Sprintf("budget_%s_%s.%s", report.Period, report.StartDate.Format(time.DateOnly), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
