package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "wheresmymoney/internal/errors"
	"wheresmymoney/internal/export"
	"wheresmymoney/internal/pagination"
	"wheresmymoney/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
// Negative amounts are income. A missing date means today.
type CreateTransactionRequest struct {
	Date     string           `json:"date" binding:"omitempty,date_only" example:"2026-10-19"`
	Amount   *decimal.Decimal `json:"amount" binding:"required,money" swaggertype:"string" example:"42.50"`
	Tags     string           `json:"tags" binding:"max=200"`
	Notes    string           `json:"notes" binding:"max=200"`
	Category string           `json:"category" binding:"required,max=200"`
}

// UpdateTransactionRequest represents the request payload for updating a transaction.
type UpdateTransactionRequest struct {
	Date     *string          `json:"date" binding:"omitempty,date_only" example:"2026-10-19"`
	Amount   *decimal.Decimal `json:"amount" binding:"omitempty,money" swaggertype:"string" example:"40.00"`
	Tags     *string          `json:"tags" binding:"omitempty,max=200"`
	Notes    *string          `json:"notes" binding:"omitempty,max=200"`
	Category *string          `json:"category" binding:"omitempty,max=200"`
}

// ListTransactionsQuery holds the query parameters of GetTransactions.
type ListTransactionsQuery struct {
	pagination.PageRequest
	From     string `form:"from" binding:"omitempty,date_only"`
	To       string `form:"to" binding:"omitempty,date_only"`
	Category string `form:"category"`
	Kind     string `form:"kind" binding:"omitempty,oneof=income expense"`
}

// filter converts the query to a service filter.
func (q ListTransactionsQuery) filter() (services.TransactionFilter, error) {
	var filter services.TransactionFilter
	var err error
	if filter.FromDate, err = parseDate(q.From, "from"); err != nil {
		return filter, err
	}
	if filter.ToDate, err = parseDate(q.To, "to"); err != nil {
		return filter, err
	}
	if filter.FromDate != nil && filter.ToDate != nil && filter.FromDate.After(*filter.ToDate) {
		return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "from must not be after to")
	}
	if q.Category != "" {
		category := q.Category
		filter.CategoryName = &category
	}
	if q.Kind != "" {
		income := q.Kind == "income"
		filter.IncomeOnly = &income
	}
	return filter, nil
}

// CreateTransaction handles the creation of a new transaction.
// @Summary     Create a transaction
// @Description Record income (negative amount) or spending (positive amount) in an existing category
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	date, err := parseDate(req.Date, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(date, *req.Amount, req.Tags, req.Notes, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"amount": transaction.Amount.String(), "category": transaction.CategoryName})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions lists transactions, newest first.
// @Summary     Get transactions
// @Description Get a paginated, filtered list of transactions ordered by date descending
// @Tags        transactions
// @Produce     json
// @Param       from      query string false "Earliest date (YYYY-MM-DD)"
// @Param       to        query string false "Latest date (YYYY-MM-DD)"
// @Param       category  query string false "Category name"
// @Param       kind      query string false "income or expense"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var query ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	filter, err := query.filter()
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetTransactions(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLatestTransactions returns the most recent transactions.
// @Summary     Get latest transactions
// @Description Get the most recent transactions (default 5, max 100)
// @Tags        transactions
// @Produce     json
// @Param       limit query int false "Number of transactions"
// @Success     200 {object} map[string][]models.Transaction "Latest transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/latest [get]
func (h *TransactionHandler) GetLatestTransactions(c *gin.Context) {
	var query struct {
		Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	transactions, err := h.transactionService.GetLatestTransactions(query.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// ExportTransactions downloads the filtered transactions as a spreadsheet.
// @Summary     Export transactions
// @Description Download every transaction matching the filters as XLSX
// @Tags        transactions
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param       from     query string false "Earliest date (YYYY-MM-DD)"
// @Param       to       query string false "Latest date (YYYY-MM-DD)"
// @Param       category query string false "Category name"
// @Param       kind     query string false "income or expense"
// @Success     200 {file} file "Transactions workbook"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/export [get]
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	var query ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	filter, err := query.filter()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.ExportTransactions(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.TransactionsXLSX(&buf, transactions); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	filename := fmt.Sprintf("transactions_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}

// GetTransactionByID returns a single transaction.
// @Summary     Get transaction by ID
// @Description Get a single transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction changes the given fields of a transaction.
// @Summary     Update transaction
// @Description Update the date, amount, tags, notes or category of a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to change"
// @Success     200 {object} models.Transaction "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	update := services.TransactionUpdate{
		Amount:       req.Amount,
		Tags:         req.Tags,
		Notes:        req.Notes,
		CategoryName: req.Category,
	}
	if req.Date != nil {
		if update.Date, err = parseDate(*req.Date, "date"); err != nil {
			respondWithError(c, err)
			return
		}
	}

	transaction, err := h.transactionService.UpdateTransaction(id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_TRANSACTION", "transaction", id, c.ClientIP(),
		map[string]interface{}{"amount": transaction.Amount.String(), "category": transaction.CategoryName})

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction deletes a transaction.
// @Summary     Delete transaction
// @Description Delete a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_TRANSACTION", "transaction", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
