package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"wheresmymoney/internal/models"
	"wheresmymoney/internal/pagination"
	"wheresmymoney/internal/services"
)

// CategoryHandler handles category-related requests.
type CategoryHandler struct {
	categoryService    services.CategoryServicer
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer, transactionService services.TransactionServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{
		categoryService:    categoryService,
		transactionService: transactionService,
		auditService:       auditService,
	}
}

// CreateCategoryRequest represents the request payload for creating a category.
// A negative budget marks an income category.
type CreateCategoryRequest struct {
	Name   string            `json:"name" binding:"required,max=200,excludes=/"`
	Type   models.PeriodType `json:"type" binding:"required,period_type"`
	Budget *decimal.Decimal  `json:"budget" binding:"required,money" swaggertype:"string" example:"1200.00"`
	Parent *string           `json:"parent" binding:"omitempty,max=200"`
}

// UpdateCategoryRequest represents the request payload for updating a category.
// The name cannot be changed.
type UpdateCategoryRequest struct {
	Type        *models.PeriodType `json:"type" binding:"omitempty,period_type"`
	Budget      *decimal.Decimal   `json:"budget" binding:"omitempty,money" swaggertype:"string" example:"1300.00"`
	Parent      *string            `json:"parent" binding:"omitempty,max=200"`
	ClearParent bool               `json:"clear_parent"`
}

// ListCategoriesQuery holds the query parameters of GetCategories.
type ListCategoriesQuery struct {
	pagination.PageRequest
	Type string `form:"type" binding:"omitempty,period_type"`
}

// CreateCategory handles the creation of a new category.
// @Summary     Create a category
// @Description Create a new budget category, optionally under a parent
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Parent category not found"
// @Failure     409 {object} ErrorResponse "Duplicate category"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.categoryService.CreateCategory(req.Name, req.Type, *req.Budget, req.Parent)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_CATEGORY", "category", category.Name, c.ClientIP(),
		map[string]interface{}{"type": category.Type, "budget": category.Budget.String(), "parent": category.ParentName})

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// GetCategories lists categories by name.
// @Summary     Get categories
// @Description Get a paginated list of categories ordered by name
// @Tags        categories
// @Produce     json
// @Param       type      query string false "Filter by type (W, M or Y)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Category] "Paginated categories"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	var query ListCategoriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	var periodType *models.PeriodType
	if query.Type != "" {
		p := models.PeriodType(query.Type)
		periodType = &p
	}

	result, err := h.categoryService.GetCategories(query.PageRequest, periodType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCategory returns a category with its children and transactions.
// @Summary     Get category
// @Description Get a category, its direct children and its transactions newest first
// @Tags        categories
// @Produce     json
// @Param       name path string true "Category name"
// @Success     200 {object} services.CategoryDetail "Category detail"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{name} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	detail, err := h.categoryService.GetCategoryDetail(c.Param("name"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetCategoryTransactions lists the transactions of one category.
// @Summary     Get category transactions
// @Description Get a paginated list of a category's transactions, newest first
// @Tags        categories
// @Produce     json
// @Param       name      path  string true  "Category name"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{name}/transactions [get]
func (h *CategoryHandler) GetCategoryTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.categoryService.GetCategory(c.Param("name"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetTransactions(page, services.TransactionFilter{CategoryName: &category.Name})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateCategory changes a category's type, budget or parent.
// @Summary     Update category
// @Description Update the type, budget or parent of a category. Reparenting under a descendant is rejected.
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       name    path string                true "Category name"
// @Param       request body UpdateCategoryRequest true "Fields to change"
// @Success     200 {object} models.Category "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input, self parent or cycle"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{name} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	name := c.Param("name")
	category, err := h.categoryService.UpdateCategory(name, services.CategoryUpdate{
		Type:        req.Type,
		Budget:      req.Budget,
		ParentName:  req.Parent,
		ClearParent: req.ClearParent,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	changes := map[string]interface{}{}
	if req.Type != nil {
		changes["type"] = *req.Type
	}
	if req.Budget != nil {
		changes["budget"] = req.Budget.String()
	}
	if req.Parent != nil || req.ClearParent {
		changes["parent"] = category.ParentName
	}
	h.auditService.Log("UPDATE_CATEGORY", "category", name, c.ClientIP(), changes)

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory deletes a category with its subtree and their transactions.
// @Summary     Delete category
// @Description Delete a category, all of its descendants and every transaction filed under them
// @Tags        categories
// @Produce     json
// @Param       name path string true "Category name"
// @Success     200 {object} services.CategoryDeletion "What was deleted"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{name} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	name := c.Param("name")
	deletion, err := h.categoryService.DeleteCategory(name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_CATEGORY", "category", name, c.ClientIP(),
		map[string]interface{}{"categories": deletion.Categories, "transactions": deletion.Transactions})

	c.JSON(http.StatusOK, deletion)
}
