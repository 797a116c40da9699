package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"wheresmymoney/internal/budget"
	"wheresmymoney/internal/models"
	"wheresmymoney/internal/pagination"
	"wheresmymoney/internal/services"
	"wheresmymoney/internal/validator"
)

const testID = "01927d3c-8f2a-7c4e-9b1d-3a5e6f708192"

// --- mock category service ---

type mockCategoryService struct {
	createCategoryFn    func(name string, periodType models.PeriodType, amount decimal.Decimal, parentName *string) (*models.Category, error)
	getCategoriesFn     func(page pagination.PageRequest, periodType *models.PeriodType) (*pagination.PageResponse[models.Category], error)
	getCategoryFn       func(name string) (*models.Category, error)
	getCategoryDetailFn func(name string) (*services.CategoryDetail, error)
	updateCategoryFn    func(name string, update services.CategoryUpdate) (*models.Category, error)
	deleteCategoryFn    func(name string) (*services.CategoryDeletion, error)
}

func (m *mockCategoryService) CreateCategory(name string, periodType models.PeriodType, amount decimal.Decimal, parentName *string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(name, periodType, amount, parentName)
	}
	return &models.Category{Name: name, Type: periodType, Budget: amount, ParentName: parentName}, nil
}

func (m *mockCategoryService) GetCategories(page pagination.PageRequest, periodType *models.PeriodType) (*pagination.PageResponse[models.Category], error) {
	if m.getCategoriesFn != nil {
		return m.getCategoriesFn(page, periodType)
	}
	resp := pagination.NewPageResponse([]models.Category{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockCategoryService) GetCategory(name string) (*models.Category, error) {
	if m.getCategoryFn != nil {
		return m.getCategoryFn(name)
	}
	return &models.Category{Name: name}, nil
}

func (m *mockCategoryService) GetCategoryDetail(name string) (*services.CategoryDetail, error) {
	if m.getCategoryDetailFn != nil {
		return m.getCategoryDetailFn(name)
	}
	return &services.CategoryDetail{Category: models.Category{Name: name}}, nil
}

func (m *mockCategoryService) UpdateCategory(name string, update services.CategoryUpdate) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(name, update)
	}
	return &models.Category{Name: name}, nil
}

func (m *mockCategoryService) DeleteCategory(name string) (*services.CategoryDeletion, error) {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(name)
	}
	return &services.CategoryDeletion{Categories: []string{name}}, nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn     func(date *time.Time, amount decimal.Decimal, tags, notes, categoryName string) (*models.Transaction, error)
	getTransactionsFn       func(page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	exportTransactionsFn    func(filter services.TransactionFilter) ([]models.Transaction, error)
	getLatestTransactionsFn func(limit int) ([]models.Transaction, error)
	getTransactionByIDFn    func(id string) (*models.Transaction, error)
	updateTransactionFn     func(id string, update services.TransactionUpdate) (*models.Transaction, error)
	deleteTransactionFn     func(id string) error
}

func (m *mockTransactionService) CreateTransaction(date *time.Time, amount decimal.Decimal, tags, notes, categoryName string) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(date, amount, tags, notes, categoryName)
	}
	return &models.Transaction{Base: models.Base{ID: testID}, Amount: amount, CategoryName: categoryName}, nil
}

func (m *mockTransactionService) GetTransactions(page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.getTransactionsFn != nil {
		return m.getTransactionsFn(page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) ExportTransactions(filter services.TransactionFilter) ([]models.Transaction, error) {
	if m.exportTransactionsFn != nil {
		return m.exportTransactionsFn(filter)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) GetLatestTransactions(limit int) ([]models.Transaction, error) {
	if m.getLatestTransactionsFn != nil {
		return m.getLatestTransactionsFn(limit)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(id)
	}
	return &models.Transaction{Base: models.Base{ID: id}}, nil
}

func (m *mockTransactionService) UpdateTransaction(id string, update services.TransactionUpdate) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(id, update)
	}
	return &models.Transaction{Base: models.Base{ID: id}}, nil
}

func (m *mockTransactionService) DeleteTransaction(id string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(id)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

// --- mock letter service ---

type mockLetterService struct {
	createLetterFn  func(date *time.Time, body, tags string) (*models.Letter, error)
	getLettersFn    func(page pagination.PageRequest) (*pagination.PageResponse[models.Letter], error)
	getLetterByIDFn func(id string) (*models.Letter, error)
	updateLetterFn  func(id string, update services.LetterUpdate) (*models.Letter, error)
	deleteLetterFn  func(id string) error
}

func (m *mockLetterService) CreateLetter(date *time.Time, body, tags string) (*models.Letter, error) {
	if m.createLetterFn != nil {
		return m.createLetterFn(date, body, tags)
	}
	return &models.Letter{Base: models.Base{ID: testID}, Body: body, Tags: tags}, nil
}

func (m *mockLetterService) GetLetters(page pagination.PageRequest) (*pagination.PageResponse[models.Letter], error) {
	if m.getLettersFn != nil {
		return m.getLettersFn(page)
	}
	resp := pagination.NewPageResponse([]models.Letter{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockLetterService) GetLetterByID(id string) (*models.Letter, error) {
	if m.getLetterByIDFn != nil {
		return m.getLetterByIDFn(id)
	}
	return &models.Letter{Base: models.Base{ID: id}}, nil
}

func (m *mockLetterService) UpdateLetter(id string, update services.LetterUpdate) (*models.Letter, error) {
	if m.updateLetterFn != nil {
		return m.updateLetterFn(id, update)
	}
	return &models.Letter{Base: models.Base{ID: id}}, nil
}

func (m *mockLetterService) DeleteLetter(id string) error {
	if m.deleteLetterFn != nil {
		return m.deleteLetterFn(id)
	}
	return nil
}

var _ services.LetterServicer = (*mockLetterService)(nil)

// --- mock report service ---

type mockReportService struct {
	getReportFn func(period string) (*budget.Report, error)
}

func (m *mockReportService) GetReport(period string) (*budget.Report, error) {
	if m.getReportFn != nil {
		return m.getReportFn(period)
	}
	return &budget.Report{Period: models.PeriodType(period), CategoryTransactions: budget.Breakdown{}}, nil
}

var _ services.ReportServicer = (*mockReportService)(nil)

// --- mock audit service ---

type mockAuditService struct {
	actions []string
}

func (m *mockAuditService) Log(action, _, _, _ string, _ map[string]interface{}) {
	m.actions = append(m.actions, action)
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
