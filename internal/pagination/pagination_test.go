package pagination_test

import (
	"fmt"
	"testing"

	"wheresmymoney/internal/models"
	"wheresmymoney/internal/pagination"
	"wheresmymoney/internal/testutil"
)

func TestDefaults(t *testing.T) {
	tests := []struct {
		name         string
		req          pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero values", pagination.PageRequest{}, 1, 20},
		{"kept", pagination.PageRequest{Page: 3, PageSize: 50}, 3, 50},
		{"clamped", pagination.PageRequest{Page: -1, PageSize: 1000}, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.Defaults()
			if req.Page != tt.wantPage || req.PageSize != tt.wantPageSize {
				t.Errorf("expected page %d size %d, got page %d size %d", tt.wantPage, tt.wantPageSize, req.Page, req.PageSize)
			}
		})
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := pagination.NewPageResponse[int](nil, 2, 10, 21)
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.TotalPages)
	}
	if resp.Data == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestFetch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	for i := 0; i < 5; i++ {
		testutil.CreateTestCategoryNamed(t, db, fmt.Sprintf("cat-%d", i), models.PeriodWeekly, "10")
	}

	query := db.Model(&models.Category{}).Where("type = ?", models.PeriodWeekly)
	page, err := pagination.Fetch[models.Category](query, pagination.PageRequest{Page: 2, PageSize: 2}, "name DESC")
	testutil.AssertNoError(t, err)

	if page.TotalItems != 5 || page.TotalPages != 3 {
		t.Errorf("expected 5 items over 3 pages, got %d over %d", page.TotalItems, page.TotalPages)
	}
	if len(page.Data) != 2 || page.Data[0].Name != "cat-2" || page.Data[1].Name != "cat-1" {
		t.Errorf("unexpected page contents: %+v", page.Data)
	}
}
