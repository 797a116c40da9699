package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "wheresmymoney/internal/errors"
	"wheresmymoney/internal/models"
	"wheresmymoney/internal/pagination"
)

const maxNameLength = 200

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category, optionally under an existing parent.
func (s *categoryService) CreateCategory(name string, periodType models.PeriodType, amount decimal.Decimal, parentName *string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name must be at most 200 characters")
	}
	// Names are addressed as a single path segment.
	if strings.Contains(name, "/") {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name must not contain '/'")
	}
	if !periodType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type must be one of W, M or Y")
	}
	if err := checkMoney(amount); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	if parentName != nil {
		if *parentName == name {
			return nil, apperrors.ErrSelfParentCategory
		}
		if _, err := s.GetCategory(*parentName); err != nil {
			return nil, parentNotFound(err)
		}
	}

	category := &models.Category{
		Name:       name,
		Type:       periodType,
		Budget:     amount,
		ParentName: parentName,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetCategories retrieves a paginated list of categories ordered by name,
// optionally restricted to one type.
func (s *categoryService) GetCategories(page pagination.PageRequest, periodType *models.PeriodType) (*pagination.PageResponse[models.Category], error) {
	query := s.db.Model(&models.Category{})
	if periodType != nil {
		query = query.Where("type = ?", *periodType)
	}

	result, err := pagination.Fetch[models.Category](query, page, "name ASC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

// GetCategory retrieves a category by name.
func (s *categoryService) GetCategory(name string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// GetCategoryDetail retrieves a category with its direct children and all of
// its transactions, newest first.
func (s *categoryService) GetCategoryDetail(name string) (*CategoryDetail, error) {
	category, err := s.GetCategory(name)
	if err != nil {
		return nil, err
	}

	detail := &CategoryDetail{Category: *category}
	if err := s.db.Where("parent_name = ?", name).Order("name ASC").Find(&detail.Children).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("category_name = ?", name).
		Order("date DESC").Order("id DESC").
		Find(&detail.Transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if detail.Children == nil {
		detail.Children = []models.Category{}
	}
	if detail.Transactions == nil {
		detail.Transactions = []models.Transaction{}
	}
	return detail, nil
}

// UpdateCategory changes the type, budget or parent of a category. Moving a
// category under itself or under one of its descendants is rejected.
func (s *categoryService) UpdateCategory(name string, update CategoryUpdate) (*models.Category, error) {
	category, err := s.GetCategory(name)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Type != nil {
		if !update.Type.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type must be one of W, M or Y")
		}
		updates["type"] = *update.Type
	}
	if update.Budget != nil {
		if err := checkMoney(*update.Budget); err != nil {
			return nil, err
		}
		updates["budget"] = *update.Budget
	}
	switch {
	case update.ClearParent:
		updates["parent_name"] = nil
	case update.ParentName != nil:
		if err := s.checkReparent(name, *update.ParentName); err != nil {
			return nil, err
		}
		updates["parent_name"] = *update.ParentName
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetCategory(name)
}

// checkReparent walks up from the new parent; meeting the category itself
// means the move would close a loop.
func (s *categoryService) checkReparent(name, parentName string) error {
	if parentName == name {
		return apperrors.ErrSelfParentCategory
	}

	seen := map[string]bool{}
	current := parentName
	for {
		ancestor, err := s.GetCategory(current)
		if err != nil {
			if current == parentName {
				return parentNotFound(err)
			}
			return err
		}
		if ancestor.Name == name {
			return apperrors.ErrCategoryCycle
		}
		if ancestor.ParentName == nil || seen[ancestor.Name] {
			return nil
		}
		seen[ancestor.Name] = true
		current = *ancestor.ParentName
	}
}

// DeleteCategory deletes a category, all of its descendants and every
// transaction filed under any of them, atomically.
func (s *categoryService) DeleteCategory(name string) (*CategoryDeletion, error) {
	if _, err := s.GetCategory(name); err != nil {
		return nil, err
	}

	deletion := &CategoryDeletion{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		names, err := subtree(tx, name)
		if err != nil {
			return err
		}

		result := tx.Where("category_name IN ?", names).Delete(&models.Transaction{})
		if result.Error != nil {
			return result.Error
		}
		deletion.Transactions = result.RowsAffected

		if err := tx.Where("name IN ?", names).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		deletion.Categories = names
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return deletion, nil
}

// subtree returns root and the names of all of its descendants, breadth first.
func subtree(tx *gorm.DB, root string) ([]string, error) {
	names := []string{root}
	seen := map[string]bool{root: true}
	frontier := []string{root}

	for len(frontier) > 0 {
		var children []string
		if err := tx.Model(&models.Category{}).
			Where("parent_name IN ?", frontier).
			Order("name ASC").
			Pluck("name", &children).Error; err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, child := range children {
			if seen[child] {
				continue
			}
			seen[child] = true
			names = append(names, child)
			frontier = append(frontier, child)
		}
	}
	return names, nil
}

func parentNotFound(err error) error {
	if errors.Is(err, apperrors.ErrCategoryNotFound) {
		return apperrors.WithMessage(apperrors.ErrCategoryNotFound, "parent category not found")
	}
	return err
}

// checkMoney rejects amounts that do not fit a numeric(10,2) column.
func checkMoney(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(2)) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amounts have at most 2 decimal places")
	}
	if !amount.Abs().LessThan(decimal.New(1, 8)) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount is too large")
	}
	return nil
}
