package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "wheresmymoney/internal/errors"
	"wheresmymoney/internal/models"
	"wheresmymoney/internal/pagination"
)

// letterService handles journal letters.
type letterService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewLetterService creates a new LetterServicer.
func NewLetterService(db *gorm.DB, now func() time.Time) LetterServicer {
	if now == nil {
		now = time.Now
	}
	return &letterService{db: db, now: now}
}

func (s *letterService) CreateLetter(date *time.Time, body, tags string) (*models.Letter, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "letter body is required")
	}
	if err := checkText(tags, ""); err != nil {
		return nil, err
	}

	day := models.DateOf(s.now())
	if date != nil {
		day = models.DateOf(*date)
	}

	letter := &models.Letter{Date: day, Body: body, Tags: tags}
	if err := s.db.Create(letter).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return letter, nil
}

func (s *letterService) GetLetters(page pagination.PageRequest) (*pagination.PageResponse[models.Letter], error) {
	result, err := pagination.Fetch[models.Letter](s.db.Model(&models.Letter{}), page, "date DESC, id DESC")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &result, nil
}

func (s *letterService) GetLetterByID(id string) (*models.Letter, error) {
	var letter models.Letter
	if err := s.db.Where("id = ?", id).First(&letter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLetterNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &letter, nil
}

func (s *letterService) UpdateLetter(id string, update LetterUpdate) (*models.Letter, error) {
	letter, err := s.GetLetterByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Date != nil {
		updates["date"] = models.DateOf(*update.Date)
	}
	if update.Body != nil {
		if strings.TrimSpace(*update.Body) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "letter body is required")
		}
		updates["body"] = *update.Body
	}
	if update.Tags != nil {
		if err := checkText(*update.Tags, ""); err != nil {
			return nil, err
		}
		updates["tags"] = *update.Tags
	}

	if len(updates) > 0 {
		if err := s.db.Model(letter).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return s.GetLetterByID(id)
}

func (s *letterService) DeleteLetter(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Letter{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrLetterNotFound
	}
	return nil
}
