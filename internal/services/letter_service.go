package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	apperrors "vincowealth/internal/errors"
	"vincowealth/internal/models"
	"vincowealth/internal/pagination"
)

// letterService handles suitability letter business logic.
type letterService struct {
	store Store
	audit AuditServicer
}

// NewSuitabilityLetterService creates a new SuitabilityLetterServicer.
func NewSuitabilityLetterService(store Store, audit AuditServicer) SuitabilityLetterServicer {
	return &letterService{store: store, audit: auditOrNop(audit)}
}

// CreateLetter stores a suitability letter for an existing client.
func (s *letterService) CreateLetter(ctx context.Context, letter *models.SuitabilityLetter) (*models.SuitabilityLetter, error) {
	if letter == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "letter is required")
	}
	letter.ID = 0
	letter.ClientID = strings.TrimSpace(letter.ClientID)
	letter.Status = letter.Status.OrDefault()
	if letter.ClientID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "client id is required")
	}
	if !letter.Status.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown letter status %q", letter.Status))
	}

	err := s.store.Write(ctx, func(tx *gorm.DB) error {
		exists, err := clientExists(tx, letter.ClientID)
		if err != nil {
			return translateDBError(err, "suitability_letters")
		}
		if !exists {
			return missingClient("suitability_letters", letter.ClientID)
		}
		return translateDBError(tx.Create(letter).Error, "suitability_letters")
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, "create", "suitability_letter", letterID(letter.ID),
		map[string]any{"client_id": letter.ClientID, "status": letter.Status})
	return letter, nil
}

// GetLetterByID retrieves a suitability letter by id.
func (s *letterService) GetLetterByID(ctx context.Context, id uint) (*models.SuitabilityLetter, error) {
	var letter models.SuitabilityLetter
	if err := s.store.DB().WithContext(ctx).First(&letter, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLetterNotFound
		}
		return nil, translateDBError(err, "suitability_letters")
	}
	return &letter, nil
}

// ListClientLetters retrieves a page of a client's letters, newest first.
func (s *letterService) ListClientLetters(ctx context.Context, clientID string, page pagination.PageRequest) (*pagination.PageResponse[models.SuitabilityLetter], error) {
	db := s.store.DB().WithContext(ctx)
	exists, err := clientExists(db, clientID)
	if err != nil {
		return nil, translateDBError(err, "suitability_letters")
	}
	if !exists {
		return nil, apperrors.ErrClientNotFound
	}

	query := db.Model(&models.SuitabilityLetter{}).Where("client_id = ?", clientID)
	resp, err := pagination.Find[models.SuitabilityLetter](query, page, newestFirst)
	if err != nil {
		return nil, translateDBError(err, "suitability_letters")
	}
	return &resp, nil
}

// UpdateLetter changes a letter's content, PDF path or status and refreshes
// its updated_at timestamp.
func (s *letterService) UpdateLetter(ctx context.Context, id uint, update LetterUpdate) (*models.SuitabilityLetter, error) {
	if update.Status != nil && !update.Status.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown letter status %q", *update.Status))
	}

	var letter models.SuitabilityLetter
	err := s.store.Write(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&letter, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrLetterNotFound
			}
			return translateDBError(err, "suitability_letters")
		}

		setOptional(&letter.Content, update.Content)
		setOptional(&letter.PDFPath, update.PDFPath)
		if update.Status != nil {
			letter.Status = *update.Status
		}
		return translateDBError(tx.Save(&letter).Error, "suitability_letters")
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, "update", "suitability_letter", letterID(letter.ID),
		map[string]any{"status": letter.Status})
	return &letter, nil
}

// DeleteLetter removes a suitability letter.
func (s *letterService) DeleteLetter(ctx context.Context, id uint) error {
	err := s.store.Write(ctx, func(tx *gorm.DB) error {
		result := tx.Delete(&models.SuitabilityLetter{}, id)
		if result.Error != nil {
			return translateDBError(result.Error, "suitability_letters")
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrLetterNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Log(ctx, "delete", "suitability_letter", letterID(id), nil)
	return nil
}

func letterID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
