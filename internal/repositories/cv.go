package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cvmentor/interview-api/internal/models"
)

// CVRepository scopes every lookup by the owning user. A CV that belongs to
// someone else is reported as not found.
type CVRepository interface {
	Create(cv *models.CV) error
	FindByIDForUser(id, userID uuid.UUID) (*models.CV, error)
	ListByUser(userID uuid.UUID) ([]models.CV, error)
	Update(cv *models.CV) error
	Delete(id, userID uuid.UUID) error
}

type cvRepository struct {
	db *gorm.DB
}

func NewCVRepository(db *gorm.DB) CVRepository {
	return &cvRepository{db: db}
}

func (r *cvRepository) Create(cv *models.CV) error {
	if err := r.db.Create(cv).Error; err != nil {
		return fmt.Errorf("failed to create cv: %w", err)
	}
	return nil
}

func (r *cvRepository) FindByIDForUser(id, userID uuid.UUID) (*models.CV, error) {
	var cv models.CV
	err := r.db.
		Preload("Analysis").
		Where("id = ? AND user_id = ?", id, userID).
		First(&cv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cv: %w", err)
	}
	return &cv, nil
}

func (r *cvRepository) ListByUser(userID uuid.UUID) ([]models.CV, error) {
	var cvs []models.CV
	err := r.db.
		Preload("Analysis").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&cvs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cvs: %w", err)
	}
	return cvs, nil
}

func (r *cvRepository) Update(cv *models.CV) error {
	if err := r.db.Omit(clause.Associations).Save(cv).Error; err != nil {
		return fmt.Errorf("failed to update cv: %w", err)
	}
	return nil
}

// Delete removes the CV row. The analysis and interviews hang off cascading
// foreign keys, but sqlite in tests does not always enforce them, so the
// dependents are deleted explicitly inside one transaction.
func (r *cvRepository) Delete(id, userID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var cv models.CV
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&cv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return fmt.Errorf("failed to find cv: %w", err)
		}

		var interviewIDs []uuid.UUID
		if err := tx.Model(&models.Interview{}).Where("cv_id = ?", cv.ID).Pluck("id", &interviewIDs).Error; err != nil {
			return fmt.Errorf("failed to list interviews: %w", err)
		}
		if len(interviewIDs) > 0 {
			if err := tx.Where("interview_id IN ?", interviewIDs).Delete(&models.InterviewQuestion{}).Error; err != nil {
				return fmt.Errorf("failed to delete interview questions: %w", err)
			}
			if err := tx.Where("id IN ?", interviewIDs).Delete(&models.Interview{}).Error; err != nil {
				return fmt.Errorf("failed to delete interviews: %w", err)
			}
		}
		if err := tx.Where("cv_id = ?", cv.ID).Delete(&models.AnalysisResult{}).Error; err != nil {
			return fmt.Errorf("failed to delete analysis: %w", err)
		}
		if err := tx.Delete(&cv).Error; err != nil {
			return fmt.Errorf("failed to delete cv: %w", err)
		}
		return nil
	})
}
