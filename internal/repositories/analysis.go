package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cvmentor/interview-api/internal/models"
)

type AnalysisRepository interface {
	// Create inserts the result. A unique-constraint violation on cv_id is
	// returned as gorm.ErrDuplicatedKey for the caller to resolve.
	Create(result *models.AnalysisResult) error
	FindByCVID(cvID uuid.UUID) (*models.AnalysisResult, error)
	FindByCVIDForUser(cvID, userID uuid.UUID) (*models.AnalysisResult, error)
	Delete(id uuid.UUID) error
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(result *models.AnalysisResult) error {
	if err := r.db.Create(result).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return fmt.Errorf("failed to create analysis result: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindByCVID(cvID uuid.UUID) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := r.db.Where("cv_id = ?", cvID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find analysis result: %w", err)
	}
	return &result, nil
}

func (r *analysisRepository) FindByCVIDForUser(cvID, userID uuid.UUID) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	err := r.db.
		Joins("JOIN cvs ON cvs.id = analysis_results.cv_id").
		Where("analysis_results.cv_id = ? AND cvs.user_id = ?", cvID, userID).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find analysis result: %w", err)
	}
	return &result, nil
}

func (r *analysisRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.AnalysisResult{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete analysis result: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
