package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cvmentor/interview-api/internal/models"
)

// InterviewRepository scopes interview lookups through the owning CV's user.
type InterviewRepository interface {
	Create(interview *models.Interview) error
	Save(interview *models.Interview) error
	FindByIDForUser(id, userID uuid.UUID) (*models.Interview, error)
	ListByUser(userID uuid.UUID) ([]models.Interview, error)
	Delete(id uuid.UUID) error

	CreateQuestion(question *models.InterviewQuestion) error
	FindQuestion(id, interviewID uuid.UUID) (*models.InterviewQuestion, error)
	QuestionsByInterview(interviewID uuid.UUID) ([]models.InterviewQuestion, error)
	SaveQuestion(question *models.InterviewQuestion) error
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(interview *models.Interview) error {
	if err := r.db.Create(interview).Error; err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

func (r *interviewRepository) Save(interview *models.Interview) error {
	// Preloaded questions ride along on the struct; only the interview row
	// itself is written here.
	if err := r.db.Omit(clause.Associations).Save(interview).Error; err != nil {
		return fmt.Errorf("failed to save interview: %w", err)
	}
	return nil
}

func (r *interviewRepository) FindByIDForUser(id, userID uuid.UUID) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("interview_questions.created_at ASC")
		}).
		Joins("JOIN cvs ON cvs.id = interviews.cv_id").
		Where("interviews.id = ? AND cvs.user_id = ?", id, userID).
		First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find interview: %w", err)
	}
	return &interview, nil
}

func (r *interviewRepository) ListByUser(userID uuid.UUID) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.
		Joins("JOIN cvs ON cvs.id = interviews.cv_id").
		Where("cvs.user_id = ?", userID).
		Order("interviews.created_at DESC").
		Find(&interviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return interviews, nil
}

// Delete removes the interview and its questions. Used both for owner
// deletion and for the compensating delete when question generation fails.
func (r *interviewRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("interview_id = ?", id).Delete(&models.InterviewQuestion{}).Error; err != nil {
			return fmt.Errorf("failed to delete interview questions: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&models.Interview{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete interview: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

func (r *interviewRepository) CreateQuestion(question *models.InterviewQuestion) error {
	if err := r.db.Create(question).Error; err != nil {
		return fmt.Errorf("failed to create interview question: %w", err)
	}
	return nil
}

func (r *interviewRepository) FindQuestion(id, interviewID uuid.UUID) (*models.InterviewQuestion, error) {
	var question models.InterviewQuestion
	err := r.db.
		Where("id = ? AND interview_id = ?", id, interviewID).
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find interview question: %w", err)
	}
	return &question, nil
}

func (r *interviewRepository) QuestionsByInterview(interviewID uuid.UUID) ([]models.InterviewQuestion, error) {
	var questions []models.InterviewQuestion
	err := r.db.
		Where("interview_id = ?", interviewID).
		Order("created_at ASC").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interview questions: %w", err)
	}
	return questions, nil
}

func (r *interviewRepository) SaveQuestion(question *models.InterviewQuestion) error {
	if err := r.db.Save(question).Error; err != nil {
		return fmt.Errorf("failed to save interview question: %w", err)
	}
	return nil
}
