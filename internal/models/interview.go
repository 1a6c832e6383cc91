package models

import (
	"time"

	"github.com/google/uuid"
)

type Interview struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CVID                 uuid.UUID `gorm:"type:uuid;not null;index" json:"cv_id"`
	TotalQuestions       int       `gorm:"not null;default:0" json:"total_questions"`
	CorrectAnswers       int       `gorm:"not null;default:0" json:"correct_answers"`
	Score                float64   `gorm:"not null;default:0" json:"score"`
	Completed            bool      `gorm:"not null;default:false" json:"completed"`
	CurrentQuestionIndex int       `gorm:"not null;default:0" json:"current_question_index"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	// Relations
	Questions []InterviewQuestion `gorm:"foreignKey:InterviewID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Interview) TableName() string {
	return "interviews"
}

type InterviewQuestion struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InterviewID   uuid.UUID `gorm:"type:uuid;not null;index" json:"interview_id"`
	QuestionText  string    `gorm:"type:text;not null" json:"question_text"`
	Choice1       string    `gorm:"type:text" json:"choice_1"`
	Choice2       string    `gorm:"type:text" json:"choice_2"`
	Choice3       string    `gorm:"type:text" json:"choice_3"`
	Choice4       string    `gorm:"type:text" json:"choice_4"`
	CorrectAnswer string    `gorm:"type:varchar(1)" json:"correct_answer"`
	UserAnswer    *string   `gorm:"type:varchar(1)" json:"user_answer"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (InterviewQuestion) TableName() string {
	return "interview_questions"
}

// Answered reports whether the user has recorded an answer.
func (q *InterviewQuestion) Answered() bool {
	return q.UserAnswer != nil && *q.UserAnswer != ""
}

// Correct reports whether the recorded answer matches the correct key.
func (q *InterviewQuestion) Correct() bool {
	return q.Answered() && *q.UserAnswer == q.CorrectAnswer
}
