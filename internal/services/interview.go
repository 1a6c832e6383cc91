package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"cvmentor/interview-api/internal/models"
	"cvmentor/interview-api/internal/repositories"
)

// InterviewLifecycleService drives an interview from creation through answer
// submission. An interview only ever exists fully populated: if question
// generation fails after the row is created, the row is deleted again before
// the error goes back to the caller.
type InterviewLifecycleService interface {
	Start(ctx context.Context, userID, cvID uuid.UUID) (*models.Interview, error)
	List(userID uuid.UUID) ([]models.Interview, error)
	Get(userID, interviewID uuid.UUID) (*models.Interview, error)
	Destroy(userID, interviewID uuid.UUID) error
	SubmitAnswer(userID, interviewID, questionID uuid.UUID, answer string) (*models.Interview, error)
	SaveProgress(userID, interviewID uuid.UUID, index int) (*models.Interview, error)
}

type interviewLifecycleService struct {
	cvRepo        repositories.CVRepository
	analysisRepo  repositories.AnalysisRepository
	interviewRepo repositories.InterviewRepository
	questions     QuestionService
}

func NewInterviewLifecycleService(
	cvRepo repositories.CVRepository,
	analysisRepo repositories.AnalysisRepository,
	interviewRepo repositories.InterviewRepository,
	questions QuestionService,
) InterviewLifecycleService {
	return &interviewLifecycleService{
		cvRepo:        cvRepo,
		analysisRepo:  analysisRepo,
		interviewRepo: interviewRepo,
		questions:     questions,
	}
}

// Start implements InterviewLifecycleService.
func (s *interviewLifecycleService) Start(ctx context.Context, userID, cvID uuid.UUID) (*models.Interview, error) {
	cv, err := s.cvRepo.FindByIDForUser(cvID, userID)
	if err != nil {
		return nil, err
	}

	analysis, err := s.analysisRepo.FindByCVID(cv.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrCVNotAnalyzed
		}
		return nil, err
	}

	// Create the interview before generating questions so a generation
	// failure has an identity to compensate against.
	interview := &models.Interview{
		ID:   uuid.New(),
		CVID: cv.ID,
	}
	if err := s.interviewRepo.Create(interview); err != nil {
		return nil, err
	}

	specs, err := s.questions.GenerateQuestions(ctx, analysis)
	if err != nil {
		s.compensate(interview.ID)
		return nil, err
	}

	saved := 0
	for _, spec := range specs {
		if !spec.Valid() {
			log.Printf("⚠️  Skipping malformed question spec for interview %s\n", interview.ID)
			continue
		}
		question := &models.InterviewQuestion{
			ID:            uuid.New(),
			InterviewID:   interview.ID,
			QuestionText:  spec.Question,
			Choice1:       spec.Choices.A,
			Choice2:       spec.Choices.B,
			Choice3:       spec.Choices.C,
			Choice4:       spec.Choices.D,
			CorrectAnswer: spec.Correct,
		}
		if err := s.interviewRepo.CreateQuestion(question); err != nil {
			log.Printf("⚠️  Failed to save interview question: %v\n", err)
			continue
		}
		saved++
	}

	// Every single spec was malformed; that is no better than an empty list.
	if saved == 0 {
		s.compensate(interview.ID)
		return nil, fmt.Errorf("%w: no usable questions", models.ErrInvalidQuestionPayload)
	}

	interview.TotalQuestions = saved
	if err := s.interviewRepo.Save(interview); err != nil {
		s.compensate(interview.ID)
		return nil, err
	}

	return s.interviewRepo.FindByIDForUser(interview.ID, userID)
}

// compensate removes an interview whose population failed. The cleanup is
// mandatory; a failure here is logged loudly because it leaves an orphan.
func (s *interviewLifecycleService) compensate(interviewID uuid.UUID) {
	if err := s.interviewRepo.Delete(interviewID); err != nil && !errors.Is(err, models.ErrNotFound) {
		log.Printf("❌ Failed to clean up interview %s after generation failure: %v\n", interviewID, err)
	}
}

// List implements InterviewLifecycleService.
func (s *interviewLifecycleService) List(userID uuid.UUID) ([]models.Interview, error) {
	return s.interviewRepo.ListByUser(userID)
}

// Get implements InterviewLifecycleService.
func (s *interviewLifecycleService) Get(userID, interviewID uuid.UUID) (*models.Interview, error) {
	return s.interviewRepo.FindByIDForUser(interviewID, userID)
}

// Destroy implements InterviewLifecycleService.
func (s *interviewLifecycleService) Destroy(userID, interviewID uuid.UUID) error {
	if _, err := s.interviewRepo.FindByIDForUser(interviewID, userID); err != nil {
		return err
	}
	return s.interviewRepo.Delete(interviewID)
}

// SubmitAnswer implements InterviewLifecycleService. Resubmitting an answer
// overwrites the previous one; the score is always recomputed from a full
// rescan of the interview's questions.
func (s *interviewLifecycleService) SubmitAnswer(userID, interviewID, questionID uuid.UUID, answer string) (*models.Interview, error) {
	interview, err := s.interviewRepo.FindByIDForUser(interviewID, userID)
	if err != nil {
		return nil, err
	}

	question, err := s.interviewRepo.FindQuestion(questionID, interview.ID)
	if err != nil {
		return nil, err
	}

	question.UserAnswer = &answer
	if err := s.interviewRepo.SaveQuestion(question); err != nil {
		return nil, err
	}

	questions, err := s.interviewRepo.QuestionsByInterview(interview.ID)
	if err != nil {
		return nil, err
	}

	correct := 0
	answered := 0
	for i := range questions {
		if questions[i].Answered() {
			answered++
		}
		if questions[i].Correct() {
			correct++
		}
	}

	interview.CorrectAnswers = correct
	if interview.TotalQuestions > 0 {
		interview.Score = float64(correct) / float64(interview.TotalQuestions) * 100
	} else {
		interview.Score = 0
	}
	interview.Completed = answered == len(questions)

	if err := s.interviewRepo.Save(interview); err != nil {
		return nil, err
	}

	return s.interviewRepo.FindByIDForUser(interview.ID, userID)
}

// SaveProgress implements InterviewLifecycleService. The index is a resume
// bookmark only; it never touches scoring or completion.
func (s *interviewLifecycleService) SaveProgress(userID, interviewID uuid.UUID, index int) (*models.Interview, error) {
	interview, err := s.interviewRepo.FindByIDForUser(interviewID, userID)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= interview.TotalQuestions {
		return nil, models.ErrIndexOutOfRange
	}

	interview.CurrentQuestionIndex = index
	if err := s.interviewRepo.Save(interview); err != nil {
		return nil, err
	}

	return interview, nil
}
