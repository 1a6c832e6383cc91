package models

import "errors"

// Sentinel errors shared between services and handlers. Handlers map these to
// HTTP status codes; services wrap them with %w so errors.Is keeps working.
var (
	// ErrNotFound covers both missing and unowned records - an entity that
	// belongs to another user is indistinguishable from one that does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken is returned when registering with an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login with a wrong email/password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAnalysisUnavailable means the analysis service call itself failed
	// (network, auth, timeout). No record is created.
	ErrAnalysisUnavailable = errors.New("analysis service unavailable")

	// ErrInvalidAnalysisShape means the analysis service answered with
	// something that is not a JSON object.
	ErrInvalidAnalysisShape = errors.New("invalid analysis response")

	// ErrIncompleteAnalysisShape means the analysis object is missing one of
	// the required fields (skills, summary, experience_level, ai_score,
	// suggestions).
	ErrIncompleteAnalysisShape = errors.New("incomplete analysis response")

	// ErrCVNotAnalyzed is returned when starting an interview for a CV that
	// has no analysis yet.
	ErrCVNotAnalyzed = errors.New("cv has not been analyzed yet")

	// ErrQuestionServiceUnavailable means the question generation call failed
	// before producing a response body.
	ErrQuestionServiceUnavailable = errors.New("question service unavailable")

	// ErrInvalidQuestionPayload means the question service answered but the
	// payload could not be parsed into a non-empty question list.
	ErrInvalidQuestionPayload = errors.New("invalid question payload")

	// ErrIndexOutOfRange is returned when saving a progress index outside
	// [0, total_questions).
	ErrIndexOutOfRange = errors.New("question index out of range")
)
