package models

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type UploadCVResponse struct {
	ID      string `json:"id"`
	FileURL string `json:"file_url"`
}

type StartInterviewRequest struct {
	CVID string `json:"cv_id" validate:"required,uuid"`
}

type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required,uuid"`
	UserAnswer string `json:"user_answer" validate:"required"`
}

type SaveProgressRequest struct {
	CurrentQuestionIndex *int `json:"current_question_index" validate:"required"`
}

type SaveProgressResponse struct {
	Message              string `json:"message"`
	InterviewID          string `json:"interview_id"`
	CurrentQuestionIndex int    `json:"current_question_index"`
}
