package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cvmentor/interview-api/internal/middleware"
	"cvmentor/interview-api/internal/models"
	"cvmentor/interview-api/internal/services"
)

type InterviewHandler struct {
	lifecycle services.InterviewLifecycleService
}

func NewInterviewHandler(lifecycle services.InterviewLifecycleService) *InterviewHandler {
	return &InterviewHandler{
		lifecycle: lifecycle,
	}
}

// HandleStart handles POST /api/interviews/start
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartInterviewRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.CVID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cv_id is required",
		})
	}

	cvID, err := uuid.Parse(req.CVID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid cv_id format",
		})
	}

	interview, err := h.lifecycle.Start(c.Context(), middleware.UserID(c), cvID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(interview)
}

// HandleList handles GET /api/interviews
func (h *InterviewHandler) HandleList(c *fiber.Ctx) error {
	interviews, err := h.lifecycle.List(middleware.UserID(c))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"interviews": interviews,
	})
}

// HandleGet handles GET /api/interviews/:id
func (h *InterviewHandler) HandleGet(c *fiber.Ctx) error {
	interviewID, ok := h.parseID(c)
	if !ok {
		return nil
	}

	interview, err := h.lifecycle.Get(middleware.UserID(c), interviewID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(interview)
}

// HandleDelete handles DELETE /api/interviews/:id
func (h *InterviewHandler) HandleDelete(c *fiber.Ctx) error {
	interviewID, ok := h.parseID(c)
	if !ok {
		return nil
	}

	if err := h.lifecycle.Destroy(middleware.UserID(c), interviewID); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Interview %s deleted successfully", interviewID),
	})
}

// HandleSubmitAnswer handles POST /api/interviews/:id/submit-answer
func (h *InterviewHandler) HandleSubmitAnswer(c *fiber.Ctx) error {
	interviewID, ok := h.parseID(c)
	if !ok {
		return nil
	}

	var req models.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.QuestionID == "" || req.UserAnswer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question_id and user_answer are required",
		})
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid question_id format",
		})
	}

	interview, err := h.lifecycle.SubmitAnswer(middleware.UserID(c), interviewID, questionID, req.UserAnswer)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(interview)
}

// HandleSaveProgress handles POST /api/interviews/:id/save-progress
func (h *InterviewHandler) HandleSaveProgress(c *fiber.Ctx) error {
	interviewID, ok := h.parseID(c)
	if !ok {
		return nil
	}

	var req models.SaveProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.CurrentQuestionIndex == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "current_question_index is required",
		})
	}

	interview, err := h.lifecycle.SaveProgress(middleware.UserID(c), interviewID, *req.CurrentQuestionIndex)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(models.SaveProgressResponse{
		Message:              "Progress saved",
		InterviewID:          interview.ID.String(),
		CurrentQuestionIndex: interview.CurrentQuestionIndex,
	})
}

// parseID reads the :id route param. On a malformed id it writes the 400
// response itself and reports false.
func (h *InterviewHandler) parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	interviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interview ID format",
		})
		return uuid.Nil, false
	}
	return interviewID, true
}
