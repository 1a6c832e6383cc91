package handlers

import (
	"fmt"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cvmentor/interview-api/internal/middleware"
	"cvmentor/interview-api/internal/models"
	"cvmentor/interview-api/internal/repositories"
	"cvmentor/interview-api/internal/services"
)

type CVHandler struct {
	cvRepo            repositories.CVRepository
	storageService    services.StorageService
	pdfParser         services.PDFParserService
	analysisLifecycle services.AnalysisLifecycleService
	maxFileSize       int64
}

func NewCVHandler(
	cvRepo repositories.CVRepository,
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	analysisLifecycle services.AnalysisLifecycleService,
	maxFileSize int64,
) *CVHandler {
	return &CVHandler{
		cvRepo:            cvRepo,
		storageService:    storageService,
		pdfParser:         pdfParser,
		analysisLifecycle: analysisLifecycle,
		maxFileSize:       maxFileSize,
	}
}

// HandleUpload handles POST /api/cv/cvs
func (h *CVHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	filename, filePath, content, err := h.saveAndExtract(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	cv := &models.CV{
		ID:               uuid.New(),
		UserID:           middleware.UserID(c),
		Filename:         filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		Content:          content,
	}

	if err := h.cvRepo.Create(cv); err != nil {
		// Cleanup uploaded file if database insert fails
		h.removeFile(filename)
		return errorJSON(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadCVResponse{
		ID:      cv.ID.String(),
		FileURL: cv.FilePath,
	})
}

// HandleList handles GET /api/cv/cvs
func (h *CVHandler) HandleList(c *fiber.Ctx) error {
	cvs, err := h.cvRepo.ListByUser(middleware.UserID(c))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"cvs": cvs,
	})
}

// HandleGet handles GET /api/cv/cvs/:id
func (h *CVHandler) HandleGet(c *fiber.Ctx) error {
	cvID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
	}

	cv, err := h.cvRepo.FindByIDForUser(cvID, middleware.UserID(c))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(cv)
}

// HandleUpdate handles PUT /api/cv/cvs/:id - replaces the stored file and
// its extracted content.
func (h *CVHandler) HandleUpdate(c *fiber.Ctx) error {
	cvID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
	}

	cv, err := h.cvRepo.FindByIDForUser(cvID, middleware.UserID(c))
	if err != nil {
		return errorJSON(c, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	filename, filePath, content, err := h.saveAndExtract(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	oldFilename := cv.Filename
	cv.Filename = filename
	cv.OriginalFileName = file.Filename
	cv.FilePath = filePath
	cv.Content = content

	if err := h.cvRepo.Update(cv); err != nil {
		h.removeFile(filename)
		return errorJSON(c, err)
	}

	if oldFilename != "" && oldFilename != filename {
		h.removeFile(oldFilename)
	}

	return c.JSON(cv)
}

// HandleDelete handles DELETE /api/cv/cvs/:id - cascades to the analysis and
// any interviews.
func (h *CVHandler) HandleDelete(c *fiber.Ctx) error {
	cvID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
	}

	cv, err := h.cvRepo.FindByIDForUser(cvID, middleware.UserID(c))
	if err != nil {
		return errorJSON(c, err)
	}

	if err := h.cvRepo.Delete(cv.ID, middleware.UserID(c)); err != nil {
		return errorJSON(c, err)
	}

	if cv.Filename != "" {
		h.removeFile(cv.Filename)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// HandleAnalyze handles POST /api/cv/cvs/:id/analyze?force=true
func (h *CVHandler) HandleAnalyze(c *fiber.Ctx) error {
	cvID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
	}

	force := c.Query("force") == "true" || c.Query("force") == "1"

	result, created, err := h.analysisLifecycle.RequestAnalysis(c.Context(), middleware.UserID(c), cvID, force)
	if err != nil {
		return errorJSON(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(result)
}

// HandleGetAnalysis handles GET /api/cv/cvs/:id/analysis
func (h *CVHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	cvID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
	}

	result, err := h.analysisLifecycle.GetAnalysis(middleware.UserID(c), cvID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(result)
}

// saveAndExtract stores the uploaded PDF and extracts its text content.
// On any failure nothing is left on disk.
func (h *CVHandler) saveAndExtract(file *multipart.FileHeader) (string, string, string, error) {
	if file.Size > h.maxFileSize {
		return "", "", "", fmt.Errorf("file too large. Max size: %d bytes", h.maxFileSize)
	}

	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to save file: %w", err)
	}

	content, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		h.removeFile(filename)
		return "", "", "", fmt.Errorf("failed to extract text from PDF: %w", err)
	}

	return filename, filePath, content, nil
}

// removeFile is best-effort cleanup of a stored upload; an orphaned file is
// worth a warning but never fails the request.
func (h *CVHandler) removeFile(filename string) {
	if err := h.storageService.DeleteFile(filename); err != nil {
		log.Printf("⚠️  Failed to delete stored file %s: %v\n", filename, err)
	}
}
