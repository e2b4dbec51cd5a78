package server

import (
	"io"

	"threadloom/internal/models"
	"threadloom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Upload handles POST /api/uploads. It accepts a multipart form with one
// or more "files" parts and responds with one resolved URL per file.
func (s *Server) Upload(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if s.uploadService == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewStorageError("upload files", fiber.ErrServiceUnavailable))
	}

	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, models.NewValidationError("Invalid multipart form"))
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return respondError(c, models.NewValidationError("At least one file is required"))
	}

	files := make([]service.UploadFile, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			return respondError(c, models.NewValidationError("Unreadable file part"))
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return respondError(c, models.NewValidationError("Unreadable file part"))
		}

		files = append(files, service.UploadFile{
			Filename:    h.Filename,
			ContentType: h.Header.Get("Content-Type"),
			Content:     content,
		})
	}

	results, err := s.uploadService.Upload(ctx, files)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(results)
}
