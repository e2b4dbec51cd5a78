package server

import (
	"threadloom/internal/models"
	"threadloom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateThread handles POST /api/threads
func (s *Server) CreateThread(c *fiber.Ctx) error {
	ctx := c.UserContext()
	authID := callerAuthID(c)

	var req struct {
		Text        string `json:"text"`
		CommunityID *uint  `json:"community_id,omitempty"`
		Path        string `json:"path"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	thread, err := s.threadService.CreateThread(ctx, service.CreateThreadInput{
		Text:         req.Text,
		AuthorAuthID: authID,
		CommunityID:  req.CommunityID,
		Path:         req.Path,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(thread)
}

// GetFeed handles GET /api/threads
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	feed, err := s.feedService.ListPosts(ctx, page, pageSize)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(feed)
}

// GetThread handles GET /api/threads/:id
func (s *Server) GetThread(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return respondError(c, models.NewValidationError("Invalid thread ID"))
	}
	depth := c.QueryInt("depth", 0)

	thread, err := s.threadService.GetThreadDepth(ctx, uint(id), depth)
	if err != nil {
		return respondError(c, err)
	}
	if thread == nil {
		return respondError(c, models.NewNotFoundError("Thread", id))
	}

	return c.JSON(thread)
}

// AddComment handles POST /api/threads/:id/comments
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	authID := callerAuthID(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return respondError(c, models.NewValidationError("Invalid thread ID"))
	}

	var req struct {
		Text string `json:"text"`
		Path string `json:"path"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.threadService.AddComment(ctx, service.AddCommentInput{
		ThreadID:     uint(id),
		Text:         req.Text,
		AuthorAuthID: authID,
		Path:         req.Path,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
