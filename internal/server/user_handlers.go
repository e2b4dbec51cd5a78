package server

import (
	"threadloom/internal/models"
	"threadloom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfile handles POST /api/users/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	authID := callerAuthID(c)

	var req struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Bio      string `json:"bio"`
		Image    string `json:"image"`
		Path     string `json:"path"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	err := s.userService.UpdateProfile(ctx, service.UpdateProfileInput{
		AuthID:   authID,
		Username: req.Username,
		Name:     req.Name,
		Bio:      req.Bio,
		Image:    req.Image,
		Path:     req.Path,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListUsers handles GET /api/users
func (s *Server) ListUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	page, err := s.userService.ListUsers(ctx, service.ListUsersInput{
		AuthID:     callerAuthID(c),
		Search:     c.Query("search"),
		PageNumber: c.QueryInt("page", 1),
		PageSize:   c.QueryInt("page_size", 20),
		SortBy:     c.Query("sort", "desc"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	authID := c.Params("id")

	user, err := s.userService.GetUser(ctx, authID)
	if err != nil {
		return respondError(c, err)
	}
	if user == nil {
		return respondError(c, models.NewNotFoundError("User", authID))
	}

	return c.JSON(user)
}

// GetUserThreads handles GET /api/users/:id/threads
func (s *Server) GetUserThreads(c *fiber.Ctx) error {
	ctx := c.UserContext()

	threads, err := s.userService.GetUserThreads(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(threads)
}

// GetActivity handles GET /api/users/:id/activity
func (s *Server) GetActivity(c *fiber.Ctx) error {
	ctx := c.UserContext()

	replies, err := s.activityService.GetActivity(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(replies)
}
