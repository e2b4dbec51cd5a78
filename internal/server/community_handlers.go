package server

import (
	"strings"

	"threadloom/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListCommunities handles GET /api/communities
func (s *Server) ListCommunities(c *fiber.Ctx) error {
	ctx := c.UserContext()
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	communities, err := s.communityRepo.List(ctx, limit, offset)
	if err != nil {
		return respondError(c, models.NewStorageError("fetch communities", err))
	}

	return c.JSON(communities)
}

// GetCommunity handles GET /api/communities/:slug
func (s *Server) GetCommunity(c *fiber.Ctx) error {
	ctx := c.UserContext()
	slug := c.Params("slug")

	community, err := s.communityRepo.GetBySlug(ctx, slug)
	if err != nil {
		return respondError(c, models.NewStorageError("fetch community", err))
	}
	if community == nil {
		return respondError(c, models.NewNotFoundError("Community", slug))
	}

	return c.JSON(community)
}

// CreateCommunity handles POST /api/communities
func (s *Server) CreateCommunity(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Name  string `json:"name"`
		Slug  string `json:"slug"`
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Slug) == "" {
		return respondError(c, models.NewValidationError("Name and slug are required"))
	}

	creator, err := s.userRepo.GetByAuthID(ctx, callerAuthID(c))
	if err != nil {
		return respondError(c, models.NewStorageError("create community", err))
	}

	community := &models.Community{
		Name:  req.Name,
		Slug:  strings.ToLower(req.Slug),
		Image: req.Image,
	}
	if creator != nil {
		community.CreatedByUserID = &creator.ID
	}

	if err := s.communityRepo.Create(ctx, community); err != nil {
		return respondError(c, models.NewStorageError("create community", err))
	}

	return c.Status(fiber.StatusCreated).JSON(community)
}
