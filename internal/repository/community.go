package repository

import (
	"context"

	"threadloom/internal/models"

	"gorm.io/gorm"
)

// CommunityRepository defines the interface for community data operations.
// Lookups that find nothing return (nil, nil), not an error.
type CommunityRepository interface {
	Create(ctx context.Context, community *models.Community) error
	GetByID(ctx context.Context, id uint) (*models.Community, error)
	GetBySlug(ctx context.Context, slug string) (*models.Community, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Community, error)
	List(ctx context.Context, limit, offset int) ([]*models.Community, error)
}

type communityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository creates a new CommunityRepository
func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) Create(ctx context.Context, community *models.Community) error {
	return r.db.WithContext(ctx).Create(community).Error
}

func (r *communityRepository) GetByID(ctx context.Context, id uint) (*models.Community, error) {
	var community models.Community
	err := r.db.WithContext(ctx).First(&community, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *communityRepository) GetBySlug(ctx context.Context, slug string) (*models.Community, error) {
	var community models.Community
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&community).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *communityRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.Community, error) {
	if len(ids) == 0 {
		return []*models.Community{}, nil
	}

	var communities []*models.Community
	err := r.db.WithContext(ctx).
		Select("id", "name", "slug", "image").
		Where("id IN ?", ids).
		Find(&communities).Error
	return communities, err
}

func (r *communityRepository) List(ctx context.Context, limit, offset int) ([]*models.Community, error) {
	var communities []*models.Community
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&communities).Error
	return communities, err
}
