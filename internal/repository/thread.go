// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"threadloom/internal/cache"
	"threadloom/internal/models"
	"threadloom/internal/observability"

	"gorm.io/gorm"
)

// ThreadRepository defines the interface for thread data operations.
// Lookups that find nothing return (nil, nil), not an error.
type ThreadRepository interface {
	Create(ctx context.Context, thread *models.Thread) error
	Update(ctx context.Context, thread *models.Thread) error
	GetByID(ctx context.Context, id uint) (*models.Thread, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Thread, error)
	ListTopLevel(ctx context.Context, limit, offset int) ([]*models.Thread, error)
	CountTopLevel(ctx context.Context) (int64, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]*models.Thread, error)
	ListRepliesExcluding(ctx context.Context, ids []uint, excludeAuthorID uint) ([]*models.Thread, error)
	ListOwned(ctx context.Context, ids []uint) ([]*models.Thread, error)
}

type threadRepository struct {
	db *gorm.DB
}

// NewThreadRepository creates a new ThreadRepository
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

// authorProjection restricts a preloaded author to its display fields.
func authorProjection(db *gorm.DB) *gorm.DB {
	return db.Select("id", "auth_id", "username", "name", "image")
}

// communityProjection restricts a preloaded community to its display fields.
func communityProjection(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "slug", "image")
}

func (r *threadRepository) Create(ctx context.Context, thread *models.Thread) error {
	defer observability.TrackQuery("insert", "threads")()
	return r.db.WithContext(ctx).Create(thread).Error
}

func (r *threadRepository) Update(ctx context.Context, thread *models.Thread) error {
	defer observability.TrackQuery("update", "threads")()
	if err := r.db.WithContext(ctx).Save(thread).Error; err != nil {
		return err
	}
	cache.InvalidateThread(ctx, thread.ID)
	return nil
}

func (r *threadRepository) GetByID(ctx context.Context, id uint) (*models.Thread, error) {
	var thread models.Thread
	err := cache.CacheAside(ctx, cache.ThreadKey(id), &thread, cache.ThreadTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Author", authorProjection).
			First(&thread, id).Error
	})
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.Thread, error) {
	if len(ids) == 0 {
		return []*models.Thread{}, nil
	}

	var threads []*models.Thread
	err := r.db.WithContext(ctx).
		Preload("Author", authorProjection).
		Where("id IN ?", ids).
		Find(&threads).Error
	if err != nil {
		return nil, err
	}

	return reorderByIDs(threads, ids), nil
}

func (r *threadRepository) ListTopLevel(ctx context.Context, limit, offset int) ([]*models.Thread, error) {
	defer observability.TrackQuery("select", "threads")()

	var threads []*models.Thread
	err := r.db.WithContext(ctx).
		Preload("Author", authorProjection).
		Where("parent_id IS NULL").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&threads).Error
	if err != nil {
		return nil, err
	}

	if err := r.populateReplies(ctx, threads); err != nil {
		return nil, err
	}
	return threads, nil
}

func (r *threadRepository) CountTopLevel(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Thread{}).
		Where("parent_id IS NULL").
		Count(&count).Error
	return count, err
}

func (r *threadRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Thread, error) {
	var threads []*models.Thread
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Find(&threads).Error
	return threads, err
}

func (r *threadRepository) ListRepliesExcluding(ctx context.Context, ids []uint, excludeAuthorID uint) ([]*models.Thread, error) {
	if len(ids) == 0 {
		return []*models.Thread{}, nil
	}

	var threads []*models.Thread
	err := r.db.WithContext(ctx).
		Preload("Author", authorProjection).
		Where("id IN ?", ids).
		Where("author_id <> ?", excludeAuthorID).
		Find(&threads).Error
	return threads, err
}

func (r *threadRepository) ListOwned(ctx context.Context, ids []uint) ([]*models.Thread, error) {
	if len(ids) == 0 {
		return []*models.Thread{}, nil
	}

	var threads []*models.Thread
	err := r.db.WithContext(ctx).
		Preload("Community", communityProjection).
		Where("id IN ?", ids).
		Find(&threads).Error
	if err != nil {
		return nil, err
	}

	threads = reorderByIDs(threads, ids)
	if err := r.populateReplies(ctx, threads); err != nil {
		return nil, err
	}
	return threads, nil
}

// populateReplies attaches the first-level replies of each thread in one
// batched lookup, preserving each parent's Children order.
func (r *threadRepository) populateReplies(ctx context.Context, threads []*models.Thread) error {
	var childIDs []uint
	for _, t := range threads {
		childIDs = append(childIDs, t.Children...)
	}
	if len(childIDs) == 0 {
		return nil
	}

	var replies []*models.Thread
	err := r.db.WithContext(ctx).
		Preload("Author", authorProjection).
		Where("id IN ?", childIDs).
		Find(&replies).Error
	if err != nil {
		return err
	}

	byID := make(map[uint]*models.Thread, len(replies))
	for _, reply := range replies {
		byID[reply.ID] = reply
	}
	for _, t := range threads {
		for _, id := range t.Children {
			if reply, ok := byID[id]; ok {
				t.Replies = append(t.Replies, reply)
			}
		}
	}
	return nil
}

// reorderByIDs sorts threads to match the order of ids. IDs with no
// matching row are skipped; duplicate ids do not duplicate rows.
func reorderByIDs(threads []*models.Thread, ids []uint) []*models.Thread {
	byID := make(map[uint]*models.Thread, len(threads))
	for _, t := range threads {
		byID[t.ID] = t
	}

	ordered := make([]*models.Thread, 0, len(threads))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok && !seen[id] {
			ordered = append(ordered, t)
			seen[id] = true
		}
	}
	return ordered
}
