package service

import (
	"context"

	"threadloom/internal/models"
	"threadloom/internal/repository"
)

const defaultPageSize = 20

// FeedService computes page windows over the top-level thread feed.
type FeedService struct {
	threadRepo repository.ThreadRepository
}

// PostPage is one window of the feed plus a lookahead flag.
type PostPage struct {
	Posts  []*models.Thread `json:"posts"`
	IsNext bool             `json:"is_next"`
}

// NewFeedService creates a new FeedService
func NewFeedService(threadRepo repository.ThreadRepository) *FeedService {
	return &FeedService{threadRepo: threadRepo}
}

// ListPosts returns the pageNumber-th window of top-level threads in
// descending creation-time order, each with its author and first-level
// replies attached. IsNext is derived from a separate live count, so it
// can drift from the window under concurrent writes.
func (s *FeedService) ListPosts(ctx context.Context, pageNumber, pageSize int) (*PostPage, error) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	skip := (pageNumber - 1) * pageSize

	posts, err := s.threadRepo.ListTopLevel(ctx, pageSize, skip)
	if err != nil {
		return nil, models.NewStorageError("fetch posts", err)
	}

	total, err := s.threadRepo.CountTopLevel(ctx)
	if err != nil {
		return nil, models.NewStorageError("fetch posts", err)
	}

	return &PostPage{
		Posts:  posts,
		IsNext: total > int64(skip+len(posts)),
	}, nil
}
