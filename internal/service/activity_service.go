package service

import (
	"context"

	"threadloom/internal/models"
	"threadloom/internal/repository"
)

// ActivityService derives a user's activity feed: the replies other
// users left on that user's threads.
type ActivityService struct {
	threadRepo repository.ThreadRepository
	userRepo   repository.UserRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(threadRepo repository.ThreadRepository, userRepo repository.UserRepository) *ActivityService {
	return &ActivityService{threadRepo: threadRepo, userRepo: userRepo}
}

// GetActivity flattens the children lists of every thread the user
// authored into one candidate ID sequence (duplicates preserved, not
// deduplicated), then resolves those IDs to threads excluding the user's
// own replies. Authors come back as a minimal projection. An unknown
// user or one with no qualifying replies yields an empty slice, not an
// error. No ordering beyond storage default.
func (s *ActivityService) GetActivity(ctx context.Context, authID string) ([]*models.Thread, error) {
	user, err := s.userRepo.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, models.NewStorageError("fetch activity", err)
	}
	if user == nil {
		return []*models.Thread{}, nil
	}

	threads, err := s.threadRepo.ListByAuthor(ctx, user.ID)
	if err != nil {
		return nil, models.NewStorageError("fetch activity", err)
	}

	var replyIDs []uint
	for _, t := range threads {
		replyIDs = append(replyIDs, t.Children...)
	}
	if len(replyIDs) == 0 {
		return []*models.Thread{}, nil
	}

	replies, err := s.threadRepo.ListRepliesExcluding(ctx, replyIDs, user.ID)
	if err != nil {
		return nil, models.NewStorageError("fetch activity", err)
	}
	return replies, nil
}
