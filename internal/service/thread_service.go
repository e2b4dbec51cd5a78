// Package service contains the application's business logic over the
// repository layer.
package service

import (
	"context"
	"fmt"

	"threadloom/internal/models"
	"threadloom/internal/observability"
	"threadloom/internal/repository"
	"threadloom/internal/validation"
)

// DefaultThreadDepth is how many reply levels a single-thread read
// expands when no depth is configured.
const DefaultThreadDepth = 2

// InvalidateFunc drops an externally-cached view after a successful
// mutation. The path is an opaque key.
type InvalidateFunc func(ctx context.Context, path string)

// ThreadService creates threads, links replies to their parents, and
// performs bounded-depth population when reading a thread.
type ThreadService struct {
	threadRepo repository.ThreadRepository
	userRepo   repository.UserRepository
	invalidate InvalidateFunc
	maxDepth   int
}

// CreateThreadInput carries the fields for a new top-level post.
type CreateThreadInput struct {
	Text         string
	AuthorAuthID string
	CommunityID  *uint
	Path         string
}

// AddCommentInput carries the fields for a reply to an existing thread.
type AddCommentInput struct {
	ThreadID     uint
	Text         string
	AuthorAuthID string
	Path         string
}

// NewThreadService creates a new ThreadService. maxDepth <= 0 falls back
// to DefaultThreadDepth; invalidate may be nil.
func NewThreadService(
	threadRepo repository.ThreadRepository,
	userRepo repository.UserRepository,
	invalidate InvalidateFunc,
	maxDepth int,
) *ThreadService {
	if maxDepth <= 0 {
		maxDepth = DefaultThreadDepth
	}
	if invalidate == nil {
		invalidate = func(context.Context, string) {}
	}
	return &ThreadService{
		threadRepo: threadRepo,
		userRepo:   userRepo,
		invalidate: invalidate,
		maxDepth:   maxDepth,
	}
}

// CreateThread inserts a new top-level thread and appends its ID to the
// author's owned-thread list. The two writes are independent: a failure
// after the insert leaves a thread that exists but is not referenced
// from its author. No rollback is attempted.
func (s *ThreadService) CreateThread(ctx context.Context, in CreateThreadInput) (*models.Thread, error) {
	if err := validation.ValidateThreadText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	author, err := s.userRepo.GetByAuthID(ctx, in.AuthorAuthID)
	if err != nil {
		return nil, models.NewStorageError("create thread", err)
	}
	if author == nil {
		return nil, models.NewNotFoundError("User", in.AuthorAuthID)
	}

	// The community reference is accepted but not stored. The community
	// feature is incomplete upstream of this call and linking here would
	// create rows the read paths never resolve.
	thread := &models.Thread{
		Text:     in.Text,
		AuthorID: author.ID,
	}
	if err := s.threadRepo.Create(ctx, thread); err != nil {
		return nil, models.NewStorageError("create thread", err)
	}
	observability.ThreadsCreated.WithLabelValues("post").Inc()

	author.ThreadIDs = append(author.ThreadIDs, thread.ID)
	if err := s.userRepo.Update(ctx, author); err != nil {
		observability.PartialWrites.WithLabelValues("create_thread").Inc()
		return nil, models.NewStorageError(fmt.Sprintf("link thread %d to its author", thread.ID), err)
	}

	s.invalidate(ctx, in.Path)

	created, err := s.threadRepo.GetByID(ctx, thread.ID)
	if err != nil {
		return nil, models.NewStorageError("create thread", err)
	}
	if created == nil {
		return thread, nil
	}
	return created, nil
}

// AddComment creates a reply under an existing thread and appends its ID
// to the parent's children list. The append is a read-modify-write of the
// parent row: two concurrent comments on the same parent can both read
// the same children list and the later save wins, silently dropping the
// other reference. A failure between the two writes leaves a reply
// reachable only by direct lookup.
func (s *ThreadService) AddComment(ctx context.Context, in AddCommentInput) (*models.Thread, error) {
	parent, err := s.threadRepo.GetByID(ctx, in.ThreadID)
	if err != nil {
		return nil, models.NewStorageError("add comment", err)
	}
	if parent == nil {
		return nil, models.NewNotFoundError("Thread", in.ThreadID)
	}

	if err := validation.ValidateThreadText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	author, err := s.userRepo.GetByAuthID(ctx, in.AuthorAuthID)
	if err != nil {
		return nil, models.NewStorageError("add comment", err)
	}
	if author == nil {
		return nil, models.NewNotFoundError("User", in.AuthorAuthID)
	}

	comment := &models.Thread{
		Text:     in.Text,
		AuthorID: author.ID,
		ParentID: &parent.ID,
	}
	if err := s.threadRepo.Create(ctx, comment); err != nil {
		return nil, models.NewStorageError("add comment", err)
	}
	observability.ThreadsCreated.WithLabelValues("reply").Inc()

	parent.Children = append(parent.Children, comment.ID)
	if err := s.threadRepo.Update(ctx, parent); err != nil {
		observability.PartialWrites.WithLabelValues("add_comment").Inc()
		return nil, models.NewStorageError(fmt.Sprintf("link comment %d to thread %d", comment.ID, parent.ID), err)
	}

	s.invalidate(ctx, in.Path)

	created, err := s.threadRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, models.NewStorageError("add comment", err)
	}
	if created == nil {
		return comment, nil
	}
	return created, nil
}

// GetThread resolves a thread with its author and its reply tree expanded
// down to the configured depth. Nodes whose replies were cut off by the
// depth limit keep their bare Children list and are marked Truncated.
// Returns (nil, nil) when the thread does not exist.
func (s *ThreadService) GetThread(ctx context.Context, id uint) (*models.Thread, error) {
	return s.GetThreadDepth(ctx, id, s.maxDepth)
}

// GetThreadDepth is GetThread with an explicit traversal depth.
func (s *ThreadService) GetThreadDepth(ctx context.Context, id uint, maxDepth int) (*models.Thread, error) {
	if maxDepth <= 0 {
		maxDepth = s.maxDepth
	}

	thread, err := s.threadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewStorageError("fetch thread", err)
	}
	if thread == nil {
		return nil, nil
	}

	if err := s.expandReplies(ctx, thread, maxDepth); err != nil {
		return nil, models.NewStorageError("fetch thread", err)
	}
	return thread, nil
}

func (s *ThreadService) expandReplies(ctx context.Context, thread *models.Thread, depth int) error {
	if len(thread.Children) == 0 {
		return nil
	}
	if depth == 0 {
		thread.Truncated = true
		return nil
	}

	replies, err := s.threadRepo.GetByIDs(ctx, thread.Children)
	if err != nil {
		return err
	}
	thread.Replies = replies

	for _, reply := range replies {
		if err := s.expandReplies(ctx, reply, depth-1); err != nil {
			return err
		}
	}
	return nil
}
