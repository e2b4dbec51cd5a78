package service

import (
	"context"
	"strings"

	"threadloom/internal/models"
	"threadloom/internal/repository"
	"threadloom/internal/validation"
)

// profileEditPath is the only view whose cache is invalidated by a
// profile save. The comparison is literal, not pattern-based.
const profileEditPath = "/profile/edit"

// UserService handles profile upserts, user lookups, and the windowed
// user listing.
type UserService struct {
	userRepo      repository.UserRepository
	threadRepo    repository.ThreadRepository
	communityRepo repository.CommunityRepository
	invalidate    InvalidateFunc
}

// UpdateProfileInput carries the fields of a profile save.
type UpdateProfileInput struct {
	AuthID   string
	Username string
	Name     string
	Bio      string
	Image    string
	Path     string
}

// ListUsersInput describes a windowed user search.
type ListUsersInput struct {
	AuthID     string
	Search     string
	PageNumber int
	PageSize   int
	// SortBy is "asc" or "desc" (default) on creation time.
	SortBy string
}

// UserPage is one window of users plus a lookahead flag.
type UserPage struct {
	Users  []models.User `json:"users"`
	IsNext bool          `json:"is_next"`
}

// NewUserService creates a new UserService. invalidate may be nil.
func NewUserService(
	userRepo repository.UserRepository,
	threadRepo repository.ThreadRepository,
	communityRepo repository.CommunityRepository,
	invalidate InvalidateFunc,
) *UserService {
	if invalidate == nil {
		invalidate = func(context.Context, string) {}
	}
	return &UserService{
		userRepo:      userRepo,
		threadRepo:    threadRepo,
		communityRepo: communityRepo,
		invalidate:    invalidate,
	}
}

// UpdateProfile creates or updates the user keyed by their external auth
// ID. The username is lowercased before storage and Onboarded is set as
// a side effect of every successful save. Repeated calls with identical
// input are idempotent.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) error {
	username := strings.ToLower(in.Username)
	if err := validation.ValidateProfile(username, in.Name, in.Bio, in.Image); err != nil {
		return models.NewValidationError(err.Error())
	}

	user := &models.User{
		AuthID:    in.AuthID,
		Username:  username,
		Name:      in.Name,
		Bio:       in.Bio,
		Image:     in.Image,
		Onboarded: true,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return models.NewStorageError("create/update user", err)
	}

	if in.Path == profileEditPath {
		s.invalidate(ctx, in.Path)
	}
	return nil
}

// GetUser resolves a user together with their communities. Returns
// (nil, nil) when the user does not exist.
func (s *UserService) GetUser(ctx context.Context, authID string) (*models.User, error) {
	user, err := s.userRepo.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, models.NewStorageError("fetch user", err)
	}
	if user == nil {
		return nil, nil
	}

	communities, err := s.communityRepo.GetByIDs(ctx, user.CommunityIDs)
	if err != nil {
		return nil, models.NewStorageError("fetch user", err)
	}
	user.Communities = communities
	return user, nil
}

// GetUserThreads returns the user's owned threads in list order, each
// with its community and first-level replies attached.
func (s *UserService) GetUserThreads(ctx context.Context, authID string) ([]*models.Thread, error) {
	user, err := s.userRepo.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, models.NewStorageError("fetch user threads", err)
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", authID)
	}

	threads, err := s.threadRepo.ListOwned(ctx, user.ThreadIDs)
	if err != nil {
		return nil, models.NewStorageError("fetch user threads", err)
	}
	return threads, nil
}

// ListUsers returns the pageNumber-th window of users, always excluding
// the caller, optionally filtered by a case-insensitive search on
// username or display name.
func (s *UserService) ListUsers(ctx context.Context, in ListUsersInput) (*UserPage, error) {
	if in.PageNumber < 1 {
		in.PageNumber = 1
	}
	if in.PageSize < 1 {
		in.PageSize = defaultPageSize
	}
	skip := (in.PageNumber - 1) * in.PageSize

	q := repository.ListUsersQuery{
		ExcludeAuthID: in.AuthID,
		Search:        in.Search,
		Limit:         in.PageSize,
		Offset:        skip,
		Ascending:     strings.EqualFold(in.SortBy, "asc"),
	}

	users, err := s.userRepo.List(ctx, q)
	if err != nil {
		return nil, models.NewStorageError("fetch users", err)
	}

	total, err := s.userRepo.Count(ctx, q)
	if err != nil {
		return nil, models.NewStorageError("fetch users", err)
	}

	return &UserPage{
		Users:  users,
		IsNext: total > int64(skip+len(users)),
	}, nil
}
