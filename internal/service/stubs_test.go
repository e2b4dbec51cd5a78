package service

import (
	"context"

	"threadloom/internal/models"
	"threadloom/internal/repository"
)

// threadRepoStub is a stub for repository.ThreadRepository.
type threadRepoStub struct {
	createFn               func(context.Context, *models.Thread) error
	updateFn               func(context.Context, *models.Thread) error
	getByIDFn              func(context.Context, uint) (*models.Thread, error)
	getByIDsFn             func(context.Context, []uint) ([]*models.Thread, error)
	listTopLevelFn         func(context.Context, int, int) ([]*models.Thread, error)
	countTopLevelFn        func(context.Context) (int64, error)
	listByAuthorFn         func(context.Context, uint) ([]*models.Thread, error)
	listRepliesExcludingFn func(context.Context, []uint, uint) ([]*models.Thread, error)
	listOwnedFn            func(context.Context, []uint) ([]*models.Thread, error)
}

func (s *threadRepoStub) Create(ctx context.Context, t *models.Thread) error {
	return s.createFn(ctx, t)
}
func (s *threadRepoStub) Update(ctx context.Context, t *models.Thread) error {
	return s.updateFn(ctx, t)
}
func (s *threadRepoStub) GetByID(ctx context.Context, id uint) (*models.Thread, error) {
	return s.getByIDFn(ctx, id)
}
func (s *threadRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]*models.Thread, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *threadRepoStub) ListTopLevel(ctx context.Context, limit, offset int) ([]*models.Thread, error) {
	return s.listTopLevelFn(ctx, limit, offset)
}
func (s *threadRepoStub) CountTopLevel(ctx context.Context) (int64, error) {
	return s.countTopLevelFn(ctx)
}
func (s *threadRepoStub) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Thread, error) {
	return s.listByAuthorFn(ctx, authorID)
}
func (s *threadRepoStub) ListRepliesExcluding(ctx context.Context, ids []uint, excludeAuthorID uint) ([]*models.Thread, error) {
	return s.listRepliesExcludingFn(ctx, ids, excludeAuthorID)
}
func (s *threadRepoStub) ListOwned(ctx context.Context, ids []uint) ([]*models.Thread, error) {
	return s.listOwnedFn(ctx, ids)
}

func noopThreadRepo() *threadRepoStub {
	return &threadRepoStub{
		createFn:  func(_ context.Context, _ *models.Thread) error { return nil },
		updateFn:  func(_ context.Context, _ *models.Thread) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Thread, error) { return &models.Thread{ID: id}, nil },
		getByIDsFn: func(_ context.Context, _ []uint) ([]*models.Thread, error) {
			return []*models.Thread{}, nil
		},
		listTopLevelFn: func(_ context.Context, _, _ int) ([]*models.Thread, error) {
			return []*models.Thread{}, nil
		},
		countTopLevelFn: func(_ context.Context) (int64, error) { return 0, nil },
		listByAuthorFn: func(_ context.Context, _ uint) ([]*models.Thread, error) {
			return []*models.Thread{}, nil
		},
		listRepliesExcludingFn: func(_ context.Context, _ []uint, _ uint) ([]*models.Thread, error) {
			return []*models.Thread{}, nil
		},
		listOwnedFn: func(_ context.Context, _ []uint) ([]*models.Thread, error) {
			return []*models.Thread{}, nil
		},
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByAuthIDFn func(context.Context, string) (*models.User, error)
	upsertFn      func(context.Context, *models.User) error
	updateFn      func(context.Context, *models.User) error
	listFn        func(context.Context, repository.ListUsersQuery) ([]models.User, error)
	countFn       func(context.Context, repository.ListUsersQuery) (int64, error)
}

func (s *userRepoStub) GetByAuthID(ctx context.Context, authID string) (*models.User, error) {
	return s.getByAuthIDFn(ctx, authID)
}
func (s *userRepoStub) Upsert(ctx context.Context, u *models.User) error {
	return s.upsertFn(ctx, u)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error {
	return s.updateFn(ctx, u)
}
func (s *userRepoStub) List(ctx context.Context, q repository.ListUsersQuery) ([]models.User, error) {
	return s.listFn(ctx, q)
}
func (s *userRepoStub) Count(ctx context.Context, q repository.ListUsersQuery) (int64, error) {
	return s.countFn(ctx, q)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByAuthIDFn: func(_ context.Context, authID string) (*models.User, error) {
			return &models.User{ID: 1, AuthID: authID, Username: "stub"}, nil
		},
		upsertFn: func(_ context.Context, _ *models.User) error { return nil },
		updateFn: func(_ context.Context, _ *models.User) error { return nil },
		listFn: func(_ context.Context, _ repository.ListUsersQuery) ([]models.User, error) {
			return nil, nil
		},
		countFn: func(_ context.Context, _ repository.ListUsersQuery) (int64, error) { return 0, nil },
	}
}

// communityRepoStub is a stub for repository.CommunityRepository.
type communityRepoStub struct {
	createFn   func(context.Context, *models.Community) error
	getByIDsFn func(context.Context, []uint) ([]*models.Community, error)
}

func (s *communityRepoStub) Create(ctx context.Context, c *models.Community) error {
	return s.createFn(ctx, c)
}
func (s *communityRepoStub) GetByID(_ context.Context, _ uint) (*models.Community, error) {
	return nil, nil
}
func (s *communityRepoStub) GetBySlug(_ context.Context, _ string) (*models.Community, error) {
	return nil, nil
}
func (s *communityRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]*models.Community, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *communityRepoStub) List(_ context.Context, _, _ int) ([]*models.Community, error) {
	return nil, nil
}

func noopCommunityRepo() *communityRepoStub {
	return &communityRepoStub{
		createFn: func(_ context.Context, _ *models.Community) error { return nil },
		getByIDsFn: func(_ context.Context, _ []uint) ([]*models.Community, error) {
			return []*models.Community{}, nil
		},
	}
}
