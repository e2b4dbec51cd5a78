package service

import (
	"context"
	"testing"

	"threadloom/internal/models"
	"threadloom/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpdateProfile_LowercasesAndOnboards(t *testing.T) {
	t.Parallel()

	var saved *models.User
	userRepo := noopUserRepo()
	userRepo.upsertFn = func(_ context.Context, u *models.User) error {
		saved = u
		return nil
	}

	svc := NewUserService(userRepo, noopThreadRepo(), noopCommunityRepo(), nil)
	err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		AuthID:   "u1",
		Username: "MixedCase_Name",
		Name:     "Ada Lovelace",
		Bio:      "first programmer",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "mixedcase_name", saved.Username)
	assert.True(t, saved.Onboarded, "every successful save onboards the user")
}

func TestUserService_UpdateProfile_Validation(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo(), noopThreadRepo(), noopCommunityRepo(), nil)
	ctx := context.Background()

	cases := []struct {
		name string
		in   UpdateProfileInput
	}{
		{"username too short", UpdateProfileInput{AuthID: "u1", Username: "ab", Name: "Ada Lovelace"}},
		{"username bad chars", UpdateProfileInput{AuthID: "u1", Username: "no spaces!", Name: "Ada Lovelace"}},
		{"name too short", UpdateProfileInput{AuthID: "u1", Username: "ada", Name: "Al"}},
		{"bad image url", UpdateProfileInput{AuthID: "u1", Username: "ada", Name: "Ada Lovelace", Image: "::not-a-url"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := svc.UpdateProfile(ctx, tc.in)
			assertValidationError(t, err)
		})
	}
}

func TestUserService_UpdateProfile_PathLiteralInvalidation(t *testing.T) {
	t.Parallel()

	newSvc := func(invalidated *[]string) *UserService {
		return NewUserService(noopUserRepo(), noopThreadRepo(), noopCommunityRepo(),
			func(_ context.Context, p string) { *invalidated = append(*invalidated, p) })
	}
	in := UpdateProfileInput{AuthID: "u1", Username: "ada", Name: "Ada Lovelace"}
	ctx := context.Background()

	t.Run("exact path invalidates", func(t *testing.T) {
		t.Parallel()
		var invalidated []string
		in := in
		in.Path = "/profile/edit"
		require.NoError(t, newSvc(&invalidated).UpdateProfile(ctx, in))
		assert.Equal(t, []string{"/profile/edit"}, invalidated)
	})

	t.Run("other paths do not", func(t *testing.T) {
		t.Parallel()
		var invalidated []string
		in := in
		in.Path = "/onboarding"
		require.NoError(t, newSvc(&invalidated).UpdateProfile(ctx, in))
		assert.Empty(t, invalidated)
	})
}

func TestUserService_GetUser_AttachesCommunities(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByAuthIDFn = func(_ context.Context, authID string) (*models.User, error) {
		return &models.User{ID: 3, AuthID: authID, CommunityIDs: models.IDList{8, 2}}, nil
	}

	var askedIDs []uint
	communityRepo := noopCommunityRepo()
	communityRepo.getByIDsFn = func(_ context.Context, ids []uint) ([]*models.Community, error) {
		askedIDs = ids
		return []*models.Community{{ID: 8}, {ID: 2}}, nil
	}

	svc := NewUserService(userRepo, noopThreadRepo(), communityRepo, nil)
	user, err := svc.GetUser(context.Background(), "u3")
	require.NoError(t, err)
	assert.Equal(t, []uint{8, 2}, askedIDs)
	assert.Len(t, user.Communities, 2)
}

func TestUserService_GetUser_Missing(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByAuthIDFn = func(_ context.Context, _ string) (*models.User, error) { return nil, nil }

	svc := NewUserService(userRepo, noopThreadRepo(), noopCommunityRepo(), nil)
	user, err := svc.GetUser(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserService_GetUserThreads_UnknownUser(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByAuthIDFn = func(_ context.Context, _ string) (*models.User, error) { return nil, nil }

	svc := NewUserService(userRepo, noopThreadRepo(), noopCommunityRepo(), nil)
	_, err := svc.GetUserThreads(context.Background(), "ghost")
	assertNotFoundError(t, err)
}

func TestUserService_ListUsers_ExcludesCallerAndWindows(t *testing.T) {
	t.Parallel()

	var gotQuery repository.ListUsersQuery
	userRepo := noopUserRepo()
	userRepo.listFn = func(_ context.Context, q repository.ListUsersQuery) ([]models.User, error) {
		gotQuery = q
		return []models.User{{ID: 2}, {ID: 3}}, nil
	}
	userRepo.countFn = func(_ context.Context, _ repository.ListUsersQuery) (int64, error) { return 7, nil }

	svc := NewUserService(userRepo, noopThreadRepo(), noopCommunityRepo(), nil)
	page, err := svc.ListUsers(context.Background(), ListUsersInput{
		AuthID:     "caller",
		Search:     "ada",
		PageNumber: 2,
		PageSize:   2,
		SortBy:     "ASC",
	})
	require.NoError(t, err)

	assert.Equal(t, "caller", gotQuery.ExcludeAuthID)
	assert.Equal(t, "ada", gotQuery.Search)
	assert.Equal(t, 2, gotQuery.Limit)
	assert.Equal(t, 2, gotQuery.Offset)
	assert.True(t, gotQuery.Ascending)

	assert.Len(t, page.Users, 2)
	assert.True(t, page.IsNext, "7 matches with 4 consumed leaves more")
}
