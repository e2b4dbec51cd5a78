package repository

import (
	"context"
	"testing"
	"time"

	"threadloom/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByAuthID_Missing(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(setupDB(t))
	user, err := repo.GetByAuthID(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_Upsert_Idempotent(t *testing.T) {
	t.Parallel()

	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	save := func() error {
		return repo.Upsert(ctx, &models.User{
			AuthID:    "auth-1",
			Username:  "ada",
			Name:      "Ada Lovelace",
			Bio:       "analytical engines",
			Onboarded: true,
		})
	}
	require.NoError(t, save())
	require.NoError(t, save())
	require.NoError(t, save())

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "repeated saves must not create new rows")

	user, err := repo.GetByAuthID(ctx, "auth-1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ada", user.Username)
	assert.True(t, user.Onboarded)
}

func TestUserRepository_Upsert_UpdatesProfileKeepsLists(t *testing.T) {
	t.Parallel()

	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.User{
		AuthID: "auth-1", Username: "ada", Name: "Ada Lovelace",
	}))

	// Give the stored row an owned-thread list out of band.
	stored, err := repo.GetByAuthID(ctx, "auth-1")
	require.NoError(t, err)
	stored.ThreadIDs = models.IDList{4, 5}
	require.NoError(t, repo.Update(ctx, stored))

	// A later profile save must not clobber the list.
	require.NoError(t, repo.Upsert(ctx, &models.User{
		AuthID: "auth-1", Username: "ada_l", Name: "Ada King", Bio: "countess",
	}))

	user, err := repo.GetByAuthID(ctx, "auth-1")
	require.NoError(t, err)
	assert.Equal(t, "ada_l", user.Username)
	assert.Equal(t, "Ada King", user.Name)
	assert.Equal(t, models.IDList{4, 5}, user.ThreadIDs)
}

func TestUserRepository_List_ExcludesCaller(t *testing.T) {
	t.Parallel()

	db := setupDB(t)
	repo := NewUserRepository(db)
	mustCreateUser(t, db, "auth-1", "ada")
	mustCreateUser(t, db, "auth-2", "grace")
	mustCreateUser(t, db, "auth-3", "edsger")

	users, err := repo.List(context.Background(), ListUsersQuery{
		ExcludeAuthID: "auth-2",
		Limit:         10,
	})
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, "auth-2", u.AuthID)
	}

	count, err := repo.Count(context.Background(), ListUsersQuery{ExcludeAuthID: "auth-2"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUserRepository_List_SearchCaseInsensitive(t *testing.T) {
	t.Parallel()

	db := setupDB(t)
	repo := NewUserRepository(db)
	mustCreateUser(t, db, "auth-1", "ada_lovelace")
	grace := mustCreateUser(t, db, "auth-2", "ghopper")
	grace.Name = "Grace Hopper"
	require.NoError(t, db.Save(grace).Error)
	mustCreateUser(t, db, "auth-3", "edsger")

	ctx := context.Background()

	t.Run("matches username", func(t *testing.T) {
		users, err := repo.List(ctx, ListUsersQuery{Search: "ADA", Limit: 10})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "ada_lovelace", users[0].Username)
	})

	t.Run("matches display name", func(t *testing.T) {
		users, err := repo.List(ctx, ListUsersQuery{Search: "hopper", Limit: 10})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "ghopper", users[0].Username)
	})

	t.Run("whitespace-only search disables the filter", func(t *testing.T) {
		users, err := repo.List(ctx, ListUsersQuery{Search: "   ", Limit: 10})
		require.NoError(t, err)
		assert.Len(t, users, 3)
	})

	t.Run("metacharacters are literal", func(t *testing.T) {
		users, err := repo.List(ctx, ListUsersQuery{Search: "%", Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, users, "a bare wildcard must not match everything")

		users, err = repo.List(ctx, ListUsersQuery{Search: "a_l", Limit: 10})
		require.NoError(t, err)
		require.Len(t, users, 1, "underscore matches itself, not any character")
		assert.Equal(t, "ada_lovelace", users[0].Username)
	})
}

func TestUserRepository_List_OrderAndWindow(t *testing.T) {
	t.Parallel()

	db := setupDB(t)
	repo := NewUserRepository(db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		user := &models.User{
			AuthID:    "auth-" + name,
			Username:  name,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.Create(user).Error)
	}
	ctx := context.Background()

	users, err := repo.List(ctx, ListUsersQuery{Limit: 2})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "third", users[0].Username, "default order is newest first")
	assert.Equal(t, "second", users[1].Username)

	users, err = repo.List(ctx, ListUsersQuery{Limit: 2, Offset: 2, Ascending: true})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "third", users[0].Username)
}
