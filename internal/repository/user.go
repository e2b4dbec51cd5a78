package repository

import (
	"context"
	"strings"

	"threadloom/internal/cache"
	"threadloom/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListUsersQuery describes a windowed, filtered user listing.
type ListUsersQuery struct {
	// ExcludeAuthID removes the caller from the results.
	ExcludeAuthID string
	// Search filters case-insensitively on username or name. Empty after
	// trimming disables the filter.
	Search    string
	Limit     int
	Offset    int
	Ascending bool
}

// UserRepository defines the interface for user data operations.
// Lookups that find nothing return (nil, nil), not an error.
type UserRepository interface {
	GetByAuthID(ctx context.Context, authID string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, q ListUsersQuery) ([]models.User, error)
	Count(ctx context.Context, q ListUsersQuery) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByAuthID(ctx context.Context, authID string) (*models.User, error) {
	var user models.User
	err := cache.CacheAside(ctx, cache.UserKey(authID), &user, cache.UserTTL, func() error {
		return r.db.WithContext(ctx).Where("auth_id = ?", authID).First(&user).Error
	})
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert inserts the user or, when a row with the same auth_id exists,
// updates its profile columns in place. Thread and community lists are
// never touched by an upsert.
func (r *userRepository) Upsert(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "auth_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"username", "name", "bio", "image", "onboarded", "updated_at",
			}),
		}).
		Create(user).Error
	if err != nil {
		return err
	}
	cache.InvalidateUser(ctx, user.AuthID)
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return err
	}
	cache.InvalidateUser(ctx, user.AuthID)
	return nil
}

func (r *userRepository) List(ctx context.Context, q ListUsersQuery) ([]models.User, error) {
	order := "created_at DESC"
	if q.Ascending {
		order = "created_at ASC"
	}

	var users []models.User
	err := r.listScope(ctx, q).
		Order(order).
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&users).Error
	return users, err
}

func (r *userRepository) Count(ctx context.Context, q ListUsersQuery) (int64, error) {
	var count int64
	err := r.listScope(ctx, q).Count(&count).Error
	return count, err
}

func (r *userRepository) listScope(ctx context.Context, q ListUsersQuery) *gorm.DB {
	scope := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("auth_id <> ?", q.ExcludeAuthID)

	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		scope = scope.Where(
			`LOWER(username) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\'`,
			pattern, pattern,
		)
	}
	return scope
}

// escapeLike neutralizes LIKE metacharacters so arbitrary search input
// can never change the shape of the pattern.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
