package repository

import (
	"testing"
	"time"

	"threadloom/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens a fresh in-memory database with the full schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection to :memory: is its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Community{},
		&models.Thread{},
	))
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, authID, username string) *models.User {
	t.Helper()
	user := &models.User{
		AuthID:    authID,
		Username:  username,
		Name:      "Test " + username,
		Onboarded: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func mustCreateThread(t *testing.T, db *gorm.DB, authorID uint, text string, createdAt time.Time) *models.Thread {
	t.Helper()
	thread := &models.Thread{
		Text:      text,
		AuthorID:  authorID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(thread).Error)
	return thread
}
