package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bookmarkd/internal/database"
	"bookmarkd/internal/models"
	"bookmarkd/internal/repositories"
)

// setupDB opens a fresh in-memory database with the full schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newLibraryService(db *gorm.DB) LibraryService {
	return NewLibraryService(db,
		repositories.NewBookRepository(db),
		repositories.NewLibraryEntryRepository(db))
}

func newGoalService(db *gorm.DB) GoalService {
	return NewGoalService(db,
		repositories.NewUserRepository(db),
		repositories.NewGoalRepository(db))
}

func newClubService(db *gorm.DB) ClubService {
	return NewClubService(db,
		repositories.NewClubRepository(db),
		repositories.NewMembershipRepository(db),
		repositories.NewPostRepository(db),
		repositories.NewCommentRepository(db))
}

func intPtr(v int) *int {
	return &v
}
