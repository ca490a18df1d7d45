package repository

import (
	"testing"

	"storyhub/internal/models"
	"storyhub/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func setupTestDB(t *testing.T) *gorm.DB {
	return testutil.NewSQLiteDB(t)
}

// setupMockDB returns a postgres-dialect gorm handle backed by sqlmock.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createStory(t *testing.T, db *gorm.DB, ownerID uint, title string) *models.Story {
	t.Helper()
	s := &models.Story{Title: title, Content: title + " content", OwnerID: ownerID}
	require.NoError(t, db.Omit(clause.Associations).Create(s).Error)
	return s
}
