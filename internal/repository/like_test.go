package repository

import (
	"context"
	"regexp"
	"testing"

	"storyhub/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	story := createStory(t, db, alice.ID, "story")

	like := &models.Like{UserID: alice.ID, StoryID: story.ID}
	require.NoError(t, repo.Create(ctx, like))
	assert.NotZero(t, like.ID)
	assert.False(t, like.CreatedAt.IsZero())

	exists, err := repo.Exists(ctx, alice.ID, story.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.Create(ctx, &models.Like{UserID: alice.ID, StoryID: story.ID})
	assert.True(t, models.IsCode(err, models.CodeConflict), "got %v", err)

	require.NoError(t, repo.Delete(ctx, alice.ID, story.ID))
	assert.ErrorIs(t, repo.Delete(ctx, alice.ID, story.ID), ErrNotFound)

	exists, err = repo.Exists(ctx, alice.ID, story.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLikeRepository_PostgresUniqueViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "likes"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_likes_user_story"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Like{UserID: 1, StoryID: 2})
	assert.True(t, models.IsCode(err, models.CodeConflict), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
