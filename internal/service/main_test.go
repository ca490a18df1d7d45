package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storyhub/internal/auth"
	"storyhub/internal/models"
	"storyhub/internal/repository"
	"storyhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

type fixture struct {
	db       *gorm.DB
	store    *repository.Store
	tokens   *auth.TokenService
	auth     *AuthService
	stories  *StoryService
	comments *CommentService
	likes    *LikeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	store := repository.NewStore(db)
	tokens, err := auth.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	return &fixture{
		db:       db,
		store:    store,
		tokens:   tokens,
		auth:     NewAuthService(store, auth.NewPasswordHasher(bcrypt.MinCost), tokens, nil),
		stories:  NewStoryService(store),
		comments: NewCommentService(store),
		likes:    NewLikeService(store),
	}
}

// register creates a user and returns its id.
func (f *fixture) register(t *testing.T, username string) uint {
	t.Helper()
	token, err := f.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "pw1",
	})
	require.NoError(t, err)
	claims, err := f.tokens.Verify(token)
	require.NoError(t, err)
	return claims.UserID
}

func (f *fixture) story(t *testing.T, ownerID uint, title string) *models.Story {
	t.Helper()
	s, err := f.stories.Create(context.Background(), CreateStoryInput{OwnerID: ownerID, Title: title, Content: title + " body"})
	require.NoError(t, err)
	return s
}

// failingUnitOfWork fails every transaction the way a broken database would.
type failingUnitOfWork struct {
	err error
}

func (u failingUnitOfWork) Transaction(_ context.Context, _ func(repository.Repositories) error) error {
	return u.err
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code, appErr.Message)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeValidation)
}

func strPtr(s string) *string { return &s }
