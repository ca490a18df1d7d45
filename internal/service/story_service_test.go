package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storyhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoryService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc := NewStoryService(failingUnitOfWork{err: errors.New("storage must not be touched")})
	ctx := context.Background()

	cases := map[string]CreateStoryInput{
		"empty title":      {OwnerID: 1, Title: "", Content: "c"},
		"blank title":      {OwnerID: 1, Title: "   ", Content: "c"},
		"title too long":   {OwnerID: 1, Title: strings.Repeat("t", 301), Content: "c"},
		"empty content":    {OwnerID: 1, Title: "t", Content: ""},
		"content too long": {OwnerID: 1, Title: "t", Content: strings.Repeat("c", 50001)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, in)
			assertValidationError(t, err)
		})
	}
}

func TestStoryService_StorageFailurePropagates(t *testing.T) {
	t.Parallel()

	svc := NewStoryService(failingUnitOfWork{err: models.NewInternalError(errors.New("db down"))})
	_, err := svc.List(context.Background())
	assertCode(t, err, models.CodeInternal)
}

func TestStoryService_CreateListGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")

	first := f.story(t, alice, "first")
	second := f.story(t, alice, "second")
	assert.Equal(t, alice, first.OwnerID)
	assert.Nil(t, first.UpdatedAt)

	list, err := f.stories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	got, err := f.stories.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)
	assert.Empty(t, got.Comments)

	_, err = f.stories.Get(ctx, 999)
	assertCode(t, err, models.CodeNotFound)
}

func TestStoryService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	story := f.story(t, alice, "original")

	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f.stories.now = func() time.Time { return fixed }

	t.Run("non-owner gets not found", func(t *testing.T) {
		_, err := f.stories.Update(ctx, UpdateStoryInput{UserID: bob, StoryID: story.ID, Title: strPtr("hijack")})
		assertCode(t, err, models.CodeNotFound)
		assert.Contains(t, err.Error(), "Story not found or not authorized")

		got, err := f.stories.Get(ctx, story.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", got.Title)
	})

	t.Run("missing story gets the same error", func(t *testing.T) {
		_, err := f.stories.Update(ctx, UpdateStoryInput{UserID: alice, StoryID: 999, Title: strPtr("x")})
		assertCode(t, err, models.CodeNotFound)
		assert.Contains(t, err.Error(), "Story not found or not authorized")
	})

	t.Run("empty patch leaves story untouched", func(t *testing.T) {
		got, err := f.stories.Update(ctx, UpdateStoryInput{UserID: alice, StoryID: story.ID})
		require.NoError(t, err)
		assert.Equal(t, "original", got.Title)
		assert.Nil(t, got.UpdatedAt)
	})

	t.Run("blank supplied title is rejected", func(t *testing.T) {
		_, err := f.stories.Update(ctx, UpdateStoryInput{UserID: alice, StoryID: story.ID, Title: strPtr(" ")})
		assertValidationError(t, err)
	})

	t.Run("partial patch", func(t *testing.T) {
		got, err := f.stories.Update(ctx, UpdateStoryInput{UserID: alice, StoryID: story.ID, Title: strPtr("renamed")})
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)
		assert.Equal(t, "original body", got.Content)
		require.NotNil(t, got.UpdatedAt)
		assert.True(t, fixed.Equal(got.UpdatedAt.UTC()))
	})
}

func TestStoryService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	story := f.story(t, alice, "doomed")

	_, err := f.comments.Create(ctx, CreateCommentInput{AuthorID: bob, StoryID: story.ID, Content: "hi"})
	require.NoError(t, err)
	_, err = f.likes.Like(ctx, bob, story.ID)
	require.NoError(t, err)

	err = f.stories.Delete(ctx, bob, story.ID)
	assertCode(t, err, models.CodeNotFound)

	require.NoError(t, f.stories.Delete(ctx, alice, story.ID))

	_, err = f.stories.Get(ctx, story.ID)
	assertCode(t, err, models.CodeNotFound)

	var comments, likes int64
	require.NoError(t, f.db.Model(&models.Comment{}).Count(&comments).Error)
	require.NoError(t, f.db.Model(&models.Like{}).Count(&likes).Error)
	assert.Zero(t, comments)
	assert.Zero(t, likes)

	err = f.stories.Delete(ctx, alice, story.ID)
	assertCode(t, err, models.CodeNotFound)
}
