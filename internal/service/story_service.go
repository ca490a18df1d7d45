package service

import (
	"context"
	"errors"
	"time"

	"storyhub/internal/models"
	"storyhub/internal/observability"
	"storyhub/internal/repository"
	"storyhub/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type StoryService struct {
	uow UnitOfWork
	now func() time.Time
}

type CreateStoryInput struct {
	OwnerID uint
	Title   string
	Content string
}

// UpdateStoryInput patches a story. Nil fields are left untouched.
type UpdateStoryInput struct {
	UserID  uint
	StoryID uint
	Title   *string
	Content *string
}

func NewStoryService(uow UnitOfWork) *StoryService {
	return &StoryService{uow: uow, now: time.Now}
}

func (s *StoryService) Create(ctx context.Context, in CreateStoryInput) (story *models.Story, err error) {
	ctx, span := observability.StartSpan(ctx, "StoryService", "Create")
	defer func() { observability.EndSpan(span, err) }()

	if err := validation.ValidateStoryTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateStoryContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	story = &models.Story{Title: in.Title, Content: in.Content, OwnerID: in.OwnerID}
	err = s.uow.Transaction(ctx, func(repos repository.Repositories) error {
		return repos.Stories().Create(ctx, story)
	})
	if err != nil {
		return nil, err
	}

	observability.StoryMutations.WithLabelValues("story", "create").Inc()
	return story, nil
}

// List returns every story, newest first, with like and comment counts.
func (s *StoryService) List(ctx context.Context) (stories []*models.Story, err error) {
	ctx, span := observability.StartSpan(ctx, "StoryService", "List")
	defer func() { observability.EndSpan(span, err) }()

	err = s.uow.Transaction(ctx, func(repos repository.Repositories) error {
		var err error
		stories, err = repos.Stories().List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stories, nil
}

// Get returns one story with its comments, oldest first.
func (s *StoryService) Get(ctx context.Context, storyID uint) (story *models.Story, err error) {
	ctx, span := observability.StartSpan(ctx, "StoryService", "Get", attribute.Int64("story.id", int64(storyID)))
	defer func() { observability.EndSpan(span, err) }()

	err = s.uow.Transaction(ctx, func(repos repository.Repositories) error {
		var err error
		story, err = repos.Stories().GetDetail(ctx, storyID)
		return notFoundAs(err, msgStoryNotFound)
	})
	if err != nil {
		return nil, err
	}
	return story, nil
}

// Update applies the supplied fields when the caller owns the story. A
// missing story and a foreign story are reported identically.
func (s *StoryService) Update(ctx context.Context, in UpdateStoryInput) (story *models.Story, err error) {
	ctx, span := observability.StartSpan(ctx, "StoryService", "Update", attribute.Int64("story.id", int64(in.StoryID)))
	defer func() { observability.EndSpan(span, err) }()

	fields := map[string]interface{}{}
	if in.Title != nil {
		if err := validation.ValidateStoryTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["title"] = *in.Title
	}
	if in.Content != nil {
		if err := validation.ValidateStoryContent(*in.Content); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["content"] = *in.Content
	}

	err = s.uow.Transaction(ctx, func(repos repository.Repositories) error {
		if err := s.authorize(ctx, repos, in.UserID, in.StoryID); err != nil {
			return err
		}

		if len(fields) > 0 {
			fields["updated_at"] = s.now().UTC()
			if err := repos.Stories().UpdateFields(ctx, in.StoryID, fields); err != nil {
				return notFoundAs(err, msgStoryNotAuthorized)
			}
		}

		var err error
		story, err = repos.Stories().GetDetail(ctx, in.StoryID)
		return notFoundAs(err, msgStoryNotAuthorized)
	})
	if err != nil {
		return nil, err
	}

	observability.StoryMutations.WithLabelValues("story", "update").Inc()
	return story, nil
}

// Delete removes the caller's story along with its comments and likes.
func (s *StoryService) Delete(ctx context.Context, userID, storyID uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "StoryService", "Delete", attribute.Int64("story.id", int64(storyID)))
	defer func() { observability.EndSpan(span, err) }()

	err = s.uow.Transaction(ctx, func(repos repository.Repositories) error {
		if err := s.authorize(ctx, repos, userID, storyID); err != nil {
			return err
		}
		return notFoundAs(repos.Stories().Delete(ctx, storyID), msgStoryNotAuthorized)
	})
	if err != nil {
		return err
	}

	observability.StoryMutations.WithLabelValues("story", "delete").Inc()
	return nil
}

func (s *StoryService) authorize(ctx context.Context, repos repository.Repositories, userID, storyID uint) error {
	story, err := repos.Stories().GetByID(ctx, storyID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.NewNotFoundError(msgStoryNotAuthorized)
	}
	if err != nil {
		return err
	}
	if story.OwnerID != userID {
		return models.NewNotFoundError(msgStoryNotAuthorized)
	}
	return nil
}
