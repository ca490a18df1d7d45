package service

import (
	"context"

	"storyhub/internal/models"
	"storyhub/internal/observability"
	"storyhub/internal/repository"
	"storyhub/internal/validation"
)

const msgCommentNotAuthorized = "Comment not found or not authorized"

type CommentService struct {
	uow UnitOfWork
}

type CreateCommentInput struct {
	AuthorID uint
	StoryID  uint
	Content  string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(uow UnitOfWork) *CommentService {
	return &CommentService{uow: uow}
}

// Create adds a comment to an existing story and returns it with its author.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (comment *models.Comment, err error) {
	ctx, span := observability.StartSpan(ctx, "CommentService", "Create")
	defer func() { observability.EndSpan(span, err) }()

	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment = &models.Comment{Content: in.Content, AuthorID: in.AuthorID, StoryID: in.StoryID}
	err = s.uow.Transaction(ctx, func(repos repository.Repositories) error {
		if err := storyMustExist(ctx, repos, in.StoryID); err != nil {
			return err
		}
		return repos.Comments().Create(ctx, comment)
	})
	if err != nil {
		return nil, err
	}

	observability.StoryMutations.WithLabelValues("comment", "create").Inc()
	return comment, nil
}

// List returns the comments of a story, oldest first.
func (s *CommentService) List(ctx context.Context, storyID uint) (comments []*models.Comment, err error) {
	ctx, span := observability.StartSpan(ctx, "CommentService", "List")
	defer func() { observability.EndSpan(span, err) }()

	err = s.uow.Transaction(ctx, func(repos repository.Repositories) error {
		if err := storyMustExist(ctx, repos, storyID); err != nil {
			return err
		}
		var err error
		comments, err = repos.Comments().ListByStory(ctx, storyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Delete removes a comment written by the caller and returns it.
func (s *CommentService) Delete(ctx context.Context, in DeleteCommentInput) (comment *models.Comment, err error) {
	ctx, span := observability.StartSpan(ctx, "CommentService", "Delete")
	defer func() { observability.EndSpan(span, err) }()

	err = s.uow.Transaction(ctx, func(repos repository.Repositories) error {
		var err error
		comment, err = repos.Comments().GetByID(ctx, in.CommentID)
		if err != nil {
			return notFoundAs(err, msgCommentNotAuthorized)
		}
		if comment.AuthorID != in.UserID {
			return models.NewNotFoundError(msgCommentNotAuthorized)
		}
		return notFoundAs(repos.Comments().Delete(ctx, in.CommentID), msgCommentNotAuthorized)
	})
	if err != nil {
		return nil, err
	}

	observability.StoryMutations.WithLabelValues("comment", "delete").Inc()
	return comment, nil
}
