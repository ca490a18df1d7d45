package service

import (
	"context"

	"storyhub/internal/models"
	"storyhub/internal/observability"
	"storyhub/internal/repository"
)

type LikeService struct {
	uow UnitOfWork
}

func NewLikeService(uow UnitOfWork) *LikeService {
	return &LikeService{uow: uow}
}

// Like records that userID likes storyID. Liking twice is a CONFLICT.
func (s *LikeService) Like(ctx context.Context, userID, storyID uint) (like *models.Like, err error) {
	ctx, span := observability.StartSpan(ctx, "LikeService", "Like")
	defer func() { observability.EndSpan(span, err) }()

	like = &models.Like{UserID: userID, StoryID: storyID}
	err = s.uow.Transaction(ctx, func(repos repository.Repositories) error {
		if err := storyMustExist(ctx, repos, storyID); err != nil {
			return err
		}

		liked, err := repos.Likes().Exists(ctx, userID, storyID)
		if err != nil {
			return err
		}
		if liked {
			return models.NewConflictError("Story already liked")
		}

		if err := repos.Likes().Create(ctx, like); err != nil {
			if models.IsCode(err, models.CodeConflict) {
				return models.NewConflictError("Story already liked")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.Likes.WithLabelValues("like").Inc()
	return like, nil
}

// Unlike removes the caller's like.
func (s *LikeService) Unlike(ctx context.Context, userID, storyID uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "LikeService", "Unlike")
	defer func() { observability.EndSpan(span, err) }()

	err = s.uow.Transaction(ctx, func(repos repository.Repositories) error {
		return notFoundAs(repos.Likes().Delete(ctx, userID, storyID), "Like not found")
	})
	if err != nil {
		return err
	}

	observability.Likes.WithLabelValues("unlike").Inc()
	return nil
}

// Status reports whether userID likes storyID. Anonymous callers (userID 0)
// never like anything, but the story must still exist.
func (s *LikeService) Status(ctx context.Context, userID, storyID uint) (liked bool, err error) {
	ctx, span := observability.StartSpan(ctx, "LikeService", "Status")
	defer func() { observability.EndSpan(span, err) }()

	err = s.uow.Transaction(ctx, func(repos repository.Repositories) error {
		if err := storyMustExist(ctx, repos, storyID); err != nil {
			return err
		}
		if userID == 0 {
			return nil
		}
		var err error
		liked, err = repos.Likes().Exists(ctx, userID, storyID)
		return err
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}
