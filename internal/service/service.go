// Package service implements the authorization-gated operations on top of the repositories.
package service

import (
	"context"
	"errors"

	"storyhub/internal/models"
	"storyhub/internal/repository"
)

// UnitOfWork runs fn against repositories bound to a single transaction.
type UnitOfWork interface {
	Transaction(ctx context.Context, fn func(repository.Repositories) error) error
}

// notFoundAs replaces a missing-row error with a NOT_FOUND error carrying msg.
func notFoundAs(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return models.NewNotFoundError(msg)
	}
	return err
}

func storyMustExist(ctx context.Context, repos repository.Repositories, storyID uint) error {
	exists, err := repos.Stories().Exists(ctx, storyID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError(msgStoryNotFound)
	}
	return nil
}

const (
	msgStoryNotFound      = "Story not found"
	msgStoryNotAuthorized = "Story not found or not authorized"
)
