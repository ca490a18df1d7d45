// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"storyhub/internal/database"
	"storyhub/internal/models"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("record not found")

// Repositories groups the repositories bound to one database handle.
type Repositories interface {
	Users() UserRepository
	Stories() StoryRepository
	Comments() CommentRepository
	Likes() LikeRepository
}

// Store hands out repositories and runs units of work.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() UserRepository       { return NewUserRepository(s.db) }
func (s *Store) Stories() StoryRepository    { return NewStoryRepository(s.db) }
func (s *Store) Comments() CommentRepository { return NewCommentRepository(s.db) }
func (s *Store) Likes() LikeRepository       { return NewLikeRepository(s.db) }

// Transaction runs fn in a single database transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(Repositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
	return translate(err)
}

// translate maps driver errors onto the application error model. Errors that
// already carry an application meaning pass through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if _, ok := models.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if database.IsUniqueViolation(err) {
		return &models.AppError{Code: models.CodeConflict, Message: "Resource already exists", Err: err}
	}
	return models.NewInternalError(err)
}
