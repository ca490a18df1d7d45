package database

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"storyhub/internal/config"
	"storyhub/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}
}

func TestConnectAndMigrate_SQLite(t *testing.T) {
	db, err := Connect(sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	require.NoError(t, Ping(context.Background(), db))

	for _, m := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(m), "%T table missing", m)
	}
	assert.True(t, db.Migrator().HasIndex(&models.Like{}, "idx_likes_user_story"))
	assert.False(t, db.Migrator().HasColumn(&models.Story{}, "likes_count"))
}

func TestMigrate_EnforcesForeignKeys(t *testing.T) {
	db, err := Connect(sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(db))

	err = db.Omit(clause.Associations).Create(&models.Story{Title: "t", Content: "c", OwnerID: 999}).Error
	assert.Error(t, err)
}

func TestMigrate_UniqueLikeTranslated(t *testing.T) {
	db, err := Connect(sqliteConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(db))

	user := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	story := models.Story{Title: "t", Content: "c", OwnerID: user.ID}
	require.NoError(t, db.Omit(clause.Associations).Create(&story).Error)

	require.NoError(t, db.Omit(clause.Associations).Create(&models.Like{UserID: user.ID, StoryID: story.ID}).Error)
	err = db.Omit(clause.Associations).Create(&models.Like{UserID: user.ID, StoryID: story.ID}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestDialector(t *testing.T) {
	d, err := Dialector(&config.Config{DBDriver: "postgres", DBHost: "db", DBPort: "5432"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = Dialector(&config.Config{DBDriver: "sqlite", SQLitePath: "dev.db"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	_, err = Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "dev.db?_foreign_keys=1", SQLiteDSN("dev.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=1", SQLiteDSN("file:x?mode=memory"))
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm duplicated key", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"pg fk violation", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite message", errors.New("UNIQUE constraint failed: likes.user_id, likes.story_id"), true},
		{"other", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err))
		})
	}
}

func TestCustomGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(slog.New(slog.NewTextHandler(&buf, nil)), logger.Warn)
	ctx := context.Background()
	sql := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(ctx, time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(ctx, time.Now(), sql, errors.New("syntax error"))
	assert.Contains(t, buf.String(), "GORM query error")
	buf.Reset()

	l.Trace(ctx, time.Now().Add(-time.Second), sql, nil)
	assert.Contains(t, buf.String(), "GORM slow query")
	buf.Reset()

	l.Trace(ctx, time.Now(), sql, nil)
	assert.Empty(t, buf.String())

	l.LogMode(logger.Info).Trace(ctx, time.Now(), sql, nil)
	assert.Contains(t, buf.String(), "GORM query")
	buf.Reset()

	l.LogMode(logger.Silent).Trace(ctx, time.Now(), sql, errors.New("ignored"))
	assert.Empty(t, buf.String())
}
