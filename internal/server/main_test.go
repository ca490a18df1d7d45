package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storyhub/internal/config"
	"storyhub/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:            "test",
		Port:           "0",
		JWTSecret:      "test-secret-key-12345678901234567890123456789012",
		JWTTTL:         time.Hour,
		BcryptCost:     bcrypt.MinCost,
		AllowedOrigins: "*",
	}
}

// newTestServer builds a server over a fresh sqlite database, without Redis.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(testConfig(), testutil.NewSQLiteDB(t), nil)
	require.NoError(t, err)
	return s
}

// newTestServerWithRedis builds a server backed by miniredis.
func newTestServerWithRedis(t *testing.T) (*Server, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s, err := NewServer(testConfig(), testutil.NewSQLiteDB(t), rdb)
	require.NoError(t, err)
	return s, mr
}

// do sends a request and decodes a JSON response body into out when out is non-nil.
func do(t *testing.T, s *Server, method, path, token string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// register creates an account and returns its token.
func register(t *testing.T, s *Server, username string) string {
	t.Helper()
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	status := do(t, s, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    strings.ToLower(username) + "@example.com",
		"password": "pw1",
	}, &tok)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "bearer", tok.TokenType)
	return tok.AccessToken
}

type storyJSON struct {
	ID            uint          `json:"id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	OwnerID       uint          `json:"owner_id"`
	UpdatedAt     *time.Time    `json:"updated_at"`
	LikesCount    int64         `json:"likes_count"`
	CommentsCount int64         `json:"comments_count"`
	Comments      []commentJSON `json:"comments"`
}

type commentJSON struct {
	ID       uint   `json:"id"`
	Content  string `json:"content"`
	AuthorID uint   `json:"author_id"`
	StoryID  uint   `json:"story_id"`
	Author   struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	} `json:"author"`
}

func createStory(t *testing.T, s *Server, token, title, content string) storyJSON {
	t.Helper()
	var story storyJSON
	status := do(t, s, http.MethodPost, "/stories", token, map[string]string{"title": title, "content": content}, &story)
	require.Equal(t, http.StatusCreated, status)
	return story
}
