// Package presenter shapes domain models into API responses. Only the fields
// listed here are ever serialized.
package presenter

import (
	"time"

	"storyhub/internal/models"
)

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Message struct {
	Message string `json:"message"`
}

type Author struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type Comment struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	AuthorID  uint      `json:"author_id"`
	StoryID   uint      `json:"story_id"`
	Author    Author    `json:"author"`
}

type StorySummary struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   uint      `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type StoryListItem struct {
	StorySummary
	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
}

type StoryDetail struct {
	StorySummary
	UpdatedAt     *time.Time `json:"updated_at"`
	LikesCount    int64      `json:"likes_count"`
	CommentsCount int64      `json:"comments_count"`
	Comments      []Comment  `json:"comments"`
}

type Like struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	StoryID   uint      `json:"story_id"`
	CreatedAt time.Time `json:"created_at"`
}

type LikeStatus struct {
	Liked bool `json:"liked"`
}

// NewToken wraps an access token in the bearer response.
func NewToken(accessToken string) Token {
	return Token{AccessToken: accessToken, TokenType: "bearer"}
}

// NewMessage builds a plain confirmation response.
func NewMessage(msg string) Message {
	return Message{Message: msg}
}

func NewStorySummary(s *models.Story) StorySummary {
	return StorySummary{
		ID:        s.ID,
		Title:     s.Title,
		Content:   s.Content,
		OwnerID:   s.OwnerID,
		CreatedAt: s.CreatedAt,
	}
}

func NewStoryListItem(s *models.Story) StoryListItem {
	return StoryListItem{
		StorySummary:  NewStorySummary(s),
		LikesCount:    s.LikesCount,
		CommentsCount: s.CommentsCount,
	}
}

func NewStoryList(stories []*models.Story) []StoryListItem {
	items := make([]StoryListItem, 0, len(stories))
	for _, s := range stories {
		items = append(items, NewStoryListItem(s))
	}
	return items
}

func NewStoryDetail(s *models.Story) StoryDetail {
	comments := make([]Comment, 0, len(s.Comments))
	for i := range s.Comments {
		comments = append(comments, NewComment(&s.Comments[i]))
	}
	return StoryDetail{
		StorySummary:  NewStorySummary(s),
		UpdatedAt:     s.UpdatedAt,
		LikesCount:    s.LikesCount,
		CommentsCount: s.CommentsCount,
		Comments:      comments,
	}
}

func NewComment(c *models.Comment) Comment {
	return Comment{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		AuthorID:  c.AuthorID,
		StoryID:   c.StoryID,
		Author:    Author{ID: c.Author.ID, Username: c.Author.Username},
	}
}

func NewCommentList(comments []*models.Comment) []Comment {
	out := make([]Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewComment(c))
	}
	return out
}

func NewLike(l *models.Like) Like {
	return Like{
		ID:        l.ID,
		UserID:    l.UserID,
		StoryID:   l.StoryID,
		CreatedAt: l.CreatedAt,
	}
}
