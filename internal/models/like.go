package models

import "time"

// Like records that a user liked a story. A user likes a story at most once.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_story" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	StoryID   uint      `gorm:"not null;uniqueIndex:idx_likes_user_story;index" json:"story_id"`
	Story     *Story    `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
