package models

import "time"

// Comment is a user's reply on a story.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"author"`
	StoryID   uint      `gorm:"not null;index" json:"story_id"`
	Story     *Story    `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
