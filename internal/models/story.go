package models

import "time"

// Story represents a short post owned by a user.
type Story struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"size:300;not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	OwnerID uint   `gorm:"not null;index" json:"owner_id"`
	Owner   User   `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT" json:"-"`
	// UpdatedAt stays nil until the first effective update.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
	CreatedAt time.Time  `json:"created_at"`

	Comments []Comment `gorm:"foreignKey:StoryID" json:"-"`
	Likes    []Like    `gorm:"foreignKey:StoryID" json:"-"`

	// LikesCount is not persisted; computed at query time
	LikesCount int64 `gorm:"->;-:migration" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int64 `gorm:"->;-:migration" json:"comments_count"`
}
