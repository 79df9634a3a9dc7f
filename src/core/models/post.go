package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post struct represents a post in the system
type Post struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	AuthorID  uuid.UUID `gorm:"column:author_id;type:uuid;not null;index" json:"author_id"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	ImageURL  *string   `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
