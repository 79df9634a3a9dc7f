package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Share represents a user re-posting someone's post, optionally with a note.
type Share struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	OriginalPostID uuid.UUID `gorm:"column:original_post_id;type:uuid;not null;index" json:"original_post_id"`
	SharedByID     uuid.UUID `gorm:"column:shared_by_id;type:uuid;not null" json:"shared_by_id"`
	Message        *string   `gorm:"column:message;type:text" json:"message,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Share) TableName() string {
	return "shares"
}

func (s *Share) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
