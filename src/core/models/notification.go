package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
)

type Notification struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	RecipientID uuid.UUID        `gorm:"column:recipient_id;type:uuid;not null;index:idx_notifications_recipient_created,priority:1" json:"recipient_id"`
	SenderID    uuid.UUID        `gorm:"column:sender_id;type:uuid;not null" json:"sender_id"`
	Type        NotificationType `gorm:"column:notification_type;type:varchar(20);not null" json:"notification_type"`
	PostID      *uuid.UUID       `gorm:"column:post_id;type:uuid" json:"post_id,omitempty"` // nil for follow
	IsRead      bool             `gorm:"column:is_read;not null;default:false" json:"is_read"`
	CreatedAt   time.Time        `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP;index:idx_notifications_recipient_created,priority:2" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
