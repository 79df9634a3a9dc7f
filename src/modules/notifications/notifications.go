package notifications

import (
	"context"
	"fmt"

	"github.com/gemgeek/gemconnect-backend/src/core/models"
	"github.com/gemgeek/gemconnect-backend/src/core/monitoring"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Record appends a notification using the caller's transaction, so it
// commits or rolls back together with the action that triggered it.
func Record(tx *gorm.DB, n *models.Notification) error {
	if err := tx.Create(n).Error; err != nil {
		return fmt.Errorf("record %s notification: %w", n.Type, err)
	}
	monitoring.NotificationsCreated.WithLabelValues(string(n.Type)).Inc()
	logrus.WithFields(logrus.Fields{
		"recipient_id": n.RecipientID,
		"sender_id":    n.SenderID,
		"type":         n.Type,
	}).Debug("Notification recorded")
	return nil
}

// ForPost builds a like/comment notification addressed to the post's author.
func ForPost(kind models.NotificationType, post *models.Post, sender uuid.UUID) *models.Notification {
	postID := post.ID
	return &models.Notification{
		RecipientID: post.AuthorID,
		SenderID:    sender,
		Type:        kind,
		PostID:      &postID,
	}
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ForRecipient returns the user's notifications, most recent first.
func (s *Service) ForRecipient(ctx context.Context, recipientID uuid.UUID) ([]models.Notification, error) {
	var out []models.Notification
	err := s.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("fetch notifications: %w", err)
	}
	return out, nil
}
