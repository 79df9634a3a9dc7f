package messages

import (
	"context"
	"fmt"
	"time"

	"github.com/gemgeek/gemconnect-backend/src/core/models"
	"github.com/gemgeek/gemconnect-backend/src/core/monitoring"
	"github.com/gemgeek/gemconnect-backend/src/modules/users"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// SendMessage stores a direct message. Messages are polled through
// Conversation; nothing is pushed to the receiver.
func (s *Service) SendMessage(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*models.Message, error) {
	msg := models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  s.now(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := users.Find(tx, receiverID); err != nil {
			return err
		}
		if err := tx.Create(&msg).Error; err != nil {
			return fmt.Errorf("create message: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.MessagesSent.Inc()
	logrus.WithFields(logrus.Fields{
		"message_id":  msg.ID,
		"sender_id":   senderID,
		"receiver_id": receiverID,
	}).Debug("Message sent")
	return &msg, nil
}

// Conversation returns the messages exchanged between the two users in either
// direction, oldest first.
func (s *Service) Conversation(ctx context.Context, userID, friendID uuid.UUID) ([]models.Message, error) {
	db := s.db.WithContext(ctx)
	if _, err := users.Find(db, friendID); err != nil {
		return nil, err
	}

	var out []models.Message
	err := db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, friendID, friendID, userID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}
	return out, nil
}
