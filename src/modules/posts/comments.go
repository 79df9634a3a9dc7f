package posts

import (
	"context"
	"fmt"

	"github.com/gemgeek/gemconnect-backend/src/core/models"
	"github.com/gemgeek/gemconnect-backend/src/modules/notifications"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateComment adds a comment and, unless authors comment on their own
// post, notifies the post's author in the same transaction.
func (s *Service) CreateComment(ctx context.Context, authorID, postID uuid.UUID, text string) (*models.Comment, error) {
	comment := models.Comment{
		AuthorID:  authorID,
		PostID:    postID,
		Text:      text,
		CreatedAt: s.now(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := findPost(tx, postID)
		if err != nil {
			return err
		}
		if err := tx.Create(&comment).Error; err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		if post.AuthorID == authorID {
			return nil
		}
		n := notifications.ForPost(models.NotificationComment, post, authorID)
		n.CreatedAt = comment.CreatedAt
		return notifications.Record(tx, n)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// CommentsByPosts groups the comments of each post, oldest first.
func (s *Service) CommentsByPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID][]models.Comment, error) {
	var rows []models.Comment
	err := s.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}
	out := make(map[uuid.UUID][]models.Comment, len(postIDs))
	for _, c := range rows {
		out[c.PostID] = append(out[c.PostID], c)
	}
	return out, nil
}
