package posts

import (
	"context"
	"fmt"

	"github.com/gemgeek/gemconnect-backend/src/core/models"
	"github.com/google/uuid"
)

// SharePost records a share of an existing post. Shares are not unique and
// do not notify anyone.
func (s *Service) SharePost(ctx context.Context, userID, postID uuid.UUID, message *string) (*models.Share, error) {
	db := s.db.WithContext(ctx)
	if _, err := findPost(db, postID); err != nil {
		return nil, err
	}
	share := models.Share{
		OriginalPostID: postID,
		SharedByID:     userID,
		Message:        message,
		CreatedAt:      s.now(),
	}
	if err := db.Create(&share).Error; err != nil {
		return nil, fmt.Errorf("create share: %w", err)
	}
	return &share, nil
}
