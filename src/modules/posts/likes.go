package posts

import (
	"context"
	"fmt"

	"github.com/gemgeek/gemconnect-backend/src/core/database"
	"github.com/gemgeek/gemconnect-backend/src/core/models"
	"github.com/gemgeek/gemconnect-backend/src/core/monitoring"
	"github.com/gemgeek/gemconnect-backend/src/modules/notifications"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ToggleLike likes the post if the user has not liked it yet and unlikes it
// otherwise. It returns whether the post is liked afterwards.
//
// Liking someone else's post notifies its author in the same transaction.
// Identical calls that overlap in time share one execution, so a burst of
// duplicate requests flips the state once.
func (s *Service) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	key := userID.String() + ":" + postID.String()
	return s.likes.Do(ctx, key, func(ctx context.Context) (bool, error) {
		return s.toggleLike(ctx, userID, postID)
	})
}

func (s *Service) toggleLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	var outcome database.ToggleOutcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := findPost(tx, postID)
		if err != nil {
			return err
		}

		like := models.Like{UserID: userID, PostID: postID, CreatedAt: s.now()}
		outcome, err = database.ToggleRow(tx, &like, "user_id = ? AND post_id = ?", userID, postID)
		if err != nil {
			return fmt.Errorf("toggle like: %w", err)
		}

		if outcome == database.Inserted && post.AuthorID != userID {
			n := notifications.ForPost(models.NotificationLike, post, userID)
			n.CreatedAt = like.CreatedAt
			return notifications.Record(tx, n)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	monitoring.Toggles.WithLabelValues("like", outcome.String()).Inc()
	return outcome.Present(), nil
}

// LikesByPosts groups the likes of each post, oldest first.
func (s *Service) LikesByPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID][]models.Like, error) {
	var rows []models.Like
	err := s.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch likes: %w", err)
	}
	out := make(map[uuid.UUID][]models.Like, len(postIDs))
	for _, l := range rows {
		out[l.PostID] = append(out[l.PostID], l)
	}
	return out, nil
}
