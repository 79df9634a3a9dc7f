package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/gemgeek/gemconnect-backend/src/core/database"
	"github.com/gemgeek/gemconnect-backend/src/core/models"
	"github.com/gemgeek/gemconnect-backend/src/core/monitoring"
	"github.com/gemgeek/gemconnect-backend/src/modules/notifications"
	"github.com/gemgeek/gemconnect-backend/src/modules/users"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service manages the follow graph.
type Service struct {
	db  *gorm.DB
	now func() time.Time

	follows database.Coalescer
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// ToggleFollow follows the target if the follower does not follow them yet
// and unfollows otherwise. It returns whether the edge exists afterwards.
// A new edge notifies the target.
func (s *Service) ToggleFollow(ctx context.Context, followerID, targetID uuid.UUID) (bool, error) {
	if followerID == targetID {
		return false, apperrors.InvalidOperationf("Cannot follow self")
	}

	key := followerID.String() + ":" + targetID.String()
	return s.follows.Do(ctx, key, func(ctx context.Context) (bool, error) {
		return s.toggleFollow(ctx, followerID, targetID)
	})
}

func (s *Service) toggleFollow(ctx context.Context, followerID, targetID uuid.UUID) (bool, error) {
	var outcome database.ToggleOutcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := users.Find(tx, targetID); err != nil {
			return err
		}

		edge := models.Follow{FollowerID: followerID, FollowingID: targetID, CreatedAt: s.now()}
		var err error
		outcome, err = database.ToggleRow(tx, &edge, "follower_id = ? AND following_id = ?", followerID, targetID)
		if err != nil {
			return fmt.Errorf("toggle follow: %w", err)
		}

		if outcome == database.Inserted {
			return notifications.Record(tx, &models.Notification{
				RecipientID: targetID,
				SenderID:    followerID,
				Type:        models.NotificationFollow,
				CreatedAt:   edge.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	monitoring.Toggles.WithLabelValues("follow", outcome.String()).Inc()
	return outcome.Present(), nil
}

type edgeCount struct {
	UserID uuid.UUID
	N      int
}

func (s *Service) countBy(ctx context.Context, groupCol, filterCol string, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	var rows []edgeCount
	err := s.db.WithContext(ctx).
		Model(&models.Follow{}).
		Select(groupCol+" AS user_id, COUNT(*) AS n").
		Where(filterCol+" IN ?", ids).
		Group(groupCol).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count follows: %w", err)
	}
	out := make(map[uuid.UUID]int, len(ids))
	for _, r := range rows {
		out[r.UserID] = r.N
	}
	return out, nil
}

// FollowersCounts returns how many users follow each of ids. Users with no
// followers are absent from the map.
func (s *Service) FollowersCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	return s.countBy(ctx, "following_id", "following_id", ids)
}

// FollowingCounts returns how many users each of ids follows.
func (s *Service) FollowingCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	return s.countBy(ctx, "follower_id", "follower_id", ids)
}

// FollowedBy reports which of ids the viewer follows.
func (s *Service) FollowedBy(ctx context.Context, viewerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	var targets []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id IN ?", viewerID, ids).
		Pluck("following_id", &targets).Error
	if err != nil {
		return nil, fmt.Errorf("fetch follows: %w", err)
	}
	out := make(map[uuid.UUID]bool, len(targets))
	for _, id := range targets {
		out[id] = true
	}
	return out, nil
}
