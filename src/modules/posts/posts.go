package posts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/gemgeek/gemconnect-backend/src/core/database"
	"github.com/gemgeek/gemconnect-backend/src/core/models"
	"github.com/gemgeek/gemconnect-backend/src/core/monitoring"
	"github.com/gemgeek/gemconnect-backend/src/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service owns posts and everything hanging off them: likes, comments and
// shares.
type Service struct {
	db    *gorm.DB
	blobs utils.BlobStore
	now   func() time.Time

	likes database.Coalescer
}

// NewService wires the post service. blobs may be nil, in which case inline
// images are dropped.
func NewService(db *gorm.DB, blobs utils.BlobStore) *Service {
	return &Service{
		db:    db,
		blobs: blobs,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// CreatePost saves a post. The image is best-effort: a payload that cannot be
// decoded or stored is logged and the post is saved without it.
func (s *Service) CreatePost(ctx context.Context, authorID uuid.UUID, content string, imageData *string) (*models.Post, error) {
	post := models.Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: s.now(),
	}

	if imageData != nil && *imageData != "" {
		post.ImageURL = s.attachImage(ctx, post.ID, *imageData)
	}

	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	monitoring.PostsCreated.Inc()
	return &post, nil
}

func (s *Service) attachImage(ctx context.Context, postID uuid.UUID, raw string) *string {
	log := logrus.WithField("post_id", postID)

	img, err := utils.DecodeDataURI(raw)
	if err != nil {
		monitoring.AttachmentFailures.WithLabelValues("decode").Inc()
		log.WithError(err).Warn("Image decode error, saving post without image")
		return nil
	}
	if s.blobs == nil {
		monitoring.AttachmentFailures.WithLabelValues("store").Inc()
		log.Warn("No blob store configured, saving post without image")
		return nil
	}

	ref, err := s.blobs.Save(ctx, fmt.Sprintf("posts/%s.%s", postID, img.Ext), img.ContentType, img.Data)
	if err != nil {
		monitoring.AttachmentFailures.WithLabelValues("store").Inc()
		log.WithError(err).Warn("Image upload error, saving post without image")
		return nil
	}
	return &ref
}

// GetByID fetches a post; a missing post is NOT_FOUND.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return findPost(s.db.WithContext(ctx), id)
}

func findPost(db *gorm.DB, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := db.Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("Post matching query does not exist.")
		}
		return nil, fmt.Errorf("fetch post: %w", err)
	}
	return &post, nil
}

// All returns every post, newest first.
func (s *Service) All(ctx context.Context) ([]models.Post, error) {
	var out []models.Post
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	return out, nil
}

// ByIDs loads posts keyed by id; missing ids are absent from the map.
func (s *Service) ByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Post, error) {
	var rows []models.Post
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	out := make(map[uuid.UUID]models.Post, len(rows))
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}

// ByAuthors groups the posts of each author, newest first.
func (s *Service) ByAuthors(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID][]models.Post, error) {
	var rows []models.Post
	err := s.db.WithContext(ctx).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch posts by author: %w", err)
	}
	out := make(map[uuid.UUID][]models.Post, len(authorIDs))
	for _, p := range rows {
		out[p.AuthorID] = append(out[p.AuthorID], p)
	}
	return out, nil
}
