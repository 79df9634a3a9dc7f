package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/gemgeek/gemconnect-backend/src/core/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetByID fetches a single user; a missing user is NOT_FOUND.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return Find(s.db.WithContext(ctx), id)
}

// Find looks the user up through db, which may be a transaction.
func Find(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("User matching query does not exist.")
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	return &user, nil
}

// GetByUsername fetches a user by login name.
func (s *Service) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("User matching query does not exist.")
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	return &user, nil
}

// ByIDs loads every user in ids; missing ids are simply absent from the map.
func (s *Service) ByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.User, error) {
	var rows []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	out := make(map[uuid.UUID]models.User, len(rows))
	for _, u := range rows {
		out[u.ID] = u
	}
	return out, nil
}

// Create inserts a new user. Username or email collisions are ALREADY_EXISTS.
func (s *Service) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Wrap(apperrors.AlreadyExists, "A user with that username or email already exists.", err)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
