package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;not null" json:"id"`
	Username   string    `gorm:"column:username;type:varchar(150);unique;not null" json:"username"`
	Email      string    `gorm:"column:email;type:text;unique;not null" json:"email"`
	Password   string    `gorm:"column:password;type:text;not null" json:"-"`
	Bio        string    `gorm:"column:bio;type:text;not null;default:''" json:"bio"`
	AvatarURL  *string   `gorm:"column:avatar_url;type:text" json:"avatar_url,omitempty"`
	IsVerified bool      `gorm:"column:is_verified;not null;default:false" json:"is_verified"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
