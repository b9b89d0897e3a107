package domain

import (
	"context"
	"time"
)

// Roles a user can hold
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// MinPasswordLength is the shortest password accepted on signup and password change
const MinPasswordLength = 6

// User Model
type User struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`                 // Generated UUID
	Name      string    `gorm:"size:128;not null" bson:"name" json:"name"`               // Display name
	Email     string    `gorm:"uniqueIndex;size:191;not null" bson:"email" json:"email"` // Lowercased, unique
	Password  string    `gorm:"size:191;not null" bson:"password" json:"-"`              // Bcrypt hash, never serialized
	Role      string    `gorm:"size:16;default:user" bson:"role" json:"role"`            // Role: user or admin
	Theme     Theme     `gorm:"serializer:json;type:text" bson:"theme" json:"theme"`     // CSS colour variables
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`                              // Creation time
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`                              // Last modification time
}

// UserRepository defines persistence operations for users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	List(ctx context.Context, offset, limit int) ([]User, int64, error)
}
