package userRepo

import (
	"context"

	"patitas/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address, nil when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByFirebaseUID retrieves a user by its Firebase UID, nil when absent.
	GetByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// Update modifies an existing user record.
	Update(ctx context.Context, user *models.User) error
	// UpdateAvatarURL sets the avatar URL on an existing user.
	UpdateAvatarURL(ctx context.Context, id, avatarURL string) error
}
