package user

import (
	"context"

	"patitas/models"
)

// UserService covers account lifecycle, authentication and the profile view.
type UserService interface {
	// Register creates an account and returns it with a fresh token.
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	// SignIn authenticates an email/password pair.
	SignIn(ctx context.Context, email, password string) (*AuthResponse, error)
	// FirebaseSignIn exchanges a verified Firebase ID token for an app
	// token, provisioning the account on first use.
	FirebaseSignIn(ctx context.Context, idToken string) (*AuthResponse, error)
	// Profile returns the account with its purchase and appointment history.
	Profile(ctx context.Context, userID string) (*ProfileView, error)
	// UpdateAvatar stores a new profile image and returns its URL.
	UpdateAvatar(ctx context.Context, userID, localFilePath string) (string, error)
	// RevokeToken invalidates the user's cached token hash.
	RevokeToken(ctx context.Context, userID string) error
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
}

// AuthResponse carries the public account view and its session token.
type AuthResponse struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// ProfileView is the payload behind the profile screen.
type ProfileView struct {
	User         models.PublicUser          `json:"user"`
	Purchases    []models.Purchase          `json:"purchases"`
	Appointments []models.AppointmentRecord `json:"appointments"`
}
