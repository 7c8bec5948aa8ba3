package user

import (
	"context"

	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/notification"
)

// UserService defines business logic for user operations.
type UserService interface {
	// Register validates the registration details, creates a new user record
	// and returns the user with a fresh auth token.
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	// Authenticate verifies credentials and returns the user with a token.
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	// GetProfile retrieves a user (safe view) by its unique ID.
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	// UpdateProfile updates the user's name and/or email.
	UpdateProfile(ctx context.Context, userID string, req models.UserUpdateRequest) (*models.User, error)
	// ChangePassword verifies the current password and stores a new hash.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Notifier notification.Enqueuer
}

// RegisterRequest carries the fields required at registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// AuthResponse contains the authenticated user and the issued token.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}
