package user

import (
	"context"
	"fmt"

	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// GetProfile retrieves a user by its unique ID.
func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &NotFoundError{Message: "User not found."}
	}
	return u, nil
}

// UpdateProfile applies the provided name and/or email to the user record.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, req models.UserUpdateRequest) (*models.User, error) {
	setFields := bson.M{}
	if req.Name != nil && *req.Name != "" {
		setFields["name"] = *req.Name
	}
	if req.Email != nil && *req.Email != "" {
		if !emailRegex.MatchString(*req.Email) {
			return nil, &ValidationError{Message: "Invalid email format!"}
		}
		setFields["email"] = *req.Email
	}

	if len(setFields) > 0 {
		if err := s.Repo.UpdateSetDocument(userID, setFields); err != nil {
			if err == userRepo.ErrDuplicateEmail {
				return nil, &DuplicateEmailError{}
			}
			utils.GetLogger().Error("UpdateProfile: failed to update user",
				zap.String("userID", userID), zap.Error(err))
			return nil, fmt.Errorf("failed to update profile")
		}
	}

	return s.GetProfile(ctx, userID)
}

// ChangePassword verifies the current password and stores a new hash.
func (s *DefaultUserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	if u == nil {
		return &NotFoundError{Message: "User not found."}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return &BadCredentialsError{Message: "Current password is incorrect."}
	}
	if err := VerifyPasswordComplexity(newPassword); err != nil {
		return &ValidationError{Message: err.Error()}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("ChangePassword: failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to change password")
	}

	return s.Repo.UpdateSetDocument(userID, bson.M{"passwordHash": string(hashed)})
}
