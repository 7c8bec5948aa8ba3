package user

import (
	"context"
	"fmt"

	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register validates the registration details, creates the user record and
// returns the user with a fresh auth token. A welcome email is queued on the
// side; its fate never affects the registration.
func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Mobile == "" || req.Password == "" {
		return nil, &ValidationError{Message: "All fields are required."}
	}
	if !emailRegex.MatchString(req.Email) {
		return nil, &ValidationError{Message: "Invalid email format!"}
	}
	if !mobileRegex.MatchString(req.Mobile) {
		return nil, &ValidationError{Message: "Mobile number must be 10 digits only!"}
	}
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, &DuplicateEmailError{}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	userObj := models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		PasswordHash: string(hashedPassword),
		Role:         "user",
	}

	if err := s.Repo.Create(&userObj); err != nil {
		// The unique index closes the race between the lookup and the insert.
		if err == userRepo.ErrDuplicateEmail {
			return nil, &DuplicateEmailError{}
		}
		utils.GetLogger().Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := utils.GenerateToken(userObj.ID, userObj.Email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	s.queueWelcomeEmail(ctx, &userObj)

	return &AuthResponse{User: &userObj, Token: token}, nil
}

func (s *DefaultUserService) queueWelcomeEmail(ctx context.Context, u *models.User) {
	payload := models.EmailPayload{
		To:      u.Email,
		Subject: "Registration Successful",
		Body:    fmt.Sprintf("Hello %s,\n\nYour registration was successful!\n\nThank you for joining us!", u.Name),
	}
	if err := s.Notifier.EnqueueEmail(ctx, payload); err != nil {
		utils.GetLogger().Warn("Register: failed to queue welcome email",
			zap.String("userID", u.ID), zap.Error(err))
	}
}
