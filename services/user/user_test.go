package user_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	userRepo "medibook/database/repository/user"
	"medibook/models"
	"medibook/services/user"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// memUsers is an in-memory UserRepository enforcing the unique email index.
type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]*models.User)}
}

func (r *memUsers) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUsers) Create(u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return userRepo.ErrDuplicateEmail
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUsers) UpdateSetDocument(id string, updateDoc bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with id %s not found", id)
	}
	if v, ok := updateDoc["email"].(string); ok {
		for _, existing := range r.users {
			if existing.ID != id && existing.Email == v {
				return userRepo.ErrDuplicateEmail
			}
		}
		u.Email = v
	}
	if v, ok := updateDoc["name"].(string); ok {
		u.Name = v
	}
	if v, ok := updateDoc["passwordHash"].(string); ok {
		u.PasswordHash = v
	}
	return nil
}

func (r *memUsers) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return r.GetByID(id)
}

type memQueue struct {
	mu   sync.Mutex
	sent []models.EmailPayload
}

func (q *memQueue) EnqueueEmail(ctx context.Context, p models.EmailPayload) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sent = append(q.sent, p)
	return nil
}

func newTestService() (*user.DefaultUserService, *memUsers, *memQueue) {
	repo := newMemUsers()
	queue := &memQueue{}
	return &user.DefaultUserService{Repo: repo, Notifier: queue}, repo, queue
}

func validRequest() user.RegisterRequest {
	return user.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Mobile:   "0712345678",
		Password: "Secret1!",
	}
}

func TestRegister(t *testing.T) {
	svc, repo, queue := newTestService()

	resp, err := svc.Register(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User.ID == "" {
		t.Error("empty user id")
	}
	if resp.Token == "" {
		t.Error("empty token")
	}
	if resp.User.Role != "user" {
		t.Errorf("role = %q, want user", resp.User.Role)
	}

	stored, _ := repo.GetByEmail("test@example.com")
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.PasswordHash == "Secret1!" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Secret1!")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}

	if len(queue.sent) != 1 || queue.sent[0].Subject != "Registration Successful" {
		t.Errorf("welcome email not queued: %+v", queue.sent)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*user.RegisterRequest)
	}{
		{"missing name", func(r *user.RegisterRequest) { r.Name = "" }},
		{"missing email", func(r *user.RegisterRequest) { r.Email = "" }},
		{"missing mobile", func(r *user.RegisterRequest) { r.Mobile = "" }},
		{"missing password", func(r *user.RegisterRequest) { r.Password = "" }},
		{"bad email", func(r *user.RegisterRequest) { r.Email = "not-an-email" }},
		{"short mobile", func(r *user.RegisterRequest) { r.Mobile = "12345" }},
		{"alpha mobile", func(r *user.RegisterRequest) { r.Mobile = "07123456ab" }},
		{"short password", func(r *user.RegisterRequest) { r.Password = "Ab1!" }},
		{"no uppercase", func(r *user.RegisterRequest) { r.Password = "secret1!" }},
		{"no special char", func(r *user.RegisterRequest) { r.Password = "Secret12" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := svc.Register(context.Background(), req)
			var vErr *user.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Register(context.Background(), validRequest()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), validRequest())
	var dupErr *user.DuplicateEmailError
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected DuplicateEmailError, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newTestService()

	reg, err := svc.Register(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := svc.Authenticate(context.Background(), "test@example.com", "Secret1!")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if resp.User.ID != reg.User.ID {
		t.Errorf("user id = %q, want %q", resp.User.ID, reg.User.ID)
	}
	if resp.Token == "" {
		t.Error("empty token")
	}
}

func TestAuthenticateFailures(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Register(context.Background(), validRequest()); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "Secret1!")
	var nfErr *user.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError for unknown email, got %v", err)
	}

	_, err = svc.Authenticate(context.Background(), "test@example.com", "WrongPass1!")
	var credErr *user.BadCredentialsError
	if !errors.As(err, &credErr) {
		t.Fatalf("expected BadCredentialsError for wrong password, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newTestService()

	reg, err := svc.Register(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	newName := "Renamed User"
	newEmail := "renamed@example.com"
	updated, err := svc.UpdateProfile(context.Background(), reg.User.ID, models.UserUpdateRequest{
		Name:  &newName,
		Email: &newEmail,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != newName || updated.Email != newEmail {
		t.Errorf("profile not updated: %+v", updated)
	}

	badEmail := "not-an-email"
	_, err = svc.UpdateProfile(context.Background(), reg.User.ID, models.UserUpdateRequest{Email: &badEmail})
	var vErr *user.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newTestService()

	reg, err := svc.Register(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	err = svc.ChangePassword(context.Background(), reg.User.ID, "WrongPass1!", "NewSecret1!")
	var credErr *user.BadCredentialsError
	if !errors.As(err, &credErr) {
		t.Fatalf("expected BadCredentialsError, got %v", err)
	}

	err = svc.ChangePassword(context.Background(), reg.User.ID, "Secret1!", "weak")
	var vErr *user.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), reg.User.ID, "Secret1!", "NewSecret1!"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "test@example.com", "NewSecret1!"); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "test@example.com", "Secret1!"); err == nil {
		t.Fatal("old password still accepted")
	}
}

func TestVerifyPasswordComplexity(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"Secret1!", false},
		{"A@bcde", false},
		{"short", true},
		{"nouppercase1!", true},
		{"NoSpecial1", true},
	}
	for _, tt := range tests {
		err := user.VerifyPasswordComplexity(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("VerifyPasswordComplexity(%q) = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}
