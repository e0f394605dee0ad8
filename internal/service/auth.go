package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/akarpov/product_api/internal/hash"
	"github.com/akarpov/product_api/internal/logging"
	"github.com/akarpov/product_api/internal/models"
	"github.com/akarpov/product_api/internal/mykafka"
	"github.com/akarpov/product_api/internal/repo"
	"github.com/akarpov/product_api/internal/tokens"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService struct {
	Users    repo.UserRepo
	Hasher   *hash.Hasher
	Issuer   *tokens.Issuer
	Producer *mykafka.Producer
}

// Register creates a user and returns it without the password hash. Email
// uniqueness is case-sensitive exact match, enforced by the repository.
func (s *AuthService) Register(ctx context.Context, req RegisterInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, ErrMissingField
	}
	if !models.ValidRole(req.Role) {
		return nil, fmt.Errorf("%w: role must be admin or user", ErrMissingField)
	}

	pwHash, err := s.Hasher.HashPassword(req.Password)
	if err != nil {
		l.Error("register failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         req.Role,
	}
	if err := s.Users.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserExists) {
			return nil, ErrDuplicateEmail
		}
		l.Error("register failed", "error", err)
		return nil, err
	}

	s.publish(ctx, mykafka.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("user registered", "user_id", user.ID)
	return &user, nil
}

// Login checks credentials and issues an access token. Unknown email and
// wrong password produce the same error so responses cannot be used to
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		l.Error("login failed", "error", err)
		return "", err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.Issuer.Issue(user.ID, user.Role)
	if err != nil {
		l.Error("login failed", "reason", "cannot sign token", "error", err)
		return "", err
	}

	s.publish(ctx, mykafka.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("user logged in", "user_id", user.ID)
	return token, nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", topic, "error", err)
	}
}
