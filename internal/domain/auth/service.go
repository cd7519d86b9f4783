package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"negocio/internal/core/apperror"
	appctx "negocio/internal/core/context"
	"negocio/internal/core/entity"
	"negocio/internal/docstore"
	"negocio/pkg/logger"
)

// CollectionName is the backing docstore collection for users.
const CollectionName = "users"

// User is one operator account. The password is stored as a bcrypt hash.
type User struct {
	entity.Record

	Username     string `json:"username"`
	Name         string `json:"name,omitempty"`
	PasswordHash string `json:"passwordHash"`
}

// Service authenticates operators and manages accounts.
type Service struct {
	col *docstore.Collection[User]
	jwt *JWTService
}

// NewService creates the auth service.
func NewService(store docstore.Store, jwt *JWTService) *Service {
	return &Service{
		col: docstore.NewCollection[User](store, CollectionName),
		jwt: jwt,
	}
}

// LoginResult is a successful authentication.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Name      string    `json:"name,omitempty"`
}

// Login checks credentials and returns an access token. Unknown users and
// wrong passwords return the same error.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warn(ctx, "login rejected", "username", username)
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(user.ID, user.Username, user.Name)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "operator signed in", "user_id", user.ID, "username", user.Username)
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Username:  user.Username,
		Name:      user.Name,
	}, nil
}

// CreateUser registers an operator account.
func (s *Service) CreateUser(ctx context.Context, username, name, password string) (*User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, apperror.NewValidation("username is required").WithDetail("field", "username")
	}
	if len(password) < 8 {
		return nil, apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}

	if _, err := s.findByUsername(ctx, username); err == nil {
		return nil, apperror.NewDuplicate("user", "username", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	user := &User{
		Record:       entity.NewRecord(),
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
	}
	if _, err := s.col.Add(ctx, user); err != nil {
		return nil, apperror.NewPersistence("create user", err)
	}
	return user, nil
}

// ValidateToken parses the token into a user context.
func (s *Service) ValidateToken(token string) (*appctx.UserContext, error) {
	return s.jwt.ValidateToken(token)
}

func (s *Service) findByUsername(ctx context.Context, username string) (*User, error) {
	users, err := s.col.List(ctx, docstore.Query{Limit: 1}.Where("username", username))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, docstore.ErrNotFound
	}
	return users[0], nil
}
