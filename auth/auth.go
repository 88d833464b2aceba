// Package auth signs admins in and out. Sessions are HS256 tokens; signing
// out blocklists the token id until it would have expired anyway.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/models"
	"github.com/dcode-github/realty_portal/store"
	"github.com/dcode-github/realty_portal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no active session")
	ErrAdminExists        = errors.New("an admin with this email already exists")
)

type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userID"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Service struct {
	store     store.Store
	tokens    utils.TokenIssuer
	blocklist Blocklist
	log       *zap.Logger
}

func NewService(s store.Store, tokens utils.TokenIssuer, blocklist Blocklist, log *zap.Logger) *Service {
	if blocklist == nil {
		blocklist = NewMemoryBlocklist()
	}
	return &Service{store: s, tokens: tokens, blocklist: blocklist, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) findUser(ctx context.Context, email string) (*models.User, error) {
	var users []models.User
	if err := s.store.List(ctx, store.Query{Collection: models.CollectionUsers}, &users); err != nil {
		return nil, err
	}
	for i := range users {
		if normalizeEmail(users[i].Email) == email {
			return &users[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	user, err := s.findUser(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		s.log.Info("Sign-in for unknown admin", zap.String("email", email))
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("look up admin: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		s.log.Info("Invalid credentials", zap.String("email", email))
		return Session{}, ErrInvalidCredentials
	}

	token, claims, err := s.tokens.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return Session{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return Session{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
	}, nil
}

// Current resolves a bearer token to its session claims.
func (s *Service) Current(ctx context.Context, token string) (*utils.Claims, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	claims, err := s.tokens.ValidateJWT(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	blocked, err := s.blocklist.Blocked(ctx, claims.Id)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if blocked {
		return nil, fmt.Errorf("%w: signed out", ErrNoSession)
	}
	return claims, nil
}

func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := s.Current(ctx, token)
	if err != nil {
		return err
	}
	return s.blocklist.Block(ctx, claims.Id, time.Unix(claims.ExpiresAt, 0))
}

// CreateAdmin registers an admin account; used by the create-admin command.
func (s *Service) CreateAdmin(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if _, err := s.findUser(ctx, email); err == nil {
		return "", ErrAdminExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return s.store.Create(ctx, models.CollectionUsers, models.User{
		Email:     email,
		Password:  hashed,
		CreatedAt: time.Now().UTC(),
	})
}
