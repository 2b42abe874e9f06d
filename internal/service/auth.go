// Package service contains application services for authentication, journal
// entries and insights.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"go.uber.org/zap"

	pkgcrypto "github.com/and161185/dev-diary/internal/crypto"
	"github.com/and161185/dev-diary/internal/errs"
	"github.com/and161185/dev-diary/internal/model"
	"github.com/and161185/dev-diary/internal/repository"
	"github.com/and161185/dev-diary/internal/token"
)

// AuthService defines registration, login and token-based identity.
type AuthService interface {
	// Register creates a new user with secure password hashing.
	Register(ctx context.Context, email, password string) (*model.User, error)
	// Login verifies credentials and issues an access/refresh pair.
	Login(ctx context.Context, email, password string) (model.Tokens, *model.User, error)
	// Refresh issues a new access token for a valid refresh token.
	Refresh(ctx context.Context, refreshToken string) (model.Tokens, error)
	// Identify resolves an access token to a live user.
	Identify(ctx context.Context, accessToken string) (*model.User, error)
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens *token.Codec
	log    *zap.Logger
}

// NewAuthService constructs AuthService with required dependencies.
// A nil log discards output.
func NewAuthService(users repository.UserRepository, tokens *token.Codec, log *zap.Logger) *AuthServiceImpl {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthServiceImpl{users: users, tokens: tokens, log: log}
}

// dummyDigest is verified against when the email is unknown so both login
// failures cost one argon2id run.
var dummyDigest = sync.OnceValue(func() string {
	h, err := pkgcrypto.HashPassword("dev-diary-unknown-user")
	if err != nil {
		panic(fmt.Sprintf("dummy digest: %v", err))
	}
	return h
})

// Register validates input and stores the user with an Argon2id digest.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil || strings.ContainsAny(email, "<> ") {
		return nil, errs.Validationf("invalid email")
	}
	if password == "" {
		return nil, errs.Validationf("empty password")
	}
	hash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &model.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return nil, errs.ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Login authenticates the user. Unknown email and wrong password both yield
// errs.ErrInvalidCredentials.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (model.Tokens, *model.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			pkgcrypto.VerifyPassword(password, dummyDigest())
			return model.Tokens{}, nil, errs.ErrInvalidCredentials
		}
		return model.Tokens{}, nil, err
	}
	if !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		return model.Tokens{}, nil, errs.ErrInvalidCredentials
	}

	// Upgrade legacy or outdated digests (best-effort).
	if pkgcrypto.NeedsRehash(u.PasswordHash) {
		h, herr := pkgcrypto.HashPassword(password)
		if herr == nil {
			herr = s.users.UpdatePasswordHash(ctx, u.ID, h)
		}
		if herr != nil {
			s.log.Warn("password rehash failed", zap.Int64("user_id", u.ID), zap.Error(herr))
		} else {
			u.PasswordHash = h
		}
	}

	access, exp, err := s.tokens.IssueAccess(u.ID)
	if err != nil {
		return model.Tokens{}, nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, rexp, err := s.tokens.IssueRefresh(u.ID)
	if err != nil {
		return model.Tokens{}, nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return model.Tokens{
		AccessToken:      access,
		RefreshToken:     refresh,
		ExpiresAt:        exp,
		RefreshExpiresAt: rexp,
	}, u, nil
}

// Refresh validates the refresh token and issues a new access token.
// The refresh token itself is not rotated.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (model.Tokens, error) {
	u, err := s.resolve(ctx, refreshToken, token.Refresh)
	if err != nil {
		return model.Tokens{}, err
	}
	access, exp, err := s.tokens.IssueAccess(u.ID)
	if err != nil {
		return model.Tokens{}, fmt.Errorf("issue access token: %w", err)
	}
	return model.Tokens{AccessToken: access, ExpiresAt: exp}, nil
}

// Identify returns the user behind an access token.
func (s *AuthServiceImpl) Identify(ctx context.Context, accessToken string) (*model.User, error) {
	return s.resolve(ctx, accessToken, token.Access)
}

func (s *AuthServiceImpl) resolve(ctx context.Context, raw string, typ token.Type) (*model.User, error) {
	id, err := s.tokens.Decode(raw, typ)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
