// Package token issues and validates the signed access/refresh tokens.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/and161185/dev-diary/internal/errs"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Type discriminates access tokens from refresh tokens.
type Type string

const (
	Access  Type = "access"
	Refresh Type = "refresh"
)

// Claims is the signed claim set. Subject carries the user id as a decimal string.
type Claims struct {
	Type Type `json:"type"`
	jwt.RegisteredClaims
}

// Config is everything the codec needs; it never reads globals.
type Config struct {
	Secret     []byte
	Algorithm  string // HS256, HS384 or HS512
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Leeway     time.Duration
}

var methods = map[string]*jwt.SigningMethodHMAC{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// Codec encodes and decodes tokens. Safe for concurrent use.
type Codec struct {
	cfg    Config
	method *jwt.SigningMethodHMAC
	now    func() time.Time
}

// NewCodec validates cfg and builds a codec.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token: empty secret")
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = "HS256"
	}
	m, ok := methods[cfg.Algorithm]
	if !ok {
		return nil, fmt.Errorf("token: unsupported algorithm %q", cfg.Algorithm)
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token: non-positive ttl")
	}
	return &Codec{cfg: cfg, method: m, now: time.Now}, nil
}

// Issue signs a token of the given type for subject that expires after ttl.
func (c *Codec) Issue(subject int64, typ Type, ttl time.Duration) (string, time.Time, error) {
	jti, err := uuid.NewV4()
	if err != nil {
		return "", time.Time{}, err
	}
	now := c.now()
	exp := now.Add(ttl)
	claims := Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subject, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        jti.String(),
		},
	}
	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.cfg.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// IssueAccess issues an access token with the configured TTL.
func (c *Codec) IssueAccess(subject int64) (string, time.Time, error) {
	return c.Issue(subject, Access, c.cfg.AccessTTL)
}

// IssueRefresh issues a refresh token with the configured TTL.
func (c *Codec) IssueRefresh(subject int64) (string, time.Time, error) {
	return c.Issue(subject, Refresh, c.cfg.RefreshTTL)
}

// RefreshTTL reports the configured refresh token lifetime.
func (c *Codec) RefreshTTL() time.Duration { return c.cfg.RefreshTTL }

// Decode verifies raw and returns its subject. Every failure wraps errs.ErrInvalidToken.
func (c *Codec) Decode(raw string, expected Type) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: empty", errs.ErrInvalidToken)
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return c.cfg.Secret, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(c.cfg.Leeway),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrInvalidToken, err)
	}
	if claims.Type != expected {
		return 0, fmt.Errorf("%w: want %s token, got %q", errs.ErrInvalidToken, expected, claims.Type)
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject", errs.ErrInvalidToken)
	}
	return id, nil
}
