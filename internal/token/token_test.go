package token

import (
	"testing"
	"time"

	"github.com/and161185/dev-diary/internal/errs"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(Config{
		Secret:     []byte("test-secret"),
		Algorithm:  "HS256",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 30 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return c
}

func TestNewCodec_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewCodec(Config{Algorithm: "HS256", AccessTTL: time.Minute, RefreshTTL: time.Hour})
	require.Error(t, err, "empty secret")

	_, err = NewCodec(Config{Secret: []byte("k"), Algorithm: "RS256", AccessTTL: time.Minute, RefreshTTL: time.Hour})
	require.Error(t, err, "non-hmac algorithm")

	_, err = NewCodec(Config{Secret: []byte("k"), AccessTTL: 0, RefreshTTL: time.Hour})
	require.Error(t, err, "zero ttl")

	c, err := NewCodec(Config{Secret: []byte("k"), AccessTTL: time.Minute, RefreshTTL: time.Hour})
	require.NoError(t, err)
	require.Equal(t, "HS256", c.method.Alg())
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()
	c := newCodec(t)

	for _, typ := range []Type{Access, Refresh} {
		tok, exp, err := c.Issue(42, typ, time.Minute)
		require.NoError(t, err)
		require.WithinDuration(t, time.Now().Add(time.Minute), exp, 2*time.Second)

		id, err := c.Decode(tok, typ)
		require.NoError(t, err)
		require.Equal(t, int64(42), id)
	}
}

func TestCodec_TypeIsEnforced(t *testing.T) {
	t.Parallel()
	c := newCodec(t)

	access, _, err := c.IssueAccess(7)
	require.NoError(t, err)
	refresh, _, err := c.IssueRefresh(7)
	require.NoError(t, err)

	_, err = c.Decode(access, Refresh)
	require.ErrorIs(t, err, errs.ErrInvalidToken)
	_, err = c.Decode(refresh, Access)
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestCodec_Expired(t *testing.T) {
	t.Parallel()
	c := newCodec(t)

	tok, _, err := c.Issue(1, Access, -time.Second)
	require.NoError(t, err)
	_, err = c.Decode(tok, Access)
	require.ErrorIs(t, err, errs.ErrInvalidToken)

	// valid now, expired an hour later
	tok, _, err = c.Issue(1, Access, time.Minute)
	require.NoError(t, err)
	c.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = c.Decode(tok, Access)
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestCodec_RejectsForeignAndMalformed(t *testing.T) {
	t.Parallel()
	c := newCodec(t)

	other, err := NewCodec(Config{Secret: []byte("other"), AccessTTL: time.Minute, RefreshTTL: time.Hour})
	require.NoError(t, err)
	tok, _, err := other.IssueAccess(1)
	require.NoError(t, err)
	_, err = c.Decode(tok, Access)
	require.ErrorIs(t, err, errs.ErrInvalidToken, "signed with another key")

	hs512, err := NewCodec(Config{Secret: []byte("test-secret"), Algorithm: "HS512", AccessTTL: time.Minute, RefreshTTL: time.Hour})
	require.NoError(t, err)
	tok, _, err = hs512.IssueAccess(1)
	require.NoError(t, err)
	_, err = c.Decode(tok, Access)
	require.ErrorIs(t, err, errs.ErrInvalidToken, "unexpected algorithm")

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err = c.Decode(raw, Access)
		require.ErrorIs(t, err, errs.ErrInvalidToken, raw)
	}
}

func TestCodec_NonNumericSubject(t *testing.T) {
	t.Parallel()
	c := newCodec(t)

	claims := Claims{
		Type: Access,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = c.Decode(raw, Access)
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestCodec_MissingExpiry(t *testing.T) {
	t.Parallel()
	c := newCodec(t)

	claims := Claims{Type: Access, RegisteredClaims: jwt.RegisteredClaims{Subject: "1"}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = c.Decode(raw, Access)
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestCodec_TokensAreUnique(t *testing.T) {
	t.Parallel()
	c := newCodec(t)

	a, _, err := c.IssueAccess(1)
	require.NoError(t, err)
	b, _, err := c.IssueAccess(1)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
