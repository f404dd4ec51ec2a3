package sessiontoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Malar-R/friendly-octo-memory/internal/sentinel"
)

func TestIssueAndParse(t *testing.T) {
	svc := New("test-secret", time.Hour)
	sessionID := uuid.New()

	token, err := svc.Issue(sessionID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, parsed)
}

func TestParseRejectsWrongKey(t *testing.T) {
	token, err := New("secret-a", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = New("secret-b", time.Hour).Parse(token)
	assert.ErrorIs(t, err, sentinel.ErrInvalidState)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := New("test-secret", -time.Minute).Issue(uuid.New())
	require.NoError(t, err)

	_, err = New("test-secret", -time.Minute).Parse(token)
	assert.ErrorIs(t, err, sentinel.ErrInvalidState)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := New("test-secret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, sentinel.ErrInvalidState)
}

func TestParseRejectsUnsignedAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = New("test-secret", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, sentinel.ErrInvalidState)
}

func TestParseRejectsNonUUIDSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "session-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = New("test-secret", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, sentinel.ErrInvalidState)
}
