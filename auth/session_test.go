package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := CreateSessionToken("user-1", "a@example.com", true, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	p := ValidateSessionToken(token, testSecret)
	require.NotNil(t, p)
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, "a@example.com", p.Email)
	assert.True(t, p.IsAdmin)
}

func TestValidateSessionToken_FailsOpen(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		assert.Nil(t, ValidateSessionToken("not-a-token", testSecret))
		assert.Nil(t, ValidateSessionToken("", testSecret))
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := CreateSessionToken("user-1", "a@example.com", false, testSecret)
		require.NoError(t, err)
		assert.Nil(t, ValidateSessionToken(token, "other-secret"))
	})

	t.Run("expired", func(t *testing.T) {
		claims := &sessionClaims{
			UserID: "user-1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		assert.Nil(t, ValidateSessionToken(token, testSecret))
	})

	t.Run("unsigned algorithm rejected", func(t *testing.T) {
		claims := &sessionClaims{
			UserID: "user-1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		assert.Nil(t, ValidateSessionToken(token, testSecret))
	})
}

func TestSessionFromCookieHeader(t *testing.T) {
	token, err := CreateSessionToken("user-1", "a@example.com", false, testSecret)
	require.NoError(t, err)

	t.Run("finds the session cookie among others", func(t *testing.T) {
		header := "theme=dark; session=" + token + "; lang=en"
		p := SessionFromCookieHeader(header, testSecret)
		require.NotNil(t, p)
		assert.Equal(t, "user-1", p.UserID)
	})

	t.Run("anonymous on missing header or cookie", func(t *testing.T) {
		assert.Nil(t, SessionFromCookieHeader("", testSecret))
		assert.Nil(t, SessionFromCookieHeader("theme=dark", testSecret))
	})

	t.Run("anonymous on garbage token", func(t *testing.T) {
		assert.Nil(t, SessionFromCookieHeader("session=garbage", testSecret))
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword("s3cret-pass", hash))
	assert.False(t, VerifyPassword("wrong", hash))
	assert.False(t, VerifyPassword("s3cret-pass", "not-a-hash"))
}

func TestCreateTrackingToken(t *testing.T) {
	token, err := CreateTrackingToken("TRK123", testSecret)
	require.NoError(t, err)

	claims := &trackingClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, "TRK123", claims.TrackingNumber)
	assert.WithinDuration(t, time.Now().Add(TrackingTTL), claims.ExpiresAt.Time, time.Minute)
}
