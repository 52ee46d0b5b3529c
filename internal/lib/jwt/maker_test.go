package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute

	tests := []struct {
		name  string
		maker *MakerImpl
		email string
	}{
		{
			name:  "plain",
			maker: NewJWTMaker(secretKey, tokenTTL),
			email: "ann@example.com",
		},
		{
			name:  "with issuer and audience",
			maker: NewJWTMaker(secretKey, tokenTTL, WithIssuer("auth.example.com"), WithAudience("elevator")),
			email: "bob@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.maker.GenerateToken(tt.email)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := tt.maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.email, claims.Email)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewJWTMaker(secretKey, 15*time.Minute)

	validToken, err := maker.GenerateToken("ann@example.com")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: mustToken(t, NewJWTMaker(secretKey, -time.Hour), "ann@example.com")},
		{name: "wrong secret key", token: mustToken(t, NewJWTMaker("wrong_secret_key", time.Minute), "ann@example.com")},
		{name: "tampered token", token: validToken + "tampered"},
		{name: "no email claim", token: mustToken(t, NewJWTMaker(secretKey, time.Minute), "")},
		{name: "none algorithm", token: noneToken(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_IssuerAndAudienceMismatch(t *testing.T) {
	verifier := NewJWTMaker("secret", time.Minute, WithIssuer("auth.example.com"), WithAudience("elevator"))

	wrongIssuer := mustToken(t, NewJWTMaker("secret", time.Minute, WithIssuer("evil.example.com"), WithAudience("elevator")), "ann@example.com")
	_, err := verifier.ParseToken(wrongIssuer)
	assert.Error(t, err)

	wrongAudience := mustToken(t, NewJWTMaker("secret", time.Minute, WithIssuer("auth.example.com"), WithAudience("other")), "ann@example.com")
	_, err = verifier.ParseToken(wrongAudience)
	assert.Error(t, err)
}

func TestJWTMaker_MissingEmail(t *testing.T) {
	maker := NewJWTMaker("secret", time.Minute)
	_, err := maker.ParseToken(mustToken(t, maker, ""))
	assert.ErrorIs(t, err, ErrMissingEmail)
}

func mustToken(t *testing.T, maker *MakerImpl, email string) string {
	t.Helper()
	token, err := maker.GenerateToken(email)
	require.NoError(t, err)
	return token
}

func noneToken(t *testing.T) string {
	t.Helper()
	claims := CustomClaims{
		Email: "ann@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return token
}
