// Package jwt выпускает и проверяет токены личности (HS256 JWT с claim email).
//
// Токены выпускает внешний сервис аутентификации, этот пакет проверяет подпись,
// срок действия и, если заданы, issuer и audience.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Maker описывает генерацию и разбор токенов личности.
type Maker interface {
	GenerateToken(email string) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// CustomClaims данные, которые несёт токен.
type CustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// MakerImpl реализует Maker на общем секретном ключе.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
	issuer    string
	audience  string
}

// Option дополнительная настройка MakerImpl.
type Option func(*MakerImpl)

// WithIssuer требует и проставляет claim iss.
func WithIssuer(issuer string) Option {
	return func(m *MakerImpl) { m.issuer = issuer }
}

// WithAudience требует и проставляет claim aud.
func WithAudience(audience string) Option {
	return func(m *MakerImpl) { m.audience = audience }
}

// NewJWTMaker создаёт MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration, opts ...Option) *MakerImpl {
	m := &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
