package authtoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Config holds token issuance settings, loaded from the environment.
type Config struct {
	SigningKey string        `env:"AUTH_SIGNING_KEY,required"`
	Issuer     string        `env:"AUTH_TOKEN_ISSUER" envDefault:"atelier"`
	TTL        time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`
}

// Claims are the JWT claims carried by a bearer token. TenantID is the
// tenant the token was issued for, when the caller authenticated in a
// tenant context; platform staff tokens usually carry none.
type Claims struct {
	UserID    uuid.UUID     `json:"uid"`
	Email     string        `json:"email,omitempty"`
	Role      string        `json:"role,omitempty"`
	Superuser bool          `json:"superuser,omitempty"`
	TenantID  uuid.NullUUID `json:"tenant_id"`
	jwt.RegisteredClaims
}

// Service signs and verifies bearer tokens with HMAC-SHA256.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

// New creates a token service. The signing key should be at least 32 bytes.
func New(cfg Config) (*Service, error) {
	if cfg.SigningKey == "" {
		return nil, ErrMissingSigningKey
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		signingKey: []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		ttl:        ttl,
	}, nil
}

// Generate signs a token for the given claims, filling in the registered
// issuer, issued-at and expiry fields.
func (s *Service) Generate(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   claims.UserID.String(),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.signingKey)
}

// Parse verifies the signature and temporal claims of a token and returns
// its claims. Expired tokens yield ErrExpiredToken; any other verification
// failure yields ErrInvalidToken with the cause attached.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedSigningMethod
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Join(ErrExpiredToken, err)
		}
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
