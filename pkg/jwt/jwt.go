package jwt

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidKey       = errors.New("invalid key")
)

// Claims represents session token claims. The user id doubles as the
// registered subject; a token that decodes to no user id is rejected.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	gojwt.RegisteredClaims
}

// Service handles session token operations
type Service struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

// Config holds JWT service configuration
type Config struct {
	Secret         string
	Issuer         string
	ExpirationDays int
}

// NewService creates a new JWT service
func NewService(cfg Config) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrInvalidKey
	}
	days := cfg.ExpirationDays
	if days <= 0 {
		days = 7
	}
	return &Service{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		expiration: time.Duration(days) * 24 * time.Hour,
	}, nil
}

// Sign creates a signed session token for the given claims. The validity
// window is fixed at issuance; callers cannot extend it.
func (s *Service) Sign(claims Claims) (string, error) {
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}

	now := time.Now()
	claims.Issuer = s.issuer
	claims.Subject = claims.UserID
	claims.IssuedAt = gojwt.NewNumericDate(now)
	claims.NotBefore = gojwt.NewNumericDate(now)
	claims.ExpiresAt = gojwt.NewNumericDate(now.Add(s.expiration))

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate verifies a session token and returns its claims. A token decodes
// to exactly one user id or is rejected; there is no partial trust.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := gojwt.ParseWithClaims(tokenString, claims,
		func(t *gojwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithIssuer(s.issuer),
	)
	if err != nil {
		switch {
		case errors.Is(err, gojwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrInvalidToken
		}
	}

	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetExpiration returns the token validity window.
func (s *Service) GetExpiration() time.Duration {
	return s.expiration
}
