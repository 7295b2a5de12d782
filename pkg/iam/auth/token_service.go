package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/devjobs/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

// Config holds JWT settings.
type Config struct {
	SecretKey      string
	Issuer         string
	AccessTokenTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		Issuer:         "devjobs",
		AccessTokenTTL: 1 * time.Hour,
	}
}

// TokenClaims are the claims issued by the external identity service.
type TokenClaims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService validates access tokens. Issuing tokens belongs to the identity
// service; GenerateAccessToken exists for tests and local tooling.
type TokenService interface {
	GenerateAccessToken(principal Principal) (string, error)
	ValidateAccessToken(token string) (*Principal, error)
}

type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTService(cfg Config) *JWTService {
	return &JWTService{
		secret: []byte(cfg.SecretKey),
		issuer: cfg.Issuer,
		ttl:    cfg.AccessTokenTTL,
		now:    time.Now,
	}
}

func (s *JWTService) GenerateAccessToken(principal Principal) (string, error) {
	now := s.now()
	claims := TokenClaims{
		Role: principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*Principal, error) {
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken().WithCause(err)
	}

	userID, err := kernel.ParseUserID(claims.Subject)
	if err != nil || userID.IsEmpty() {
		return nil, ErrInvalidToken().WithDetail("reason", "invalid subject")
	}
	if !claims.Role.IsValid() {
		return nil, ErrInvalidToken().WithDetail("reason", "unknown role")
	}

	principal := NewPrincipal(userID, claims.Role)
	return &principal, nil
}

var errNoSecret = errors.New("jwt secret is empty")

// Validate reports configuration problems that would make every token invalid.
func (c Config) Validate() error {
	if c.SecretKey == "" {
		return errNoSecret
	}
	return nil
}
