package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature mismatch")
	ErrMalformed        = errors.New("token malformed")
)

// Identity is the claim set carried inside a signed token: the subject plus
// the denormalized profile fields downstream handlers echo back to clients.
type Identity struct {
	SubjectID string
	FirstName string
	LastName  string
	Email     string
}

type claims struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// Service signs and verifies identity tokens with a process-wide HS256
// secret. Both operations are pure functions of the secret and are safe for
// unlimited concurrent use.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(secret string, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Issue signs a fresh token for the identity, valid for the configured TTL.
func (s *Service) Issue(id Identity) (string, error) {
	now := s.now()
	c := claims{
		FirstName: id.FirstName,
		LastName:  id.LastName,
		Email:     id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the embedded identity.
// Failures map onto ErrExpired, ErrInvalidSignature and ErrMalformed so the
// gate can answer each kind differently.
func (s *Service) Verify(raw string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, ErrInvalidSignature
		default:
			return Identity{}, ErrMalformed
		}
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return Identity{}, ErrMalformed
	}

	return Identity{
		SubjectID: c.Subject,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
	}, nil
}
