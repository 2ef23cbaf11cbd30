package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/simaogato/wealthflow-dashboard/internal/logger"
)

const (
	tokenIssuer  = "wealthflow-dashboard"
	tokenSubject = "dashboard"
)

var (
	// ErrInvalidPassword is returned by Login when the password does not match.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidSession is returned by Validate for missing, malformed, forged or expired tokens.
	ErrInvalidSession = errors.New("invalid session")
)

// Claims are the JWT claims of a dashboard session
type Claims struct {
	jwt.RegisteredClaims
}

// SessionService issues and verifies dashboard session tokens
type SessionService struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

// HashPassword hashes the dashboard password with bcrypt
func HashPassword(password string, cost int) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// NewSessionService creates a new SessionService instance
func NewSessionService(passwordHash, secret []byte, ttl time.Duration) (*SessionService, error) {
	if len(passwordHash) == 0 {
		return nil, errors.New("password hash cannot be empty")
	}
	if len(secret) == 0 {
		return nil, errors.New("session secret cannot be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("session TTL must be positive")
	}

	return &SessionService{
		passwordHash: passwordHash,
		secret:       secret,
		ttl:          ttl,
		now:          time.Now,
	}, nil
}

// Login checks password and returns a signed session token
func (s *SessionService) Login(ctx context.Context, password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		logger.FromContext(ctx).Warn("Dashboard login rejected")
		return "", ErrInvalidPassword
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   tokenSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	logger.FromContext(ctx).Info("Dashboard session started", "session_id", claims.ID, "expires_at", claims.ExpiresAt.Time)
	return token, nil
}

// Validate verifies token and returns its claims
func (s *SessionService) Validate(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithSubject(tokenSubject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
