package auth

import (
	"context"
	"errors"
	"time"

	autherrors "github.com/adamstrass/payroll-dashboard/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the single credential pair the dashboard is gated by.
type Config struct {
	Username     string
	PasswordHash string // bcrypt hash
	JWTSecret    string
	SessionTTL   time.Duration
}

type Service interface {
	// SignIn checks the credential pair and issues a session token.
	SignIn(ctx context.Context, req SignInRequest) (SessionResponse, error)
	// SignOut acknowledges the sign-out. Sessions are stateless JWTs,
	// so the client simply drops its token.
	SignOut(ctx context.Context, identity string) error
	// ParseIdentity validates a session token and returns its identity.
	ParseIdentity(token string) (string, error)
}

type service struct {
	cfg Config
}

func NewService(cfg Config) Service {
	return &service{cfg: cfg}
}

func (s *service) SignIn(_ context.Context, req SignInRequest) (SessionResponse, error) {
	if req.Username != s.cfg.Username {
		return SessionResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(req.Password)); err != nil {
		return SessionResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(req.Username, s.cfg.SessionTTL)
	if err != nil {
		return SessionResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return SessionResponse{
		Identity:    req.Username,
		AccessToken: token,
	}, nil
}

func (s *service) SignOut(_ context.Context, _ string) error {
	return nil
}

func (s *service) ParseIdentity(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", autherrors.ErrTokenExpired
		}
		return "", autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", autherrors.ErrInvalidToken
	}

	identity, ok := claims["identity"].(string)
	if !ok || identity == "" {
		return "", autherrors.ErrInvalidToken
	}

	return identity, nil
}

func (s *service) generateToken(identity string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"identity": identity,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
