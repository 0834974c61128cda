package security

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleApplicant = "applicant"
	RoleAdmin     = "admin"
)

// Claims carries the applicant identity and roles.
type Claims struct {
	jwt.RegisteredClaims
	ApplicantID string   `json:"applicant_id"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
}

func (c *Claims) HasRole(role string) bool { return slices.Contains(c.Roles, role) }

type TokenConfig struct {
	Secret     string
	Issuer     string
	Expiration time.Duration
}

// TokenService issues and validates HS256 session tokens.
type TokenService struct {
	cfg TokenConfig
	now func() time.Time
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.Expiration <= 0 {
		cfg.Expiration = 24 * time.Hour
	}
	return &TokenService{cfg: cfg, now: time.Now}, nil
}

func (s *TokenService) Issue(applicantID, email string, roles []string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.Expiration)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   applicantID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		ApplicantID: applicantID,
		Email:       email,
		Roles:       roles,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid || claims.ApplicantID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
