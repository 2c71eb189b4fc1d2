package service

import (
	"careertest/internal/model"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AuthService issues and validates respondent tokens. A token scopes the
// stored answers to one respondent the way a browser scopes local storage.
type AuthService struct {
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(secret string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(secret),
		tokenTTL:  24 * time.Hour,
		now:       time.Now,
	}
}

// NewRespondent generates a respondent ID and its token
func (s *AuthService) NewRespondent() (string, string, error) {
	respondentID := "r_" + uuid.New().String()[:8]
	token, err := s.GenerateToken(respondentID)
	if err != nil {
		return "", "", err
	}
	return respondentID, token, nil
}

// GenerateToken creates a token for an existing respondent
func (s *AuthService) GenerateToken(respondentID string) (string, error) {
	now := s.now()
	claims := &model.RespondentClaims{
		RespondentID: respondentID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a respondent JWT and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.RespondentClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.RespondentClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.RespondentClaims)
	if !ok || !token.Valid || claims.RespondentID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
