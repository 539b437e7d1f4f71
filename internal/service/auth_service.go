package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"mindhaven/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles user and clinician authentication
type AuthService struct {
	clinicianUsername string
	clinicianPassword string
	jwtSecret         []byte
}

// NewAuthService creates a new auth service
func NewAuthService(jwtSecret string) *AuthService {
	username := os.Getenv("CLINICIAN_USERNAME")
	if username == "" {
		username = "clinician"
	}
	password := os.Getenv("CLINICIAN_PASSWORD")
	if password == "" {
		password = "password123"
	}

	return &AuthService{
		clinicianUsername: username,
		clinicianPassword: password,
		jwtSecret:         []byte(jwtSecret),
	}
}

// ClinicianLogin validates clinician credentials and returns a token for the
// escalation dashboard
func (s *AuthService) ClinicianLogin(username, password string) (*model.LoginResponse, error) {
	if username != s.clinicianUsername || password != s.clinicianPassword {
		return nil, ErrInvalidCredentials
	}

	clinicianID := "clin_" + uuid.New().String()[:8]

	claims := &model.ClinicianClaims{
		ClinicianID: clinicianID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{Token: tokenString, ID: clinicianID, Role: "clinician"}, nil
}

// StartUserSession issues a token for an end user beginning a wellness
// session. Account identity lives in the hosted identity provider; this
// service only needs a stable subject for the session's attempts.
func (s *AuthService) StartUserSession() (*model.LoginResponse, error) {
	userID := "user_" + uuid.New().String()[:8]

	claims := &model.UserClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{Token: tokenString, ID: userID, Role: "user"}, nil
}

// ValidateUserToken validates a user JWT and returns claims
func (s *AuthService) ValidateUserToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateClinicianToken validates a clinician JWT and returns claims
func (s *AuthService) ValidateClinicianToken(tokenString string) (*model.ClinicianClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.ClinicianClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.ClinicianClaims)
	if !ok || !token.Valid || claims.ClinicianID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
