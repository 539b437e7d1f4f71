package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are JWT claims for end-user authentication
type UserClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// ClinicianClaims are JWT claims for the clinician escalation dashboard
type ClinicianClaims struct {
	ClinicianID string `json:"clinicianId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Role  string `json:"role"`
}
