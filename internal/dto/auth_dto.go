package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	OtherNames    string `json:"otherNames"`
	Password      string `json:"password"`
	Phone         string `json:"phone"`
	Nrc           string `json:"nrc"`
	UserType      string `json:"userType"`
	AuthorityType string `json:"authorityType"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public user projection. It never carries the password
// hash.
type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	ProfileImage  string    `json:"profileImage"`
	Nrc           string    `json:"nrc"`
	Phone         string    `json:"phone"`
	FirstName     string    `json:"firstName"`
	OtherNames    string    `json:"otherNames"`
	LastName      string    `json:"lastName"`
	UserType      string    `json:"userType"`
	AuthorityType string    `json:"authorityType"`
	CreatedAt     time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
	Msg   string       `json:"msg"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"msg"`
}
