package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fixmycity/fixmycity-backend/internal/config"
	"github.com/fixmycity/fixmycity-backend/internal/dto"
	"github.com/fixmycity/fixmycity-backend/internal/models"
)

var userTypes = []string{models.UserTypeEndUser, models.UserTypeAuthority, models.UserTypeSuperUser}

var authorityTypes = []string{models.AuthorityRDA, models.AuthorityZEMA}

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates a user and returns a signed token plus the public
// projection. The username is derived from email+firstName+lastName, and a
// clash on any of email, nrc, phone or username rejects the registration.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Nrc == "" || req.Email == "" || req.FirstName == "" || req.LastName == "" || req.Password == "" || req.Phone == "" {
		return nil, invalid("The following fields [ First Name, Last Name, Email, Password, NRC and Phone ] are all required")
	}
	if len(req.Password) < 8 {
		return nil, invalid("Password must be at least 8 characters long")
	}

	// Unknown values silently fall back to the defaults.
	userType := models.UserTypeEndUser
	if contains(userTypes, req.UserType) {
		userType = req.UserType
	}
	authorityType := models.AuthorityNone
	if contains(authorityTypes, req.AuthorityType) {
		authorityType = req.AuthorityType
	}

	username := req.Email + req.FirstName + req.LastName

	var existing models.User
	err := s.db.
		Where("email = ? OR nrc = ? OR phone = ? OR username = ?", req.Email, req.Nrc, req.Phone, username).
		First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:            uuid.New(),
		Email:         req.Email,
		Username:      username,
		Password:      string(hash),
		ProfileImage:  "https://api.dicebear.com/7.x/avataaars/svg?seed=" + username,
		Nrc:           req.Nrc,
		Phone:         req.Phone,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		OtherNames:    req.OtherNames,
		UserType:      userType,
		AuthorityType: authorityType,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token,
		User:  publicUser(&user),
		Msg:   fullName(&user) + " Created Successfully",
	}, nil
}

// Login returns the same error for an unknown email and a wrong password so
// user existence never leaks.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, invalid("All Fields Are Required")
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token,
		User:  publicUser(&user),
		Msg:   fullName(&user) + " Logged In Successfully",
	}, nil
}

// UserByID loads the user referenced by a verified token subject.
func (s *AuthService) UserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func publicUser(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		ProfileImage:  user.ProfileImage,
		Nrc:           user.Nrc,
		Phone:         user.Phone,
		FirstName:     user.FirstName,
		OtherNames:    user.OtherNames,
		LastName:      user.LastName,
		UserType:      user.UserType,
		AuthorityType: user.AuthorityType,
		CreatedAt:     user.CreatedAt,
	}
}

func fullName(user *models.User) string {
	return strings.Join(strings.Fields(user.FirstName+" "+user.OtherNames+" "+user.LastName), " ")
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
