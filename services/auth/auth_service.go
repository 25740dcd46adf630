package auth

import (
	"errors"
	"fmt"
	"time"

	adminModel "civic-report/models/admin"
	userModel "civic-report/models/user"
	otpService "civic-report/services/otp"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service resolves verified identities to session tokens.
type Service struct {
	DB           *gorm.DB
	OTP          *otpService.Service
	JWTSecret    string
	JWTExpiresIn time.Duration
}

func NewService(db *gorm.DB, otp *otpService.Service, jwtSecret string, jwtExpiresIn time.Duration) *Service {
	return &Service{
		DB:           db,
		OTP:          otp,
		JWTSecret:    jwtSecret,
		JWTExpiresIn: jwtExpiresIn,
	}
}

// LoginWithOTP verifies the submitted code and, on success, resolves the
// phone to a registered user and mints a session token. OTP verification
// errors pass through unchanged so callers can map them to statuses.
func (s *Service) LoginWithOTP(phone, code string) (string, *userModel.User, error) {
	if err := s.OTP.Verify(phone, code); err != nil {
		return "", nil, err
	}

	var u userModel.User
	if err := s.DB.Where("phone = ?", phone).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrUserNotRegistered
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := s.IssueToken(u.ID, u.Phone, u.Role)
	if err != nil {
		return "", nil, err
	}

	return token, &u, nil
}

// LoginAdmin checks department admin credentials and mints an admin token.
func (s *Service) LoginAdmin(email, password string) (string, *adminModel.Admin, error) {
	var a adminModel.Admin
	if err := s.DB.Where("email = ?", email).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(a.ID, "", userModel.RoleAdmin)
	if err != nil {
		return "", nil, err
	}

	return token, &a, nil
}

// IssueToken mints a signed HS256 session token with sub/phone/role claims.
func (s *Service) IssueToken(subject, phone, role string) (string, error) {
	if s.JWTSecret == "" {
		return "", ErrMissingJWTSecret
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"phone": phone,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.JWTExpiresIn).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}
