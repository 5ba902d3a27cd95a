package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/repository"
	"github.com/sjperalta/billing-api/internal/session"
	"github.com/sjperalta/billing-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo repository.UserRepository
	sessions *session.Manager
	auditSvc *AuditService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, sessions *session.Manager, auditSvc *AuditService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		auditSvc: auditSvc,
	}
}

// SignupInput is the self-service registration payload
type SignupInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	FullNameAlt string `json:"full_name"`
}

// LoginResult represents the result of a login attempt
type LoginResult struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expiresAt"`
	User      models.UserResponse `json:"user"`
	Session   *session.Tokens     `json:"-"`
}

// Signup registers a CLIENT account
func (s *AuthService) Signup(ctx context.Context, input SignupInput, meta Actor) (*models.User, error) {
	fullName := input.FullName
	if fullName == "" {
		fullName = input.FullNameAlt
	}

	user, err := s.createAccount(ctx, input.Email, input.Password, fullName, models.RoleClient, nil)
	if err != nil {
		return nil, err
	}

	meta.UserID = user.ID
	s.auditSvc.LogAsync(meta, models.AuditActionSignup, "User", user.ID, user.Email)
	return user, nil
}

// createAccount validates, hashes and stores a new user
func (s *AuthService) createAccount(ctx context.Context, email, password, fullName, role string, clientID *uint) (*models.User, error) {
	email = models.NormalizeEmail(email)
	fullName = strings.TrimSpace(fullName)
	if email == "" || password == "" || fullName == "" {
		return nil, newError(ErrValidation, "Missing required fields")
	}
	if !models.IsValidRole(role) {
		return nil, newError(ErrValidation, "Invalid role")
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, newError(ErrDuplicate, "User already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		ClientID:     clientID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, createError(err, "User already exists")
	}
	return user, nil
}

// Login authenticates a user and issues a session
func (s *AuthService) Login(ctx context.Context, email, password string, meta Actor) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, newError(ErrValidation, "Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrInvalidCredentials, "Invalid email or password")
		}
		return nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		logger.Warn("Failed login attempt", "email", user.Email)
		return nil, newError(ErrInvalidCredentials, "Invalid email or password")
	}

	tokens, err := s.sessions.Issue(user.ID, user.Role, user.ClientID)
	if err != nil {
		return nil, err
	}

	meta.UserID = user.ID
	meta.Role = user.Role
	s.auditSvc.LogAsync(meta, models.AuditActionLogin, "User", user.ID, "")

	return &LoginResult{
		Token:     tokens.User,
		ExpiresAt: tokens.ExpiresAt,
		User:      user.ToResponse(),
		Session:   tokens,
	}, nil
}

// Me returns the account behind the session
func (s *AuthService) Me(ctx context.Context, actor Actor) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrUnauthorized, "Unauthorized")
		}
		return nil, err
	}
	return user, nil
}

// SessionTTL is how long login cookies live.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessions.TTL()
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword compares a password with a hash
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
