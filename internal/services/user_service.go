package services

import (
	"context"

	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/internal/repository"
)

// UserService manages accounts on behalf of administrators
type UserService struct {
	repo     repository.UserRepository
	authSvc  *AuthService
	auditSvc *AuditService
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepository, authSvc *AuthService, auditSvc *AuditService) *UserService {
	return &UserService{repo: repo, authSvc: authSvc, auditSvc: auditSvc}
}

// CreateUserInput is the admin account creation payload
type CreateUserInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	FullNameAlt string `json:"full_name"`
	Role        string `json:"role" binding:"omitempty,user_role"`
	ClientID    *uint  `json:"clientId"`
}

// List returns every account, newest first
func (s *UserService) List(ctx context.Context, actor Actor) ([]models.UserResponse, error) {
	if err := actor.requireAdmin(); err != nil {
		return nil, err
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return out, nil
}

// Create adds an account with any role
func (s *UserService) Create(ctx context.Context, actor Actor, input CreateUserInput) (*models.User, error) {
	if err := actor.requireAdmin(); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.RoleClient
	}
	fullName := input.FullName
	if fullName == "" {
		fullName = input.FullNameAlt
	}

	user, err := s.authSvc.createAccount(ctx, input.Email, input.Password, fullName, role, input.ClientID)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(actor, models.AuditActionCreate, "User", user.ID, user.Email)
	return user, nil
}
