package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
	"rentaldesk-backend/internal/security"
)

type authService struct {
	staff  repository.StaffRepository
	tokens security.TokenManager
	audit  repository.AuditLogRepository
}

func NewAuthService(staff repository.StaffRepository, tokens security.TokenManager, audit repository.AuditLogRepository) AuthService {
	return &authService{staff: staff, tokens: tokens, audit: audit}
}

var ErrInvalidCredentials = errors.New("invalid username or password")

func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.Staff, error) {
	staff, err := s.staff.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			recordAction(ctx, s.audit, Actor{}, domain.ActionLoginFailed, fmt.Sprintf("Login attempt for unknown user %s", username), false)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !staff.IsActive {
		recordAction(ctx, s.audit, Actor{ID: staff.ID}, domain.ActionLoginFailed, fmt.Sprintf("Login attempt for deactivated user %s", username), false)
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)); err != nil {
		recordAction(ctx, s.audit, Actor{ID: staff.ID}, domain.ActionLoginFailed, fmt.Sprintf("Wrong password for user %s", username), false)
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(staff.ID, staff.Username, staff.Groups)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	recordAction(ctx, s.audit, Actor{ID: staff.ID, Username: staff.Username}, domain.ActionLogin, fmt.Sprintf("User %s logged in", username), true)
	return token, staff, nil
}
