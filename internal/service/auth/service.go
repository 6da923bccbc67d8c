package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/auth"
	"github.com/allinone-hr/wfh-backend-go/internal/domain/employee"
	"github.com/allinone-hr/wfh-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Service authenticates staff against the directory and issues tokens.
type Service struct {
	employees  employee.Repository
	jwtService jwt.Service
}

func NewService(employees employee.Repository, jwtService jwt.Service) *Service {
	return &Service{employees: employees, jwtService: jwtService}
}

// Login verifies the staff credentials and returns an access token plus the
// directory record. A missing employee and a wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, string, int64, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, "", 0, err
	}

	emp, err := s.employees.GetByStaffID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to get employee: %w", err)
	}

	hash, err := s.employees.GetCredentialHash(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, employee.ErrCredentialNotFound) {
			return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to get credentials: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(emp)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(emp.StaffID)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	response := auth.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Employee:    employee.ToResponse(emp),
	}
	return response, refreshToken, refreshExpiresAt, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	staffIDClaim, ok := token.Get("staff_id")
	if !ok {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	staffID, ok := staffIDClaim.(float64)
	if !ok {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	emp, err := s.employees.GetByStaffID(ctx, int64(staffID))
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(emp)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return auth.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Employee:    employee.ToResponse(emp),
	}, nil
}

// Logout revokes the refresh token.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
}
