package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mediplan/api/internal/apperr"
	"github.com/mediplan/api/internal/auth"
	"github.com/mediplan/api/internal/models"
	"github.com/mediplan/api/internal/repository"
)

// ResetMessage is returned by RequestPasswordReset whether or not the account
// exists, so the endpoint cannot be used to enumerate users.
const ResetMessage = "If an account exists with this email, you will receive password reset instructions."

type RegisterInput struct {
	Email          string
	Password       string
	FullName       string
	Role           string
	Phone          string
	Specialization string
	LicenseNumber  string
	DateOfBirth    string
}

type AuthService struct {
	users  UserStore
	tokens *auth.Manager
	cache  repository.Cache
	logger *zap.Logger
}

// NewAuthService builds the auth service. cache may be nil; it is only used
// to drop the doctor directory entry when a doctor registers.
func NewAuthService(users UserStore, tokens *auth.Manager, cache repository.Cache, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, cache: cache, logger: logger.Named("AuthService")}
}

// NormalizeEmail lowercases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and returns a session token with the public
// profile. Role is fixed at creation; fields belonging to another role are
// dropped.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, models.PublicUser, error) {
	if !models.ValidRole(in.Role) {
		return "", models.PublicUser{}, fmt.Errorf("%w: role must be patient, doctor or admin", apperr.ErrValidation)
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return "", models.PublicUser{}, err
	}

	user := models.User{
		Email:    NormalizeEmail(in.Email),
		Password: hashed,
		FullName: in.FullName,
		Role:     in.Role,
		Phone:    in.Phone,
	}
	switch in.Role {
	case models.RoleDoctor:
		user.Specialization = in.Specialization
		user.LicenseNumber = in.LicenseNumber
	case models.RolePatient:
		user.DateOfBirth = in.DateOfBirth
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return "", models.PublicUser{}, err
	}
	s.logger.Info("user registered", zap.String("userID", user.ID.Hex()), zap.String("role", user.Role))

	if user.Role == models.RoleDoctor && s.cache != nil {
		_ = s.cache.Delete(ctx, doctorsCacheKey)
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Role, auth.SessionTTL)
	if err != nil {
		return "", models.PublicUser{}, err
	}
	return token, user.Public(), nil
}

// Login verifies credentials and returns a session token. Unknown email and
// wrong password produce the same failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.PublicUser, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			auth.BurnPasswordCheck(password)
			return "", models.PublicUser{}, apperr.ErrInvalidCredentials
		}
		return "", models.PublicUser{}, err
	}

	if !auth.CheckPasswordHash(password, user.Password) {
		return "", models.PublicUser{}, apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Role, auth.SessionTTL)
	if err != nil {
		return "", models.PublicUser{}, err
	}
	return token, user.Public(), nil
}

// Profile returns the public profile for an authenticated user id.
func (s *AuthService) Profile(ctx context.Context, userID string) (models.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}

// RequestPasswordReset stores a one-hour reset token for the account if it
// exists. The caller always receives ResetMessage.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Role, auth.ResetTokenTTL)
	if err != nil {
		return err
	}
	expiry := time.Now().Add(auth.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID.Hex(), token, expiry); err != nil {
		return err
	}
	s.logger.Info("password reset token issued", zap.String("userID", user.ID.Hex()))
	return nil
}
