package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mediplan/api/internal/apperr"
	"github.com/mediplan/api/internal/models"
	"github.com/mediplan/api/internal/policy"
	"github.com/mediplan/api/internal/repository"
)

// DirectoryService serves the doctor directory and the admin user listing.
// The doctor directory is read on every booking form load, so it sits behind
// a short-lived cache when one is configured.
type DirectoryService struct {
	users  UserStore
	cache  repository.Cache
	logger *zap.Logger
}

func NewDirectoryService(users UserStore, cache repository.Cache, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{users: users, cache: cache, logger: logger.Named("DirectoryService")}
}

// ListDoctors returns all doctor accounts projected to their directory
// summary, sorted by full name. Any authenticated role may call it.
func (s *DirectoryService) ListDoctors(ctx context.Context, actor policy.Actor) ([]models.DoctorSummary, error) {
	if !policy.CanListDoctors(actor) {
		return nil, apperr.ErrForbidden
	}

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, doctorsCacheKey); err == nil {
			var doctors []models.DoctorSummary
			if err := json.Unmarshal(raw, &doctors); err == nil {
				return doctors, nil
			}
		}
	}

	users, err := s.users.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}
	doctors := make([]models.DoctorSummary, 0, len(users))
	for i := range users {
		doctors = append(doctors, users[i].DoctorSummary())
	}

	if s.cache != nil {
		if raw, err := json.Marshal(doctors); err == nil {
			_ = s.cache.Set(ctx, doctorsCacheKey, raw, doctorsCacheTTL)
		}
	}
	return doctors, nil
}

// ListUsers returns every account minus credential fields, newest first.
// Admin only.
func (s *DirectoryService) ListUsers(ctx context.Context, actor policy.Actor) ([]models.PublicUser, error) {
	if !policy.CanListUsers(actor) {
		return nil, fmt.Errorf("%w: admin access required", apperr.ErrForbidden)
	}

	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}
