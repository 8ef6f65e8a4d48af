// Package service implements the business rules of the booking system:
// registration and login, the appointment lifecycle, and the user/doctor
// directory. Persistence is reached through the store interfaces below so the
// rules stay independent of the mongo binding.
package service

import (
	"context"
	"time"

	"github.com/mediplan/api/internal/models"
	"github.com/mediplan/api/internal/repository"
)

// UserStore is the identity persistence surface consumed by the services.
// *repository.UserRepository implements it.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	ListDoctors(ctx context.Context) ([]models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
	SetResetToken(ctx context.Context, id string, token string, expiry time.Time) error
}

// AppointmentStore is the appointment persistence surface.
// *repository.AppointmentRepository implements it.
type AppointmentStore interface {
	Insert(ctx context.Context, apt *models.Appointment) error
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	List(ctx context.Context, filter repository.AppointmentFilter) ([]models.Appointment, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	dateTimeLayout = dateLayout + " " + timeLayout

	doctorsCacheKey = "directory:doctors"
	doctorsCacheTTL = 5 * time.Minute
)
