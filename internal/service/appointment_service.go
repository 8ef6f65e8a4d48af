package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mediplan/api/internal/apperr"
	"github.com/mediplan/api/internal/models"
	"github.com/mediplan/api/internal/policy"
	"github.com/mediplan/api/internal/repository"
)

type CreateAppointmentInput struct {
	DoctorID        string
	AppointmentDate string
	AppointmentTime string
	Reason          string
}

// ListAppointmentsOptions are the optional query filters. PatientID is only
// honored for admins; other roles are already pinned to their own records.
type ListAppointmentsOptions struct {
	Status    string
	PatientID string
}

// AppointmentPatch is a partial update. Nil fields are left untouched.
type AppointmentPatch struct {
	Status *string
	Notes  *string
}

type AppointmentService struct {
	appointments AppointmentStore
	users        UserStore
	logger       *zap.Logger
	now          func() time.Time
}

func NewAppointmentService(appointments AppointmentStore, users UserStore, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		users:        users,
		logger:       logger.Named("AppointmentService"),
		now:          time.Now,
	}
}

// scheduledAt combines the date and time strings into an instant on the
// server clock's location.
func scheduledAt(date, timeOfDay string) (time.Time, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return time.Time{}, fmt.Errorf("%w: appointmentDate must be in %s format", apperr.ErrValidation, dateLayout)
	}
	if _, err := time.Parse(timeLayout, timeOfDay); err != nil {
		return time.Time{}, fmt.Errorf("%w: appointmentTime must be in %s format", apperr.ErrValidation, timeLayout)
	}
	return time.ParseInLocation(dateTimeLayout, date+" "+timeOfDay, time.Local)
}

// Create books an appointment for the acting patient. The doctor reference
// must resolve to a doctor account and the slot must be strictly in the
// future; the new appointment always starts pending.
func (s *AppointmentService) Create(ctx context.Context, actor policy.Actor, in CreateAppointmentInput) (models.EnrichedAppointment, error) {
	if !policy.CanCreateAppointment(actor) {
		return models.EnrichedAppointment{}, fmt.Errorf("%w: only patients can create appointments", apperr.ErrForbidden)
	}

	doctor, err := s.users.FindByID(ctx, in.DoctorID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.EnrichedAppointment{}, fmt.Errorf("%w: invalid doctor selected", apperr.ErrInvalidReference)
		}
		return models.EnrichedAppointment{}, err
	}
	if doctor.Role != models.RoleDoctor {
		return models.EnrichedAppointment{}, fmt.Errorf("%w: invalid doctor selected", apperr.ErrInvalidReference)
	}

	at, err := scheduledAt(in.AppointmentDate, in.AppointmentTime)
	if err != nil {
		return models.EnrichedAppointment{}, err
	}
	if !at.After(s.now()) {
		return models.EnrichedAppointment{}, apperr.ErrPastDateTime
	}

	patient, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return models.EnrichedAppointment{}, err
	}

	apt := models.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
		Reason:          in.Reason,
		Status:          models.StatusPending,
	}
	if err := s.appointments.Insert(ctx, &apt); err != nil {
		return models.EnrichedAppointment{}, err
	}
	s.logger.Info("appointment created",
		zap.String("appointmentID", apt.ID.Hex()),
		zap.String("patientID", patient.ID.Hex()),
		zap.String("doctorID", doctor.ID.Hex()))

	return apt.Enriched(patient, doctor), nil
}

// List returns appointments visible to the actor, enriched with patient and
// doctor summaries, scheduled-newest first.
func (s *AppointmentService) List(ctx context.Context, actor policy.Actor, opts ListAppointmentsOptions) ([]models.EnrichedAppointment, error) {
	if opts.Status != "" && !models.ValidStatus(opts.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, opts.Status)
	}

	scope := policy.ListScope(actor)
	filter := repository.AppointmentFilter{
		PatientID: scope.PatientID,
		DoctorID:  scope.DoctorID,
		Status:    opts.Status,
	}
	if actor.Role == models.RoleAdmin && opts.PatientID != "" {
		filter.PatientID = opts.PatientID
	}

	appointments, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, appointments), nil
}

// Update applies a partial status/notes patch. Existence is checked before
// ownership, then the patch is validated: status must be a known value and
// completed/cancelled appointments cannot change status again.
func (s *AppointmentService) Update(ctx context.Context, actor policy.Actor, id string, patch AppointmentPatch) (models.EnrichedAppointment, error) {
	apt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return models.EnrichedAppointment{}, err
	}
	if !policy.CanUpdateAppointment(actor, apt.PatientID.Hex(), apt.DoctorID.Hex()) {
		return models.EnrichedAppointment{}, apperr.ErrForbidden
	}

	fields := map[string]interface{}{}
	if patch.Status != nil {
		if !models.ValidStatus(*patch.Status) {
			return models.EnrichedAppointment{}, fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, *patch.Status)
		}
		if models.TerminalStatus(apt.Status) && *patch.Status != apt.Status {
			return models.EnrichedAppointment{}, fmt.Errorf("%w: a %s appointment cannot change status", apperr.ErrValidation, apt.Status)
		}
		fields["status"] = *patch.Status
		apt.Status = *patch.Status
	}
	if patch.Notes != nil {
		fields["notes"] = *patch.Notes
		apt.Notes = *patch.Notes
	}
	if len(fields) == 0 {
		return models.EnrichedAppointment{}, fmt.Errorf("%w: no fields to update", apperr.ErrValidation)
	}

	if err := s.appointments.Update(ctx, id, fields); err != nil {
		return models.EnrichedAppointment{}, err
	}
	apt.UpdatedAt = s.now()
	s.logger.Info("appointment updated", zap.String("appointmentID", id), zap.String("by", actor.UserID))

	patient, doctor := s.lookupParties(ctx, apt)
	return apt.Enriched(patient, doctor), nil
}

// Delete permanently removes an appointment. Admin only; existence is checked
// first so non-admins get the same answer for real and missing ids.
func (s *AppointmentService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	if _, err := s.appointments.FindByID(ctx, id); err != nil {
		return err
	}
	if !policy.CanDeleteAppointment(actor) {
		return fmt.Errorf("%w: only admins can delete appointments", apperr.ErrForbidden)
	}
	if err := s.appointments.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("appointment deleted", zap.String("appointmentID", id), zap.String("by", actor.UserID))
	return nil
}

func (s *AppointmentService) lookupParties(ctx context.Context, apt *models.Appointment) (patient, doctor *models.User) {
	patient, _ = s.users.FindByID(ctx, apt.PatientID.Hex())
	doctor, _ = s.users.FindByID(ctx, apt.DoctorID.Hex())
	return patient, doctor
}

// enrichAll resolves party summaries for a result set, fetching each user
// once. A dangling reference leaves the summary nil rather than failing the
// listing.
func (s *AppointmentService) enrichAll(ctx context.Context, appointments []models.Appointment) []models.EnrichedAppointment {
	seen := map[string]*models.User{}
	lookup := func(id string) *models.User {
		if u, ok := seen[id]; ok {
			return u
		}
		u, err := s.users.FindByID(ctx, id)
		if err != nil {
			u = nil
		}
		seen[id] = u
		return u
	}

	out := make([]models.EnrichedAppointment, 0, len(appointments))
	for i := range appointments {
		apt := &appointments[i]
		patient := lookup(apt.PatientID.Hex())
		doctor := lookup(apt.DoctorID.Hex())
		out = append(out, apt.Enriched(patient, doctor))
	}
	return out
}
