package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mediplan/api/internal/models"
)

func TestAccessMatrix(t *testing.T) {
	patient := Actor{UserID: "p1", Role: models.RolePatient}
	doctor := Actor{UserID: "d1", Role: models.RoleDoctor}
	admin := Actor{UserID: "a1", Role: models.RoleAdmin}

	t.Run("create appointment", func(t *testing.T) {
		assert.True(t, CanCreateAppointment(patient))
		assert.False(t, CanCreateAppointment(doctor))
		assert.False(t, CanCreateAppointment(admin))
	})

	t.Run("view and update ownership", func(t *testing.T) {
		// appointment owned by p1 with d1
		assert.True(t, CanUpdateAppointment(patient, "p1", "d1"))
		assert.True(t, CanUpdateAppointment(doctor, "p1", "d1"))
		assert.True(t, CanUpdateAppointment(admin, "p1", "d1"))

		// unrelated parties
		assert.False(t, CanUpdateAppointment(Actor{UserID: "p2", Role: models.RolePatient}, "p1", "d1"))
		assert.False(t, CanUpdateAppointment(Actor{UserID: "d2", Role: models.RoleDoctor}, "p1", "d1"))

		// a patient assigned as the doctor of record still has no doctor rights
		assert.False(t, CanUpdateAppointment(Actor{UserID: "d1", Role: models.RolePatient}, "p1", "d1"))
	})

	t.Run("delete appointment", func(t *testing.T) {
		assert.False(t, CanDeleteAppointment(patient))
		assert.False(t, CanDeleteAppointment(doctor))
		assert.True(t, CanDeleteAppointment(admin))
	})

	t.Run("list users", func(t *testing.T) {
		assert.False(t, CanListUsers(patient))
		assert.False(t, CanListUsers(doctor))
		assert.True(t, CanListUsers(admin))
	})

	t.Run("list doctors", func(t *testing.T) {
		assert.True(t, CanListDoctors(patient))
		assert.True(t, CanListDoctors(doctor))
		assert.True(t, CanListDoctors(admin))
		assert.False(t, CanListDoctors(Actor{UserID: "x", Role: "intruder"}))
	})
}

func TestListScope(t *testing.T) {
	assert.Equal(t, AppointmentScope{PatientID: "p1"}, ListScope(Actor{UserID: "p1", Role: models.RolePatient}))
	assert.Equal(t, AppointmentScope{DoctorID: "d1"}, ListScope(Actor{UserID: "d1", Role: models.RoleDoctor}))
	assert.Equal(t, AppointmentScope{}, ListScope(Actor{UserID: "a1", Role: models.RoleAdmin}))
}
