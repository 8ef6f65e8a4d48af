// Package policy holds the role-based access rules as pure functions of the
// requester's identity and the target's ownership. Handlers and services call
// these after the target's existence has been established, so a denied
// request never reveals whether the resource exists.
package policy

import "github.com/mediplan/api/internal/models"

// Actor is the authenticated identity extracted from a bearer token.
type Actor struct {
	UserID string
	Role   string
}

// CanCreateAppointment: only patients book appointments, always for themselves.
func CanCreateAppointment(a Actor) bool {
	return a.Role == models.RolePatient
}

// CanViewAppointment: the owning patient, the assigned doctor, or an admin.
func CanViewAppointment(a Actor, patientID, doctorID string) bool {
	switch a.Role {
	case models.RoleAdmin:
		return true
	case models.RolePatient:
		return a.UserID == patientID
	case models.RoleDoctor:
		return a.UserID == doctorID
	}
	return false
}

// CanUpdateAppointment mirrors CanViewAppointment: whoever may read an
// appointment may patch its status and notes.
func CanUpdateAppointment(a Actor, patientID, doctorID string) bool {
	return CanViewAppointment(a, patientID, doctorID)
}

// CanDeleteAppointment: admin only.
func CanDeleteAppointment(a Actor) bool {
	return a.Role == models.RoleAdmin
}

// CanListUsers: admin only.
func CanListUsers(a Actor) bool {
	return a.Role == models.RoleAdmin
}

// CanListDoctors: any authenticated user may browse the doctor directory.
func CanListDoctors(a Actor) bool {
	return models.ValidRole(a.Role)
}

// AppointmentScope describes the listing filter a role is confined to.
type AppointmentScope struct {
	PatientID string // non-empty: only this patient's appointments
	DoctorID  string // non-empty: only this doctor's appointments
}

// ListScope returns the mandatory filter for appointment listings: patients
// see their own, doctors see their own, admins see everything.
func ListScope(a Actor) AppointmentScope {
	switch a.Role {
	case models.RolePatient:
		return AppointmentScope{PatientID: a.UserID}
	case models.RoleDoctor:
		return AppointmentScope{DoctorID: a.UserID}
	}
	return AppointmentScope{}
}
