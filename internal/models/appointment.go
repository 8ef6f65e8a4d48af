package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether status is a known appointment status.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TerminalStatus reports whether status admits no further transitions.
func TerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// Appointment stores the scheduled date and time as the strings submitted by
// the client ("2006-01-02" and "15:04"); the service layer validates and
// combines them.
type Appointment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientID       primitive.ObjectID `bson:"patientId" json:"patientId"`
	DoctorID        primitive.ObjectID `bson:"doctorId" json:"doctorId"`
	AppointmentDate string             `bson:"appointmentDate" json:"appointmentDate"`
	AppointmentTime string             `bson:"appointmentTime" json:"appointmentTime"`
	Reason          string             `bson:"reason" json:"reason"`
	Status          string             `bson:"status" json:"status"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EnrichedAppointment is an appointment with denormalized patient and doctor
// summaries for display.
type EnrichedAppointment struct {
	ID              string          `json:"id"`
	PatientID       string          `json:"patientId"`
	DoctorID        string          `json:"doctorId"`
	AppointmentDate string          `json:"appointmentDate"`
	AppointmentTime string          `json:"appointmentTime"`
	Reason          string          `json:"reason"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Patient         *PatientSummary `json:"patient,omitempty"`
	Doctor          *DoctorSummary  `json:"doctor,omitempty"`
}

func (a *Appointment) Enriched(patient, doctor *User) EnrichedAppointment {
	out := EnrichedAppointment{
		ID:              a.ID.Hex(),
		PatientID:       a.PatientID.Hex(),
		DoctorID:        a.DoctorID.Hex(),
		AppointmentDate: a.AppointmentDate,
		AppointmentTime: a.AppointmentTime,
		Reason:          a.Reason,
		Status:          a.Status,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if patient != nil {
		s := patient.PatientSummary()
		out.Patient = &s
	}
	if doctor != nil {
		s := doctor.DoctorSummary()
		out.Doctor = &s
	}
	return out
}
