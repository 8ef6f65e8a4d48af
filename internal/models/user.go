package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RolePatient || role == RoleDoctor || role == RoleAdmin
}

type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password" json:"-"`
	FullName         string             `bson:"fullName" json:"fullName"`
	Role             string             `bson:"role" json:"role"`
	Phone            string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Specialization   string             `bson:"specialization,omitempty" json:"specialization,omitempty"`
	LicenseNumber    string             `bson:"licenseNumber,omitempty" json:"licenseNumber,omitempty"`
	DateOfBirth      string             `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	ResetToken       string             `bson:"resetToken,omitempty" json:"-"`
	ResetTokenExpiry *time.Time         `bson:"resetTokenExpiry,omitempty" json:"-"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the outward-facing profile. Credential and reset fields never
// leave the server.
type PublicUser struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"fullName"`
	Role           string    `json:"role"`
	Phone          string    `json:"phone,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	LicenseNumber  string    `json:"licenseNumber,omitempty"`
	DateOfBirth    string    `json:"dateOfBirth,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID.Hex(),
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		Phone:          u.Phone,
		Specialization: u.Specialization,
		LicenseNumber:  u.LicenseNumber,
		DateOfBirth:    u.DateOfBirth,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// DoctorSummary is the projection served by the doctor directory and embedded
// in enriched appointments.
type DoctorSummary struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Specialization string `json:"specialization,omitempty"`
}

func (u *User) DoctorSummary() DoctorSummary {
	return DoctorSummary{
		ID:             u.ID.Hex(),
		FullName:       u.FullName,
		Email:          u.Email,
		Specialization: u.Specialization,
	}
}

// PatientSummary is embedded in enriched appointments.
type PatientSummary struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

func (u *User) PatientSummary() PatientSummary {
	return PatientSummary{
		ID:          u.ID.Hex(),
		FullName:    u.FullName,
		Email:       u.Email,
		Phone:       u.Phone,
		DateOfBirth: u.DateOfBirth,
	}
}
