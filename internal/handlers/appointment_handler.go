package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mediplan/api/internal/service"
)

type createAppointmentRequest struct {
	DoctorID        string `json:"doctorId" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	AppointmentTime string `json:"appointmentTime" binding:"required"`
	Reason          string `json:"reason" binding:"required"`
}

// CreateAppointment books an appointment for the authenticated patient.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	apt, err := h.Appointments.Create(c.Request.Context(), actor(c), service.CreateAppointmentInput{
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Reason:          req.Reason,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, apt)
}

// GetAppointments lists the appointments visible to the caller. Optional
// query filters: status, and patientId for admins.
func (h *Handler) GetAppointments(c *gin.Context) {
	appointments, err := h.Appointments.List(c.Request.Context(), actor(c), service.ListAppointmentsOptions{
		Status:    c.Query("status"),
		PatientID: c.Query("patientId"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

type updateAppointmentRequest struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// UpdateAppointment patches status and/or notes of an appointment the caller
// may mutate.
func (h *Handler) UpdateAppointment(c *gin.Context) {
	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	apt, err := h.Appointments.Update(c.Request.Context(), actor(c), c.Param("id"), service.AppointmentPatch{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, apt)
}

// DeleteAppointment permanently removes an appointment. Admin only.
func (h *Handler) DeleteAppointment(c *gin.Context) {
	if err := h.Appointments.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}
