package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetUsers lists every account with credential fields stripped. Admin only.
func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.Directory.ListUsers(c.Request.Context(), actor(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetDoctors serves the doctor directory used by the booking form.
func (h *Handler) GetDoctors(c *gin.Context) {
	doctors, err := h.Directory.ListDoctors(c.Request.Context(), actor(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// Health is an unauthenticated liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Server is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
