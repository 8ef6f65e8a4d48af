package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mediplan/api/internal/service"
)

type registerRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	FullName       string `json:"fullName" binding:"required"`
	Role           string `json:"role" binding:"required"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	LicenseNumber  string `json:"licenseNumber"`
	DateOfBirth    string `json:"dateOfBirth"`
}

// Register creates an account and returns a session token with the profile.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	token, user, err := h.Auth.Register(c.Request.Context(), service.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		FullName:       req.FullName,
		Role:           req.Role,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
		DateOfBirth:    req.DateOfBirth,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	token, user, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the profile of the authenticated caller.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Auth.Profile(c.Request.Context(), actor(c).UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type resetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPassword kicks off the reset flow. The response body is identical
// whether or not the account exists.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if err := h.Auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": service.ResetMessage})
}
