package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medibook/internal/service"
)

// AdminHandler handles the admin-only surface: doctor management and
// the analytics dashboard.
type AdminHandler struct {
	users     service.UserService
	analytics service.AnalyticsService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(users service.UserService, analytics service.AnalyticsService) *AdminHandler {
	return &AdminHandler{
		users:     users,
		analytics: analytics,
	}
}

// CreateDoctorRequest represents an admin-initiated doctor creation.
type CreateDoctorRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Specialization string `json:"specialization" validate:"required"`
}

// SetApprovalRequest represents an approval toggle.
type SetApprovalRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

// ListDoctors godoc
// @Summary List all doctors with full records
// @Tags admin
// @Produce json
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/doctors [get]
func (h *AdminHandler) ListDoctors(c echo.Context) error {
	doctors, err := h.users.ListDoctorsFull(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, doctors)
}

// CreateDoctor godoc
// @Summary Create a doctor account
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateDoctorRequest true "Doctor data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/doctors [post]
func (h *AdminHandler) CreateDoctor(c echo.Context) error {
	var req CreateDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	doctor, err := h.users.CreateDoctor(c.Request().Context(), req.Name, req.Email, req.Password, req.Specialization)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, doctor)
}

// SetApproval godoc
// @Summary Approve or revoke a doctor
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Doctor ID"
// @Param request body SetApprovalRequest true "Approval flag"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/doctors/{id}/approve [put]
func (h *AdminHandler) SetApproval(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req SetApprovalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	doctor, err := h.users.SetApproval(c.Request().Context(), id, *req.Approved)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, doctor)
}

// DeleteDoctor godoc
// @Summary Delete a doctor account
// @Tags admin
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/doctors/{id} [delete]
func (h *AdminHandler) DeleteDoctor(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.users.DeleteDoctor(c.Request().Context(), id); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "doctor deleted successfully",
	})
}

// Analytics godoc
// @Summary Dashboard analytics
// @Tags admin
// @Produce json
// @Success 200 {object} model.AnalyticsReport
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/analytics [get]
func (h *AdminHandler) Analytics(c echo.Context) error {
	report, err := h.analytics.Report(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, report)
}
