package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"medibook/internal/auth"
	"medibook/internal/model"
	"medibook/internal/service"
)

// AppointmentHandler handles booking, listing, status and review
// endpoints.
type AppointmentHandler struct {
	appointments service.AppointmentService
	users        service.UserService
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(appointments service.AppointmentService, users service.UserService) *AppointmentHandler {
	return &AppointmentHandler{
		appointments: appointments,
		users:        users,
	}
}

// BookRequest represents a booking request.
type BookRequest struct {
	DoctorID uint   `json:"doctor_id" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required"`
	Reason   string `json:"reason"`
}

// UpdateStatusRequest represents a status transition request.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ReviewRequest represents a rating/review submission.
type ReviewRequest struct {
	Rating int    `json:"rating" validate:"required"`
	Review string `json:"review"`
}

// ListDoctors godoc
// @Summary List doctors available for booking
// @Tags appointments
// @Produce json
// @Success 200 {array} model.DoctorView
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /appointments/doctors [get]
func (h *AppointmentHandler) ListDoctors(c echo.Context) error {
	doctors, err := h.users.ListDoctors(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, doctors)
}

// Book godoc
// @Summary Book an appointment with a doctor
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body BookRequest true "Booking data"
// @Success 201 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /appointments/book [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
	}

	appt, err := h.appointments.Book(c.Request().Context(), claims.UserID, req.DoctorID, date, req.Time, req.Reason)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, appt)
}

// List godoc
// @Summary List appointments visible to the caller
// @Tags appointments
// @Produce json
// @Success 200 {array} model.Appointment
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	appts, err := h.appointments.ListForUser(c.Request().Context(), claims.UserID, claims.Role)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, appts)
}

// UpdateStatus godoc
// @Summary Update the status of an owned appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /appointments/{id}/status [put]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.appointments.UpdateStatus(c.Request().Context(), id, claims.UserID, model.AppointmentStatus(req.Status))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, appt)
}

// SubmitReview godoc
// @Summary Rate and review a completed appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body ReviewRequest true "Rating and review"
// @Success 200 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /appointments/{id}/review [post]
func (h *AppointmentHandler) SubmitReview(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.appointments.SubmitReview(c.Request().Context(), id, claims.UserID, req.Rating, req.Review)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, appt)
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
