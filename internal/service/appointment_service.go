package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "medibook/internal/errors"
	"medibook/internal/model"
	"medibook/internal/repository"
)

// AppointmentService owns the booking workflow and its state machine.
type AppointmentService interface {
	// Book creates a pending appointment for the calling patient.
	// doctorID must resolve to a user with the doctor role. There is no
	// slot-conflict check: two patients can book the same doctor at the
	// same time.
	Book(ctx context.Context, patientID, doctorID uint, date time.Time, timeOfDay, reason string) (*model.Appointment, error)
	// ListForUser returns the appointments visible to the caller:
	// patients see their own bookings, doctors the appointments
	// addressed to them, admins everything.
	ListForUser(ctx context.Context, userID uint, role model.Role) ([]model.Appointment, error)
	// UpdateStatus moves an appointment owned by the calling doctor to
	// newStatus. Appointments belonging to other doctors are reported
	// as not found.
	UpdateStatus(ctx context.Context, id, doctorID uint, newStatus model.AppointmentStatus) (*model.Appointment, error)
	// SubmitReview records the calling patient's one-time rating of a
	// completed appointment.
	SubmitReview(ctx context.Context, id, patientID uint, rating int, review string) (*model.Appointment, error)
}

type appointmentService struct {
	appointments repository.AppointmentRepository
	users        repository.UserRepository
}

// NewAppointmentService creates a new appointment service.
func NewAppointmentService(appointments repository.AppointmentRepository, users repository.UserRepository) AppointmentService {
	return &appointmentService{
		appointments: appointments,
		users:        users,
	}
}

func (s *appointmentService) Book(ctx context.Context, patientID, doctorID uint, date time.Time, timeOfDay, reason string) (*model.Appointment, error) {
	doctor, err := s.users.FindByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidDoctor
		}
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	if doctor.Role != model.RoleDoctor {
		return nil, apperrors.ErrInvalidDoctor
	}

	appt := &model.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      timeOfDay,
		Status:    model.StatusPending,
		Reason:    reason,
	}

	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	// Reload with patient/doctor expanded for the response.
	return s.appointments.FindByID(ctx, appt.ID)
}

func (s *appointmentService) ListForUser(ctx context.Context, userID uint, role model.Role) ([]model.Appointment, error) {
	switch role {
	case model.RolePatient:
		return s.appointments.ListByPatient(ctx, userID)
	case model.RoleDoctor:
		return s.appointments.ListByDoctor(ctx, userID)
	default:
		return s.appointments.ListAll(ctx)
	}
}

func (s *appointmentService) UpdateStatus(ctx context.Context, id, doctorID uint, newStatus model.AppointmentStatus) (*model.Appointment, error) {
	if newStatus != model.StatusApproved && newStatus != model.StatusRejected && newStatus != model.StatusCompleted {
		return nil, apperrors.ErrInvalidStatus
	}

	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	if appt.DoctorID != doctorID {
		// Not-owned looks identical to missing.
		return nil, apperrors.ErrAppointmentNotFound
	}

	if !appt.Status.CanTransitionTo(newStatus) {
		return nil, apperrors.ErrInvalidStatus
	}

	ok, err := s.appointments.UpdateStatusFrom(ctx, id, appt.Status, newStatus)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if !ok {
		// A concurrent update moved the appointment out of the state we
		// validated against.
		return nil, apperrors.ErrInvalidStatus
	}

	appt.Status = newStatus
	return appt, nil
}

func (s *appointmentService) SubmitReview(ctx context.Context, id, patientID uint, rating int, review string) (*model.Appointment, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	if appt.PatientID != patientID {
		return nil, apperrors.ErrAppointmentNotFound
	}

	if appt.Status != model.StatusCompleted {
		return nil, apperrors.ErrNotCompleted
	}
	if appt.Rating != nil {
		return nil, apperrors.ErrAlreadyReviewed
	}

	reviewedAt := time.Now()
	ok, err := s.appointments.SaveReview(ctx, id, rating, review, reviewedAt)
	if err != nil {
		return nil, fmt.Errorf("save review: %w", err)
	}
	if !ok {
		// Lost the race against another review submission.
		return nil, apperrors.ErrAlreadyReviewed
	}

	appt.Rating = &rating
	appt.Review = review
	appt.ReviewedAt = &reviewedAt
	return appt, nil
}
