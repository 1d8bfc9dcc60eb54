package service

import (
	"context"
	"fmt"
	"time"

	"medibook/internal/model"
	"medibook/internal/repository"
)

const (
	trailingMonths     = 6
	topSpecializations = 5
	topRatedDoctors    = 10
)

// AnalyticsService assembles the admin dashboard report. Everything is
// computed fresh per request.
type AnalyticsService interface {
	Report(ctx context.Context) (*model.AnalyticsReport, error)
}

type analyticsService struct {
	analytics repository.AnalyticsRepository
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(analytics repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{analytics: analytics}
}

func (s *analyticsService) Report(ctx context.Context) (*model.AnalyticsReport, error) {
	report := &model.AnalyticsReport{}

	var err error
	if report.TotalPatients, err = s.analytics.CountUsersByRole(ctx, model.RolePatient); err != nil {
		return nil, fmt.Errorf("count patients: %w", err)
	}
	if report.TotalDoctors, err = s.analytics.CountUsersByRole(ctx, model.RoleDoctor); err != nil {
		return nil, fmt.Errorf("count doctors: %w", err)
	}
	if report.TotalAppointments, err = s.analytics.CountAppointments(ctx); err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}
	if report.PendingAppointments, err = s.analytics.CountAppointmentsByStatus(ctx, model.StatusPending); err != nil {
		return nil, fmt.Errorf("count pending: %w", err)
	}
	if report.ApprovedAppointments, err = s.analytics.CountAppointmentsByStatus(ctx, model.StatusApproved); err != nil {
		return nil, fmt.Errorf("count approved: %w", err)
	}
	if report.CompletedAppointments, err = s.analytics.CountAppointmentsByStatus(ctx, model.StatusCompleted); err != nil {
		return nil, fmt.Errorf("count completed: %w", err)
	}

	since := time.Now().AddDate(0, -trailingMonths, 0)
	if report.MonthlyAppointments, err = s.analytics.MonthlyAppointments(ctx, since); err != nil {
		return nil, fmt.Errorf("monthly appointments: %w", err)
	}
	if report.PopularSpecializations, err = s.analytics.TopSpecializations(ctx, topSpecializations); err != nil {
		return nil, fmt.Errorf("top specializations: %w", err)
	}
	if report.DoctorRatings, err = s.analytics.DoctorRatings(ctx, topRatedDoctors); err != nil {
		return nil, fmt.Errorf("doctor ratings: %w", err)
	}

	return report, nil
}
