package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"medibook/internal/model"
)

// AnalyticsRepository exposes the read-only aggregations behind the
// admin dashboard. Nothing here writes.
type AnalyticsRepository interface {
	CountUsersByRole(ctx context.Context, role model.Role) (int64, error)
	CountAppointments(ctx context.Context) (int64, error)
	CountAppointmentsByStatus(ctx context.Context, status model.AppointmentStatus) (int64, error)
	MonthlyAppointments(ctx context.Context, since time.Time) ([]model.MonthlyCount, error)
	TopSpecializations(ctx context.Context, limit int) ([]model.SpecializationCount, error)
	DoctorRatings(ctx context.Context, limit int) ([]model.DoctorRating, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository builds a GORM-backed repository.
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountUsersByRole(ctx context.Context, role model.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountAppointments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Appointment{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountAppointmentsByStatus(ctx context.Context, status model.AppointmentStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// MonthlyAppointments buckets appointment creations by calendar month.
// Months without creations produce no row.
func (r *analyticsRepository) MonthlyAppointments(ctx context.Context, since time.Time) ([]model.MonthlyCount, error) {
	var rows []model.MonthlyCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT YEAR(created_at) AS year, MONTH(created_at) AS month, COUNT(*) AS count
		FROM appointments
		WHERE created_at >= ?
		GROUP BY YEAR(created_at), MONTH(created_at)
		ORDER BY year ASC, month ASC`, since).
		Scan(&rows).Error
	return rows, err
}

func (r *analyticsRepository) TopSpecializations(ctx context.Context, limit int) ([]model.SpecializationCount, error) {
	var rows []model.SpecializationCount
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("specialization, COUNT(*) AS count").
		Where("role = ?", model.RoleDoctor).
		Group("specialization").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// DoctorRatings averages review scores per doctor, skipping doctors
// with no ratings.
func (r *analyticsRepository) DoctorRatings(ctx context.Context, limit int) ([]model.DoctorRating, error) {
	var rows []model.DoctorRating
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.doctor_id AS doctor_id, u.name AS name,
		       AVG(a.rating) AS avg_rating, COUNT(*) AS total_reviews
		FROM appointments a
		JOIN users u ON u.id = a.doctor_id
		WHERE a.rating IS NOT NULL
		GROUP BY a.doctor_id, u.name
		ORDER BY avg_rating DESC
		LIMIT ?`, limit).
		Scan(&rows).Error
	return rows, err
}
