package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"medibook/internal/model"
)

// AppointmentRepository defines appointment persistence operations.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	FindByID(ctx context.Context, id uint) (*model.Appointment, error)
	ListAll(ctx context.Context) ([]model.Appointment, error)
	ListByPatient(ctx context.Context, patientID uint) ([]model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uint) ([]model.Appointment, error)
	// UpdateStatusFrom moves id from one status to another with a
	// conditional write keyed on the current status. Returns false when
	// the row was not in the expected state, which closes the race
	// between two concurrent updates.
	UpdateStatusFrom(ctx context.Context, id uint, from, to model.AppointmentStatus) (bool, error)
	// SaveReview records the first review for id. Returns false when a
	// rating is already present.
	SaveReview(ctx context.Context, id uint, rating int, review string, reviewedAt time.Time) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository builds a GORM-backed repository.
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

// FindByID loads an appointment with its patient and doctor expanded.
// Either association may be nil when the referenced user was deleted.
func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*model.Appointment, error) {
	var appt model.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").Preload("Doctor").
		First(&appt, id).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) ListAll(ctx context.Context) ([]model.Appointment, error) {
	return r.list(ctx, r.db)
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID uint) ([]model.Appointment, error) {
	return r.list(ctx, r.db.Where("patient_id = ?", patientID))
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID uint) ([]model.Appointment, error) {
	return r.list(ctx, r.db.Where("doctor_id = ?", doctorID))
}

func (r *appointmentRepository) list(ctx context.Context, tx *gorm.DB) ([]model.Appointment, error) {
	var appts []model.Appointment
	if err := tx.WithContext(ctx).
		Preload("Patient").Preload("Doctor").
		Order("created_at DESC").
		Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *appointmentRepository) UpdateStatusFrom(ctx context.Context, id uint, from, to model.AppointmentStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *appointmentRepository) SaveReview(ctx context.Context, id uint, rating int, review string, reviewedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Appointment{}).
		Where("id = ? AND rating IS NULL", id).
		Updates(map[string]interface{}{
			"rating":      rating,
			"review":      review,
			"reviewed_at": reviewedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteAll wipes the appointment collection. Used by the maintenance
// tool only; appointments are never deleted through the API.
func (r *appointmentRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Appointment{})
	return res.RowsAffected, res.Error
}
