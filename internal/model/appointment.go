package model

import "time"

// AppointmentStatus is the workflow state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusApproved  AppointmentStatus = "approved"
	StatusRejected  AppointmentStatus = "rejected"
	StatusCompleted AppointmentStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the workflow allows moving from s to
// next. Rejected and completed are terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusCompleted
	}
	return false
}

// Appointment links a patient to a doctor at a requested date and time.
type Appointment struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	PatientID  uint              `json:"patient_id" gorm:"not null;index"`
	DoctorID   uint              `json:"doctor_id" gorm:"not null;index"`
	Patient    *User             `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	Doctor     *User             `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	Date       time.Time         `json:"date" gorm:"not null"`
	Time       string            `json:"time" gorm:"size:20;not null"`
	Status     AppointmentStatus `json:"status" gorm:"size:20;not null;default:'pending';index"`
	Reason     string            `json:"reason,omitempty" gorm:"size:1000"`
	Rating     *int              `json:"rating,omitempty"`
	Review     string            `json:"review,omitempty" gorm:"size:2000"`
	ReviewedAt *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
