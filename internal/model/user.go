package model

import "time"

// Role determines which operations a user may perform.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// User represents a patient, doctor or admin account.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role           Role      `json:"role" gorm:"size:50;not null;index"`
	Specialization string    `json:"specialization,omitempty" gorm:"size:255"` // doctors only
	IsApproved     bool      `json:"is_approved" gorm:"default:false;index"`   // doctors need admin approval
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DoctorView is the public directory entry patients see when booking.
type DoctorView struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization,omitempty"`
}

// PublicView strips a user down to its doctor directory entry.
func (u *User) PublicView() DoctorView {
	return DoctorView{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Specialization: u.Specialization,
	}
}
