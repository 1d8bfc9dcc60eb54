package model

// MonthlyCount is one bucket of the appointment-creation histogram.
type MonthlyCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// SpecializationCount ranks a specialization by doctor headcount.
type SpecializationCount struct {
	Specialization string `json:"specialization"`
	Count          int64  `json:"count"`
}

// DoctorRating aggregates review scores for a single doctor.
type DoctorRating struct {
	DoctorID     uint    `json:"doctor_id"`
	Name         string  `json:"name"`
	AvgRating    float64 `json:"avg_rating"`
	TotalReviews int64   `json:"total_reviews"`
}

// AnalyticsReport is the admin dashboard payload, computed fresh per
// request.
type AnalyticsReport struct {
	TotalPatients          int64                 `json:"total_patients"`
	TotalDoctors           int64                 `json:"total_doctors"`
	TotalAppointments      int64                 `json:"total_appointments"`
	PendingAppointments    int64                 `json:"pending_appointments"`
	ApprovedAppointments   int64                 `json:"approved_appointments"`
	CompletedAppointments  int64                 `json:"completed_appointments"`
	MonthlyAppointments    []MonthlyCount        `json:"monthly_appointments"`
	PopularSpecializations []SpecializationCount `json:"popular_specializations"`
	DoctorRatings          []DoctorRating        `json:"doctor_ratings"`
}
