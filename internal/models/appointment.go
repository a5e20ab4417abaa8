package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerName  string `gorm:"size:120;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:32;not null" json:"customer_phone"`

	// Frozen from the catalog at booking time.
	ServiceType     string  `gorm:"size:100;not null" json:"service_type"`
	ServiceDuration int     `gorm:"not null" json:"service_duration"`
	ServicePrice    float64 `gorm:"not null" json:"service_price"`

	AppointmentDate string `gorm:"size:10;not null;index:idx_appointments_schedule,priority:2" json:"appointment_date"`
	AppointmentTime string `gorm:"size:5;not null" json:"appointment_time"`
	StartMinute     int    `gorm:"not null" json:"start_minute"`
	EndMinute       int    `gorm:"not null" json:"end_minute"`

	EmployeeName string `gorm:"size:100;not null;index:idx_appointments_schedule,priority:1" json:"employee_name"`

	Status string `gorm:"size:20;default:'scheduled';index" json:"status"`

	Notes     string `gorm:"size:500" json:"notes"`
	CreatedBy string `gorm:"size:100" json:"created_by"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
