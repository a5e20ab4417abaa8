package dto

import (
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentDTO struct {
	ID uint `json:"id"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	ServiceType     string  `json:"service_type"`
	ServiceDuration int     `json:"service_duration"`
	ServicePrice    float64 `json:"service_price"`

	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	EndTime         string `json:"end_time"`

	EmployeeName string `json:"employee_name"`
	Status       string `json:"status"`
	Notes        string `json:"notes,omitempty"`
	CreatedBy    string `json:"created_by"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromAppointment(ap *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:              ap.ID,
		CustomerName:    ap.CustomerName,
		CustomerPhone:   ap.CustomerPhone,
		ServiceType:     ap.ServiceType,
		ServiceDuration: ap.ServiceDuration,
		ServicePrice:    ap.ServicePrice,
		AppointmentDate: ap.AppointmentDate,
		AppointmentTime: ap.AppointmentTime,
		EndTime:         domain.FormatClock(ap.EndMinute),
		EmployeeName:    ap.EmployeeName,
		Status:          ap.Status,
		Notes:           ap.Notes,
		CreatedBy:       ap.CreatedBy,
		CompletedAt:     ap.CompletedAt,
		CancelledAt:     ap.CancelledAt,
		CreatedAt:       ap.CreatedAt,
		UpdatedAt:       ap.UpdatedAt,
	}
}

func FromAppointments(aps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for i := range aps {
		out = append(out, FromAppointment(&aps[i]))
	}
	return out
}
