package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book       *ucAppointment.BookAppointment
	transition *ucAppointment.TransitionAppointment
	reschedule *ucAppointment.RescheduleAppointment
	remove     *ucAppointment.RemoveAppointment
	check      *ucAppointment.CheckConflict
	list       *ucAppointment.ListAppointments
	get        *ucAppointment.GetAppointment
	avail      *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	book *ucAppointment.BookAppointment,
	transition *ucAppointment.TransitionAppointment,
	reschedule *ucAppointment.RescheduleAppointment,
	remove *ucAppointment.RemoveAppointment,
	check *ucAppointment.CheckConflict,
	list *ucAppointment.ListAppointments,
	get *ucAppointment.GetAppointment,
	avail *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:       book,
		transition: transition,
		reschedule: reschedule,
		remove:     remove,
		check:      check,
		list:       list,
		get:        get,
		avail:      avail,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	ServiceType   string `json:"service_type" binding:"required"`
	EmployeeName  string `json:"employee_name" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Notes         string `json:"notes"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type CheckConflictRequest struct {
	EmployeeName string `json:"employee_name" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	DurationMin  int    `json:"duration_min"`
	ServiceType  string `json:"service_type"`
	ExcludeID    uint   `json:"exclude_id"`
}

type CheckConflictResponse struct {
	Conflict     bool                 `json:"conflict"`
	Reason       string               `json:"reason,omitempty"`
	Appointments []dto.AppointmentDTO `json:"appointments"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), id, ucAppointment.BookAppointmentInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		ServiceType:   req.ServiceType,
		EmployeeName:  req.EmployeeName,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(ap))
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	aps, err := h.list.Execute(c.Request.Context(), id, ucAppointment.ListAppointmentsInput{
		EmployeeName: c.Query("employee"),
		From:         c.Query("from"),
		To:           c.Query("to"),
		Status:       c.Query("status"),
	})
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(aps))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	appointmentID, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id, appointmentID)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	slots, err := h.avail.Execute(c.Request.Context(), id, ucAppointment.GetAvailabilityInput{
		EmployeeName: c.Query("employee"),
		Date:         c.Query("date"),
		ServiceType:  c.Query("service"),
	})
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.List(c, slots)
}

func (h *AppointmentHandler) CheckConflict(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req CheckConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res, err := h.check.Execute(c.Request.Context(), id, ucAppointment.CheckConflictInput{
		EmployeeName: req.EmployeeName,
		Date:         req.Date,
		Time:         req.Time,
		DurationMin:  req.DurationMin,
		ServiceType:  req.ServiceType,
		ExcludeID:    req.ExcludeID,
	})
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.OK(c, CheckConflictResponse{
		Conflict:     res.HasConflict(),
		Reason:       res.Reason(),
		Appointments: dto.FromAppointments(res.Conflicts),
	})
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transitionTo(c, domain.StatusCompleted)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transitionTo(c, domain.StatusCancelled)
}

func (h *AppointmentHandler) transitionTo(c *gin.Context, to domain.Status) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	appointmentID, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.transition.Execute(c.Request.Context(), id, appointmentID, to)
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	appointmentID, ok := pathID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), id, appointmentID, ucAppointment.RescheduleAppointmentInput{
		Date: req.Date,
		Time: req.Time,
	})
	if err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}
	appointmentID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id, appointmentID); err != nil {
		httperr.Domain(c, err)
		return
	}

	httpresp.NoContent(c)
}
