package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"carehub/internal/model"
	"carehub/internal/service"
)

// AppointmentHandler handles appointment booking endpoints.
type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// CreateAppointmentRequest books a caregiver. Date is YYYY-MM-DD, time is HH:MM or HH:MM:SS.
type CreateAppointmentRequest struct {
	CaregiverUserID uint   `json:"caregiver_user_id" validate:"required"`
	Date            string `json:"appointment_date" validate:"required"`
	Time            string `json:"appointment_time" validate:"required"`
	WorkHours       *int   `json:"work_hours" validate:"omitempty,min=0"`
}

// UpdateStatusRequest moves an appointment to another status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Accepted Declined"`
}

// Create godoc
// @Summary Book an appointment with a caregiver
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAppointmentRequest true "Appointment data"
// @Success 201 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req CreateAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return badRequest("appointment_date must be YYYY-MM-DD", "INVALID_DATE")
	}
	clock, err := parseClock(req.Time)
	if err != nil {
		return badRequest("appointment_time must be HH:MM or HH:MM:SS", "INVALID_TIME")
	}

	appointment, err := h.appointmentService.Create(c.Request().Context(), principal, service.NewAppointment{
		CaregiverUserID: req.CaregiverUserID,
		Date:            datatypes.Date(date),
		Time:            datatypes.NewTime(clock.Hour(), clock.Minute(), clock.Second(), 0),
		WorkHours:       req.WorkHours,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, appointment)
}

// UpdateStatus godoc
// @Summary Change the status of an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	appointment, err := h.appointmentService.UpdateStatus(c.Request().Context(), principal, id, model.AppointmentStatus(req.Status))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, appointment)
}

func parseClock(s string) (time.Time, error) {
	if t, err := time.Parse("15:04", s); err == nil {
		return t, nil
	}
	return time.Parse(time.TimeOnly, s)
}
