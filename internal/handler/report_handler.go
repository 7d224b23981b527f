package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"carehub/internal/model"
	"carehub/internal/service"
)

// ReportHandler exposes the analytical reports to administrators.
type ReportHandler struct {
	reports service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// HoursResponse carries a total that is null when nothing was accepted.
type HoursResponse struct {
	TotalHours *int64 `json:"total_hours"`
}

// AmountResponse carries a decimal aggregate that is null over an empty set.
type AmountResponse struct {
	Amount *decimal.Decimal `json:"amount"`
}

// ApplicantCounts godoc
// @Summary Number of applicants per job, including jobs without any
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.ApplicantCount
// @Router /admin/reports/applicant-counts [get]
func (h *ReportHandler) ApplicantCounts(c echo.Context) error {
	rows, err := h.reports.ApplicantCounts(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(rows))
}

// AcceptedHours godoc
// @Summary Total work hours of accepted appointments
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} HoursResponse
// @Router /admin/reports/accepted-hours [get]
func (h *ReportHandler) AcceptedHours(c echo.Context) error {
	total, err := h.reports.TotalAcceptedHours(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, HoursResponse{TotalHours: total})
}

// AveragePay godoc
// @Summary Average hourly rate over accepted appointments
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} AmountResponse
// @Router /admin/reports/average-pay [get]
func (h *ReportHandler) AveragePay(c echo.Context) error {
	avg, err := h.reports.AverageAcceptedPay(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, AmountResponse{Amount: avg})
}

// AboveAverage godoc
// @Summary Caregivers earning more than the accepted average
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.CaregiverRate
// @Router /admin/reports/above-average [get]
func (h *ReportHandler) AboveAverage(c echo.Context) error {
	rows, err := h.reports.AboveAverageCaregivers(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(rows))
}

// TotalCost godoc
// @Summary Total billed cost of accepted appointments
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} AmountResponse
// @Router /admin/reports/total-cost [get]
func (h *ReportHandler) TotalCost(c echo.Context) error {
	total, err := h.reports.TotalAcceptedCost(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, AmountResponse{Amount: total})
}

// AcceptedNames godoc
// @Summary Caregiver and member names of accepted appointments
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.AppointmentParties
// @Router /admin/reports/accepted-names [get]
func (h *ReportHandler) AcceptedNames(c echo.Context) error {
	rows, err := h.reports.AcceptedAppointmentNames(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(rows))
}

// JobsMatching godoc
// @Summary Jobs whose requirements contain a text
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param q query string true "Text to look for"
// @Success 200 {array} model.JobRequirement
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/reports/jobs-matching [get]
func (h *ReportHandler) JobsMatching(c echo.Context) error {
	rows, err := h.reports.JobsWithRequirement(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(rows))
}

// BabysitterHours godoc
// @Summary Work hours of every babysitter appointment
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.AppointmentHours
// @Router /admin/reports/babysitter-hours [get]
func (h *ReportHandler) BabysitterHours(c echo.Context) error {
	rows, err := h.reports.WorkHoursByCategory(c.Request().Context(), model.CategoryBabysitter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(rows))
}

// MembersSeeking godoc
// @Summary Members in a city with a house rule who posted jobs of a category
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param city query string false "City" default(Astana)
// @Param rule query string false "House rule text" default(No pets)
// @Param category query string false "Caregiving category" default(Elderly Care)
// @Success 200 {array} model.MemberSeeking
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/reports/members-seeking [get]
func (h *ReportHandler) MembersSeeking(c echo.Context) error {
	city := queryOr(c, "city", "Astana")
	rule := queryOr(c, "rule", "No pets")
	category := model.Category(queryOr(c, "category", string(model.CategoryElderlyCare)))

	rows, err := h.reports.MembersSeeking(c.Request().Context(), city, rule, category)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(rows))
}

// JobApplications godoc
// @Summary Rows of the job applications view
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.JobApplicationView
// @Router /admin/reports/job-applications [get]
func (h *ReportHandler) JobApplications(c echo.Context) error {
	rows, err := h.reports.JobApplications(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, emptyIfNil(rows))
}

func queryOr(c echo.Context, name, fallback string) string {
	if v := c.QueryParam(name); v != "" {
		return v
	}
	return fallback
}

func emptyIfNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
