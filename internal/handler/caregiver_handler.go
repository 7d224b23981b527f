package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/internal/service"
)

// CaregiverHandler serves caregiver search and rate maintenance.
type CaregiverHandler struct {
	caregiverService service.CaregiverService
}

// NewCaregiverHandler creates a new caregiver handler.
func NewCaregiverHandler(caregiverService service.CaregiverService) *CaregiverHandler {
	return &CaregiverHandler{caregiverService: caregiverService}
}

// Search godoc
// @Summary Search caregivers
// @Tags caregivers
// @Produce json
// @Security BearerAuth
// @Param category query string false "Exact caregiving category"
// @Param city query string false "Case-insensitive part of the city"
// @Success 200 {array} model.CaregiverListing
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /caregivers [get]
func (h *CaregiverHandler) Search(c echo.Context) error {
	rows, err := h.caregiverService.Search(c.Request().Context(), repository.CaregiverSearch{
		Category: model.Category(c.QueryParam("category")),
		City:     c.QueryParam("city"),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// ApplyCommission godoc
// @Summary Raise every caregiver rate by the platform commission
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} CountResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/caregivers/commission [post]
func (h *CaregiverHandler) ApplyCommission(c echo.Context) error {
	n, err := h.caregiverService.ApplyCommission(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, CountResponse{Affected: n})
}
