package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"carehub/internal/db"
	"carehub/internal/service"
)

// SeedHandler handles demo data endpoints.
type SeedHandler struct {
	provisionService service.ProvisionService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(provisionService service.ProvisionService) *SeedHandler {
	return &SeedHandler{provisionService: provisionService}
}

// SeedResponse represents the populate response.
type SeedResponse struct {
	Message string          `json:"message"`
	Counts  *db.SeedSummary `json:"counts"`
}

// Populate godoc
// @Summary Replace all rows with the demo data set
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} SeedResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/populate [post]
func (h *SeedHandler) Populate(c echo.Context) error {
	summary, err := h.provisionService.Populate(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, SeedResponse{
		Message: "demo data loaded",
		Counts:  summary,
	})
}
