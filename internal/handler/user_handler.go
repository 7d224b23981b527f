package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"carehub/internal/model"
	"carehub/internal/service"
)

// UserHandler bundles account and admin maintenance handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CountResponse reports how many rows an admin operation touched.
type CountResponse struct {
	Affected int64 `json:"affected"`
}

// UpdatePhoneRequest identifies a user by full name.
type UpdatePhoneRequest struct {
	GivenName   string `json:"given_name" validate:"required"`
	Surname     string `json:"surname" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
}

// Me godoc
// @Summary Profile of the calling user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	user, err := h.svc.Profile(c.Request().Context(), principal.UserID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteMe godoc
// @Summary Delete the calling user and everything it owns
// @Tags users
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteUser(c.Request().Context(), principal.UserID); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.User
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteUser godoc
// @Summary Delete a user with all dependent rows
// @Tags admin
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdatePhone godoc
// @Summary Change the phone number of the users with the given full name
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body UpdatePhoneRequest true "Name and phone"
// @Success 200 {object} CountResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/phone [patch]
func (h *UserHandler) UpdatePhone(c echo.Context) error {
	var req UpdatePhoneRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	n, err := h.svc.UpdatePhone(c.Request().Context(), req.GivenName, req.Surname, req.PhoneNumber)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, CountResponse{Affected: n})
}

// DeleteJobsByMember godoc
// @Summary Delete the jobs posted by a member, by full name
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param given_name query string true "Given name"
// @Param surname query string true "Surname"
// @Success 200 {object} CountResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/jobs [delete]
func (h *UserHandler) DeleteJobsByMember(c echo.Context) error {
	given, surname := strings.TrimSpace(c.QueryParam("given_name")), strings.TrimSpace(c.QueryParam("surname"))
	if given == "" || surname == "" {
		return badRequest("given_name and surname are required", "INVALID_REQUEST")
	}
	n, err := h.svc.DeleteJobsByMemberName(c.Request().Context(), given, surname)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, CountResponse{Affected: n})
}

// DeleteMembersOnStreet godoc
// @Summary Delete the members living on a street
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param street query string true "Street"
// @Success 200 {object} CountResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/members [delete]
func (h *UserHandler) DeleteMembersOnStreet(c echo.Context) error {
	street := strings.TrimSpace(c.QueryParam("street"))
	if street == "" {
		return badRequest("street is required", "INVALID_REQUEST")
	}
	n, err := h.svc.DeleteMembersOnStreet(c.Request().Context(), street)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, CountResponse{Affected: n})
}
