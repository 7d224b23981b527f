package handler

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"carehub/internal/model"
	"carehub/internal/service"
	"carehub/internal/storage"
)

// AuthHandler handles authentication and registration endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest carries the account fields shared by both registration forms.
type RegisterRequest struct {
	Email              string `json:"email" form:"email" validate:"required,email,max=100"`
	GivenName          string `json:"given_name" form:"given_name" validate:"required,max=50"`
	Surname            string `json:"surname" form:"surname" validate:"required,max=50"`
	City               string `json:"city" form:"city" validate:"required,max=50"`
	PhoneNumber        string `json:"phone_number" form:"phone_number" validate:"omitempty,max=20"`
	ProfileDescription string `json:"profile_description" form:"profile_description"`
	Password           string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword    string `json:"confirm_password" form:"confirm_password" validate:"required"`
}

func (r RegisterRequest) registration() service.Registration {
	return service.Registration{
		Email:              strings.TrimSpace(r.Email),
		GivenName:          strings.TrimSpace(r.GivenName),
		Surname:            strings.TrimSpace(r.Surname),
		City:               strings.TrimSpace(r.City),
		PhoneNumber:        optional(r.PhoneNumber),
		ProfileDescription: optional(r.ProfileDescription),
		Password:           r.Password,
		ConfirmPassword:    r.ConfirmPassword,
	}
}

// RegisterCaregiverRequest is sent as JSON or as a multipart form with an optional "photo" file.
type RegisterCaregiverRequest struct {
	RegisterRequest
	Gender         string `json:"gender" form:"gender" validate:"omitempty,gender"`
	CaregivingType string `json:"caregiving_type" form:"caregiving_type" validate:"required,category"`
	HourlyRate     string `json:"hourly_rate" form:"hourly_rate" validate:"omitempty,numeric"`
}

// RegisterMemberRequest registers a member with an address.
type RegisterMemberRequest struct {
	RegisterRequest
	HouseRules           string `json:"house_rules" form:"house_rules"`
	DependentDescription string `json:"dependent_description" form:"dependent_description"`
	HouseNumber          string `json:"house_number" form:"house_number" validate:"omitempty,max=20"`
	Street               string `json:"street" form:"street" validate:"omitempty,max=100"`
	Town                 string `json:"town" form:"town" validate:"omitempty,max=50"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest represents a logout request.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	User         *model.User `json:"user,omitempty"`
}

// RegisterCaregiver godoc
// @Summary Register a caregiver
// @Tags auth
// @Accept json,mpfd
// @Produce json
// @Param request body RegisterCaregiverRequest true "Registration data"
// @Param photo formData file false "Profile photo (jpg, png, webp)"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register/caregiver [post]
func (h *AuthHandler) RegisterCaregiver(c echo.Context) error {
	var req RegisterCaregiverRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reg := service.CaregiverRegistration{
		Registration:   req.registration(),
		CaregivingType: model.Category(req.CaregivingType),
	}
	if req.Gender != "" {
		gender := model.Gender(req.Gender)
		reg.Gender = &gender
	}
	if req.HourlyRate != "" {
		rate, err := decimal.NewFromString(req.HourlyRate)
		if err != nil {
			return badRequest("invalid hourly rate", "INVALID_RATE")
		}
		reg.HourlyRate = decimal.NewNullDecimal(rate)
	}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := c.FormFile("photo")
		switch {
		case err == nil:
			f, err := fh.Open()
			if err != nil {
				return badRequest("unreadable photo", "INVALID_PHOTO")
			}
			defer f.Close()
			reg.Photo = &service.PhotoUpload{Filename: fh.Filename, Content: f}
		case !stderrors.Is(err, http.ErrMissingFile):
			return badRequest("invalid photo upload", "INVALID_PHOTO")
		}
	}

	user, err := h.authService.RegisterCaregiver(c.Request().Context(), reg)
	if err != nil {
		if stderrors.Is(err, storage.ErrUnsupportedPhoto) || stderrors.Is(err, storage.ErrPhotoTooLarge) {
			return badRequest(err.Error(), "INVALID_PHOTO")
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// RegisterMember godoc
// @Summary Register a member
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterMemberRequest true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register/member [post]
func (h *AuthHandler) RegisterMember(c echo.Context) error {
	var req RegisterMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.RegisterMember(c.Request().Context(), service.MemberRegistration{
		Registration:         req.registration(),
		HouseRules:           optional(req.HouseRules),
		DependentDescription: optional(req.DependentDescription),
		HouseNumber:          optional(req.HouseNumber),
		Street:               optional(req.Street),
		Town:                 optional(req.Town),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	accessToken, refreshToken, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	accessToken, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: accessToken,
	})
}

// Logout godoc
// @Summary Logout user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LogoutRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}
