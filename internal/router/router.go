package router

import (
	"crypto/subtle"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"carehub/internal/auth"
	"carehub/internal/config"
	"carehub/internal/errors"
	"carehub/internal/handler"
	"carehub/internal/logger"
	"carehub/internal/model"
)

// AdminKeyHeader carries the administrator API key.
const AdminKeyHeader = "X-API-Key"

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Job         *handler.JobHandler
	Caregiver   *handler.CaregiverHandler
	Appointment *handler.AppointmentHandler
	Report      *handler.ReportHandler
	Seed        *handler.SeedHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, log logger.Logger, jwtService *auth.JWTService, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{Timeout: cfg.RequestTimeout}))
	}

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register/caregiver", h.Auth.RegisterCaregiver)
	api.POST("/auth/register/member", h.Auth.RegisterMember)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)

	// Admin routes (require X-API-Key). Registered before the JWT group so
	// admin callers do not need a bearer token.
	admin := api.Group("/admin", AdminKey(cfg.AdminAPIKey))
	admin.GET("/users", h.User.ListUsers)
	admin.DELETE("/users/:id", h.User.DeleteUser)
	admin.PATCH("/users/phone", h.User.UpdatePhone)
	admin.DELETE("/jobs", h.User.DeleteJobsByMember)
	admin.DELETE("/members", h.User.DeleteMembersOnStreet)
	admin.POST("/caregivers/commission", h.Caregiver.ApplyCommission)
	admin.POST("/populate", h.Seed.Populate)

	reports := admin.Group("/reports")
	reports.GET("/applicant-counts", h.Report.ApplicantCounts)
	reports.GET("/accepted-hours", h.Report.AcceptedHours)
	reports.GET("/average-pay", h.Report.AveragePay)
	reports.GET("/above-average", h.Report.AboveAverage)
	reports.GET("/total-cost", h.Report.TotalCost)
	reports.GET("/accepted-names", h.Report.AcceptedNames)
	reports.GET("/jobs-matching", h.Report.JobsMatching)
	reports.GET("/babysitter-hours", h.Report.BabysitterHours)
	reports.GET("/members-seeking", h.Report.MembersSeeking)
	reports.GET("/job-applications", h.Report.JobApplications)

	// Secured routes (require JWT authentication)
	secured := api.Group("", JWT(jwtService))

	secured.GET("/me", h.User.Me)
	secured.DELETE("/me", h.User.DeleteMe)

	secured.GET("/jobs", h.Job.ListJobs)
	secured.GET("/jobs/applied", h.Job.AppliedJobs)
	secured.GET("/jobs/applicants", h.Job.Applicants)
	secured.POST("/jobs/:id/apply", h.Job.Apply)
	secured.GET("/member/jobs", h.Job.MemberJobs)
	secured.POST("/member/jobs", h.Job.PostJob)

	secured.GET("/caregivers", h.Caregiver.Search)

	secured.POST("/appointments", h.Appointment.Create)
	secured.PATCH("/appointments/:id/status", h.Appointment.UpdateStatus)
}

// RequestLogger logs one record per request. Server errors are logged with the
// error the handler saw, client errors as business errors.
func RequestLogger(log logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			err := v.Error
			var he *echo.HTTPError
			if stderrors.As(err, &he) && he.Internal != nil {
				err = he.Internal
			}
			switch {
			case v.Status >= http.StatusInternalServerError:
				log.InternalError("request failed", err, args...)
			case err != nil:
				log.BusinessError("request rejected", err, args...)
			default:
				log.Info("request", args...)
			}
			return nil
		},
	})
}

// JWT returns middleware that accepts only access tokens signed by jwtService
// and stores their *auth.Claims under handler.ClaimsContextKey.
func JWT(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ClaimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateAccessToken(token)
		},
		ErrorHandler: func(_ echo.Context, _ error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "missing or invalid token",
				Code:  "UNAUTHORIZED",
			})
		},
	})
}

// AdminKey returns middleware that admits requests whose X-API-Key matches key.
// An empty key disables the admin surface.
func AdminKey(key string) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup: "header:" + AdminKeyHeader,
		Validator: func(presented string, _ echo.Context) (bool, error) {
			if key == "" {
				return false, nil
			}
			return subtle.ConstantTimeCompare([]byte(presented), []byte(key)) == 1, nil
		},
		ErrorHandler: func(_ error, _ echo.Context) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "missing or invalid API key",
				Code:  "UNAUTHORIZED",
			})
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that also knows the category and gender tags.
// It panics if a tag cannot be registered.
func NewValidator() *CustomValidator {
	v := validator.New()
	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		return model.Category(fl.Field().String()).Valid()
	})
	mustRegister(v, "gender", func(fl validator.FieldLevel) bool {
		return model.Gender(fl.Field().String()).Valid()
	})
	return &CustomValidator{validator: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
