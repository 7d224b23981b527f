package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"carehub/internal/model"
	"carehub/internal/service"
)

// JobHandler handles job board endpoints.
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler creates a new job handler.
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// PostJobRequest represents a new job posting.
type PostJobRequest struct {
	RequiredCaregivingType string `json:"required_caregiving_type" validate:"required,category"`
	OtherRequirements      string `json:"other_requirements"`
}

// ApplyResponse reports the outcome of an application.
type ApplyResponse struct {
	JobID   uint   `json:"job_id"`
	Applied bool   `json:"applied"`
	Message string `json:"message"`
}

// ListJobs godoc
// @Summary List jobs, newest first
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param category query string false "Caregiving category"
// @Success 200 {array} model.JobListing
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c echo.Context) error {
	jobs, err := h.jobService.ListJobs(c.Request().Context(), model.Category(c.QueryParam("category")))
	if err != nil {
		return fail(c, err)
	}
	if jobs == nil {
		jobs = []model.JobListing{}
	}
	return c.JSON(http.StatusOK, jobs)
}

// AppliedJobs godoc
// @Summary Ids of the jobs the calling caregiver applied to
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} integer
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /jobs/applied [get]
func (h *JobHandler) AppliedJobs(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	ids, err := h.jobService.AppliedJobIDs(c.Request().Context(), principal)
	if err != nil {
		return fail(c, err)
	}
	if ids == nil {
		ids = []uint{}
	}
	return c.JSON(http.StatusOK, ids)
}

// Apply godoc
// @Summary Apply to a job
// @Description Applying twice is not an error; the second call reports applied=false.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} ApplyResponse
// @Success 201 {object} ApplyResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /jobs/{id}/apply [post]
func (h *JobHandler) Apply(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	applied, err := h.jobService.ApplyToJob(c.Request().Context(), principal, jobID)
	if err != nil {
		return fail(c, err)
	}
	if !applied {
		return c.JSON(http.StatusOK, ApplyResponse{JobID: jobID, Applied: false, Message: "already applied"})
	}
	return c.JSON(http.StatusCreated, ApplyResponse{JobID: jobID, Applied: true, Message: "application submitted"})
}

// Applicants godoc
// @Summary Applicants grouped by job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param ids query string true "Comma separated job ids"
// @Success 200 {object} map[string][]model.Applicant
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /jobs/applicants [get]
func (h *JobHandler) Applicants(c echo.Context) error {
	ids, err := parseIDList(c.QueryParam("ids"))
	if err != nil {
		return err
	}
	applicants, err := h.jobService.ApplicantsForJobs(c.Request().Context(), ids)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, applicants)
}

// MemberJobs godoc
// @Summary Jobs posted by the calling member, with applicants
// @Tags member
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.MemberJob
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /member/jobs [get]
func (h *JobHandler) MemberJobs(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	jobs, err := h.jobService.MemberJobs(c.Request().Context(), principal)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, jobs)
}

// PostJob godoc
// @Summary Post a job
// @Tags member
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PostJobRequest true "Job data"
// @Success 201 {object} model.Job
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /member/jobs [post]
func (h *JobHandler) PostJob(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req PostJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.jobService.PostJob(c.Request().Context(), principal,
		model.Category(req.RequiredCaregivingType), optional(req.OtherRequirements))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, job)
}
