package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placementportal/internal/app/models/dto"
	"github.com/yigit/placementportal/internal/app/services"
	"github.com/yigit/placementportal/internal/middleware"
)

// EmployerController handles the signed-in employer's profile and the
// employer-scoped job, application, interview and placement operations
type EmployerController struct {
	employerService services.EmployerService
	opsService      services.EmployerOpsService
	logger          zerolog.Logger
}

// NewEmployerController creates a new EmployerController
func NewEmployerController(employerService services.EmployerService, opsService services.EmployerOpsService, logger zerolog.Logger) *EmployerController {
	return &EmployerController{
		employerService: employerService,
		opsService:      opsService,
		logger:          logger,
	}
}

// GetProfile returns the signed-in employer
// @Summary Get own employer profile
// @Tags employers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=models.Employer} "Employer profile"
// @Failure 404 {object} dto.StructuredResponse "Employer not found"
// @Router /employers/me [get]
func (c *EmployerController) GetProfile(ctx *gin.Context) {
	c.respondEmployer(ctx, middleware.CurrentEmployerID(ctx))
}

// GetEmployer returns an employer by id
// @Summary Get an employer
// @Tags employers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employer ID"
// @Success 200 {object} dto.StructuredResponse{data=models.Employer} "Employer"
// @Failure 404 {object} dto.StructuredResponse "Employer not found"
// @Router /employers/{id} [get]
func (c *EmployerController) GetEmployer(ctx *gin.Context) {
	c.respondEmployer(ctx, middleware.ParseIDParam(ctx, "id"))
}

func (c *EmployerController) respondEmployer(ctx *gin.Context, employerID int64) {
	employer, err := c.employerService.GetEmployer(ctx.Request.Context(), employerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(employer, "Employer retrieved successfully"))
}

// UpdateProfile applies a partial update to the signed-in employer
// @Summary Update own employer profile
// @Tags employers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateEmployerRequest true "Fields to change"
// @Success 200 {object} dto.StructuredResponse{data=models.Employer} "Updated employer"
// @Failure 400 {object} dto.StructuredResponse "Validation failed"
// @Router /employers/me [put]
func (c *EmployerController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateEmployerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	employer, err := c.employerService.UpdateEmployerProfile(ctx.Request.Context(), middleware.CurrentEmployerID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(employer, "Employer updated successfully"))
}

// ListJobs returns the signed-in employer's jobs
// @Summary List own jobs
// @Tags employer-jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]models.Job} "Jobs"
// @Router /employer/jobs [get]
func (c *EmployerController) ListJobs(ctx *gin.Context) {
	jobs, err := c.opsService.GetJobsByEmployer(ctx.Request.Context(), middleware.CurrentEmployerID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(jobs, "Jobs retrieved successfully"))
}

// CreateJob posts a new job
// @Summary Post a job
// @Tags employer-jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JobRequest true "Job fields"
// @Success 201 {object} dto.StructuredResponse{data=models.Job} "Job created"
// @Failure 400 {object} dto.StructuredResponse "All fields are required"
// @Router /employer/jobs [post]
func (c *EmployerController) CreateJob(ctx *gin.Context) {
	var req dto.JobRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	job, err := c.opsService.InsertJob(ctx.Request.Context(), middleware.CurrentEmployerID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("jobID", job.JobID).Int64("employerID", job.EmployerID).Msg("Job posted")
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(job, "Job created successfully"))
}

// UpdateJob replaces every mutable field of a job
// @Summary Update a job
// @Tags employer-jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param request body dto.JobRequest true "Job fields"
// @Success 200 {object} dto.StructuredResponse{data=models.Job} "Job updated"
// @Failure 400 {object} dto.StructuredResponse "All fields are required for updating the job"
// @Failure 403 {object} dto.StructuredResponse "Job belongs to another employer"
// @Router /employer/jobs/{id} [put]
func (c *EmployerController) UpdateJob(ctx *gin.Context) {
	var req dto.JobRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	job, err := c.opsService.UpdateJob(ctx.Request.Context(), middleware.CurrentEmployerID(ctx), middleware.ParseIDParam(ctx, "id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(job, "Job updated successfully"))
}

// DeleteJob removes a job
// @Summary Delete a job
// @Tags employer-jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.StructuredResponse "Job deleted"
// @Failure 403 {object} dto.StructuredResponse "Job belongs to another employer"
// @Failure 404 {object} dto.StructuredResponse "Job not found"
// @Router /employer/jobs/{id} [delete]
func (c *EmployerController) DeleteJob(ctx *gin.Context) {
	jobID := middleware.ParseIDParam(ctx, "id")
	if err := c.opsService.DeleteJob(ctx.Request.Context(), middleware.CurrentEmployerID(ctx), jobID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("jobID", jobID).Msg("Job deleted")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Job deleted successfully"))
}

// ListApplications returns the applications to the employer's jobs, each
// merged over its job
// @Summary List applications to own jobs
// @Tags employer-applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse "Job and application rows"
// @Failure 404 {object} dto.StructuredResponse "No jobs found for this employer"
// @Router /employer/applications [get]
func (c *EmployerController) ListApplications(ctx *gin.Context) {
	rows, err := c.opsService.GetJobsAndApplicationsByEmployer(ctx.Request.Context(), nil, middleware.CurrentEmployerID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(rows, "Applications retrieved successfully"))
}

// UpdateApplicationStatus accepts or rejects an application
// @Summary Set application status
// @Tags employer-applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.ApplicationStatusRequest true "New status"
// @Success 200 {object} dto.StructuredResponse{data=models.Application} "Status updated"
// @Failure 400 {object} dto.StructuredResponse "Both appId and status are required"
// @Failure 409 {object} dto.StructuredResponse "Transition refused"
// @Router /employer/applications/{id}/status [patch]
func (c *EmployerController) UpdateApplicationStatus(ctx *gin.Context) {
	var req dto.ApplicationStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	application, err := c.opsService.UpdateApplicationStatus(ctx.Request.Context(), middleware.CurrentEmployerID(ctx), middleware.ParseIDParam(ctx, "id"), req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("appID", application.AppID).Str("status", string(application.Status)).Msg("Application status updated")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(application, "Application status updated successfully"))
}

// ListInterviews returns the interviews for the employer's jobs
// @Summary List interviews for own jobs
// @Tags employer-interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse "Job and interview rows"
// @Failure 404 {object} dto.StructuredResponse "No jobs found for this employer"
// @Router /employer/interviews [get]
func (c *EmployerController) ListInterviews(ctx *gin.Context) {
	rows, err := c.opsService.GetJobsAndInterviewsByEmployer(ctx.Request.Context(), nil, middleware.CurrentEmployerID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(rows, "Interviews retrieved successfully"))
}

// CreateInterview schedules an interview
// @Summary Schedule an interview
// @Tags employer-interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InterviewRequest true "Interview fields"
// @Success 201 {object} dto.StructuredResponse{data=models.Interview} "Interview scheduled"
// @Failure 400 {object} dto.StructuredResponse "Validation failed"
// @Failure 403 {object} dto.StructuredResponse "Job belongs to another employer"
// @Router /employer/interviews [post]
func (c *EmployerController) CreateInterview(ctx *gin.Context) {
	var req dto.InterviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	interview, err := c.opsService.InsertInterview(ctx.Request.Context(), middleware.CurrentEmployerID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(interview, "Interview scheduled successfully"))
}

// DeleteInterview cancels an interview
// @Summary Delete an interview
// @Tags employer-interviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interview ID"
// @Success 200 {object} dto.StructuredResponse "Interview deleted"
// @Failure 403 {object} dto.StructuredResponse "Job belongs to another employer"
// @Failure 404 {object} dto.StructuredResponse "Interview not found"
// @Router /employer/interviews/{id} [delete]
func (c *EmployerController) DeleteInterview(ctx *gin.Context) {
	if err := c.opsService.DeleteInterview(ctx.Request.Context(), middleware.CurrentEmployerID(ctx), middleware.ParseIDParam(ctx, "id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Interview deleted successfully"))
}

// SetInterviewResult records or clears an interview outcome
// @Summary Record interview result
// @Tags employer-interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interview ID"
// @Param request body dto.InterviewResultRequest true "Result, null to clear"
// @Success 200 {object} dto.StructuredResponse{data=models.Interview} "Result recorded"
// @Failure 403 {object} dto.StructuredResponse "Job belongs to another employer"
// @Router /employer/interviews/{id}/result [patch]
func (c *EmployerController) SetInterviewResult(ctx *gin.Context) {
	var req dto.InterviewResultRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	interview, err := c.opsService.SetInterviewResult(ctx.Request.Context(), middleware.CurrentEmployerID(ctx), middleware.ParseIDParam(ctx, "id"), req.Result)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(interview, "Interview result recorded successfully"))
}

// ListPlacements returns the placements for the employer's jobs
// @Summary List placements for own jobs
// @Tags employer-placements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse "Job and placement rows"
// @Failure 404 {object} dto.StructuredResponse "No jobs found for this employer"
// @Router /employer/placements [get]
func (c *EmployerController) ListPlacements(ctx *gin.Context) {
	rows, err := c.opsService.GetJobsAndPlacementsByEmployer(ctx.Request.Context(), nil, middleware.CurrentEmployerID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(rows, "Placements retrieved successfully"))
}

// CreatePlacement records a placement offer
// @Summary Record a placement
// @Tags employer-placements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PlacementRequest true "Placement fields"
// @Success 201 {object} dto.StructuredResponse{data=models.Placement} "Placement recorded"
// @Failure 400 {object} dto.StructuredResponse "Validation failed"
// @Failure 403 {object} dto.StructuredResponse "Job belongs to another employer"
// @Router /employer/placements [post]
func (c *EmployerController) CreatePlacement(ctx *gin.Context) {
	var req dto.PlacementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	placement, err := c.opsService.InsertPlacement(ctx.Request.Context(), middleware.CurrentEmployerID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("placementID", placement.PlacementID).Str("usn", placement.USN).Msg("Placement recorded")
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(placement, "Placement recorded successfully"))
}

// UpdatePlacement revises a placement's package or joining date
// @Summary Update a placement
// @Tags employer-placements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Placement ID"
// @Param request body dto.UpdatePlacementRequest true "Fields to change"
// @Success 200 {object} dto.StructuredResponse{data=models.Placement} "Placement updated"
// @Failure 400 {object} dto.StructuredResponse "Validation failed"
// @Failure 403 {object} dto.StructuredResponse "Job belongs to another employer"
// @Router /employer/placements/{id} [patch]
func (c *EmployerController) UpdatePlacement(ctx *gin.Context) {
	var req dto.UpdatePlacementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	placement, err := c.opsService.UpdatePlacement(ctx.Request.Context(), middleware.CurrentEmployerID(ctx), middleware.ParseIDParam(ctx, "id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(placement, "Placement updated successfully"))
}
