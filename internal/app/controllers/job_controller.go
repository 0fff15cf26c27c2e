package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placementportal/internal/app/models/dto"
	"github.com/yigit/placementportal/internal/app/services"
	"github.com/yigit/placementportal/internal/middleware"
)

// JobController serves the public job board
type JobController struct {
	portalService services.PortalService
}

// NewJobController creates a new JobController
func NewJobController(portalService services.PortalService) *JobController {
	return &JobController{portalService: portalService}
}

// ListJobs returns every job with its company name
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=[]models.JobListing} "Jobs"
// @Failure 500 {object} dto.StructuredResponse "Internal server error"
// @Router /jobs [get]
func (c *JobController) ListJobs(ctx *gin.Context) {
	jobs, err := c.portalService.FetchJobs(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(jobs, "Jobs retrieved successfully"))
}

// GetJob returns one job with its employer's contact details
// @Summary Get job details
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} dto.StructuredResponse{data=models.JobListing} "Job"
// @Failure 404 {object} dto.StructuredResponse "Job not found"
// @Router /jobs/{id} [get]
func (c *JobController) GetJob(ctx *gin.Context) {
	job, err := c.portalService.FetchJobDetails(ctx.Request.Context(), middleware.ParseIDParam(ctx, "id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(job, "Job retrieved successfully"))
}
