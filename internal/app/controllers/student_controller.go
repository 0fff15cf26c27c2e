package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placementportal/internal/app/models/dto"
	"github.com/yigit/placementportal/internal/app/services"
	"github.com/yigit/placementportal/internal/middleware"
)

// StudentController handles the signed-in student's profile, applications,
// interviews, placement and resume
type StudentController struct {
	studentService services.StudentService
	portalService  services.PortalService
	resumeService  services.ResumeService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(
	studentService services.StudentService,
	portalService services.PortalService,
	resumeService services.ResumeService,
	logger zerolog.Logger,
) *StudentController {
	return &StudentController{
		studentService: studentService,
		portalService:  portalService,
		resumeService:  resumeService,
		logger:         logger,
	}
}

// GetProfile returns the signed-in student
// @Summary Get own student profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=models.Student} "Student profile"
// @Failure 401 {object} dto.StructuredResponse "Not authenticated"
// @Failure 404 {object} dto.StructuredResponse "Student not found"
// @Router /students/me [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	student, err := c.studentService.GetStudentByUSN(ctx.Request.Context(), middleware.CurrentUSN(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(student, "Student retrieved successfully"))
}

// UpdateProfile applies a partial update to the signed-in student
// @Summary Update own student profile
// @Description Only the fields present in the body are changed
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.StructuredResponse{data=models.Student} "Updated student"
// @Failure 400 {object} dto.StructuredResponse "Validation failed"
// @Failure 401 {object} dto.StructuredResponse "Not authenticated"
// @Router /students/me [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.UpdateStudentDetails(ctx.Request.Context(), middleware.CurrentUSN(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(student, "Student updated successfully"))
}

// GetStudent returns a student by USN for employers reviewing applicants
// @Summary Get a student by USN
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param usn path string true "Student USN"
// @Success 200 {object} dto.StructuredResponse{data=models.Student} "Student profile"
// @Failure 403 {object} dto.StructuredResponse "Employers only"
// @Failure 404 {object} dto.StructuredResponse "Student not found"
// @Router /students/{usn} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.GetStudentByUSN(ctx.Request.Context(), ctx.Param("usn"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(student, "Student retrieved successfully"))
}

// Apply submits an application for a job
// @Summary Apply for a job
// @Description A student can apply to each job once
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 201 {object} dto.StructuredResponse{data=models.Application} "Application submitted"
// @Failure 400 {object} dto.StructuredResponse "Job ID and USN are required"
// @Failure 409 {object} dto.StructuredResponse "Already applied"
// @Router /jobs/{id}/applications [post]
func (c *StudentController) Apply(ctx *gin.Context) {
	usn := middleware.CurrentUSN(ctx)
	application, err := c.portalService.InsertApplication(ctx.Request.Context(), middleware.ParseIDParam(ctx, "id"), usn)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("usn", usn).Int64("jobID", application.JobID).Msg("Application submitted")
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(application, "Application submitted successfully"))
}

// ListApplications returns the signed-in student's applications
// @Summary List own applications
// @Description With details=true each application carries its job title and company
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param details query bool false "Include job and company details"
// @Success 200 {object} dto.StructuredResponse{data=[]models.ApplicationWithJob} "Applications"
// @Router /students/me/applications [get]
func (c *StudentController) ListApplications(ctx *gin.Context) {
	usn := middleware.CurrentUSN(ctx)

	var (
		data interface{}
		err  error
	)
	if ctx.Query("details") == "true" {
		data, err = c.portalService.FetchApplicationsWithJobDetails(ctx.Request.Context(), usn)
	} else {
		data, err = c.portalService.FetchApplicationsByUSN(ctx.Request.Context(), usn)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(data, "Applications retrieved successfully"))
}

// ListInterviews returns the signed-in student's interviews
// @Summary List own interviews
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]models.InterviewWithJob} "Interviews"
// @Router /students/me/interviews [get]
func (c *StudentController) ListInterviews(ctx *gin.Context) {
	interviews, err := c.portalService.FetchInterviewsWithJobDetails(ctx.Request.Context(), middleware.CurrentUSN(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(interviews, "Interviews retrieved successfully"))
}

// GetPlacement returns the signed-in student's placement, if any
// @Summary Get own placement
// @Description Data is null when the student has not been placed
// @Tags placements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=models.PlacementWithEmployer} "Placement"
// @Router /students/me/placement [get]
func (c *StudentController) GetPlacement(ctx *gin.Context) {
	placement, err := c.portalService.FetchPlacementDetails(ctx.Request.Context(), middleware.CurrentUSN(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if placement == nil {
		ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "No placement found"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(placement, "Placement retrieved successfully"))
}

// UploadResume replaces the signed-in student's resume
// @Summary Upload resume
// @Description Stores a PDF resume and removes the previous one
// @Tags resumes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param resume formData file true "PDF resume"
// @Success 200 {object} dto.StructuredResponse{data=dto.ResumeResponse} "Resume uploaded"
// @Failure 400 {object} dto.StructuredResponse "Missing or non-PDF file"
// @Router /students/me/resume [put]
func (c *StudentController) UploadResume(ctx *gin.Context) {
	// a missing part is reported by the service
	file, _ := ctx.FormFile("resume")

	resp, err := c.resumeService.UploadResume(ctx.Request.Context(), middleware.CurrentUSN(ctx), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Resume uploaded successfully"))
}

// DeleteResume removes the signed-in student's resume
// @Summary Delete resume
// @Tags resumes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=models.Student} "Resume deleted"
// @Failure 404 {object} dto.StructuredResponse "No resume uploaded"
// @Router /students/me/resume [delete]
func (c *StudentController) DeleteResume(ctx *gin.Context) {
	student, err := c.resumeService.DeleteResume(ctx.Request.Context(), middleware.CurrentUSN(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(student, "Resume deleted successfully"))
}

// GetResume resolves the signed-in student's resume URL
// @Summary Get own resume URL
// @Tags resumes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.ResumeResponse} "Resume URL"
// @Failure 404 {object} dto.StructuredResponse "No resume uploaded"
// @Router /students/me/resume [get]
func (c *StudentController) GetResume(ctx *gin.Context) {
	c.resumeURL(ctx, middleware.CurrentUSN(ctx))
}

// GetStudentResume resolves a student's resume URL for employers
// @Summary Get a student's resume URL
// @Tags resumes
// @Produce json
// @Security BearerAuth
// @Param usn path string true "Student USN"
// @Success 200 {object} dto.StructuredResponse{data=dto.ResumeResponse} "Resume URL"
// @Failure 404 {object} dto.StructuredResponse "No resume uploaded"
// @Router /students/{usn}/resume [get]
func (c *StudentController) GetStudentResume(ctx *gin.Context) {
	c.resumeURL(ctx, ctx.Param("usn"))
}

func (c *StudentController) resumeURL(ctx *gin.Context, usn string) {
	resp, err := c.resumeService.ResumeURL(ctx.Request.Context(), usn)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Resume retrieved successfully"))
}
