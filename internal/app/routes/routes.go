package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/placementportal/internal/app/controllers"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/app/models/dto"
	"github.com/yigit/placementportal/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth     *controllers.AuthController
	Student  *controllers.StudentController
	Employer *controllers.EmployerController
	Job      *controllers.JobController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/students/register", ctrl.Auth.RegisterStudent)
		auth.POST("/students/login", ctrl.Auth.LoginStudent)
		auth.POST("/employers/register", ctrl.Auth.RegisterEmployer)
		auth.POST("/employers/login", ctrl.Auth.LoginEmployer)
	}

	v1.GET("/jobs", ctrl.Job.ListJobs)
	v1.GET("/jobs/:id", ctrl.Job.GetJob)

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewStructuredResponse(gin.H{"status": "ok"}, "Service is healthy"))
	})

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", ctrl.Auth.Logout)
		authenticated.GET("/auth/session", ctrl.Auth.Session)
	}

	// Student role
	student := authenticated.Group("")
	student.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		student.GET("/students/me", ctrl.Student.GetProfile)
		student.PUT("/students/me", ctrl.Student.UpdateProfile)
		student.GET("/students/me/applications", ctrl.Student.ListApplications)
		student.GET("/students/me/interviews", ctrl.Student.ListInterviews)
		student.GET("/students/me/placement", ctrl.Student.GetPlacement)
		student.GET("/students/me/resume", ctrl.Student.GetResume)
		student.PUT("/students/me/resume", ctrl.Student.UploadResume)
		student.DELETE("/students/me/resume", ctrl.Student.DeleteResume)
		student.POST("/jobs/:id/applications", ctrl.Student.Apply)
	}

	// Employer role
	employer := authenticated.Group("")
	employer.Use(authMiddleware.RoleRequired(models.RoleEmployer))
	{
		employer.GET("/employers/me", ctrl.Employer.GetProfile)
		employer.PUT("/employers/me", ctrl.Employer.UpdateProfile)
		employer.GET("/employers/:id", ctrl.Employer.GetEmployer)
		employer.GET("/students/:usn", ctrl.Student.GetStudent)
		employer.GET("/students/:usn/resume", ctrl.Student.GetStudentResume)
	}

	ops := authenticated.Group("/employer")
	ops.Use(authMiddleware.RoleRequired(models.RoleEmployer))
	{
		ops.GET("/jobs", ctrl.Employer.ListJobs)
		ops.POST("/jobs", ctrl.Employer.CreateJob)
		ops.PUT("/jobs/:id", ctrl.Employer.UpdateJob)
		ops.DELETE("/jobs/:id", ctrl.Employer.DeleteJob)

		ops.GET("/applications", ctrl.Employer.ListApplications)
		ops.PATCH("/applications/:id/status", ctrl.Employer.UpdateApplicationStatus)

		ops.GET("/interviews", ctrl.Employer.ListInterviews)
		ops.POST("/interviews", ctrl.Employer.CreateInterview)
		ops.DELETE("/interviews/:id", ctrl.Employer.DeleteInterview)
		ops.PATCH("/interviews/:id/result", ctrl.Employer.SetInterviewResult)

		ops.GET("/placements", ctrl.Employer.ListPlacements)
		ops.POST("/placements", ctrl.Employer.CreatePlacement)
		ops.PATCH("/placements/:id", ctrl.Employer.UpdatePlacement)
	}
}
