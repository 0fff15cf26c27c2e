// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/app/models/dto"
	"github.com/yigit/placementportal/internal/app/services"
	"github.com/yigit/placementportal/internal/middleware"
)

// AuthController handles registration, login and session operations for both roles
type AuthController struct {
	studentService  services.StudentService
	employerService services.EmployerService
	logger          zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(studentService services.StudentService, employerService services.EmployerService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		studentService:  studentService,
		employerService: employerService,
		logger:          logger,
	}
}

// RegisterStudent handles student registration
// @Summary Register a student
// @Description Validates the student's details, creates the login identity and inserts the student row
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Student registration information"
// @Success 201 {object} dto.StructuredResponse{data=models.Student} "Student registered"
// @Failure 400 {object} dto.StructuredResponse "Validation failed"
// @Failure 409 {object} dto.StructuredResponse "Email or USN already in use"
// @Failure 500 {object} dto.StructuredResponse "Internal server error"
// @Router /auth/students/register [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.RegisterStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("usn", student.USN).Msg("Student registered")
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(student, "Student registered successfully"))
}

// LoginStudent handles student login
// @Summary Student login
// @Description Authenticates a student and returns the session with the student profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentLoginResponse} "Login successful"
// @Failure 400 {object} dto.StructuredResponse "Invalid request format"
// @Failure 401 {object} dto.StructuredResponse "Invalid credentials"
// @Failure 500 {object} dto.StructuredResponse "Internal server error"
// @Router /auth/students/login [post]
func (c *AuthController) LoginStudent(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.studentService.LoginStudent(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Login successful"))
}

// RegisterEmployer handles employer registration
// @Summary Register an employer
// @Description Validates the employer's details, creates the login identity and inserts the employer row
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterEmployerRequest true "Employer registration information"
// @Success 201 {object} dto.StructuredResponse{data=models.Employer} "Employer registered"
// @Failure 400 {object} dto.StructuredResponse "Validation failed"
// @Failure 409 {object} dto.StructuredResponse "Email or employer ID already in use"
// @Failure 500 {object} dto.StructuredResponse "Internal server error"
// @Router /auth/employers/register [post]
func (c *AuthController) RegisterEmployer(ctx *gin.Context) {
	var req dto.RegisterEmployerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	employer, err := c.employerService.RegisterEmployer(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("employerID", employer.EmployerID).Msg("Employer registered")
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(employer, "Employer registered successfully"))
}

// LoginEmployer handles employer login
// @Summary Employer login
// @Description Authenticates an employer and returns the session with the employer profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.StructuredResponse{data=dto.EmployerLoginResponse} "Login successful"
// @Failure 400 {object} dto.StructuredResponse "Invalid request format"
// @Failure 401 {object} dto.StructuredResponse "Invalid credentials"
// @Failure 500 {object} dto.StructuredResponse "Internal server error"
// @Router /auth/employers/login [post]
func (c *AuthController) LoginEmployer(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.employerService.LoginEmployer(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Login successful"))
}

// Logout terminates the caller's session
// @Summary Logout
// @Description Signs out the session behind the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse "Logged out"
// @Failure 401 {object} dto.StructuredResponse "Not authenticated"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	gate := middleware.GetGate(ctx)
	token := middleware.GetAccessToken(ctx)

	logout := c.studentService.LogoutStudent
	if gate.Allows(models.RoleEmployer) {
		logout = c.employerService.LogoutEmployer
	}
	if err := logout(ctx.Request.Context(), token); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	gate.SetUnauthenticated()
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(gate.Snapshot(), "Logged out successfully"))
}

// Session returns the caller's session gate
// @Summary Current session
// @Description Returns the authentication status, role and role-specific identifier of the caller
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse "Session state"
// @Failure 401 {object} dto.StructuredResponse "Not authenticated"
// @Router /auth/session [get]
func (c *AuthController) Session(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(middleware.GetGate(ctx).Snapshot(), "Session retrieved"))
}
