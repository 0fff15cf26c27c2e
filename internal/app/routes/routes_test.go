package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placementportal/internal/app/controllers"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/app/services"
	"github.com/yigit/placementportal/internal/middleware"
	"github.com/yigit/placementportal/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubStudents struct {
	services.StudentService
}

func (s stubStudents) GetStudentByUSN(_ context.Context, usn string) (*models.Student, error) {
	return &models.Student{USN: usn}, nil
}

type stubEmployers struct {
	services.EmployerService
}

func (s stubEmployers) GetEmployer(_ context.Context, employerID int64) (*models.Employer, error) {
	return &models.Employer{EmployerID: employerID}, nil
}

type stubOps struct {
	services.EmployerOpsService
}

func (s stubOps) GetJobsByEmployer(_ context.Context, employerID int64) ([]*models.Job, error) {
	return []*models.Job{{JobID: 1, EmployerID: employerID}}, nil
}

type stubPortal struct {
	services.PortalService
}

func (s stubPortal) FetchJobs(context.Context) ([]*models.JobListing, error) {
	return []*models.JobListing{}, nil
}

type stubIdentities map[string]*models.Identity

func (p stubIdentities) GetUser(_ context.Context, accessToken string) (*models.Identity, error) {
	if identity, ok := p[accessToken]; ok {
		return identity, nil
	}
	return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Invalid session")
}

func newRouter() *gin.Engine {
	router := gin.New()
	students, employers, portal := stubStudents{}, stubEmployers{}, stubPortal{}

	SetupRouter(router, Controllers{
		Auth:     controllers.NewAuthController(students, employers, zerolog.Nop()),
		Student:  controllers.NewStudentController(students, portal, nil, zerolog.Nop()),
		Employer: controllers.NewEmployerController(employers, stubOps{}, zerolog.Nop()),
		Job:      controllers.NewJobController(portal),
	}, middleware.NewAuthMiddleware(stubIdentities{
		"student-token":  {Role: models.RoleStudent, Subject: "1RV20CS001"},
		"employer-token": {Role: models.RoleEmployer, Subject: "1001"},
	}))
	return router
}

func TestSetupRouter_RoleGating(t *testing.T) {
	router := newRouter()

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{name: "health is public", method: http.MethodGet, path: "/api/v1/health", want: http.StatusOK},
		{name: "job board is public", method: http.MethodGet, path: "/api/v1/jobs", want: http.StatusOK},
		{name: "own profile needs a session", method: http.MethodGet, path: "/api/v1/students/me", want: http.StatusUnauthorized},
		{name: "unknown token is rejected", method: http.MethodGet, path: "/api/v1/students/me", token: "stale-token", want: http.StatusUnauthorized},
		{name: "student reads own profile", method: http.MethodGet, path: "/api/v1/students/me", token: "student-token", want: http.StatusOK},
		{name: "employer cannot use student self routes", method: http.MethodGet, path: "/api/v1/students/me", token: "employer-token", want: http.StatusForbidden},
		{name: "employer reads a student by usn", method: http.MethodGet, path: "/api/v1/students/1RV20CS002", token: "employer-token", want: http.StatusOK},
		{name: "student cannot read other students", method: http.MethodGet, path: "/api/v1/students/1RV20CS002", token: "student-token", want: http.StatusForbidden},
		{name: "employer lists own jobs", method: http.MethodGet, path: "/api/v1/employer/jobs", token: "employer-token", want: http.StatusOK},
		{name: "student cannot manage jobs", method: http.MethodGet, path: "/api/v1/employer/jobs", token: "student-token", want: http.StatusForbidden},
		{name: "employer reads own profile", method: http.MethodGet, path: "/api/v1/employers/me", token: "employer-token", want: http.StatusOK},
		{name: "unmounted path", method: http.MethodGet, path: "/api/v1/admin", token: "employer-token", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestSetupRouter_SelfRoutesUseSessionSubject(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employers/me", nil)
	req.Header.Set("Authorization", "Bearer employer-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"employer_id":1001`)
}
