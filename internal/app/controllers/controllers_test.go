package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/app/models/dto"
	"github.com/yigit/placementportal/internal/app/services"
	"github.com/yigit/placementportal/internal/middleware"
	"github.com/yigit/placementportal/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Stubs embed the service interface so only the methods a test exercises
// need an implementation.

type stubStudentService struct {
	services.StudentService
	registered *dto.RegisterStudentRequest
	loggedOut  []string
}

func (s *stubStudentService) RegisterStudent(_ context.Context, req *dto.RegisterStudentRequest) (*models.Student, error) {
	if req.USN == "" {
		return nil, apperrors.NewValidationError("USN is required")
	}
	s.registered = req
	return &models.Student{USN: req.USN, Email: req.Email}, nil
}

func (s *stubStudentService) LogoutStudent(_ context.Context, accessToken string) error {
	s.loggedOut = append(s.loggedOut, accessToken)
	return nil
}

func (s *stubStudentService) GetStudentByUSN(_ context.Context, usn string) (*models.Student, error) {
	return &models.Student{USN: usn}, nil
}

type stubEmployerService struct {
	services.EmployerService
	loggedOut []string
}

func (s *stubEmployerService) LogoutEmployer(_ context.Context, accessToken string) error {
	s.loggedOut = append(s.loggedOut, accessToken)
	return nil
}

type stubPortalService struct {
	services.PortalService
	applied map[int64]bool
}

func (s *stubPortalService) InsertApplication(_ context.Context, jobID int64, usn string) (*models.Application, error) {
	if s.applied[jobID] {
		return nil, apperrors.NewConflictError(apperrors.MsgAlreadyApplied)
	}
	s.applied[jobID] = true
	return &models.Application{AppID: 1, JobID: jobID, USN: usn, Status: models.StatusPending}, nil
}

func (s *stubPortalService) FetchPlacementDetails(context.Context, string) (*models.PlacementWithEmployer, error) {
	return nil, nil
}

type stubResumeService struct {
	services.ResumeService
}

func (s *stubResumeService) UploadResume(_ context.Context, usn string, file *multipart.FileHeader) (*dto.ResumeResponse, error) {
	if file == nil {
		return nil, apperrors.NewValidationError("Please select a file first")
	}
	return &dto.ResumeResponse{USN: usn, Resume: "resumes/" + file.Filename}, nil
}

type stubProber map[string]*models.Identity

func (p stubProber) GetUser(_ context.Context, accessToken string) (*models.Identity, error) {
	if identity, ok := p[accessToken]; ok {
		return identity, nil
	}
	return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Invalid session")
}

type testServer struct {
	router    *gin.Engine
	students  *stubStudentService
	employers *stubEmployerService
	portal    *stubPortalService
}

func newTestServer() *testServer {
	ts := &testServer{
		router:    gin.New(),
		students:  &stubStudentService{},
		employers: &stubEmployerService{},
		portal:    &stubPortalService{applied: map[int64]bool{}},
	}

	authMiddleware := middleware.NewAuthMiddleware(stubProber{
		"student-token":  {Role: models.RoleStudent, Subject: "1RV20CS001"},
		"employer-token": {Role: models.RoleEmployer, Subject: "1001"},
	})
	authController := NewAuthController(ts.students, ts.employers, zerolog.Nop())
	studentController := NewStudentController(ts.students, ts.portal, &stubResumeService{}, zerolog.Nop())

	v1 := ts.router.Group("/api/v1")
	v1.POST("/auth/students/register", authController.RegisterStudent)

	authenticated := v1.Group("", authMiddleware.JWTAuth())
	authenticated.POST("/auth/logout", authController.Logout)
	authenticated.GET("/auth/session", authController.Session)

	student := authenticated.Group("", authMiddleware.RoleRequired(models.RoleStudent))
	student.POST("/jobs/:id/applications", studentController.Apply)
	student.GET("/students/me/placement", studentController.GetPlacement)
	student.PUT("/students/me/resume", studentController.UploadResume)

	employer := authenticated.Group("", authMiddleware.RoleRequired(models.RoleEmployer))
	employer.GET("/students/:usn", studentController.GetStudent)
	return ts
}

func (ts *testServer) do(method, path, token string, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var envelope map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	return rec, envelope
}

func TestRegisterStudent_Envelope(t *testing.T) {
	ts := newTestServer()

	rec, envelope := ts.do(http.MethodPost, "/api/v1/auth/students/register", "",
		`{"usn":"1RV20CS001","email":"asha@example.com","year":4,"cgpa":8.7}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "1RV20CS001", envelope["data"].(map[string]interface{})["usn"])
	require.NotNil(t, ts.students.registered.CGPA)
	assert.InDelta(t, 8.7, *ts.students.registered.CGPA, 1e-9)

	rec, envelope = ts.do(http.MethodPost, "/api/v1/auth/students/register", "", `{"email":"asha@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "USN is required", envelope["message"])
}

func TestSessionAndLogout(t *testing.T) {
	ts := newTestServer()

	rec, envelope := ts.do(http.MethodGet, "/api/v1/auth/session", "employer-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"status": "authenticated", "role": "employer", "data": "1001"}, envelope["data"])

	rec, envelope = ts.do(http.MethodPost, "/api/v1/auth/logout", "employer-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"employer-token"}, ts.employers.loggedOut)
	assert.Empty(t, ts.students.loggedOut)
	assert.Equal(t, map[string]interface{}{"status": "unauthenticated", "role": nil, "data": nil}, envelope["data"])

	rec, _ = ts.do(http.MethodGet, "/api/v1/auth/session", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApply_DuplicateIsConflict(t *testing.T) {
	ts := newTestServer()

	rec, envelope := ts.do(http.MethodPost, "/api/v1/jobs/12/applications", "student-token", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "1RV20CS001", data["usn"])
	assert.Equal(t, "Pending", data["status"])

	rec, envelope = ts.do(http.MethodPost, "/api/v1/jobs/12/applications", "student-token", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apperrors.MsgAlreadyApplied, envelope["message"])
}

func TestRoleGatedRoutes(t *testing.T) {
	ts := newTestServer()

	rec, _ := ts.do(http.MethodPost, "/api/v1/jobs/12/applications", "employer-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = ts.do(http.MethodGet, "/api/v1/students/1RV20CS001", "student-token", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, envelope := ts.do(http.MethodGet, "/api/v1/students/1RV20CS001", "employer-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1RV20CS001", envelope["data"].(map[string]interface{})["usn"])
}

func TestGetPlacement_NoneIsNullData(t *testing.T) {
	ts := newTestServer()

	rec, envelope := ts.do(http.MethodGet, "/api/v1/students/me/placement", "student-token", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, envelope["success"])
	assert.Nil(t, envelope["data"])
}

func TestUploadResume_Multipart(t *testing.T) {
	ts := newTestServer()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("resume", "cv.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.7"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/students/me/resume", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer student-token")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"resume":"resumes/cv.pdf"`)

	rec, envelope := ts.do(http.MethodPut, "/api/v1/students/me/resume", "student-token", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please select a file first", envelope["message"])
}
