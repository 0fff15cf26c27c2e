package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placementportal/internal/app/auth"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/app/models/dto"
	"github.com/yigit/placementportal/internal/app/repositories"
	"github.com/yigit/placementportal/internal/pkg/apperrors"
)

const (
	ownerID = int64(1001)
	rivalID = int64(2002)
)

type opsFixture struct {
	jobs         *fakeJobs
	applications *fakeApplications
	interviews   *fakeInterviews
	placements   *fakePlacements
	mailer       *fakeMailer
	service      EmployerOpsService
}

func newOpsFixture(strict bool) *opsFixture {
	f := &opsFixture{
		jobs: newFakeJobs(
			&models.Job{JobID: 1, EmployerID: ownerID, Title: "Backend Engineer", Location: "Pune"},
			&models.Job{JobID: 2, EmployerID: ownerID, Title: "Data Analyst", Location: "Remote"},
			&models.Job{JobID: 3, EmployerID: rivalID, Title: "Designer"},
		),
		applications: &fakeApplications{nextID: 10},
		interviews:   newFakeInterviews(&models.Interview{InterviewID: 7, USN: "1RV20CS001", JobID: 1, Round: "HR"}),
		placements:   newFakePlacements(&models.Placement{PlacementID: 5, USN: "1RV20CS001", JobID: 1, PackageOffered: 1000000}),
		mailer:       &fakeMailer{},
	}
	students := newFakeStudents(&models.Student{USN: "1RV20CS001", FirstName: "Asha", Email: "asha@example.com"})
	employers := newFakeEmployers(&models.Employer{EmployerID: ownerID, CompanyName: "Acme"})
	authz := auth.NewAuthorizationService(f.jobs, f.applications, f.interviews, f.placements)

	f.service = NewEmployerOpsService(f.jobs, f.applications, f.interviews, f.placements, students, employers,
		authz, f.mailer, EmployerOpsConfig{StrictTransitions: strict}, zerolog.Nop())
	return f
}

func fullJobRequest() *dto.JobRequest {
	return &dto.JobRequest{
		Title:          "SRE",
		RequiredSkills: "Linux",
		Description:    "Keep it running",
		Salary:         "10 LPA",
		Eligibility:    "Any",
		Location:       "Remote",
	}
}

func TestInsertJob(t *testing.T) {
	f := newOpsFixture(false)

	job, err := f.service.InsertJob(context.Background(), ownerID, fullJobRequest())

	require.NoError(t, err)
	assert.Equal(t, ownerID, job.EmployerID)
	assert.False(t, job.PostDate.IsZero())
}

func TestInsertJob_AllFieldsRequired(t *testing.T) {
	f := newOpsFixture(false)
	req := fullJobRequest()
	req.Eligibility = ""

	_, err := f.service.InsertJob(context.Background(), ownerID, req)

	require.Error(t, err)
	assert.Equal(t, "All fields are required", err.Error())
}

func TestUpdateJob(t *testing.T) {
	f := newOpsFixture(false)

	t.Run("missing job id", func(t *testing.T) {
		_, err := f.service.UpdateJob(context.Background(), ownerID, 0, fullJobRequest())
		assert.Equal(t, "All fields are required for updating the job", err.Error())
	})

	t.Run("other employer's job", func(t *testing.T) {
		_, err := f.service.UpdateJob(context.Background(), ownerID, 3, fullJobRequest())
		assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
	})

	t.Run("full replace", func(t *testing.T) {
		job, err := f.service.UpdateJob(context.Background(), ownerID, 1, fullJobRequest())
		require.NoError(t, err)
		assert.Equal(t, "SRE", job.Title)
		assert.Equal(t, "Remote", job.Location)
	})
}

func TestDeleteJob(t *testing.T) {
	f := newOpsFixture(false)

	err := f.service.DeleteJob(context.Background(), ownerID, 0)
	assert.Equal(t, "Job ID is required for deleting the job", err.Error())

	err = f.service.DeleteJob(context.Background(), ownerID, 99)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))

	require.NoError(t, f.service.DeleteJob(context.Background(), ownerID, 2))
	assert.NotContains(t, f.jobs.rows, int64(2))
}

func TestDeleteJob_RefusedWhilePlacementsExist(t *testing.T) {
	f := newOpsFixture(false)
	f.jobs.placed[1] = true

	err := f.service.DeleteJob(context.Background(), ownerID, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrJobHasPlacements)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Contains(t, f.jobs.rows, int64(1))
}

func TestGetJobsAndApplicationsByEmployer_ChildWins(t *testing.T) {
	f := newOpsFixture(false)
	_, _ = f.applications.Create(context.Background(), "1RV20CS001", 1)
	_, _ = f.applications.Create(context.Background(), "1RV20CS002", 3)

	records, err := f.service.GetJobsAndApplicationsByEmployer(context.Background(), nil, ownerID)

	require.NoError(t, err)
	require.Len(t, records, 1, "only applications to the employer's own jobs")
	assert.Equal(t, "Backend Engineer", records[0]["title"])
	assert.Equal(t, "1RV20CS001", records[0]["usn"])
	assert.Equal(t, models.StatusPending, records[0]["status"])
	assert.Equal(t, int64(1), records[0]["job_id"])
}

func TestGetJobsAndInterviewsByEmployer_SuppliedJobs(t *testing.T) {
	f := newOpsFixture(false)
	jobs := []*models.Job{{JobID: 1, EmployerID: ownerID, Title: "Supplied"}}

	records, err := f.service.GetJobsAndInterviewsByEmployer(context.Background(), jobs, ownerID)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Supplied", records[0]["title"])
	assert.Equal(t, "HR", records[0]["round"])
}

func TestGetJobsAndPlacementsByEmployer_NoJobs(t *testing.T) {
	f := newOpsFixture(false)

	_, err := f.service.GetJobsAndPlacementsByEmployer(context.Background(), nil, 4242)

	require.Error(t, err)
	assert.Equal(t, "No jobs found for this employer", err.Error())

	_, err = f.service.GetJobsAndPlacementsByEmployer(context.Background(), []*models.Job{}, ownerID)
	assert.ErrorIs(t, err, ErrNoJobsForEmployer)
}

func TestGetJobsAndPlacementsByEmployer(t *testing.T) {
	f := newOpsFixture(false)

	records, err := f.service.GetJobsAndPlacementsByEmployer(context.Background(), nil, ownerID)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1000000.0, records[0]["package_offered"])
}

func TestUpdateApplicationStatus(t *testing.T) {
	f := newOpsFixture(false)
	app, _ := f.applications.Create(context.Background(), "1RV20CS001", 1)

	_, err := f.service.UpdateApplicationStatus(context.Background(), ownerID, 0, "Accepted")
	assert.Equal(t, "Both appId and status are required", err.Error())

	_, err = f.service.UpdateApplicationStatus(context.Background(), ownerID, app.AppID, "Maybe")
	assert.ErrorIs(t, err, ErrInvalidApplicationStatus)

	updated, err := f.service.UpdateApplicationStatus(context.Background(), ownerID, app.AppID, "Accepted")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)

	// permissive mode lets a decided application be overwritten
	updated, err = f.service.UpdateApplicationStatus(context.Background(), ownerID, app.AppID, "Rejected")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, updated.Status)
}

func TestUpdateApplicationStatus_Strict(t *testing.T) {
	f := newOpsFixture(true)
	app, _ := f.applications.Create(context.Background(), "1RV20CS001", 1)

	_, err := f.service.UpdateApplicationStatus(context.Background(), ownerID, app.AppID, "Accepted")
	require.NoError(t, err)

	_, err = f.service.UpdateApplicationStatus(context.Background(), ownerID, app.AppID, "Rejected")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Equal(t, apperrors.MsgStatusTransitionRefused, err.Error())
}

func TestUpdateApplicationStatus_OtherEmployer(t *testing.T) {
	f := newOpsFixture(false)
	app, _ := f.applications.Create(context.Background(), "1RV20CS009", 3)

	_, err := f.service.UpdateApplicationStatus(context.Background(), ownerID, app.AppID, "Accepted")

	assert.ErrorIs(t, err, auth.ErrNotJobOwner)
	assert.Equal(t, models.StatusPending, app.Status)
}

func TestInsertInterview(t *testing.T) {
	f := newOpsFixture(false)

	interview, err := f.service.InsertInterview(context.Background(), ownerID, &dto.InterviewRequest{
		USN:           "1RV20CS001",
		JobID:         int64Ptr(1),
		Date:          "2026-07-01T10:30:00Z",
		InterviewMode: "Online",
		Round:         "Technical 1",
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 1, 10, 30, 0, 0, time.UTC), interview.Date.UTC())
	require.Len(t, f.mailer.interviews, 1)
	assert.Equal(t, "Backend Engineer", f.mailer.interviews[0].JobTitle)
	assert.Equal(t, "Acme", f.mailer.interviews[0].Company)
}

func TestInsertInterview_Validation(t *testing.T) {
	f := newOpsFixture(false)

	_, err := f.service.InsertInterview(context.Background(), ownerID, &dto.InterviewRequest{USN: "1RV20CS001"})
	assert.Equal(t, "All fields are required", err.Error())

	_, err = f.service.InsertInterview(context.Background(), ownerID, &dto.InterviewRequest{
		USN: "1RV20CS001", JobID: int64Ptr(1), Date: "2026-07-01", InterviewMode: "Phone", Round: "HR",
	})
	assert.ErrorIs(t, err, ErrInvalidInterviewMode)

	_, err = f.service.InsertInterview(context.Background(), ownerID, &dto.InterviewRequest{
		USN: "1RV20CS001", JobID: int64Ptr(1), Date: "soon", InterviewMode: "Offline", Round: "HR",
	})
	assert.ErrorIs(t, err, ErrInvalidInterviewDate)
	assert.Empty(t, f.mailer.interviews)
}

func TestDeleteInterview(t *testing.T) {
	f := newOpsFixture(false)

	err := f.service.DeleteInterview(context.Background(), ownerID, 0)
	assert.Equal(t, "Interview Id  is required for deleting the Interview", err.Error())

	err = f.service.DeleteInterview(context.Background(), rivalID, 7)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))

	require.NoError(t, f.service.DeleteInterview(context.Background(), ownerID, 7))
	assert.Empty(t, f.interviews.rows)
}

func TestSetInterviewResult(t *testing.T) {
	f := newOpsFixture(false)

	interview, err := f.service.SetInterviewResult(context.Background(), ownerID, 7, strPtr("Cleared"))
	require.NoError(t, err)
	assert.Equal(t, "Cleared", *interview.Result)

	interview, err = f.service.SetInterviewResult(context.Background(), ownerID, 7, strPtr(""))
	require.NoError(t, err)
	assert.Nil(t, interview.Result)
}

func TestInsertPlacement(t *testing.T) {
	f := newOpsFixture(false)

	_, err := f.service.InsertPlacement(context.Background(), ownerID, &dto.PlacementRequest{
		USN: "1RV20CS001", JobID: int64Ptr(1), PackageOffered: floatPtr(0), JoiningDate: "2026-08-01",
	})
	assert.Equal(t, "All fields are required", err.Error())

	placement, err := f.service.InsertPlacement(context.Background(), ownerID, &dto.PlacementRequest{
		USN: "1RV20CS001", JobID: int64Ptr(2), PackageOffered: floatPtr(1500000), JoiningDate: "2026-08-01",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), placement.JobID)
	assert.Equal(t, 2026, placement.JoiningDate.Year())
}

func TestUpdatePlacement(t *testing.T) {
	f := newOpsFixture(false)

	_, err := f.service.UpdatePlacement(context.Background(), ownerID, 5, &dto.UpdatePlacementRequest{})
	assert.Equal(t, "All fields are required", err.Error())

	_, err = f.service.UpdatePlacement(context.Background(), rivalID, 5, &dto.UpdatePlacementRequest{PackageOffered: floatPtr(1)})
	assert.ErrorIs(t, err, auth.ErrNotJobOwner)

	placement, err := f.service.UpdatePlacement(context.Background(), ownerID, 5, &dto.UpdatePlacementRequest{
		JoiningDate: strPtr("2026-09-15"),
	})
	require.NoError(t, err)
	assert.InDelta(t, 1000000.0, placement.PackageOffered, 1e-9)
	assert.Equal(t, time.September, placement.JoiningDate.Month())
}
