//go:build integration

package repositories

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/yigit/placementportal/internal/app/migrations"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/db"
	"github.com/yigit/placementportal/internal/pkg/apperrors"
	"github.com/yigit/placementportal/internal/pkg/helpers"
)

func newTestRepositories(t *testing.T) (*Repositories, *db.PostgresDB) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("placement_portal"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, container)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.NewMigrator(pool, zerolog.Nop()).MigrateFromDirectory(ctx, filepath.Join("..", "..", "..", "migrations")))

	database := &db.PostgresDB{Pool: pool}
	return NewRepositories(database), database
}

func seedEmployer(t *testing.T, repos *Repositories, id int64, email string) {
	t.Helper()
	require.NoError(t, repos.EmployerRepository.Create(context.Background(), &models.Employer{
		EmployerID: id, CompanyName: "Company", Website: "https://company.example",
		IndustryType: "Software", ContactEmail: email, Location: "Bengaluru",
	}))
}

func seedStudent(t *testing.T, repos *Repositories, usn, email string) {
	t.Helper()
	resume := models.PlaceholderResume
	require.NoError(t, repos.StudentRepository.Create(context.Background(), &models.Student{
		USN: usn, FirstName: "Asha", LastName: "Rao", Email: email, Phone: "9876543210",
		Branch: "CSE", Year: 4, CGPA: 8.7, Resume: &resume,
	}))
}

func seedJob(t *testing.T, repos *Repositories, employerID int64, title string) *models.Job {
	t.Helper()
	job, err := repos.JobRepository.Create(context.Background(), employerID, models.JobFields{
		Title: title, RequiredSkills: "Go", Description: "APIs", Salary: "12 LPA", Eligibility: "CGPA >= 7", Location: "Remote",
	})
	require.NoError(t, err)
	return job
}

func TestRepositories_Integration(t *testing.T) {
	repos, database := newTestRepositories(t)
	ctx := context.Background()

	seedEmployer(t, repos, 1001, "hr@acme.example")
	seedEmployer(t, repos, 2002, "jobs@globex.example")
	seedStudent(t, repos, "1RV20CS001", "asha@example.com")
	seedStudent(t, repos, "1RV20CS002", "ravi@example.com")
	ownJob := seedJob(t, repos, 1001, "Backend Engineer")
	otherJob := seedJob(t, repos, 2002, "Data Analyst")

	t.Run("email space is shared", func(t *testing.T) {
		inUse, err := repos.DirectoryRepository.EmailInUse(ctx, "hr@acme.example")
		require.NoError(t, err)
		assert.True(t, inUse)

		inUse, err = repos.DirectoryRepository.EmailInUse(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, inUse)
	})

	t.Run("unique constraints map to conflicts", func(t *testing.T) {
		err := repos.EmployerRepository.Create(ctx, &models.Employer{
			EmployerID: 1001, CompanyName: "Dup", Website: "w", IndustryType: "i", ContactEmail: "other@acme.example", Location: "l",
		})
		assert.ErrorIs(t, err, ErrEmployerIDExists)

		resume := models.PlaceholderResume
		err = repos.StudentRepository.Create(ctx, &models.Student{
			USN: "1RV20CS099", FirstName: "A", LastName: "B", Email: "asha@example.com", Phone: "9876543210",
			Branch: "CSE", Year: 1, CGPA: 5, Resume: &resume,
		})
		assert.ErrorIs(t, err, ErrEmailInUse)
	})

	t.Run("one application per student and job", func(t *testing.T) {
		app, err := repos.ApplicationRepository.Create(ctx, "1RV20CS001", ownJob.JobID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, app.Status)

		exists, err := repos.ApplicationRepository.Exists(ctx, "1RV20CS001", ownJob.JobID)
		require.NoError(t, err)
		assert.True(t, exists)

		_, err = repos.ApplicationRepository.Create(ctx, "1RV20CS001", ownJob.JobID)
		assert.ErrorIs(t, err, ErrAlreadyApplied)
	})

	t.Run("strict status transition", func(t *testing.T) {
		app, err := repos.ApplicationRepository.Create(ctx, "1RV20CS002", ownJob.JobID)
		require.NoError(t, err)

		updated, err := repos.ApplicationRepository.UpdateStatus(ctx, app.AppID, models.StatusAccepted, models.StatusPending)
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, updated.Status)

		_, err = repos.ApplicationRepository.UpdateStatus(ctx, app.AppID, models.StatusRejected, models.StatusPending)
		assert.True(t, errors.Is(err, apperrors.ErrConflict))

		updated, err = repos.ApplicationRepository.UpdateStatus(ctx, app.AppID, models.StatusRejected, "")
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, updated.Status)
	})

	t.Run("children are filtered by job ids", func(t *testing.T) {
		_, err := repos.ApplicationRepository.Create(ctx, "1RV20CS001", otherJob.JobID)
		require.NoError(t, err)

		apps, err := repos.ApplicationRepository.ListByJobIDs(ctx, []int64{ownJob.JobID})
		require.NoError(t, err)
		require.Len(t, apps, 2)
		for _, app := range apps {
			assert.Equal(t, ownJob.JobID, app.JobID)
		}

		withJob, err := repos.ApplicationRepository.ListWithJobByUSN(ctx, "1RV20CS001")
		require.NoError(t, err)
		require.Len(t, withJob, 2)
		assert.NotNil(t, withJob[0].Jobs)
	})

	t.Run("jobs carry company name", func(t *testing.T) {
		listing, err := repos.JobRepository.GetWithEmployer(ctx, ownJob.JobID)
		require.NoError(t, err)
		require.NotNil(t, listing.Employers)
		assert.Equal(t, "Company", listing.Employers.CompanyName)

		_, err = repos.JobRepository.GetWithEmployer(ctx, 999999)
		assert.ErrorIs(t, err, ErrJobNotFound)
	})

	t.Run("interview result and delete", func(t *testing.T) {
		interview, err := repos.InterviewRepository.Create(ctx, &models.Interview{
			USN: "1RV20CS001", JobID: ownJob.JobID, Date: time.Now().Add(48 * time.Hour),
			InterviewMode: models.InterviewOnline, Round: "Technical 1",
		})
		require.NoError(t, err)

		result := "Cleared"
		updated, err := repos.InterviewRepository.SetResult(ctx, interview.InterviewID, &result)
		require.NoError(t, err)
		require.NotNil(t, updated.Result)
		assert.Equal(t, "Cleared", *updated.Result)

		require.NoError(t, repos.InterviewRepository.Delete(ctx, interview.InterviewID))
		_, err = repos.InterviewRepository.GetByID(ctx, interview.InterviewID)
		assert.ErrorIs(t, err, ErrInterviewNotFound)
	})

	t.Run("first placement with employer", func(t *testing.T) {
		joining := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		placement, err := repos.PlacementRepository.Create(ctx, &models.Placement{
			USN: "1RV20CS001", JobID: ownJob.JobID, PackageOffered: 1200000, JoiningDate: joining,
		})
		require.NoError(t, err)

		pkg := 1500000.0
		updated, err := repos.PlacementRepository.Update(ctx, placement.PlacementID, &pkg, nil)
		require.NoError(t, err)
		assert.InDelta(t, 1500000, updated.PackageOffered, 0.001)

		found, err := repos.PlacementRepository.FirstWithEmployerByUSN(ctx, "1RV20CS001")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, int64(1001), found.Employers.EmployerID)
	})

	t.Run("job delete cascades but keeps placed jobs", func(t *testing.T) {
		err := repos.JobRepository.Delete(ctx, ownJob.JobID)
		assert.ErrorIs(t, err, ErrJobHasPlacements)
		assert.True(t, errors.Is(err, apperrors.ErrConflict))
		_, err = repos.JobRepository.GetByID(ctx, ownJob.JobID)
		require.NoError(t, err)

		doomed := seedJob(t, repos, 1001, "Intern")
		_, err = repos.ApplicationRepository.Create(ctx, "1RV20CS002", doomed.JobID)
		require.NoError(t, err)
		interview, err := repos.InterviewRepository.Create(ctx, &models.Interview{
			USN: "1RV20CS002", JobID: doomed.JobID, Date: time.Now().Add(24 * time.Hour),
			InterviewMode: models.InterviewOffline, Round: "HR",
		})
		require.NoError(t, err)

		require.NoError(t, repos.JobRepository.Delete(ctx, doomed.JobID))
		exists, err := repos.ApplicationRepository.Exists(ctx, "1RV20CS002", doomed.JobID)
		require.NoError(t, err)
		assert.False(t, exists)
		_, err = repos.InterviewRepository.GetByID(ctx, interview.InterviewID)
		assert.ErrorIs(t, err, ErrInterviewNotFound)
	})

	t.Run("sparse student update", func(t *testing.T) {
		set := helpers.SparseSet{}.String("branch", strPtr("ISE")).Int("year", nil)

		student, err := repos.StudentRepository.Update(ctx, "1RV20CS002", set)
		require.NoError(t, err)
		assert.Equal(t, "ISE", student.Branch)
		assert.Equal(t, 4, student.Year)
	})

	t.Run("transaction rollback", func(t *testing.T) {
		err := database.WithinTransaction(ctx, func(ctx context.Context) error {
			require.NoError(t, repos.DirectoryRepository.LockEmail(ctx, "new@example.com"))
			seedStudent(t, repos, "1RV20CS050", "new@example.com")
			return errors.New("abort")
		})
		require.Error(t, err)

		_, err = repos.StudentRepository.GetByUSN(ctx, "1RV20CS050")
		assert.ErrorIs(t, err, ErrStudentNotFound)
	})

	t.Run("token revocation", func(t *testing.T) {
		require.NoError(t, repos.TokenRepository.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
		revoked, err := repos.TokenRepository.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = repos.TokenRepository.IsRevoked(ctx, "jti-unknown")
		require.NoError(t, err)
		assert.False(t, revoked)

		require.NoError(t, repos.TokenRepository.Revoke(ctx, "jti-old", time.Now().Add(-time.Minute)))
		deleted, err := repos.TokenRepository.CleanupExpiredTokens(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, deleted, int64(1))
		revoked, err = repos.TokenRepository.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked, "unexpired revocations survive cleanup")
	})
}

func strPtr(v string) *string { return &v }
