// Package seed creates demo accounts and postings for local development.
package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/placementportal/internal/app/models/dto"
	"github.com/yigit/placementportal/internal/app/services"
	"github.com/yigit/placementportal/internal/pkg/apperrors"
)

// DemoPassword is shared by every seeded account
const DemoPassword = "demo1234"

// Services are the operations the seed goes through, so demo rows get the
// same validation and identities as real registrations
type Services struct {
	Students    services.StudentService
	Employers   services.EmployerService
	EmployerOps services.EmployerOpsService
	Portal      services.PortalService
}

func int64Ptr(v int64) *int64       { return &v }
func intPtr(v int) *int             { return &v }
func float64Ptr(v float64) *float64 { return &v }

var demoEmployer = dto.RegisterEmployerRequest{
	EmployerID:   int64Ptr(1001),
	CompanyName:  "Acme Corp",
	Website:      "https://acme.example",
	IndustryType: "Software",
	ContactEmail: "hr@acme.example",
	Location:     "Bengaluru",
	Password:     DemoPassword,
}

var demoStudents = []dto.RegisterStudentRequest{
	{USN: "1RV20CS001", FirstName: "Asha", LastName: "Rao", Email: "asha@student.example", Phone: "9876543210", Branch: "CSE", Year: intPtr(4), CGPA: float64Ptr(8.7), Password: DemoPassword},
	{USN: "1RV20EC014", FirstName: "Vikram", LastName: "Shetty", Email: "vikram@student.example", Phone: "9123456780", Branch: "ECE", Year: intPtr(4), CGPA: float64Ptr(7.9), Password: DemoPassword},
}

var demoJobs = []dto.JobRequest{
	{Title: "Backend Engineer", RequiredSkills: "Go, PostgreSQL", Description: "Build and run the placement APIs", Salary: "12 LPA", Eligibility: "CGPA >= 7", Location: "Remote"},
	{Title: "Embedded Developer", RequiredSkills: "C, RTOS", Description: "Firmware for industrial sensors", Salary: "9 LPA", Eligibility: "ECE/EEE", Location: "Bengaluru"},
}

// ignoreConflict treats rows left by an earlier seed run as success
func ignoreConflict(err error) error {
	if errors.Is(err, apperrors.ErrConflict) {
		return nil
	}
	return err
}

// CreateDemoData registers a demo employer and students, posts jobs when the
// employer has none and applies the first student to the first job. It is
// safe to run on every start.
func CreateDemoData(ctx context.Context, svc Services, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating demo data...")
	var finalErr error

	if _, err := svc.Employers.RegisterEmployer(ctx, &demoEmployer); ignoreConflict(err) != nil {
		lgr.Error().Err(err).Msg("Error creating demo employer")
		return err
	}

	for i := range demoStudents {
		student := demoStudents[i]
		if _, err := svc.Students.RegisterStudent(ctx, &student); ignoreConflict(err) != nil {
			lgr.Error().Err(err).Str("usn", student.USN).Msg("Error creating demo student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	employerID := *demoEmployer.EmployerID
	jobs, err := svc.EmployerOps.GetJobsByEmployer(ctx, employerID)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing demo jobs")
		return errors.Join(finalErr, err)
	}

	if len(jobs) == 0 {
		for i := range demoJobs {
			job, err := svc.EmployerOps.InsertJob(ctx, employerID, &demoJobs[i])
			if err != nil {
				lgr.Error().Err(err).Str("title", demoJobs[i].Title).Msg("Error creating demo job")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			jobs = append(jobs, job)
		}
	}

	if len(jobs) > 0 {
		_, err := svc.Portal.InsertApplication(ctx, jobs[0].JobID, demoStudents[0].USN)
		if ignoreConflict(err) != nil {
			lgr.Error().Err(err).Msg("Error creating demo application")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Int("jobs", len(jobs)).Msg("Demo data ready")
	}
	return finalErr
}
