package services

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/app/repositories"
	"github.com/yigit/placementportal/internal/pkg/email"
	"github.com/yigit/placementportal/internal/pkg/helpers"
	"github.com/yigit/placementportal/internal/pkg/identity"
)

type fakeTx struct {
	calls int
}

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeDirectory struct {
	inUse     map[string]bool
	locked    []string
	students  *fakeStudents
	employers *fakeEmployers
}

func newFakeDirectory(emails ...string) *fakeDirectory {
	d := &fakeDirectory{inUse: map[string]bool{}}
	for _, e := range emails {
		d.inUse[e] = true
	}
	return d
}

func (d *fakeDirectory) LockEmail(_ context.Context, email string) error {
	d.locked = append(d.locked, email)
	return nil
}

// EmailInUse also consults the attached profile fakes, comparing emails
// exactly like the SQL lookup does.
func (d *fakeDirectory) EmailInUse(ctx context.Context, email string) (bool, error) {
	if d.inUse[email] {
		return true, nil
	}
	if d.students != nil {
		if _, err := d.students.GetByEmail(ctx, email); err == nil {
			return true, nil
		}
	}
	if d.employers != nil {
		if _, err := d.employers.GetByEmail(ctx, email); err == nil {
			return true, nil
		}
	}
	return false, nil
}

type fakeCredential struct {
	password string
	identity *models.Identity
}

type fakeProvider struct {
	mu        sync.Mutex
	accounts  map[string]fakeCredential
	signedUp  []identity.Metadata
	signedOut []string
	seq       int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{accounts: map[string]fakeCredential{}}
}

func (p *fakeProvider) add(email, password string, role models.Role, subject string) {
	email = identity.NormalizeEmail(email)
	p.accounts[email] = fakeCredential{
		password: password,
		identity: &models.Identity{ID: "id-" + email, Email: email, Role: role, Subject: subject},
	}
}

func (p *fakeProvider) SignUp(_ context.Context, email, password string, meta identity.Metadata) (*models.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	email = identity.NormalizeEmail(email)
	if _, ok := p.accounts[email]; ok {
		return nil, repositories.ErrIdentityExists
	}
	p.signedUp = append(p.signedUp, meta)
	ident := &models.Identity{ID: "id-" + email, Email: email, Role: meta.Role, Subject: meta.Subject}
	p.accounts[email] = fakeCredential{password: password, identity: ident}
	return ident, nil
}

func (p *fakeProvider) SignInWithPassword(_ context.Context, email, password string) (*identity.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cred, ok := p.accounts[identity.NormalizeEmail(email)]
	if !ok || cred.password != password {
		return nil, identity.ErrInvalidLogin
	}
	p.seq++
	return &identity.Session{
		AccessToken: "token-" + strconv.Itoa(p.seq),
		ExpiresAt:   time.Now().Add(time.Hour),
		Identity:    cred.identity,
	}, nil
}

func (p *fakeProvider) SignOut(_ context.Context, accessToken string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signedOut = append(p.signedOut, accessToken)
	return nil
}

func (p *fakeProvider) GetUser(_ context.Context, _ string) (*models.Identity, error) {
	return nil, identity.ErrSessionInvalid
}

type fakeMailer struct {
	welcomed   []string
	interviews []email.InterviewNotice
}

func (m *fakeMailer) SendWelcomeEmail(toEmail, _ string, _ string) error {
	m.welcomed = append(m.welcomed, toEmail)
	return nil
}

func (m *fakeMailer) SendInterviewScheduledEmail(_ string, _ string, notice email.InterviewNotice) error {
	m.interviews = append(m.interviews, notice)
	return nil
}

type fakeStudents struct {
	rows map[string]*models.Student
}

func newFakeStudents(rows ...*models.Student) *fakeStudents {
	f := &fakeStudents{rows: map[string]*models.Student{}}
	for _, r := range rows {
		f.rows[r.USN] = r
	}
	return f
}

func (f *fakeStudents) Create(_ context.Context, student *models.Student) error {
	if _, ok := f.rows[student.USN]; ok {
		return repositories.ErrUSNExists
	}
	f.rows[student.USN] = student
	return nil
}

func (f *fakeStudents) GetByUSN(_ context.Context, usn string) (*models.Student, error) {
	if s, ok := f.rows[usn]; ok {
		return s, nil
	}
	return nil, repositories.ErrStudentNotFound
}

func (f *fakeStudents) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	for _, s := range f.rows {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, repositories.ErrStudentNotFound
}

func (f *fakeStudents) Update(_ context.Context, usn string, set helpers.SparseSet) (*models.Student, error) {
	s, ok := f.rows[usn]
	if !ok {
		return nil, repositories.ErrStudentNotFound
	}
	for column, value := range set {
		switch column {
		case "first_name":
			s.FirstName = value.(string)
		case "last_name":
			s.LastName = value.(string)
		case "phone":
			s.Phone = value.(string)
		case "branch":
			s.Branch = value.(string)
		case "year":
			s.Year = value.(int)
		case "cgpa":
			s.CGPA = value.(float64)
		case "resume":
			r := value.(string)
			s.Resume = &r
		}
	}
	return s, nil
}

func (f *fakeStudents) SetResume(_ context.Context, usn string, resume *string) (*models.Student, error) {
	s, ok := f.rows[usn]
	if !ok {
		return nil, repositories.ErrStudentNotFound
	}
	s.Resume = resume
	return s, nil
}

type fakeEmployers struct {
	rows map[int64]*models.Employer
}

func newFakeEmployers(rows ...*models.Employer) *fakeEmployers {
	f := &fakeEmployers{rows: map[int64]*models.Employer{}}
	for _, r := range rows {
		f.rows[r.EmployerID] = r
	}
	return f
}

func (f *fakeEmployers) Create(_ context.Context, employer *models.Employer) error {
	if _, ok := f.rows[employer.EmployerID]; ok {
		return repositories.ErrEmployerIDExists
	}
	f.rows[employer.EmployerID] = employer
	return nil
}

func (f *fakeEmployers) GetByID(_ context.Context, employerID int64) (*models.Employer, error) {
	if e, ok := f.rows[employerID]; ok {
		return e, nil
	}
	return nil, repositories.ErrEmployerNotFound
}

func (f *fakeEmployers) GetByEmail(_ context.Context, email string) (*models.Employer, error) {
	for _, e := range f.rows {
		if e.ContactEmail == email {
			return e, nil
		}
	}
	return nil, repositories.ErrEmployerNotFound
}

func (f *fakeEmployers) Update(_ context.Context, employerID int64, set helpers.SparseSet) (*models.Employer, error) {
	e, ok := f.rows[employerID]
	if !ok {
		return nil, repositories.ErrEmployerNotFound
	}
	for column, value := range set {
		switch column {
		case "company_name":
			e.CompanyName = value.(string)
		case "website":
			e.Website = value.(string)
		case "industry_type":
			e.IndustryType = value.(string)
		case "location":
			e.Location = value.(string)
		}
	}
	return e, nil
}

type fakeJobs struct {
	rows   map[int64]*models.Job
	placed map[int64]bool
	nextID int64
}

func newFakeJobs(rows ...*models.Job) *fakeJobs {
	f := &fakeJobs{rows: map[int64]*models.Job{}, placed: map[int64]bool{}, nextID: 100}
	for _, r := range rows {
		f.rows[r.JobID] = r
	}
	return f
}

func (f *fakeJobs) GetByID(_ context.Context, jobID int64) (*models.Job, error) {
	if j, ok := f.rows[jobID]; ok {
		return j, nil
	}
	return nil, repositories.ErrJobNotFound
}

func (f *fakeJobs) ListByEmployer(_ context.Context, employerID int64) ([]*models.Job, error) {
	jobs := []*models.Job{}
	for _, j := range f.rows {
		if j.EmployerID == employerID {
			jobs = append(jobs, j)
		}
	}
	sort.Slice(jobs, func(a, b int) bool { return jobs[a].JobID < jobs[b].JobID })
	return jobs, nil
}

func (f *fakeJobs) ListWithCompany(_ context.Context) ([]*models.JobListing, error) {
	listings := []*models.JobListing{}
	for _, j := range f.rows {
		listings = append(listings, &models.JobListing{Job: *j})
	}
	return listings, nil
}

func (f *fakeJobs) GetWithEmployer(ctx context.Context, jobID int64) (*models.JobListing, error) {
	j, err := f.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &models.JobListing{Job: *j}, nil
}

func (f *fakeJobs) Create(_ context.Context, employerID int64, fields models.JobFields) (*models.Job, error) {
	f.nextID++
	job := &models.Job{
		JobID:          f.nextID,
		EmployerID:     employerID,
		Title:          fields.Title,
		RequiredSkills: fields.RequiredSkills,
		Description:    fields.Description,
		Salary:         fields.Salary,
		Eligibility:    fields.Eligibility,
		Location:       fields.Location,
		PostDate:       time.Now(),
	}
	f.rows[job.JobID] = job
	return job, nil
}

func (f *fakeJobs) Update(ctx context.Context, jobID int64, fields models.JobFields) (*models.Job, error) {
	j, err := f.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	j.Title, j.RequiredSkills, j.Description = fields.Title, fields.RequiredSkills, fields.Description
	j.Salary, j.Eligibility, j.Location = fields.Salary, fields.Eligibility, fields.Location
	return j, nil
}

func (f *fakeJobs) Delete(_ context.Context, jobID int64) error {
	if _, ok := f.rows[jobID]; !ok {
		return repositories.ErrJobNotFound
	}
	if f.placed[jobID] {
		return repositories.ErrJobHasPlacements
	}
	delete(f.rows, jobID)
	return nil
}

type fakeApplications struct {
	rows   []*models.Application
	nextID int64
}

func (f *fakeApplications) Exists(_ context.Context, usn string, jobID int64) (bool, error) {
	for _, a := range f.rows {
		if a.USN == usn && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplications) Create(ctx context.Context, usn string, jobID int64) (*models.Application, error) {
	if exists, _ := f.Exists(ctx, usn, jobID); exists {
		return nil, repositories.ErrAlreadyApplied
	}
	f.nextID++
	a := &models.Application{AppID: f.nextID, USN: usn, JobID: jobID, Status: models.StatusPending, DateApplied: time.Now()}
	f.rows = append(f.rows, a)
	return a, nil
}

func (f *fakeApplications) GetByID(_ context.Context, appID int64) (*models.Application, error) {
	for _, a := range f.rows {
		if a.AppID == appID {
			return a, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (f *fakeApplications) ListByUSN(_ context.Context, usn string) ([]*models.Application, error) {
	out := []*models.Application{}
	for _, a := range f.rows {
		if a.USN == usn {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplications) ListByJobIDs(_ context.Context, jobIDs []int64) ([]*models.Application, error) {
	out := []*models.Application{}
	for _, a := range f.rows {
		for _, id := range jobIDs {
			if a.JobID == id {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

func (f *fakeApplications) ListWithJobByUSN(_ context.Context, _ string) ([]*models.ApplicationWithJob, error) {
	return []*models.ApplicationWithJob{}, nil
}

func (f *fakeApplications) UpdateStatus(ctx context.Context, appID int64, status, from models.ApplicationStatus) (*models.Application, error) {
	a, err := f.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if from != "" && a.Status != from {
		return nil, ErrStatusTransitionRefused
	}
	a.Status = status
	return a, nil
}

type fakeInterviews struct {
	rows   map[int64]*models.Interview
	nextID int64
}

func newFakeInterviews(rows ...*models.Interview) *fakeInterviews {
	f := &fakeInterviews{rows: map[int64]*models.Interview{}}
	for _, r := range rows {
		f.rows[r.InterviewID] = r
	}
	return f
}

func (f *fakeInterviews) Create(_ context.Context, interview *models.Interview) (*models.Interview, error) {
	f.nextID++
	interview.InterviewID = f.nextID
	f.rows[interview.InterviewID] = interview
	return interview, nil
}

func (f *fakeInterviews) GetByID(_ context.Context, interviewID int64) (*models.Interview, error) {
	if i, ok := f.rows[interviewID]; ok {
		return i, nil
	}
	return nil, repositories.ErrInterviewNotFound
}

func (f *fakeInterviews) Delete(_ context.Context, interviewID int64) error {
	if _, ok := f.rows[interviewID]; !ok {
		return repositories.ErrInterviewNotFound
	}
	delete(f.rows, interviewID)
	return nil
}

func (f *fakeInterviews) SetResult(ctx context.Context, interviewID int64, result *string) (*models.Interview, error) {
	i, err := f.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	i.Result = result
	return i, nil
}

func (f *fakeInterviews) ListByJobIDs(_ context.Context, jobIDs []int64) ([]*models.Interview, error) {
	out := []*models.Interview{}
	for _, i := range f.rows {
		for _, id := range jobIDs {
			if i.JobID == id {
				out = append(out, i)
			}
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].InterviewID < out[b].InterviewID })
	return out, nil
}

func (f *fakeInterviews) ListWithJobByUSN(_ context.Context, _ string) ([]*models.InterviewWithJob, error) {
	return []*models.InterviewWithJob{}, nil
}

type fakePlacements struct {
	rows   map[int64]*models.Placement
	nextID int64
}

func newFakePlacements(rows ...*models.Placement) *fakePlacements {
	f := &fakePlacements{rows: map[int64]*models.Placement{}}
	for _, r := range rows {
		f.rows[r.PlacementID] = r
	}
	return f
}

func (f *fakePlacements) Create(_ context.Context, placement *models.Placement) (*models.Placement, error) {
	f.nextID++
	placement.PlacementID = f.nextID
	f.rows[placement.PlacementID] = placement
	return placement, nil
}

func (f *fakePlacements) GetByID(_ context.Context, placementID int64) (*models.Placement, error) {
	if p, ok := f.rows[placementID]; ok {
		return p, nil
	}
	return nil, repositories.ErrPlacementNotFound
}

func (f *fakePlacements) Update(ctx context.Context, placementID int64, packageOffered *float64, joiningDate *time.Time) (*models.Placement, error) {
	p, err := f.GetByID(ctx, placementID)
	if err != nil {
		return nil, err
	}
	if packageOffered != nil {
		p.PackageOffered = *packageOffered
	}
	if joiningDate != nil {
		p.JoiningDate = *joiningDate
	}
	return p, nil
}

func (f *fakePlacements) ListByJobIDs(_ context.Context, jobIDs []int64) ([]*models.Placement, error) {
	out := []*models.Placement{}
	for _, p := range f.rows {
		for _, id := range jobIDs {
			if p.JobID == id {
				out = append(out, p)
			}
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].PlacementID < out[b].PlacementID })
	return out, nil
}

func (f *fakePlacements) FirstWithEmployerByUSN(_ context.Context, usn string) (*models.PlacementWithEmployer, error) {
	var first *models.Placement
	for _, p := range f.rows {
		if p.USN == usn && (first == nil || p.PlacementID < first.PlacementID) {
			first = p
		}
	}
	if first == nil {
		return nil, nil
	}
	return &models.PlacementWithEmployer{Placement: *first}, nil
}

type fakeStorage struct {
	objects map[string][]byte
	removed []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Upload(_ context.Context, bucket, objectPath string, content io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return err
	}
	s.objects[bucket+"/"+objectPath] = buf.Bytes()
	return nil
}

func (s *fakeStorage) Remove(_ context.Context, bucket string, objectPaths ...string) error {
	for _, p := range objectPaths {
		delete(s.objects, bucket+"/"+p)
		s.removed = append(s.removed, p)
	}
	return nil
}

func (s *fakeStorage) PublicURL(bucket, objectPath string) string {
	return "http://files.test/" + bucket + "/" + objectPath
}
