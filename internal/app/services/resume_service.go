package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placementportal/internal/app/models"
	"github.com/yigit/placementportal/internal/app/models/dto"
	"github.com/yigit/placementportal/internal/pkg/apperrors"
	"github.com/yigit/placementportal/internal/pkg/filestorage"
	"github.com/yigit/placementportal/internal/pkg/helpers"
)

// ResumeBucket is the storage bucket holding student resumes
const ResumeBucket = "resumes"

// Resume errors
var (
	ErrResumeFileRequired = apperrors.NewValidationError("Please select a file first")
	ErrResumeNotPDF       = apperrors.NewValidationError(apperrors.MsgPDFRequired)
	ErrNoResume           = apperrors.NewResourceNotFoundError("No resume uploaded")
)

// ResumeService defines resume management for students
type ResumeService interface {
	UploadResume(ctx context.Context, usn string, file *multipart.FileHeader) (*dto.ResumeResponse, error)
	DeleteResume(ctx context.Context, usn string) (*models.Student, error)
	ResumeURL(ctx context.Context, usn string) (*dto.ResumeResponse, error)
}

// resumeServiceImpl implements ResumeService
type resumeServiceImpl struct {
	students StudentStore
	storage  filestorage.BlobStorage
	now      func() time.Time
	logger   zerolog.Logger
}

// NewResumeService creates a new ResumeService
func NewResumeService(students StudentStore, storage filestorage.BlobStorage, logger zerolog.Logger) ResumeService {
	return &resumeServiceImpl{
		students: students,
		storage:  storage,
		now:      time.Now,
		logger:   logger,
	}
}

func isPDF(file *multipart.FileHeader) bool {
	contentType := strings.ToLower(file.Header.Get("Content-Type"))
	if strings.HasPrefix(contentType, "application/pdf") {
		return true
	}
	return strings.EqualFold(filepath.Ext(file.Filename), ".pdf")
}

// storedObject reports whether path names an uploaded object rather than
// the registration placeholder
func storedObject(path *string) bool {
	return path != nil && *path != "" && *path != models.PlaceholderResume
}

func (s *resumeServiceImpl) objectPath(usn string) string {
	return fmt.Sprintf("resumes/%s_%d.pdf", usn, helpers.UnixMillis(s.now()))
}

func (s *resumeServiceImpl) response(usn, path string) *dto.ResumeResponse {
	return &dto.ResumeResponse{
		USN:    usn,
		Resume: path,
		URL:    s.storage.PublicURL(ResumeBucket, path),
	}
}

// UploadResume stores a new PDF, points the student at it and removes the
// previous file
func (s *resumeServiceImpl) UploadResume(ctx context.Context, usn string, file *multipart.FileHeader) (*dto.ResumeResponse, error) {
	if file == nil {
		return nil, ErrResumeFileRequired
	}
	if !isPDF(file) {
		return nil, ErrResumeNotPDF
	}

	student, err := s.students.GetByUSN(ctx, usn)
	if err != nil {
		return nil, err
	}
	previous := student.Resume

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	path := s.objectPath(usn)
	if err := s.storage.Upload(ctx, ResumeBucket, path, src); err != nil {
		s.logger.Error().Err(err).Str("usn", usn).Str("path", path).Msg("Failed to store resume")
		return nil, err
	}

	if _, err := s.students.SetResume(ctx, usn, &path); err != nil {
		if rmErr := s.storage.Remove(ctx, ResumeBucket, path); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("path", path).Msg("Failed to remove orphaned resume")
		}
		return nil, err
	}

	if storedObject(previous) && *previous != path {
		if err := s.storage.Remove(ctx, ResumeBucket, *previous); err != nil {
			s.logger.Warn().Err(err).Str("path", *previous).Msg("Failed to remove previous resume")
		}
	}

	s.logger.Info().Str("usn", usn).Str("path", path).Int64("size", file.Size).Msg("Resume uploaded")
	return s.response(usn, path), nil
}

// DeleteResume removes the stored file and clears the student's resume
func (s *resumeServiceImpl) DeleteResume(ctx context.Context, usn string) (*models.Student, error) {
	student, err := s.students.GetByUSN(ctx, usn)
	if err != nil {
		return nil, err
	}
	if student.Resume == nil || *student.Resume == "" {
		return nil, ErrNoResume
	}

	if storedObject(student.Resume) {
		if err := s.storage.Remove(ctx, ResumeBucket, *student.Resume); err != nil {
			return nil, err
		}
	}

	updated, err := s.students.SetResume(ctx, usn, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("usn", usn).Msg("Resume deleted")
	return updated, nil
}

// ResumeURL resolves the public URL of the student's resume
func (s *resumeServiceImpl) ResumeURL(ctx context.Context, usn string) (*dto.ResumeResponse, error) {
	student, err := s.students.GetByUSN(ctx, usn)
	if err != nil {
		return nil, err
	}
	if student.Resume == nil || *student.Resume == "" {
		return nil, ErrNoResume
	}
	return s.response(usn, *student.Resume), nil
}
