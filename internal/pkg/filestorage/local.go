package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/placementportal/internal/pkg/logger"
)

// LocalStorage keeps buckets as directories under basePath.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a new LocalStorage instance. Objects are served
// publicly under baseURL/<bucket>/<objectPath>.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// BasePath returns the root directory, for serving objects over HTTP
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

func (ls *LocalStorage) resolve(bucket, objectPath string) (string, error) {
	if bucket == "" || objectPath == "" {
		return "", ErrInvalidObjectPath
	}
	clean := path.Clean("/" + objectPath)
	if clean == "/" || strings.Contains(bucket, "/") || strings.Contains(bucket, "..") {
		return "", ErrInvalidObjectPath
	}
	return filepath.Join(ls.basePath, bucket, filepath.FromSlash(clean)), nil
}

// Upload writes content through a temporary file so readers never see a
// partial object.
func (ls *LocalStorage) Upload(ctx context.Context, bucket, objectPath string, content io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dstPath, err := ls.resolve(bucket, objectPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create object directory")
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	tmpPath := dstPath + "." + uuid.New().String() + ".tmp"
	dst, err := os.Create(tmpPath)
	if err != nil {
		logger.Error().Err(err).Str("path", tmpPath).Msg("Failed to create destination file")
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err = io.Copy(dst, content); err != nil {
		dst.Close()
		_ = os.Remove(tmpPath)
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy object content")
		return fmt.Errorf("failed to save object content: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close object file: %w", err)
	}

	if err := os.Rename(tmpPath, dstPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to store object: %w", err)
	}

	logger.Info().Str("bucket", bucket).Str("object", objectPath).Msg("Object stored")
	return nil
}

// Remove deletes objects from a bucket
func (ls *LocalStorage) Remove(ctx context.Context, bucket string, objectPaths ...string) error {
	for _, objectPath := range objectPaths {
		if err := ctx.Err(); err != nil {
			return err
		}

		physicalPath, err := ls.resolve(bucket, objectPath)
		if err != nil {
			return err
		}

		if err := os.Remove(physicalPath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Warn().Str("path", physicalPath).Msg("Object to delete does not exist")
				continue
			}
			logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete object")
			return fmt.Errorf("failed to delete object: %w", err)
		}

		logger.Info().Str("bucket", bucket).Str("object", objectPath).Msg("Object deleted")
	}
	return nil
}

// PublicURL returns the object URL; it does not check existence.
func (ls *LocalStorage) PublicURL(bucket, objectPath string) string {
	return ls.baseURL + "/" + bucket + "/" + strings.TrimLeft(objectPath, "/")
}
