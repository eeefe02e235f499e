// Package upload stores station images on the local filesystem. Files are
// sniffed for an actual image payload before anything touches disk, so the
// declared Content-Type of a multipart part is never trusted.
package upload

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mbriand/railgo/internal/config"
)

// Upload errors
var (
	// ErrNotAnImage indicates the uploaded payload is not an image format.
	ErrNotAnImage = errors.New("uploaded file is not an image")

	// ErrEmptyFile indicates the uploaded payload contained no data.
	ErrEmptyFile = errors.New("uploaded file is empty")

	// ErrFileTooLarge indicates the payload exceeded the size limit.
	ErrFileTooLarge = errors.New("uploaded file exceeds size limit")
)

// MaxImageBytes caps how much of an upload is accepted.
const MaxImageBytes = 10 << 20 // 10 MiB

// ImageStore writes validated images into a configured directory.
type ImageStore struct {
	dir      string
	logger   *slog.Logger
	timeFunc func() time.Time // Injectable for testing
}

// NewImageStore creates an ImageStore rooted at the configured upload
// directory, creating the directory if needed.
func NewImageStore(cfg config.UploadConfig, logger *slog.Logger) (*ImageStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &ImageStore{
		dir:      cfg.Dir,
		logger:   logger.With(slog.String("component", "image_store")),
		timeFunc: time.Now,
	}, nil
}

// Save sniffs the payload, rejects anything that is not an image, and writes
// it under a timestamped name. Returns the stored file's path relative to
// the process working directory, which is what gets persisted on the station.
func (s *ImageStore) Save(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if len(data) > MaxImageBytes {
		return "", ErrFileTooLarge
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		s.logger.Warn("rejected non-image upload",
			slog.String("detected_type", mime.String()),
			slog.Int("size", len(data)))
		return "", fmt.Errorf("%w: detected %s", ErrNotAnImage, mime.String())
	}

	name := strconv.FormatInt(s.timeFunc().UnixMilli(), 10) + mime.Extension()
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	s.logger.Info("image stored",
		slog.String("path", path),
		slog.String("type", mime.String()),
		slog.Int("size", len(data)))
	return path, nil
}

// Remove deletes a previously stored image. A missing file is not an error:
// the caller is cleaning up and the end state is the same.
func (s *ImageStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}
