package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"research-directory/config"

	"github.com/sirupsen/logrus"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// PhotoStorage writes uploaded researcher photos into a fixed directory and
// reports the stored filename. Files that are absent or carry a disallowed
// extension are treated as "no file supplied", not as errors.
type PhotoStorage interface {
	Store(file *multipart.FileHeader) (string, error)
}

type photoStorage struct {
	dir         string
	allowedExts map[string]struct{}
	log         *logrus.Logger
}

func NewPhotoStorage(cfg config.UploadConfig, log *logrus.Logger) (PhotoStorage, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedExts))
	for _, ext := range cfg.AllowedExts {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	return &photoStorage{
		dir:         cfg.Dir,
		allowedExts: allowed,
		log:         log,
	}, nil
}

// Store saves the uploaded file under its sanitized name and returns that
// name. It returns "" (with nil error) when no usable file was supplied.
// A later upload sanitizing to the same name overwrites the earlier file;
// the directory is keyed by filename alone.
func (s *photoStorage) Store(file *multipart.FileHeader) (string, error) {
	if file == nil || file.Filename == "" {
		return "", nil
	}

	if !s.allowedExt(file.Filename) {
		s.log.Warnf("Rejected upload with disallowed extension: %s", file.Filename)
		return "", nil
	}

	name := SanitizeFilename(file.Filename)
	if name == "" {
		return "", nil
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create photo file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write photo file: %w", err)
	}

	return name, nil
}

func (s *photoStorage) allowedExt(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return false
	}
	_, ok := s.allowedExts[strings.TrimPrefix(ext, ".")]
	return ok
}

// SanitizeFilename strips directory components and replaces anything outside
// [A-Za-z0-9._-], so the result is always safe to join under the upload dir.
// Returns "" when nothing usable remains.
func SanitizeFilename(filename string) string {
	name := filepath.Base(filepath.ToSlash(filename))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return ""
	}
	return name
}
