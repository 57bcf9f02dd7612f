package upload

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Size ceilings enforced at the upload boundary.
const (
	MaxAvatarSize     = 5 << 20  // 5 MiB
	MaxAttachmentSize = 10 << 20 // 10 MiB
)

var (
	// ErrFileType means the file's extension is not on the allow-list.
	ErrFileType = errors.New("file type not supported")
	// ErrFileSize means the file exceeds the size ceiling.
	ErrFileSize = errors.New("file too large")
)

var imageExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
}

var attachmentExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
	".pdf": true, ".doc": true, ".docx": true, ".txt": true, ".csv": true,
	".xlsx": true, ".xls": true,
}

const (
	avatarSubdir     = "avatars"
	attachmentSubdir = "attachments"
)

// SavedFile describes a file written to the upload directory. URLPath is the
// public path stored in the database; DiskPath is the file's location on disk.
type SavedFile struct {
	Name     string
	URLPath  string
	DiskPath string
	Size     int64
}

// Manager writes uploaded files to disk under a base directory, enforcing
// per-kind extension allow-lists and size ceilings. Stored names are random
// so uploads cannot collide or traverse paths.
type Manager struct {
	baseDir string
	logger  *slog.Logger
}

func NewManager(baseDir string, logger *slog.Logger) (*Manager, error) {
	for _, sub := range []string{avatarSubdir, attachmentSubdir} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", sub, err)
		}
	}
	return &Manager{baseDir: baseDir, logger: logger}, nil
}

// SaveAvatar stores an avatar image. Only image extensions are accepted.
func (m *Manager) SaveAvatar(src io.Reader, originalName string) (*SavedFile, error) {
	return m.save(src, originalName, avatarSubdir, imageExts, MaxAvatarSize)
}

// SaveAttachment stores a note attachment from the general allow-list.
func (m *Manager) SaveAttachment(src io.Reader, originalName string) (*SavedFile, error) {
	return m.save(src, originalName, attachmentSubdir, attachmentExts, MaxAttachmentSize)
}

func (m *Manager) save(src io.Reader, originalName, subdir string, allowed map[string]bool, maxSize int64) (*SavedFile, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowed[ext] {
		return nil, ErrFileType
	}

	name := uuid.New().String() + ext
	diskPath := filepath.Join(m.baseDir, subdir, name)

	dst, err := os.Create(diskPath)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}

	// Copy one byte past the ceiling so an oversized upload is detectable.
	written, err := io.Copy(dst, io.LimitReader(src, maxSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(diskPath)
		return nil, fmt.Errorf("write upload file: %w", err)
	}
	if written > maxSize {
		os.Remove(diskPath)
		return nil, ErrFileSize
	}

	return &SavedFile{
		Name:     name,
		URLPath:  path.Join("/uploads", subdir, name),
		DiskPath: diskPath,
		Size:     written,
	}, nil
}

// Remove deletes the file backing a stored /uploads/... URL path. A missing
// file is not an error.
func (m *Manager) Remove(urlPath string) error {
	rel := strings.TrimPrefix(path.Clean(urlPath), "/uploads/")
	diskPath := filepath.Join(m.baseDir, filepath.FromSlash(rel))

	// Refuse anything that escapes the upload directory.
	absBase, err := filepath.Abs(m.baseDir)
	if err != nil {
		return fmt.Errorf("resolve upload dir: %w", err)
	}
	absPath, err := filepath.Abs(diskPath)
	if err != nil {
		return fmt.Errorf("resolve file path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return fmt.Errorf("remove upload: path %q escapes upload dir", urlPath)
	}

	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// RemoveLogged removes a backing file, logging instead of failing. Used where
// an orphaned file is an accepted condition rather than an error the caller
// should see.
func (m *Manager) RemoveLogged(urlPath string) {
	if err := m.Remove(urlPath); err != nil {
		m.logger.Warn("orphaned upload file left on disk", "path", urlPath, "error", err)
	}
}

// Dir returns the base directory, for serving /uploads/ statically.
func (m *Manager) Dir() string {
	return m.baseDir
}
