package upload

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m, err := NewManager(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func TestManagerCreatesSubdirs(t *testing.T) {
	m := newTestManager(t)

	for _, sub := range []string{"avatars", "attachments"} {
		info, err := os.Stat(filepath.Join(m.Dir(), sub))
		if err != nil {
			t.Fatalf("stat %s: %v", sub, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", sub)
		}
	}
}

func TestSaveAvatar(t *testing.T) {
	m := newTestManager(t)

	content := []byte("fake png bytes")
	saved, err := m.SaveAvatar(bytes.NewReader(content), "me.PNG")
	if err != nil {
		t.Fatalf("save avatar: %v", err)
	}
	if !strings.HasSuffix(saved.Name, ".png") {
		t.Errorf("name = %q, want lowercased .png suffix", saved.Name)
	}
	if !strings.HasPrefix(saved.URLPath, "/uploads/avatars/") {
		t.Errorf("url path = %q, want /uploads/avatars/ prefix", saved.URLPath)
	}
	if saved.Size != int64(len(content)) {
		t.Errorf("size = %d, want %d", saved.Size, len(content))
	}

	got, err := os.ReadFile(saved.DiskPath)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Error("saved file does not match input")
	}
}

func TestSaveAvatarRejectsNonImage(t *testing.T) {
	m := newTestManager(t)

	for _, name := range []string{"doc.pdf", "run.exe", "noext", "script.sh"} {
		_, err := m.SaveAvatar(strings.NewReader("x"), name)
		if !errors.Is(err, ErrFileType) {
			t.Errorf("%s: err = %v, want ErrFileType", name, err)
		}
	}
}

func TestSaveAvatarRejectsOversize(t *testing.T) {
	m := newTestManager(t)

	big := bytes.NewReader(make([]byte, MaxAvatarSize+1))
	_, err := m.SaveAvatar(big, "huge.png")
	if !errors.Is(err, ErrFileSize) {
		t.Fatalf("err = %v, want ErrFileSize", err)
	}

	// The partial file must not be left behind.
	entries, err := os.ReadDir(filepath.Join(m.Dir(), "avatars"))
	if err != nil {
		t.Fatalf("read avatars dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty avatars dir, found %d entries", len(entries))
	}
}

func TestSaveAttachmentAllowsDocuments(t *testing.T) {
	m := newTestManager(t)

	for _, name := range []string{"recipe.pdf", "list.txt", "budget.xlsx", "photo.jpg"} {
		saved, err := m.SaveAttachment(strings.NewReader("content"), name)
		if err != nil {
			t.Errorf("%s: save attachment: %v", name, err)
			continue
		}
		if !strings.HasPrefix(saved.URLPath, "/uploads/attachments/") {
			t.Errorf("%s: url path = %q, want /uploads/attachments/ prefix", name, saved.URLPath)
		}
	}

	if _, err := m.SaveAttachment(strings.NewReader("x"), "virus.exe"); !errors.Is(err, ErrFileType) {
		t.Errorf("exe: err = %v, want ErrFileType", err)
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	m := newTestManager(t)

	first, err := m.SaveAttachment(strings.NewReader("a"), "same.txt")
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := m.SaveAttachment(strings.NewReader("b"), "same.txt")
	if err != nil {
		t.Fatalf("save second: %v", err)
	}
	if first.Name == second.Name {
		t.Errorf("both uploads stored as %q", first.Name)
	}
}

func TestRemove(t *testing.T) {
	m := newTestManager(t)

	saved, err := m.SaveAttachment(strings.NewReader("content"), "doomed.txt")
	if err != nil {
		t.Fatalf("save attachment: %v", err)
	}

	if err := m.Remove(saved.URLPath); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(saved.DiskPath); !os.IsNotExist(err) {
		t.Error("expected file to be gone")
	}

	// Removing again is not an error.
	if err := m.Remove(saved.URLPath); err != nil {
		t.Errorf("second remove: %v", err)
	}
}
