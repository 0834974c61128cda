package blob

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"loanhub-backend/internal/domain/apperr"
	"loanhub-backend/internal/domain/document"
)

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	jpgBytes = append([]byte("\xFF\xD8\xFF\xE0"), bytes.Repeat([]byte{0}, 32)...)
)

func newStore(t *testing.T, max int64) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(filepath.Join(t.TempDir(), "uploads"), max)
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	return s
}

func TestSave_AcceptsMatchingContent(t *testing.T) {
	s := newStore(t, 1<<20)
	ctx := context.Background()

	cases := []struct {
		name, file, ct string
		data           []byte
	}{
		{"pdf", "id.PDF", "application/pdf", pdfBytes},
		{"png", "me.png", "image/png", pngBytes},
		{"jpg", "me.jpg", "image/jpeg", jpgBytes},
		{"jpeg", "me.jpeg", "image/jpeg", jpgBytes},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := s.Save(ctx, "abc123", document.KindGovtID, tc.file, bytes.NewReader(tc.data))
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if b.ContentType != tc.ct || b.Size != int64(len(tc.data)) {
				t.Fatalf("unexpected blob: %+v", b)
			}
			if !strings.HasPrefix(filepath.Base(b.Path), "govt_id_") {
				t.Fatalf("unexpected name: %s", b.Path)
			}
			got, err := os.ReadFile(b.Path)
			if err != nil || !bytes.Equal(got, tc.data) {
				t.Fatalf("stored bytes differ: %v", err)
			}
		})
	}
}

func TestSave_Rejects(t *testing.T) {
	s := newStore(t, 64)
	ctx := context.Background()

	cases := []struct {
		name, owner, file string
		data              []byte
	}{
		{"extension", "abc", "run.exe", pdfBytes},
		{"spoofed content", "abc", "photo.png", pdfBytes},
		{"too large", "abc", "big.pdf", append(append([]byte{}, pdfBytes...), bytes.Repeat([]byte("x"), 64)...)},
		{"empty", "abc", "empty.pdf", nil},
		{"owner traversal", "../etc", "id.pdf", pdfBytes},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Save(ctx, tc.owner, document.KindPhoto, tc.file, bytes.NewReader(tc.data))
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	s := newStore(t, 1<<20)
	ctx := context.Background()

	b, err := s.Save(ctx, "abc", document.KindPhoto, "p.png", bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(ctx, b.Path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(b.Path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file still present: %v", err)
	}
	if err := s.Remove(ctx, b.Path); err != nil {
		t.Fatalf("second Remove should be a no-op: %v", err)
	}
	if err := s.Remove(ctx, "/etc/passwd"); err == nil {
		t.Fatal("expected error for path outside root")
	}
}

func TestAllowedExtension(t *testing.T) {
	for _, n := range []string{"a.pdf", "a.PNG", "a.jpg", "a.jpeg"} {
		if !AllowedExtension(n) {
			t.Fatalf("%s should be allowed", n)
		}
	}
	for _, n := range []string{"a.gif", "a", "a.pdf.exe"} {
		if AllowedExtension(n) {
			t.Fatalf("%s should be rejected", n)
		}
	}
}
