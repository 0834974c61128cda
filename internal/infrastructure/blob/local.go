// Package blob stores uploaded KYC files on the local filesystem.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"loanhub-backend/internal/domain/apperr"
	"loanhub-backend/internal/domain/document"
	"loanhub-backend/pkg/id"
)

// allowed maps an accepted extension to the content type its bytes must sniff as.
var allowed = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

type LocalStore struct {
	root     string
	maxBytes int64
}

func NewLocalStore(root string, maxBytes int64) (*LocalStore, error) {
	if root == "" {
		return nil, errors.New("upload dir is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{root: root, maxBytes: maxBytes}, nil
}

// AllowedExtension reports whether name carries an accepted extension.
func AllowedExtension(name string) bool {
	_, ok := allowed[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Save writes r under root/owner after checking extension, size and sniffed content.
func (s *LocalStore) Save(ctx context.Context, owner string, kind document.Kind, fileName string, r io.Reader) (document.Blob, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	want, ok := allowed[ext]
	if !ok {
		return document.Blob{}, apperr.Validation("file type not allowed; use pdf, png, jpg or jpeg")
	}
	if owner == "" || strings.ContainsAny(owner, `/\.`) {
		return document.Blob{}, apperr.Validation("invalid owner")
	}

	limit := s.maxBytes
	if limit <= 0 {
		limit = 5 << 20
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return document.Blob{}, err
	}
	if int64(len(data)) > limit {
		return document.Blob{}, apperr.Validation("file exceeds %d bytes", limit)
	}
	if len(data) == 0 {
		return document.Blob{}, apperr.Validation("file is empty")
	}
	mt := mimetype.Detect(data)
	if !mt.Is(want) {
		return document.Blob{}, apperr.Validation("file content %s does not match %s", mt.String(), ext)
	}
	if err := ctx.Err(); err != nil {
		return document.Blob{}, err
	}

	dir := filepath.Join(s.root, owner)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return document.Blob{}, err
	}
	name := fmt.Sprintf("%s_%s_%s%s", kind, time.Now().UTC().Format("20060102T150405"), id.NewID32()[:8], ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return document.Blob{}, err
	}
	return document.Blob{Path: path, ContentType: want, Size: int64(len(data))}, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *LocalStore) Remove(_ context.Context, path string) error {
	if !s.contains(path) {
		return fmt.Errorf("path %q is outside the upload dir", path)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStore) contains(path string) bool {
	rel, err := filepath.Rel(s.root, path)
	return err == nil && rel != "." && !strings.HasPrefix(rel, "..")
}
