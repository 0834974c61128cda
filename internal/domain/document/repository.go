package document

import (
	"context"
	"io"
)

type Repository interface {
	Create(ctx context.Context, d *Document) error
	Save(ctx context.Context, d *Document) error
	GetByDocumentID(ctx context.Context, documentID string) (*Document, error)
	GetByDocumentIDForUpdate(ctx context.Context, documentID string) (*Document, error)
	ListByApplicant(ctx context.Context, applicantID uint64) ([]Document, error)
	ListByStatus(ctx context.Context, status Status) ([]Document, error)
}

// Blob describes a stored upload.
type Blob struct {
	Path        string
	ContentType string
	Size        int64
}

// BlobStore persists uploaded files and hands back an opaque path.
type BlobStore interface {
	Save(ctx context.Context, owner string, kind Kind, fileName string, r io.Reader) (Blob, error)
	Remove(ctx context.Context, path string) error
}
