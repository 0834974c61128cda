package document

import (
	"strings"
	"time"
)

// Kind is the closed set of KYC document types an applicant can upload.
type Kind string

const (
	KindGovtID       Kind = "govt_id"
	KindAddressProof Kind = "address_proof"
	KindPANCard      Kind = "pan_card"
	KindPhoto        Kind = "photo"
	KindIncomeProof  Kind = "income_proof"
	KindOther        Kind = "other"
)

var kinds = []Kind{KindGovtID, KindAddressProof, KindPANCard, KindPhoto, KindIncomeProof, KindOther}

// ParseKind accepts the canonical tag case-insensitively.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

func Kinds() []Kind { return append([]Kind(nil), kinds...) }

type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

type Document struct {
	ID          uint64     `gorm:"primaryKey;column:id" json:"-"`
	DocumentID  string     `gorm:"size:32;uniqueIndex:ux_documents_document_id" json:"document_id"`
	ApplicantID uint64     `gorm:"not null;index:idx_documents_applicant_kind" json:"-"`
	Kind        Kind       `gorm:"size:32;not null;index:idx_documents_applicant_kind" json:"document_type"`
	Path        string     `gorm:"size:255;not null" json:"path"`
	FileName    string     `gorm:"size:255" json:"file_name"`
	ContentType string     `gorm:"size:100" json:"content_type"`
	SizeBytes   int64      `json:"size_bytes"`
	Status      Status     `gorm:"size:16;not null;default:'pending';index" json:"status"`
	ReviewNote  string     `gorm:"type:text" json:"review_note,omitempty"`
	ReviewedBy  string     `gorm:"size:32" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	UploadedAt  time.Time  `gorm:"autoCreateTime" json:"uploaded_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }

// Review moves a pending document to verified or rejected.
func (d *Document) Review(to Status, reviewer, note string, at time.Time) bool {
	if d.Status != StatusPending || (to != StatusVerified && to != StatusRejected) {
		return false
	}
	d.Status = to
	d.ReviewedBy = reviewer
	d.ReviewNote = note
	t := at.UTC()
	d.ReviewedAt = &t
	return true
}

// Bundle is the latest upload of each kind, one named field per kind.
type Bundle struct {
	GovtIDPath       string     `json:"govt_id_path,omitempty"`
	AddressProofPath string     `json:"address_proof_path,omitempty"`
	PANCardPath      string     `json:"pan_card_path,omitempty"`
	PhotoPath        string     `json:"photo_path,omitempty"`
	IncomeProofPath  string     `json:"income_proof_path,omitempty"`
	OtherDocsPath    string     `json:"other_docs_path,omitempty"`
	UploadedAt       *time.Time `json:"uploaded_at,omitempty"`
}

func (b *Bundle) set(k Kind, path string) {
	switch k {
	case KindGovtID:
		b.GovtIDPath = path
	case KindAddressProof:
		b.AddressProofPath = path
	case KindPANCard:
		b.PANCardPath = path
	case KindPhoto:
		b.PhotoPath = path
	case KindIncomeProof:
		b.IncomeProofPath = path
	case KindOther:
		b.OtherDocsPath = path
	}
}

// BundleOf folds docs into a Bundle; for each kind the most recent upload wins.
func BundleOf(docs []Document) Bundle {
	var b Bundle
	latest := make(map[Kind]time.Time, len(kinds))
	for _, d := range docs {
		if seen, ok := latest[d.Kind]; ok && d.UploadedAt.Before(seen) {
			continue
		}
		latest[d.Kind] = d.UploadedAt
		b.set(d.Kind, d.Path)
		if b.UploadedAt == nil || d.UploadedAt.After(*b.UploadedAt) {
			t := d.UploadedAt
			b.UploadedAt = &t
		}
	}
	return b
}
