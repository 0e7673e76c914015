package domain

import "time"

// DocumentState represents the server-driven lifecycle of a document
type DocumentState string

const (
	DocumentStateUploading  DocumentState = "uploading"
	DocumentStateProcessing DocumentState = "processing"
	DocumentStateReady      DocumentState = "ready"
	DocumentStateError      DocumentState = "error"
)

// FileType selects which stored variant of a document to fetch
type FileType string

const (
	// FileTypeOriginal is the bytes as uploaded
	FileTypeOriginal FileType = "original"
	// FileTypePDF is the rendered PDF variant
	FileTypePDF FileType = "pdf"
)

// Document is the metadata record for an uploaded document
type Document struct {
	ID         string        `json:"id"`
	PDFID      string        `json:"pdf_id"`
	Name       string        `json:"document_name"`
	UploadDate time.Time     `json:"upload_date"`
	UploadedBy string        `json:"uploaded_by"`
	State      DocumentState `json:"state"`
	TagIDs     []string      `json:"tag_ids"`
}

// DocumentContent pairs a document's metadata with one fetched variant
type DocumentContent struct {
	Metadata *Document `json:"metadata"`
	FileType FileType  `json:"file_type"`
	Content  []byte    `json:"content"`
}

// DocumentUpload is one entry of an upload request. Entries are accepted or
// rejected independently by the server.
type DocumentUpload struct {
	Name    string   `json:"name"`
	Content []byte   `json:"content"`
	TagIDs  []string `json:"tag_ids,omitempty"`
}

// UploadedDocument identifies one accepted upload entry
type UploadedDocument struct {
	Name string `json:"document_name"`
	ID   string `json:"document_id"`
}

// DocumentUpdate is a partial update. Nil fields are left unchanged; a
// non-nil empty TagIDs clears the tags.
type DocumentUpdate struct {
	Name   *string
	TagIDs *[]string
}

// ListOptions narrows a document listing. TagIDs matches documents carrying
// at least one of the requested tags; the filter is applied server-side.
type ListOptions struct {
	Skip   int
	Limit  int
	TagIDs []string
}

// DocumentList is one offset window of a listing. TotalCount reflects the
// full matching set regardless of Skip/Limit.
type DocumentList struct {
	Documents  []*Document `json:"documents"`
	TotalCount int         `json:"total_count"`
	Skip       int         `json:"skip"`
}
