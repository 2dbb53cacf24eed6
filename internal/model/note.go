package model

import "time"

// Note represents an uploaded course document. The bytes live in object
// storage under FileKey; this row holds only metadata. FileKey is unique and
// immutable once set. Downloads only ever increases, via an atomic SQL update.
type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Subject     string    `json:"subject"`
	FileName    string    `json:"file_name"`
	FileKey     string    `json:"file_key"`
	FileType    string    `json:"file_type"`
	UploadedBy  string    `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
	Downloads   int       `json:"downloads"`
}
