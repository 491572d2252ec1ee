package model

import "time"

// Document is an ingested text document plus the metadata derived at upload.
type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	Text       string    `json:"-"`
	WordCount  int       `json:"word_count"`
	CharCount  int       `json:"char_count"`
	Summary    string    `json:"summary"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// DocumentInfo is the content-free view of a document returned by listing
// and lookup endpoints.
type DocumentInfo struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	WordCount  int       `json:"word_count"`
	CharCount  int       `json:"char_count"`
	Summary    string    `json:"summary"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Info strips the document body, leaving only metadata.
func (d Document) Info() DocumentInfo {
	return DocumentInfo{
		ID:         d.ID,
		Filename:   d.Filename,
		FileType:   d.FileType,
		WordCount:  d.WordCount,
		CharCount:  d.CharCount,
		Summary:    d.Summary,
		UploadedAt: d.UploadedAt,
	}
}
