// Package ingest turns uploaded files into store-ready documents.
package ingest

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/docsage/docsage/internal/model"
)

// MaxFileSize caps accepted uploads at 10 MB.
const MaxFileSize = 10 << 20

var (
	// ErrTooLarge is returned when content exceeds MaxFileSize.
	ErrTooLarge = eris.New("ingest: file exceeds maximum size")
	// ErrUnsupportedType is returned for file extensions outside fileTypes.
	ErrUnsupportedType = eris.New("ingest: unsupported file type")
	// ErrEmptyDocument is returned when a file holds no usable text.
	ErrEmptyDocument = eris.New("ingest: document contains no text")
)

// fileTypes maps accepted extensions to the stored file type label.
var fileTypes = map[string]string{
	".txt":      "txt",
	".md":       "markdown",
	".markdown": "markdown",
}

// Process validates content and builds a document with a fresh ID and
// metadata derived from the text. The filename decides the file type.
func Process(content []byte, filename string) (*model.Document, error) {
	if len(content) > MaxFileSize {
		return nil, ErrTooLarge
	}

	fileType, ok := fileTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return nil, ErrUnsupportedType
	}

	text := strings.TrimSpace(strings.ToValidUTF8(string(content), ""))
	if text == "" {
		return nil, ErrEmptyDocument
	}

	return &model.Document{
		ID:         uuid.New().String(),
		Filename:   filepath.Base(filename),
		FileType:   fileType,
		Text:       text,
		WordCount:  len(strings.Fields(text)),
		CharCount:  utf8.RuneCountInString(text),
		UploadedAt: time.Now().UTC(),
	}, nil
}

// Supported reports whether the filename's extension is accepted.
func Supported(filename string) bool {
	_, ok := fileTypes[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// SupportedExtensions lists accepted extensions, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(fileTypes))
	for ext := range fileTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
