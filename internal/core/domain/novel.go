package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Novel is a library entry for an imported plain-text file.
// Only metadata is stored; the text itself stays on disk and is decoded
// fresh each time the novel is opened.
type Novel struct {
	// ID is the unique identifier for the novel.
	ID string

	// Title is the human-readable title, derived from the filename
	// at import time.
	Title string

	// Path is the absolute location of the text file on disk.
	Path string

	// ImportedAt is when the novel was added to the library.
	ImportedAt time.Time

	// LastReadAt is when the novel was last opened, zero if never.
	LastReadAt time.Time
}

// Validate checks the novel has the required fields.
func (n *Novel) Validate() error {
	if n.ID == "" || n.Path == "" {
		return ErrInvalidInput
	}
	return nil
}

// TitleFromPath derives a human-readable title from a file path.
// The extension is dropped and underscores and dashes become spaces.
func TitleFromPath(path string) string {
	name := filepath.Base(path)

	ext := filepath.Ext(name)
	if ext != "" {
		name = strings.TrimSuffix(name, ext)
	}

	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")

	return name
}
