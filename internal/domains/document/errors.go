package document

import "errors"

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrSlugTaken        = errors.New("slug already in use by another document")
)
