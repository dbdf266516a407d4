package submission

import "errors"

var (
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrAlreadyReviewed guards the one-shot transition: a non-pending
	// submission can never be reviewed again, regardless of decision.
	ErrAlreadyReviewed = errors.New("submission has already been reviewed")

	// ErrTargetDocumentMissing is returned when an edit proposal references a
	// document that has since been deleted. The submission stays pending so
	// the reviewer can reject it; deleted documents are never silently
	// resurrected.
	ErrTargetDocumentMissing = errors.New("target document no longer exists")

	ErrInvalidDecision = errors.New("decision must be approve or reject")
	ErrInvalidStatus   = errors.New("invalid status filter")
)
