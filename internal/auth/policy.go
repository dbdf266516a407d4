package auth

import (
	"foundation-backend/internal/domains/document"
	"foundation-backend/internal/domains/submission"
)

// Authorization policy. Pure decision functions, no side effects and no
// store access; callers load whatever rows the predicates need first.

func CanAdminister(p *Principal) bool {
	return p != nil && p.AdminAccess
}

// CanEditDocument permits admins and the document's author. A document with
// a null author (its author was deleted) is editable only by admins.
func CanEditDocument(p *Principal, doc *document.Document) bool {
	if CanAdminister(p) {
		return true
	}
	return p != nil && doc.AuthorID != nil && *doc.AuthorID == p.ID
}

// CanReviewSubmission requires the admin flag AND forbids self-review: an
// admin cannot approve their own pending proposal.
func CanReviewSubmission(p *Principal, s *submission.Submission) bool {
	return CanAdminister(p) && s.AuthorID != p.ID
}

func CanChangeDocumentAuthor(p *Principal) bool {
	return CanAdminister(p)
}
