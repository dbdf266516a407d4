package auth_test

import (
	"testing"

	"foundation-backend/internal/auth"
	"foundation-backend/internal/domains/document"
	"foundation-backend/internal/domains/submission"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func adminPrincipal() *auth.Principal {
	id := uuid.New()
	return &auth.Principal{ID: id, AdminAccess: true, Source: auth.SourceStaffCookie, EmployeeID: &id}
}

func staffPrincipal() *auth.Principal {
	id := uuid.New()
	return &auth.Principal{ID: id, AdminAccess: false, Source: auth.SourceStaffCookie, EmployeeID: &id}
}

func TestCanAdminister(t *testing.T) {
	assert.True(t, auth.CanAdminister(adminPrincipal()))
	assert.False(t, auth.CanAdminister(staffPrincipal()))
	assert.False(t, auth.CanAdminister(nil))
}

func TestCanEditDocument(t *testing.T) {
	owner := staffPrincipal()
	other := staffPrincipal()
	admin := adminPrincipal()

	ownerID := owner.ID
	doc := &document.Document{ID: uuid.New(), AuthorID: &ownerID}

	assert.True(t, auth.CanEditDocument(owner, doc), "author edits own document")
	assert.False(t, auth.CanEditDocument(other, doc), "non-author without admin is denied")
	assert.True(t, auth.CanEditDocument(admin, doc), "admin edits any document")
	assert.False(t, auth.CanEditDocument(nil, doc))
}

func TestCanEditDocument_OrphanedDocument(t *testing.T) {
	// A document whose author was deleted has a null author id. Only admins
	// may touch it; authorship can never match.
	doc := &document.Document{ID: uuid.New(), AuthorID: nil}

	assert.False(t, auth.CanEditDocument(staffPrincipal(), doc))
	assert.True(t, auth.CanEditDocument(adminPrincipal(), doc))
}

func TestCanReviewSubmission(t *testing.T) {
	admin := adminPrincipal()
	staff := staffPrincipal()

	sub := &submission.Submission{ID: uuid.New(), AuthorID: staff.ID}

	assert.True(t, auth.CanReviewSubmission(admin, sub))
	assert.False(t, auth.CanReviewSubmission(staff, sub), "admin flag is required")
}

func TestCanReviewSubmission_SelfReviewForbidden(t *testing.T) {
	admin := adminPrincipal()
	own := &submission.Submission{ID: uuid.New(), AuthorID: admin.ID}

	assert.False(t, auth.CanReviewSubmission(admin, own), "an admin must not review their own proposal")
}

func TestCanChangeDocumentAuthor(t *testing.T) {
	assert.True(t, auth.CanChangeDocumentAuthor(adminPrincipal()))
	assert.False(t, auth.CanChangeDocumentAuthor(staffPrincipal()))
}

func TestPrincipalIsMerged(t *testing.T) {
	memberID := uuid.New()
	empID := uuid.New()

	merged := &auth.Principal{
		ID:         empID,
		Source:     auth.SourceMemberCookie,
		MemberID:   &memberID,
		EmployeeID: &empID,
	}
	plain := &auth.Principal{
		ID:       memberID,
		Source:   auth.SourceMemberCookie,
		MemberID: &memberID,
	}

	assert.True(t, merged.IsMerged())
	assert.False(t, plain.IsMerged())
	assert.False(t, staffPrincipal().IsMerged(), "staff sessions are never merged")
}
