package auth

import (
	"github.com/google/uuid"
)

// SessionSource says which cookie a request's identity was resolved from.
// It is resolved exactly once per request, in the session middleware, rather
// than re-derived ad hoc in each handler.
type SessionSource int

const (
	SourceNone SessionSource = iota
	SourceStaffCookie
	SourceMemberCookie
)

func (s SessionSource) String() string {
	switch s {
	case SourceStaffCookie:
		return "staff"
	case SourceMemberCookie:
		return "member"
	}
	return "none"
}

// Principal is a resolved identity, possibly merged. ID is the acting id:
// the employee id for staff sessions and for member sessions backed by a
// matching employee record, the member id otherwise. Document and submission
// authorship is always compared against this acting id.
type Principal struct {
	ID          uuid.UUID
	DisplayName string
	Email       string
	Username    *string
	AdminAccess bool
	Position    *string
	Source      SessionSource

	// MemberID is set when the session came from the member surface.
	MemberID *uuid.UUID
	// EmployeeID is set when a staff record backs this identity, either
	// directly (staff session) or through an email merge (member session).
	EmployeeID *uuid.UUID
}

// IsMerged reports whether a member-surface identity was elevated by a
// matching employee record.
func (p *Principal) IsMerged() bool {
	return p.Source == SourceMemberCookie && p.EmployeeID != nil
}
