package auth

import (
	"context"
	"errors"

	"foundation-backend/internal/domains/employee"
	"foundation-backend/internal/domains/member"
	"foundation-backend/internal/domains/session"
	"foundation-backend/internal/shared/security"
	"foundation-backend/pkg/jwt"
	"foundation-backend/pkg/logger"

	"github.com/google/uuid"
)

// Resolver turns a bearer token into a Principal. Every step fails closed:
// any verification, registry or lookup failure yields ErrUnauthenticated,
// never a partial identity.
type Resolver struct {
	tokens    *jwt.Manager
	sessions  session.Repository
	employees employee.Repository
	members   member.Repository
}

func NewResolver(
	tokens *jwt.Manager,
	sessions session.Repository,
	employees employee.Repository,
	members member.Repository,
) *Resolver {
	return &Resolver{
		tokens:    tokens,
		sessions:  sessions,
		employees: employees,
		members:   members,
	}
}

// ResolveStaffSession validates signature and expiry, confirms the token is
// still recorded in the registry (a logout deletes the record and thereby
// revokes the token even while its signature remains valid), confirms the
// registry row belongs to the token's subject, and loads the employee.
func (r *Resolver) ResolveStaffSession(ctx context.Context, rawToken string) (*Principal, error) {
	claims, err := r.tokens.Verify(rawToken, jwt.SurfaceStaff)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	sess, err := r.sessions.FindActiveByHash(ctx, security.HashToken(rawToken))
	if err != nil {
		if !errors.Is(err, session.ErrSessionNotFound) {
			logger.Error("ResolveStaffSession: registry lookup failed", err)
		}
		return nil, ErrUnauthenticated
	}

	if sess.UserID.String() != claims.Subject {
		// A registry row that disagrees with the signed subject means the
		// hash collided or the row was tampered with. Reject.
		return nil, ErrUnauthenticated
	}

	emp, err := r.employees.FindByID(ctx, sess.UserID)
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			logger.Error("ResolveStaffSession: employee lookup failed", err)
		}
		return nil, ErrUnauthenticated
	}

	return staffPrincipal(emp), nil
}

// ResolveMemberSession validates the member token, rejects soft-deleted
// members, then attempts the merge lookup: an employee whose email matches
// the member's (case-insensitively) elevates the identity with the
// employee's admin flag, position and acting id. The merge happens only at
// resolution time; stored identities are never mutated.
func (r *Resolver) ResolveMemberSession(ctx context.Context, rawToken string) (*Principal, error) {
	claims, err := r.tokens.Verify(rawToken, jwt.SurfaceMember)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	memberID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	m, err := r.members.FindByID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, member.ErrMemberNotFound) {
			logger.Error("ResolveMemberSession: member lookup failed", err)
		}
		return nil, ErrUnauthenticated
	}

	if m.Deleted {
		return nil, ErrUnauthenticated
	}

	p := memberPrincipal(m)

	emp, err := r.employees.FindByEmail(ctx, m.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return p, nil
		}
		logger.Error("ResolveMemberSession: merge lookup failed", err)
		return nil, ErrUnauthenticated
	}

	// Layer the employee's privileges over the member's base identity. The
	// acting id becomes the employee id so authorship checks line up.
	p.ID = emp.ID
	p.EmployeeID = &emp.ID
	p.AdminAccess = emp.AdminAccess
	p.Position = emp.Position

	return p, nil
}

func staffPrincipal(emp *employee.Employee) *Principal {
	displayName := emp.Email
	if emp.DisplayName != nil && *emp.DisplayName != "" {
		displayName = *emp.DisplayName
	}

	id := emp.ID
	return &Principal{
		ID:          id,
		DisplayName: displayName,
		Email:       emp.Email,
		Username:    emp.Username,
		AdminAccess: emp.AdminAccess,
		Position:    emp.Position,
		Source:      SourceStaffCookie,
		EmployeeID:  &id,
	}
}

func memberPrincipal(m *member.Member) *Principal {
	displayName := m.Username
	if m.DisplayName != nil && *m.DisplayName != "" {
		displayName = *m.DisplayName
	}

	id := m.ID
	username := m.Username
	return &Principal{
		ID:          id,
		DisplayName: displayName,
		Email:       m.Email,
		Username:    &username,
		AdminAccess: false,
		Source:      SourceMemberCookie,
		MemberID:    &id,
	}
}
