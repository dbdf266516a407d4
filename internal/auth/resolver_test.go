package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"foundation-backend/internal/auth"
	"foundation-backend/internal/domains/employee"
	"foundation-backend/internal/domains/member"
	"foundation-backend/internal/domains/session"
	"foundation-backend/internal/shared/security"
	"foundation-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// IN-MEMORY FAKES
// ========================================

type fakeSessionRepo struct {
	byHash map[string]*session.Session
	err    error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byHash: make(map[string]*session.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, s *session.Session) error {
	if f.err != nil {
		return f.err
	}
	f.byHash[s.TokenHash] = s
	return nil
}

func (f *fakeSessionRepo) FindActiveByHash(_ context.Context, tokenHash string) (*session.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.byHash[tokenHash]
	if !ok || !s.Active(time.Now()) {
		return nil, session.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) RevokeByHash(_ context.Context, tokenHash string) error {
	delete(f.byHash, tokenHash)
	return nil
}

func (f *fakeSessionRepo) RevokeAllForUser(_ context.Context, userID uuid.UUID) error {
	for h, s := range f.byHash {
		if s.UserID == userID {
			delete(f.byHash, h)
		}
	}
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	now := time.Now()
	for h, s := range f.byHash {
		if !s.Active(now) {
			delete(f.byHash, h)
			n++
		}
	}
	return n, nil
}

type fakeEmployeeRepo struct {
	byID    map[uuid.UUID]*employee.Employee
	byEmail map[string]*employee.Employee
	err     error
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		byID:    make(map[uuid.UUID]*employee.Employee),
		byEmail: make(map[string]*employee.Employee),
	}
}

func (f *fakeEmployeeRepo) add(e *employee.Employee) {
	f.byID[e.ID] = e
	f.byEmail[strings.ToLower(e.Email)] = e
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e *employee.Employee) error {
	f.add(e)
	return nil
}

func (f *fakeEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (*employee.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) FindByEmail(_ context.Context, email string) (*employee.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e *employee.Employee) error {
	f.add(e)
	return nil
}

func (f *fakeEmployeeRepo) List(_ context.Context, _, _ int) ([]employee.Employee, int64, error) {
	out := make([]employee.Employee, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id uuid.UUID) error {
	e, ok := f.byID[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(f.byEmail, strings.ToLower(e.Email))
	delete(f.byID, id)
	return nil
}

type fakeMemberRepo struct {
	byID map[uuid.UUID]*member.Member
	err  error
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{byID: make(map[uuid.UUID]*member.Member)}
}

func (f *fakeMemberRepo) Create(_ context.Context, m *member.Member) error {
	f.byID[m.ID] = m
	return nil
}

func (f *fakeMemberRepo) FindByID(_ context.Context, id uuid.UUID) (*member.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.byID[id]
	if !ok {
		return nil, member.ErrMemberNotFound
	}
	return m, nil
}

func (f *fakeMemberRepo) FindByUsername(_ context.Context, username string) (*member.Member, error) {
	for _, m := range f.byID {
		if strings.EqualFold(m.Username, username) && !m.Deleted {
			return m, nil
		}
	}
	return nil, member.ErrMemberNotFound
}

func (f *fakeMemberRepo) UpsertProfile(ctx context.Context, id uuid.UUID, req member.UpdateProfileRequest) (*member.Member, error) {
	m, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != nil {
		m.DisplayName = req.DisplayName
	}
	if req.Bio != nil {
		m.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		m.AvatarURL = req.AvatarURL
	}
	return m, nil
}

func (f *fakeMemberRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	m, ok := f.byID[id]
	if !ok {
		return member.ErrMemberNotFound
	}
	m.Deleted = true
	return nil
}

// ========================================
// FIXTURES
// ========================================

type resolverFixture struct {
	tokens    *jwt.Manager
	sessions  *fakeSessionRepo
	employees *fakeEmployeeRepo
	members   *fakeMemberRepo
	resolver  *auth.Resolver
}

func newResolverFixture() *resolverFixture {
	f := &resolverFixture{
		tokens:    jwt.NewManager("test-secret"),
		sessions:  newFakeSessionRepo(),
		employees: newFakeEmployeeRepo(),
		members:   newFakeMemberRepo(),
	}
	f.resolver = auth.NewResolver(f.tokens, f.sessions, f.employees, f.members)
	return f
}

// issueStaffToken signs a staff token for the employee and records it in the
// session registry, mirroring what a successful login does.
func (f *resolverFixture) issueStaffToken(t *testing.T, e *employee.Employee) string {
	t.Helper()

	claims := jwt.Claims{Email: e.Email, AdminAccess: e.AdminAccess, Surface: jwt.SurfaceStaff}
	claims.Subject = e.ID.String()

	token, err := f.tokens.Generate(claims)
	require.NoError(t, err)

	expiresAt := time.Now().Add(jwt.SessionTTL)
	require.NoError(t, f.sessions.Create(context.Background(), &session.Session{
		ID:        uuid.New(),
		UserID:    e.ID,
		TokenHash: security.HashToken(token),
		ExpiresAt: &expiresAt,
		CreatedAt: time.Now(),
	}))

	return token
}

func (f *resolverFixture) issueMemberToken(t *testing.T, m *member.Member) string {
	t.Helper()

	claims := jwt.Claims{Username: m.Username, Email: m.Email, Surface: jwt.SurfaceMember}
	claims.Subject = m.ID.String()

	token, err := f.tokens.Generate(claims)
	require.NoError(t, err)
	return token
}

func strptr(s string) *string { return &s }

func testEmployee(admin bool) *employee.Employee {
	return &employee.Employee{
		ID:          uuid.New(),
		Email:       uuid.NewString() + "@foundation.org",
		AdminAccess: admin,
		DisplayName: strptr("Test Employee"),
	}
}

func testMember() *member.Member {
	return &member.Member{
		ID:       uuid.New(),
		Username: "member" + uuid.NewString()[:8],
		Email:    uuid.NewString() + "@example.com",
	}
}

// ========================================
// STAFF SESSIONS
// ========================================

func TestResolveStaffSession(t *testing.T) {
	f := newResolverFixture()
	e := testEmployee(true)
	f.employees.add(e)

	token := f.issueStaffToken(t, e)

	p, err := f.resolver.ResolveStaffSession(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, e.ID, p.ID)
	assert.True(t, p.AdminAccess)
	assert.Equal(t, auth.SourceStaffCookie, p.Source)
	require.NotNil(t, p.EmployeeID)
	assert.Equal(t, e.ID, *p.EmployeeID)
	assert.Nil(t, p.MemberID)
}

func TestResolveStaffSession_GarbageToken(t *testing.T) {
	f := newResolverFixture()

	_, err := f.resolver.ResolveStaffSession(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestResolveStaffSession_RevokedToken(t *testing.T) {
	f := newResolverFixture()
	e := testEmployee(false)
	f.employees.add(e)

	token := f.issueStaffToken(t, e)

	// Logout deletes the registry row. The signature is still valid, yet the
	// token must no longer resolve.
	require.NoError(t, f.sessions.RevokeByHash(context.Background(), security.HashToken(token)))

	_, err := f.resolver.ResolveStaffSession(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestResolveStaffSession_ExpiredRegistryRow(t *testing.T) {
	f := newResolverFixture()
	e := testEmployee(false)
	f.employees.add(e)

	token := f.issueStaffToken(t, e)

	past := time.Now().Add(-time.Minute)
	f.sessions.byHash[security.HashToken(token)].ExpiresAt = &past

	_, err := f.resolver.ResolveStaffSession(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestResolveStaffSession_MemberTokenRejected(t *testing.T) {
	f := newResolverFixture()
	m := testMember()
	f.members.byID[m.ID] = m

	token := f.issueMemberToken(t, m)

	// A member token presented on the staff surface must fail even if a
	// registry row somehow existed for it.
	_, err := f.resolver.ResolveStaffSession(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestResolveStaffSession_EmployeeGone(t *testing.T) {
	f := newResolverFixture()
	e := testEmployee(false)
	f.employees.add(e)

	token := f.issueStaffToken(t, e)
	require.NoError(t, f.employees.Delete(context.Background(), e.ID))

	_, err := f.resolver.ResolveStaffSession(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestResolveStaffSession_RegistryOutageFailsClosed(t *testing.T) {
	f := newResolverFixture()
	e := testEmployee(true)
	f.employees.add(e)

	token := f.issueStaffToken(t, e)
	f.sessions.err = errors.New("connection refused")

	_, err := f.resolver.ResolveStaffSession(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

// ========================================
// MEMBER SESSIONS AND THE EMAIL MERGE
// ========================================

func TestResolveMemberSession(t *testing.T) {
	f := newResolverFixture()
	m := testMember()
	f.members.byID[m.ID] = m

	token := f.issueMemberToken(t, m)

	p, err := f.resolver.ResolveMemberSession(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, m.ID, p.ID)
	assert.False(t, p.AdminAccess)
	assert.Equal(t, auth.SourceMemberCookie, p.Source)
	require.NotNil(t, p.MemberID)
	assert.Equal(t, m.ID, *p.MemberID)
	assert.Nil(t, p.EmployeeID)
	assert.False(t, p.IsMerged())
}

func TestResolveMemberSession_SoftDeleted(t *testing.T) {
	f := newResolverFixture()
	m := testMember()
	f.members.byID[m.ID] = m

	token := f.issueMemberToken(t, m)
	require.NoError(t, f.members.SoftDelete(context.Background(), m.ID))

	// Soft deletion is the revocation mechanism on the member surface: the
	// token is signed and unexpired, the identity is still inert.
	_, err := f.resolver.ResolveMemberSession(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestResolveMemberSession_EmailMerge(t *testing.T) {
	f := newResolverFixture()

	e := testEmployee(true)
	e.Position = strptr("editor")
	f.employees.add(e)

	m := testMember()
	m.Email = strings.ToUpper(e.Email) // merge matches case-insensitively
	f.members.byID[m.ID] = m

	token := f.issueMemberToken(t, m)

	p, err := f.resolver.ResolveMemberSession(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, e.ID, p.ID, "acting id becomes the employee id")
	assert.True(t, p.AdminAccess, "admin flag flows from the employee record")
	assert.Equal(t, "editor", *p.Position)
	assert.Equal(t, auth.SourceMemberCookie, p.Source)
	require.NotNil(t, p.MemberID)
	assert.Equal(t, m.ID, *p.MemberID)
	assert.True(t, p.IsMerged())
}

func TestResolveMemberSession_MergeLookupOutageFailsClosed(t *testing.T) {
	f := newResolverFixture()
	m := testMember()
	f.members.byID[m.ID] = m

	token := f.issueMemberToken(t, m)
	f.employees.err = errors.New("connection refused")

	// An indeterminate merge must not fall back to the unmerged identity;
	// the request is rejected outright.
	_, err := f.resolver.ResolveMemberSession(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestResolveMemberSession_StaffTokenRejected(t *testing.T) {
	f := newResolverFixture()
	e := testEmployee(false)
	f.employees.add(e)

	token := f.issueStaffToken(t, e)

	_, err := f.resolver.ResolveMemberSession(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}
