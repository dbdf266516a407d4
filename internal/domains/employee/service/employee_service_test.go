package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"foundation-backend/internal/domains/employee"
	"foundation-backend/internal/domains/employee/service"
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

type fakeEmployeeRepo struct {
	byID    map[uuid.UUID]*employee.Employee
	byEmail map[string]*employee.Employee
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
	if _, ok := f.byEmail[strings.ToLower(e.Email)]; ok {
		return employee.ErrEmailAlreadyExists
	}
	f.add(e)
	return nil
}

func (f *fakeEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (*employee.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) FindByEmail(_ context.Context, email string) (*employee.Employee, error) {
	e, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[strings.ToLower(email)]
	return ok, nil
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

type fakeSessionRepo struct {
	byHash    map[string]*session.Session
	createErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byHash: make(map[string]*session.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, s *session.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byHash[s.TokenHash] = s
	return nil
}

func (f *fakeSessionRepo) FindActiveByHash(_ context.Context, tokenHash string) (*session.Session, error) {
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
	return 0, nil
}

// fakeCache backs the failed-login counters. When down is set every call
// errors, simulating a Redis outage.
type fakeCache struct {
	counters map[string]int64
	down     bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{counters: make(map[string]int64)}
}

var errCacheDown = errors.New("cache unavailable")

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	if f.down {
		return false, errCacheDown
	}
	v, ok := f.counters[key]
	if !ok {
		return false, nil
	}
	*dest.(*int64) = v
	return true, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if f.down {
		return errCacheDown
	}
	if v, ok := value.(int64); ok {
		f.counters[key] = v
	}
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	if f.down {
		return errCacheDown
	}
	for _, k := range keys {
		delete(f.counters, k)
	}
	return nil
}

func (f *fakeCache) Ping(_ context.Context) error {
	if f.down {
		return errCacheDown
	}
	return nil
}

func (f *fakeCache) Increment(_ context.Context, key string) (int64, error) {
	if f.down {
		return 0, errCacheDown
	}
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	if f.down {
		return false, errCacheDown
	}
	_, ok := f.counters[key]
	return ok, nil
}

func (f *fakeCache) Expire(_ context.Context, _ string, _ time.Duration) error {
	if f.down {
		return errCacheDown
	}
	return nil
}

func (f *fakeCache) TTL(_ context.Context, _ string) (time.Duration, error) {
	if f.down {
		return 0, errCacheDown
	}
	return 0, nil
}

// ========================================
// FIXTURES
// ========================================

type serviceFixture struct {
	repo     *fakeEmployeeRepo
	sessions *fakeSessionRepo
	cache    *fakeCache
	tokens   *jwt.Manager
	svc      employee.Service
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		repo:     newFakeEmployeeRepo(),
		sessions: newFakeSessionRepo(),
		cache:    newFakeCache(),
		tokens:   jwt.NewManager("test-secret"),
	}
	f.svc = service.NewEmployeeService(f.repo, f.sessions, f.tokens, f.cache)
	return f
}

const testPassword = "hunter2hunter2"

func (f *serviceFixture) seedEmployee(t *testing.T, email string) *employee.Employee {
	t.Helper()

	hash, err := security.HashPassword(testPassword)
	require.NoError(t, err)

	e := &employee.Employee{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.repo.add(e)
	return e
}

func loginReq(email, password string) employee.LoginRequest {
	return employee.LoginRequest{Email: email, Password: password}
}

// ========================================
// LOGIN
// ========================================

func TestLogin(t *testing.T) {
	f := newServiceFixture()
	e := f.seedEmployee(t, "staff@foundation.org")

	res, err := f.svc.Login(context.Background(), loginReq(e.Email, testPassword), employee.SessionMeta{
		UserAgent:     "test-agent",
		OriginAddress: "203.0.113.9",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.Token)
	assert.Equal(t, e.ID, res.Employee.ID)
	assert.WithinDuration(t, time.Now().Add(jwt.SessionTTL), res.ExpiresAt, 5*time.Second)

	// The registry row is keyed by the digest, never the raw token.
	sess, err := f.sessions.FindActiveByHash(context.Background(), security.HashToken(res.Token))
	require.NoError(t, err)
	assert.Equal(t, e.ID, sess.UserID)
	assert.Equal(t, "test-agent", *sess.UserAgent)
	assert.Equal(t, "203.0.113.9", *sess.OriginAddress)

	_, found := f.sessions.byHash[res.Token]
	assert.False(t, found, "raw token must not appear in the registry")
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newServiceFixture()
	e := f.seedEmployee(t, "staff@foundation.org")

	_, err := f.svc.Login(context.Background(), loginReq(e.Email, "wrong-password"), employee.SessionMeta{})
	assert.ErrorIs(t, err, employee.ErrInvalidCredentials)
	assert.Empty(t, f.sessions.byHash)
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newServiceFixture()

	// Same error as a wrong password; account existence is not disclosed.
	_, err := f.svc.Login(context.Background(), loginReq("nobody@foundation.org", testPassword), employee.SessionMeta{})
	assert.ErrorIs(t, err, employee.ErrInvalidCredentials)
}

func TestLogin_RegistryWriteFailureAbortsLogin(t *testing.T) {
	f := newServiceFixture()
	e := f.seedEmployee(t, "staff@foundation.org")

	f.sessions.createErr = errors.New("connection refused")

	// Correct credentials, but the token cannot be recorded, so it must not
	// be handed out: an unrecorded token could never be revoked.
	_, err := f.svc.Login(context.Background(), loginReq(e.Email, testPassword), employee.SessionMeta{})
	assert.ErrorIs(t, err, employee.ErrSessionWriteFailed)
}

func TestLogin_ThrottledAfterRepeatedFailures(t *testing.T) {
	f := newServiceFixture()
	e := f.seedEmployee(t, "staff@foundation.org")

	for i := 0; i < 5; i++ {
		_, err := f.svc.Login(context.Background(), loginReq(e.Email, "wrong-password"), employee.SessionMeta{})
		assert.ErrorIs(t, err, employee.ErrInvalidCredentials)
	}

	// Sixth attempt is throttled even with the correct password.
	_, err := f.svc.Login(context.Background(), loginReq(e.Email, testPassword), employee.SessionMeta{})
	assert.ErrorIs(t, err, employee.ErrTooManyAttempts)
}

func TestLogin_SuccessClearsThrottleCounter(t *testing.T) {
	f := newServiceFixture()
	e := f.seedEmployee(t, "staff@foundation.org")

	for i := 0; i < 4; i++ {
		_, err := f.svc.Login(context.Background(), loginReq(e.Email, "wrong-password"), employee.SessionMeta{})
		require.ErrorIs(t, err, employee.ErrInvalidCredentials)
	}

	_, err := f.svc.Login(context.Background(), loginReq(e.Email, testPassword), employee.SessionMeta{})
	require.NoError(t, err)

	assert.Empty(t, f.cache.counters, "a successful login resets the counter")
}

func TestLogin_CacheOutageDoesNotBlock(t *testing.T) {
	f := newServiceFixture()
	e := f.seedEmployee(t, "staff@foundation.org")

	f.cache.down = true

	// Throttling is best effort; an unavailable cache must not lock staff out.
	_, err := f.svc.Login(context.Background(), loginReq(e.Email, testPassword), employee.SessionMeta{})
	assert.NoError(t, err)
}

// ========================================
// LOGOUT
// ========================================

func TestLogout(t *testing.T) {
	f := newServiceFixture()
	e := f.seedEmployee(t, "staff@foundation.org")

	res, err := f.svc.Login(context.Background(), loginReq(e.Email, testPassword), employee.SessionMeta{})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), res.Token))

	_, err = f.sessions.FindActiveByHash(context.Background(), security.HashToken(res.Token))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestLogout_UnknownTokenIsNoop(t *testing.T) {
	f := newServiceFixture()

	assert.NoError(t, f.svc.Logout(context.Background(), "never-issued"))
}

// ========================================
// REGISTER / ADMIN OPERATIONS
// ========================================

func TestRegister(t *testing.T) {
	f := newServiceFixture()

	dto, err := f.svc.Register(context.Background(), employee.RegisterRequest{
		Email:    "new@foundation.org",
		Password: testPassword,
	})
	require.NoError(t, err)

	assert.False(t, dto.AdminAccess, "admin access is never granted at registration")

	stored, err := f.repo.FindByID(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.NotEqual(t, testPassword, stored.PasswordHash)
	assert.True(t, security.VerifyPassword(stored.PasswordHash, testPassword))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newServiceFixture()
	f.seedEmployee(t, "taken@foundation.org")

	_, err := f.svc.Register(context.Background(), employee.RegisterRequest{
		Email:    "taken@foundation.org",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, employee.ErrEmailAlreadyExists)
}

func TestUpdateSelf(t *testing.T) {
	f := newServiceFixture()
	e := f.seedEmployee(t, "staff@foundation.org")

	name := "New Name"
	dto, err := f.svc.UpdateSelf(context.Background(), e.ID, employee.UpdateSelfRequest{DisplayName: &name})
	require.NoError(t, err)

	assert.Equal(t, "New Name", *dto.DisplayName)
}
