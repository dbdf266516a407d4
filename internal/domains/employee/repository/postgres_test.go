package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"foundation-backend/internal/domains/employee"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsonCache stores values the way RedisCache does: marshalled to JSON on
// Set, unmarshalled into dest on Get. Anything that does not survive a JSON
// round trip does not survive this cache either.
type jsonCache struct {
	entries map[string][]byte
}

func newJSONCache() *jsonCache {
	return &jsonCache{entries: make(map[string][]byte)}
}

func (c *jsonCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *jsonCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *jsonCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *jsonCache) Ping(context.Context) error { return nil }

func (c *jsonCache) Increment(context.Context, string) (int64, error) { return 0, nil }

func (c *jsonCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.entries[key]
	return ok, nil
}

func (c *jsonCache) Expire(context.Context, string, time.Duration) error { return nil }

func (c *jsonCache) TTL(context.Context, string) (time.Duration, error) { return 0, nil }

func testEmployee() *employee.Employee {
	username := "vi"
	position := "Editor"
	now := time.Now().UTC().Truncate(time.Second)
	return &employee.Employee{
		ID:           uuid.New(),
		Username:     &username,
		Email:        "vi@foundation.example",
		PasswordHash: "$2a$12$fakehashfakehashfakehashfakehash",
		AdminAccess:  true,
		Position:     &position,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// The domain model hides the password hash from JSON, so an Employee written
// to the cache as-is would come back with an empty hash, and a warm-cache
// read-modify-write would then persist that empty hash and lock the account.
// The cache therefore serializes through cachedEmployee, which keeps every
// column.
func TestFindByID_CacheHitKeepsPasswordHash(t *testing.T) {
	e := testEmployee()

	c := newJSONCache()
	require.NoError(t, c.Set(context.Background(), employeeCacheKey(e.ID), toCached(e), employeeCacheTTL))

	r := &postgresRepository{pool: nil, cache: c}

	got, err := r.FindByID(context.Background(), e.ID)
	require.NoError(t, err)

	assert.Equal(t, e.PasswordHash, got.PasswordHash)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, e.Email, got.Email)
	assert.Equal(t, e.Username, got.Username)
	assert.Equal(t, e.AdminAccess, got.AdminAccess)
	assert.Equal(t, e.Position, got.Position)
	assert.True(t, e.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, e.UpdatedAt.Equal(got.UpdatedAt))
}

// Pins the hazard cachedEmployee exists to avoid: the domain shape drops the
// hash on a JSON round trip.
func TestEmployeeJSONRoundTripDropsPasswordHash(t *testing.T) {
	e := testEmployee()

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var back employee.Employee
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Empty(t, back.PasswordHash)

	data, err = json.Marshal(toCached(e))
	require.NoError(t, err)

	var cached cachedEmployee
	require.NoError(t, json.Unmarshal(data, &cached))
	assert.Equal(t, e.PasswordHash, cached.toEmployee().PasswordHash)
}
