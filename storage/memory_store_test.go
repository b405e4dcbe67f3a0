package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-directory-service/validation"
)

func seededStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	for _, u := range []struct{ name, email string }{
		{"John Doe", "john@example.com"},
		{"Jane Smith", "jane@example.com"},
		{"Bob Johnson", "bob@example.com"},
	} {
		_, err := s.Create(u.name, u.email)
		require.NoError(t, err)
	}
	return s
}

func TestCreate_AssignsMonotonicIDs(t *testing.T) {
	s := seededStore(t)

	users := s.List()
	require.Len(t, users, 3)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, int64(2), users[1].ID)
	assert.Equal(t, int64(3), users[2].ID)
}

func TestCreate_SetsTimestamps(t *testing.T) {
	s := NewMemoryStore()
	before := time.Now()

	user, err := s.Create("John Doe", "john@example.com")
	require.NoError(t, err)

	assert.False(t, user.CreatedAt.Before(before))
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestCreate_NormalizesInput(t *testing.T) {
	s := NewMemoryStore()

	user, err := s.Create("  John Doe  ", "John@Example.COM")
	require.NoError(t, err)

	assert.Equal(t, "John Doe", user.Name)
	assert.Equal(t, "john@example.com", user.Email)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Create("J", "john@example.com")
	assert.ErrorIs(t, err, validation.ErrInvalidName)

	_, err = s.Create("John", "not-an-email")
	assert.ErrorIs(t, err, validation.ErrInvalidEmail)

	// Name is checked before email; both invalid reports the name failure.
	_, err = s.Create("J", "not-an-email")
	assert.ErrorIs(t, err, validation.ErrInvalidName)

	assert.Equal(t, 0, s.Count(), "failed creates must not mutate the store")
}

func TestCreate_DuplicateEmail_CaseInsensitive(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Create("John Doe", "john@example.com")
	require.NoError(t, err)

	_, err = s.Create("Johnny", "JOHN@EXAMPLE.COM")
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Equal(t, 1, s.Count())
}

func TestGetByID(t *testing.T) {
	s := seededStore(t)

	user, err := s.GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", user.Name)

	_, err = s.GetByID(99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestList_ReturnsSnapshot(t *testing.T) {
	s := seededStore(t)

	first := s.List()
	second := s.List()
	assert.Equal(t, first, second)

	// Mutating the snapshot must not touch the store.
	first[0].Name = "changed"
	fresh, err := s.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", fresh.Name)
}

func TestUpdate_PartialFields(t *testing.T) {
	s := seededStore(t)

	name := "Only Name Updated"
	updated, err := s.Update(2, &name, nil)
	require.NoError(t, err)

	assert.Equal(t, "Only Name Updated", updated.Name)
	assert.Equal(t, "jane@example.com", updated.Email)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))
}

func TestUpdate_RefreshesUpdatedAt(t *testing.T) {
	s := seededStore(t)
	before, err := s.GetByID(1)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	email := "doe@example.com"
	after, err := s.Update(1, nil, &email)
	require.NoError(t, err)

	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestUpdate_RawNameLengthRule(t *testing.T) {
	s := seededStore(t)

	// A padded single character passes the raw length check and is stored
	// trimmed.
	padded := " X "
	updated, err := s.Update(1, &padded, nil)
	require.NoError(t, err)
	assert.Equal(t, "X", updated.Name)

	short := "X"
	_, err = s.Update(1, &short, nil)
	assert.ErrorIs(t, err, validation.ErrInvalidName)
}

func TestUpdate_DuplicateEmail_ExcludesSelf(t *testing.T) {
	s := seededStore(t)

	// Keeping your own email is not a conflict.
	own := "JOHN@example.com"
	_, err := s.Update(1, nil, &own)
	require.NoError(t, err)

	// Taking another user's email is.
	taken := "jane@example.com"
	_, err = s.Update(1, nil, &taken)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUpdate_NotFound(t *testing.T) {
	s := seededStore(t)

	name := "Nobody"
	_, err := s.Update(42, &name, nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDelete_RemovesAndRetiresID(t *testing.T) {
	s := seededStore(t)

	deleted, err := s.Delete(3)
	require.NoError(t, err)
	assert.Equal(t, "Bob Johnson", deleted.Name)

	_, err = s.GetByID(3)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.Delete(3)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// The freed id is never reassigned.
	next, err := s.Create("New User", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(4), next.ID)
}

func TestDelete_PreservesOrderOfRemaining(t *testing.T) {
	s := seededStore(t)

	_, err := s.Delete(2)
	require.NoError(t, err)

	users := s.List()
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, int64(3), users[1].ID)
}
