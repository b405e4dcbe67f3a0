package storage

import (
	"errors"
	"strings"
	"sync"
	"time"

	"user-directory-service/models"
	"user-directory-service/validation"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("user with this email already exists")
)

// MemoryStore holds the live user collection. Records are kept in creation
// order and ids are assigned from a counter that only moves forward, so a
// deleted id is never reissued. All access goes through the store's methods;
// mutations are serialized by the lock and a failed operation leaves the
// collection untouched.
type MemoryStore struct {
	mu     sync.RWMutex
	users  []models.User
	nextID int64
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// List returns all users in creation order. The returned slice is a copy;
// callers may filter and slice it without holding the store's lock.
func (s *MemoryStore) List() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]models.User, len(s.users))
	copy(snapshot, s.users)
	return snapshot
}

// GetByID returns the user with the given id.
func (s *MemoryStore) GetByID(id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// Count returns the current number of users.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.users)
}

// Create validates the inputs, rejects duplicate emails (case-insensitive),
// and appends a new user with the next id and both timestamps set to now.
func (s *MemoryStore) Create(name, email string) (models.User, error) {
	if err := validation.ValidateName(name); err != nil {
		return models.User{}, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return models.User{}, err
	}

	normalized := validation.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, normalized) {
			return models.User{}, ErrEmailExists
		}
	}

	now := time.Now()
	user := models.User{
		ID:        s.nextID,
		Name:      strings.TrimSpace(name),
		Email:     normalized,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.users = append(s.users, user)

	return user, nil
}

// Update modifies the provided fields of an existing user and refreshes
// UpdatedAt. Nil fields are left unchanged. The name length check runs on
// the value as provided; the trimmed form is what gets stored.
func (s *MemoryStore) Update(id int64, name, email *string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, user := range s.users {
		if user.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.User{}, ErrUserNotFound
	}

	if name != nil {
		if err := validation.ValidateRawName(*name); err != nil {
			return models.User{}, err
		}
	}

	var normalized string
	if email != nil {
		if err := validation.ValidateEmail(*email); err != nil {
			return models.User{}, err
		}
		normalized = validation.NormalizeEmail(*email)
		for _, existing := range s.users {
			if existing.ID != id && strings.EqualFold(existing.Email, normalized) {
				return models.User{}, ErrEmailExists
			}
		}
	}

	if name != nil {
		s.users[idx].Name = strings.TrimSpace(*name)
	}
	if email != nil {
		s.users[idx].Email = normalized
	}
	s.users[idx].UpdatedAt = time.Now()

	return s.users[idx], nil
}

// Delete removes the user with the given id and returns the removed record.
// The id is retired permanently.
func (s *MemoryStore) Delete(id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, user := range s.users {
		if user.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}
