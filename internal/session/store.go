// Package session is the key-value capability backing per-session state:
// the selected club and the per-club admin flag. It is injected rather
// than accessed ambiently so alternate backings can be substituted.
package session

import (
	"strings"
	"sync"
)

const (
	// KeyClubID holds the persisted club preference for a session.
	KeyClubID = "club-id"
	// keyAdminPrefix scopes the admin flag to a single club.
	keyAdminPrefix = "admin:"
)

// Store is a synchronous string key-value store scoped by session id.
type Store interface {
	Get(sessionID, key string) (string, bool)
	Set(sessionID, key, value string)
	Remove(sessionID, key string)
}

// AdminKey returns the session key for a club's admin flag.
func AdminKey(clubID string) string {
	return keyAdminPrefix + clubID
}

// ClearClub removes the stored club preference and any admin flag tied
// to that club, as happens on a manual club switch.
func ClearClub(s Store, sessionID, clubID string) {
	s.Remove(sessionID, KeyClubID)
	if clubID != "" {
		s.Remove(sessionID, AdminKey(clubID))
	}
}

// MemoryStore is the in-process Store implementation.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

func (m *MemoryStore) Get(sessionID, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[join(sessionID, key)]
	return v, ok
}

func (m *MemoryStore) Set(sessionID, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[join(sessionID, key)] = value
}

func (m *MemoryStore) Remove(sessionID, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, join(sessionID, key))
}

func join(sessionID, key string) string {
	return strings.TrimSpace(sessionID) + "\x00" + key
}
