package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreIsolatesSessions(t *testing.T) {
	s := NewMemoryStore()
	s.Set("sess-a", KeyClubID, "club-1")
	s.Set("sess-b", KeyClubID, "club-2")

	a, ok := s.Get("sess-a", KeyClubID)
	assert.True(t, ok)
	assert.Equal(t, "club-1", a)

	b, ok := s.Get("sess-b", KeyClubID)
	assert.True(t, ok)
	assert.Equal(t, "club-2", b)
}

func TestMemoryStoreRemove(t *testing.T) {
	s := NewMemoryStore()
	s.Set("sess", KeyClubID, "club-1")
	s.Remove("sess", KeyClubID)

	_, ok := s.Get("sess", KeyClubID)
	assert.False(t, ok)
}

func TestClearClub(t *testing.T) {
	s := NewMemoryStore()
	s.Set("sess", KeyClubID, "club-1")
	s.Set("sess", AdminKey("club-1"), "true")
	s.Set("sess", AdminKey("club-2"), "true")

	ClearClub(s, "sess", "club-1")

	_, ok := s.Get("sess", KeyClubID)
	assert.False(t, ok, "club preference cleared")
	_, ok = s.Get("sess", AdminKey("club-1"))
	assert.False(t, ok, "admin flag for the switched-away club cleared")
	_, ok = s.Get("sess", AdminKey("club-2"))
	assert.True(t, ok, "other clubs' admin flags untouched")
}
