package club

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cricmates/backend/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	byID        map[string]*Club
	byShortName map[string]*Club
	getErr      error
}

func (f *fakeStore) Get(_ context.Context, clubID string) (*Club, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.byID[clubID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) GetByShortName(_ context.Context, shortName string) (*Club, error) {
	c, ok := f.byShortName[strings.ToLower(shortName)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

type fakeReconciler struct {
	calls int
	err   error
}

func (f *fakeReconciler) Reconcile(_ context.Context, _ *Club) (bool, error) {
	f.calls++
	return false, f.err
}

func newTestResolver(store *fakeStore, recon *fakeReconciler) (*Resolver, *session.MemoryStore) {
	sessions := session.NewMemoryStore()
	r := NewResolver(store, recon, sessions,
		[]string{"www", "app", "admin", "api"},
		[]string{".github.io"})
	return r, sessions
}

func twoClubs() *fakeStore {
	warriors := &Club{ID: "club-1", Name: "Pune Warriors", ShortName: "punewarriors", PrimaryColor: "#10b981", SubscriptionStatus: StatusActive}
	strikers := &Club{ID: "club-2", Name: "Strikers", ShortName: "strikers", PrimaryColor: "#336699", SubscriptionStatus: StatusActive}
	return &fakeStore{
		byID:        map[string]*Club{"club-1": warriors, "club-2": strikers},
		byShortName: map[string]*Club{"punewarriors": warriors, "strikers": strikers},
	}
}

func TestResolveSubdomainWinsOverQueryAndSession(t *testing.T) {
	store := twoClubs()
	recon := &fakeReconciler{}
	r, sessions := newTestResolver(store, recon)
	sessions.Set("sess", session.KeyClubID, "club-2")

	res, err := r.Resolve(context.Background(), ResolveInput{
		Host:        "punewarriors.cricmates.in",
		QueryClubID: "club-2",
		SessionID:   "sess",
	})
	require.NoError(t, err)
	assert.Equal(t, "club-1", res.Club.ID)
	assert.Equal(t, SourceSubdomain, res.Source)
	assert.False(t, res.StripQuery)
	assert.Equal(t, 1, recon.calls)

	stored, _ := sessions.Get("sess", session.KeyClubID)
	assert.Equal(t, "club-1", stored, "subdomain match persists the preference")
}

func TestResolveQueryWinsOverSession(t *testing.T) {
	store := twoClubs()
	r, sessions := newTestResolver(store, &fakeReconciler{})
	sessions.Set("sess", session.KeyClubID, "club-1")

	res, err := r.Resolve(context.Background(), ResolveInput{
		Host:        "cricmates.in",
		QueryClubID: "club-2",
		SessionID:   "sess",
	})
	require.NoError(t, err)
	assert.Equal(t, "club-2", res.Club.ID)
	assert.Equal(t, SourceQuery, res.Source)
	assert.True(t, res.StripQuery, "query reference must be stripped from the URL")

	stored, _ := sessions.Get("sess", session.KeyClubID)
	assert.Equal(t, "club-2", stored)
}

func TestResolveSessionFallback(t *testing.T) {
	store := twoClubs()
	r, sessions := newTestResolver(store, &fakeReconciler{})
	sessions.Set("sess", session.KeyClubID, "club-1")

	res, err := r.Resolve(context.Background(), ResolveInput{Host: "cricmates.in", SessionID: "sess"})
	require.NoError(t, err)
	assert.Equal(t, "club-1", res.Club.ID)
	assert.Equal(t, SourceSession, res.Source)
}

func TestResolveNothingSelected(t *testing.T) {
	r, _ := newTestResolver(twoClubs(), &fakeReconciler{})
	_, err := r.Resolve(context.Background(), ResolveInput{Host: "cricmates.in", SessionID: "sess"})
	assert.ErrorIs(t, err, ErrNoClub)
}

func TestResolveStaleSessionPreference(t *testing.T) {
	r, sessions := newTestResolver(twoClubs(), &fakeReconciler{})
	sessions.Set("sess", session.KeyClubID, "gone-club")

	_, err := r.Resolve(context.Background(), ResolveInput{Host: "cricmates.in", SessionID: "sess"})
	assert.ErrorIs(t, err, ErrNoClub, "stale stored id is no tenant, not a crash")

	_, ok := sessions.Get("sess", session.KeyClubID)
	assert.False(t, ok, "stale preference is dropped")
}

func TestResolveUnknownSubdomainDoesNotFallThrough(t *testing.T) {
	r, sessions := newTestResolver(twoClubs(), &fakeReconciler{})
	sessions.Set("sess", session.KeyClubID, "club-1")

	_, err := r.Resolve(context.Background(), ResolveInput{
		Host:      "nosuchclub.cricmates.in",
		SessionID: "sess",
	})
	assert.ErrorIs(t, err, ErrNoClub)
}

func TestResolveThemeDerived(t *testing.T) {
	r, _ := newTestResolver(twoClubs(), &fakeReconciler{})
	res, err := r.Resolve(context.Background(), ResolveInput{
		Host:        "cricmates.in",
		QueryClubID: "club-1",
		SessionID:   "sess",
	})
	require.NoError(t, err)
	assert.Equal(t, "#10b981", res.Theme[500])
	assert.Len(t, res.Theme, 10)
}

func TestResolveReconcileFailureSurfaces(t *testing.T) {
	boom := errors.New("firestore unavailable")
	r, _ := newTestResolver(twoClubs(), &fakeReconciler{err: boom})
	_, err := r.Resolve(context.Background(), ResolveInput{
		Host:        "cricmates.in",
		QueryClubID: "club-1",
		SessionID:   "sess",
	})
	assert.ErrorIs(t, err, boom)
}

func TestSubdomainCandidate(t *testing.T) {
	reserved := map[string]bool{"www": true, "app": true, "admin": true, "api": true}
	suffixes := []string{".github.io"}

	tests := []struct {
		host string
		want string
	}{
		{"punewarriors.cricmates.in", "punewarriors"},
		{"punewarriors.cricmates.in:443", "punewarriors"},
		{"cricmates.in", ""},
		{"www.cricmates.in", ""},
		{"api.cricmates.in", ""},
		{"localhost", ""},
		{"localhost:3000", ""},
		{"127.0.0.1", ""},
		{"10.0.0.5:8080", ""},
		{"someuser.github.io", ""},
		{"club.someuser.github.io", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SubdomainCandidate(tt.host, reserved, suffixes), "host %q", tt.host)
	}
}
