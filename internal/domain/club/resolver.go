package club

import (
	"context"
	"fmt"
	"net"
	"strings"

	"cricmates/backend/internal/session"
	"cricmates/backend/internal/theme"
)

// Resolution sources, in precedence order.
const (
	SourceSubdomain = "subdomain"
	SourceQuery     = "query"
	SourceSession   = "session"
)

// Store is the club lookup surface the resolver needs.
type Store interface {
	Get(ctx context.Context, clubID string) (*Club, error)
	GetByShortName(ctx context.Context, shortName string) (*Club, error)
}

// Reconciler corrects a stale subscription state before the club is
// handed to any consumer. Implemented by subscription.Service.
type Reconciler interface {
	Reconcile(ctx context.Context, c *Club) (bool, error)
}

// Resolver identifies the active club for a session from the request
// host, an explicit query reference, or the persisted preference.
type Resolver struct {
	clubs    Store
	recon    Reconciler
	sessions session.Store
	reserved map[string]bool
	suffixes []string
}

func NewResolver(clubs Store, recon Reconciler, sessions session.Store, reservedSubdomains, genericSuffixes []string) *Resolver {
	reserved := make(map[string]bool, len(reservedSubdomains))
	for _, s := range reservedSubdomains {
		reserved[strings.ToLower(s)] = true
	}
	return &Resolver{
		clubs:    clubs,
		recon:    recon,
		sessions: sessions,
		reserved: reserved,
		suffixes: genericSuffixes,
	}
}

type ResolveInput struct {
	Host        string
	QueryClubID string
	SessionID   string
}

type Resolution struct {
	Club   *Club         `json:"club"`
	Source string        `json:"source"`
	Theme  theme.Palette `json:"theme"`

	// StripQuery tells the HTTP layer to redirect to a URL without the
	// club query parameter, so a refresh does not re-trigger it.
	StripQuery bool `json:"-"`
}

// Resolve applies the resolution order: subdomain short-name match, then
// explicit query reference, then persisted preference. Each step
// short-circuits; a subdomain candidate that matches no club yields
// ErrNoClub rather than falling through.
func (r *Resolver) Resolve(ctx context.Context, in ResolveInput) (*Resolution, error) {
	if sub := SubdomainCandidate(in.Host, r.reserved, r.suffixes); sub != "" {
		c, err := r.clubs.GetByShortName(ctx, sub)
		if IsErrNotFound(err) {
			return nil, fmt.Errorf("%w: no club for subdomain %q", ErrNoClub, sub)
		}
		if err != nil {
			return nil, err
		}
		r.persist(in.SessionID, c.ID)
		return r.finish(ctx, c, SourceSubdomain, false)
	}

	if in.QueryClubID != "" {
		c, err := r.clubs.Get(ctx, in.QueryClubID)
		if err != nil {
			return nil, err
		}
		r.persist(in.SessionID, c.ID)
		return r.finish(ctx, c, SourceQuery, true)
	}

	if stored, ok := r.sessions.Get(in.SessionID, session.KeyClubID); ok && stored != "" {
		c, err := r.clubs.Get(ctx, stored)
		if IsErrNotFound(err) {
			// Stale preference; treat like nothing was stored.
			r.sessions.Remove(in.SessionID, session.KeyClubID)
			return nil, ErrNoClub
		}
		if err != nil {
			return nil, err
		}
		return r.finish(ctx, c, SourceSession, false)
	}

	return nil, ErrNoClub
}

// Select persists a manual club choice for the session.
func (r *Resolver) Select(ctx context.Context, sessionID, clubID string) (*Resolution, error) {
	c, err := r.clubs.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}
	r.persist(sessionID, c.ID)
	return r.finish(ctx, c, SourceSession, false)
}

// Clear drops the persisted preference and the admin flag for the club
// being switched away from.
func (r *Resolver) Clear(sessionID, clubID string) {
	session.ClearClub(r.sessions, sessionID, clubID)
}

func (r *Resolver) persist(sessionID, clubID string) {
	if sessionID != "" {
		r.sessions.Set(sessionID, session.KeyClubID, clubID)
	}
}

func (r *Resolver) finish(ctx context.Context, c *Club, source string, stripQuery bool) (*Resolution, error) {
	if _, err := r.recon.Reconcile(ctx, c); err != nil {
		return nil, err
	}

	color := c.PrimaryColor
	if color == "" {
		color = DefaultPrimaryColor
	}
	palette, err := theme.Derive(color)
	if err != nil {
		// A bad stored color must not make the club unreachable.
		palette, _ = theme.Derive(DefaultPrimaryColor)
	}

	return &Resolution{
		Club:       c,
		Source:     source,
		Theme:      palette,
		StripQuery: stripQuery,
	}, nil
}

// SubdomainCandidate extracts the leftmost host label when it can name a
// club: the host must have more than two dot-separated labels, must not
// be localhost or an IP literal, must not sit on a generic hosting
// suffix, and the label must not be reserved.
func SubdomainCandidate(host string, reserved map[string]bool, genericSuffixes []string) string {
	h := strings.ToLower(strings.TrimSpace(host))
	if h == "" {
		return ""
	}
	if hp, _, err := net.SplitHostPort(h); err == nil {
		h = hp
	}
	h = strings.Trim(h, "[]")

	if h == "localhost" || net.ParseIP(h) != nil {
		return ""
	}
	for _, suffix := range genericSuffixes {
		if strings.HasSuffix(h, suffix) {
			return ""
		}
	}

	parts := strings.Split(h, ".")
	if len(parts) <= 2 {
		return ""
	}
	sub := parts[0]
	if sub == "" || reserved[sub] {
		return ""
	}
	return sub
}
