package club

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection("clubs")
}

func (r *Repo) Create(ctx context.Context, c Club) (*Club, error) {
	ref := r.col().NewDoc()
	c.ID = ref.ID
	if _, err := ref.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}
	return &c, nil
}

func (r *Repo) Get(ctx context.Context, clubID string) (*Club, error) {
	doc, err := r.col().Doc(clubID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: club not found", ErrNotFound)
	}
	var c Club
	if err := doc.DataTo(&c); err != nil {
		return nil, fmt.Errorf("failed to decode club: %w", err)
	}
	if c.ID == "" {
		c.ID = doc.Ref.ID
	}
	return &c, nil
}

// GetByShortName matches the URL-safe slug case-insensitively via the
// shortNameLower field.
func (r *Repo) GetByShortName(ctx context.Context, shortName string) (*Club, error) {
	q := strings.ToLower(strings.TrimSpace(shortName))
	if q == "" {
		return nil, fmt.Errorf("%w: short name is required", ErrBadRequest)
	}

	iter := r.col().Where("shortNameLower", "==", q).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("%w: no club with short name %q", ErrNotFound, shortName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up club by short name: %w", err)
	}

	var c Club
	if err := doc.DataTo(&c); err != nil {
		return nil, fmt.Errorf("failed to decode club: %w", err)
	}
	if c.ID == "" {
		c.ID = doc.Ref.ID
	}
	return &c, nil
}

func (r *Repo) List(ctx context.Context, limit int) ([]Club, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	iter := r.col().OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	out := []Club{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list clubs: %w", err)
		}
		var c Club
		if err := doc.DataTo(&c); err != nil {
			continue
		}
		if c.ID == "" {
			c.ID = doc.Ref.ID
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *Repo) Update(ctx context.Context, clubID string, updates map[string]interface{}) (*Club, error) {
	if len(updates) == 0 {
		return r.Get(ctx, clubID)
	}
	updates["updatedAt"] = time.Now().UTC()
	if _, err := r.col().Doc(clubID).Set(ctx, updates, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to update club: %w", err)
	}
	return r.Get(ctx, clubID)
}

// SetSubscriptionStatus writes only the status field, leaving the expiry
// timestamp in place. Used by the auto-expiry reconciliation.
func (r *Repo) SetSubscriptionStatus(ctx context.Context, clubID, status string) error {
	updates := map[string]interface{}{
		"subscriptionStatus": status,
		"updatedAt":          time.Now().UTC(),
	}
	if _, err := r.col().Doc(clubID).Set(ctx, updates, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update club subscription status: %w", err)
	}
	return nil
}

// ActivateSubscription marks the club active with a new expiry. The
// setup-fee flag is only ever raised, never cleared.
func (r *Repo) ActivateSubscription(ctx context.Context, clubID string, expiresAt time.Time, setupFeePaid bool) error {
	updates := map[string]interface{}{
		"subscriptionStatus":    StatusActive,
		"subscriptionExpiresAt": expiresAt,
		"updatedAt":             time.Now().UTC(),
	}
	if setupFeePaid {
		updates["setupFeePaid"] = true
	}
	if _, err := r.col().Doc(clubID).Set(ctx, updates, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to activate club subscription: %w", err)
	}
	return nil
}
