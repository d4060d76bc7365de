package members

import (
	"context"
	"fmt"
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

func (r *Repo) col(clubID string) *firestore.CollectionRef {
	return r.fs.Collection("clubs").Doc(clubID).Collection("members")
}

func (r *Repo) Create(ctx context.Context, clubID string, m Member) (*Member, error) {
	ref := r.col(clubID).NewDoc()
	m.ID = ref.ID
	m.ClubID = clubID
	if _, err := ref.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	return &m, nil
}

func (r *Repo) Get(ctx context.Context, clubID, memberID string) (*Member, error) {
	doc, err := r.col(clubID).Doc(memberID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: member not found", ErrNotFound)
	}
	var m Member
	if err := doc.DataTo(&m); err != nil {
		return nil, fmt.Errorf("failed to decode member: %w", err)
	}
	m.ID = doc.Ref.ID
	m.ClubID = clubID
	return &m, nil
}

func (r *Repo) List(ctx context.Context, clubID string) ([]Member, error) {
	iter := r.col(clubID).OrderBy("name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	out := []Member{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list members: %w", err)
		}
		var m Member
		if err := doc.DataTo(&m); err != nil {
			continue
		}
		m.ID = doc.Ref.ID
		m.ClubID = clubID
		out = append(out, m)
	}
	return out, nil
}

func (r *Repo) Update(ctx context.Context, clubID, memberID string, updates map[string]interface{}) (*Member, error) {
	if len(updates) > 0 {
		updates["updatedAt"] = time.Now().UTC()
		if _, err := r.col(clubID).Doc(memberID).Set(ctx, updates, firestore.MergeAll); err != nil {
			return nil, fmt.Errorf("failed to update member: %w", err)
		}
	}
	return r.Get(ctx, clubID, memberID)
}

func (r *Repo) Delete(ctx context.Context, clubID, memberID string) error {
	if _, err := r.col(clubID).Doc(memberID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

// ApplyFunds moves the running balance by delta (positive for deposits
// and refunds, negative for fees). The caller records the matching
// transaction row.
func (r *Repo) ApplyFunds(ctx context.Context, clubID, memberID string, delta int64) error {
	_, err := r.col(clubID).Doc(memberID).Update(ctx, []firestore.Update{
		{Path: "balance", Value: firestore.Increment(delta)},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to apply funds: %w", err)
	}
	return nil
}

// RecordAppearance bumps matchesPlayed for a newly recorded match and,
// when feeDeduction is non-zero, debits the balance in the same write.
func (r *Repo) RecordAppearance(ctx context.Context, clubID, memberID string, feeDeduction int64) error {
	updates := []firestore.Update{
		{Path: "matchesPlayed", Value: firestore.Increment(1)},
		{Path: "updatedAt", Value: time.Now().UTC()},
	}
	if feeDeduction != 0 {
		updates = append(updates, firestore.Update{Path: "balance", Value: firestore.Increment(-feeDeduction)})
	}
	if _, err := r.col(clubID).Doc(memberID).Update(ctx, updates); err != nil {
		return fmt.Errorf("failed to record appearance: %w", err)
	}
	return nil
}
