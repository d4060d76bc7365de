package subscription

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// Repo persists subscription orders. Orders live in a top-level
// collection so the platform operator can list billing across clubs.
type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection("subscription_orders")
}

func (r *Repo) Insert(ctx context.Context, o Order) (*Order, error) {
	ref := r.col().NewDoc()
	if _, err := ref.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to insert subscription order: %w", err)
	}
	o.ID = ref.ID
	return &o, nil
}

func (r *Repo) ListByClub(ctx context.Context, clubID string) ([]Order, error) {
	iter := r.col().
		Where("clubId", "==", clubID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return collect(iter)
}

func (r *Repo) ListAll(ctx context.Context, limit int) ([]Order, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	iter := r.col().OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx)
	return collect(iter)
}

func collect(iter *firestore.DocumentIterator) ([]Order, error) {
	defer iter.Stop()
	out := []Order{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list subscription orders: %w", err)
		}
		var o Order
		if err := doc.DataTo(&o); err != nil {
			continue
		}
		o.ID = doc.Ref.ID
		out = append(out, o)
	}
	return out, nil
}
