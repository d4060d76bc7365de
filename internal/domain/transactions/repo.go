package transactions

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
	return r.fs.Collection("clubs").Doc(clubID).Collection("transactions")
}

func (r *Repo) Insert(ctx context.Context, clubID string, t Transaction) (*Transaction, error) {
	ref := r.col(clubID).NewDoc()
	t.ID = ref.ID
	t.ClubID = clubID
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if _, err := ref.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return &t, nil
}

func (r *Repo) Get(ctx context.Context, clubID, txID string) (*Transaction, error) {
	doc, err := r.col(clubID).Doc(txID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction not found", ErrNotFound)
	}
	var t Transaction
	if err := doc.DataTo(&t); err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}
	t.ID = doc.Ref.ID
	t.ClubID = clubID
	return &t, nil
}

func (r *Repo) List(ctx context.Context, clubID string, in ListTransactionsInput) ([]Transaction, error) {
	q := r.col(clubID).Query
	if in.MemberID != "" {
		q = q.Where("memberId", "==", in.MemberID)
	}
	if in.Type != "" {
		q = q.Where("type", "==", in.Type)
	}
	q = q.OrderBy("date", firestore.Desc)
	if in.Limit > 0 {
		q = q.Limit(in.Limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	out := []Transaction{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions: %w", err)
		}
		var t Transaction
		if err := doc.DataTo(&t); err != nil {
			continue
		}
		t.ID = doc.Ref.ID
		t.ClubID = clubID
		out = append(out, t)
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, clubID, txID string) error {
	if _, err := r.col(clubID).Doc(txID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}
