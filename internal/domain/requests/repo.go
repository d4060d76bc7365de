package requests

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
	return r.fs.Collection("clubs").Doc(clubID).Collection("member_requests")
}

func (r *Repo) Create(ctx context.Context, clubID string, req Request) (*Request, error) {
	ref := r.col(clubID).NewDoc()
	req.ID = ref.ID
	req.ClubID = clubID
	if _, err := ref.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return &req, nil
}

func (r *Repo) Get(ctx context.Context, clubID, requestID string) (*Request, error) {
	doc, err := r.col(clubID).Doc(requestID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: request not found", ErrNotFound)
	}
	var req Request
	if err := doc.DataTo(&req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}
	req.ID = doc.Ref.ID
	req.ClubID = clubID
	return &req, nil
}

// List returns the club's requests, newest first. When status is
// non-empty only requests in that status are returned.
func (r *Repo) List(ctx context.Context, clubID, status string) ([]Request, error) {
	q := r.col(clubID).Query
	if status != "" {
		q = q.Where("status", "==", status)
	}
	iter := q.OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	out := []Request{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list requests: %w", err)
		}
		var req Request
		if err := doc.DataTo(&req); err != nil {
			continue
		}
		req.ID = doc.Ref.ID
		req.ClubID = clubID
		out = append(out, req)
	}
	return out, nil
}

func (r *Repo) SetStatus(ctx context.Context, clubID, requestID, status string) error {
	_, err := r.col(clubID).Doc(requestID).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
		{Path: "resolvedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, clubID, requestID string) error {
	if _, err := r.col(clubID).Doc(requestID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
	}
	return nil
}
