package tournaments

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
	return r.fs.Collection("clubs").Doc(clubID).Collection("tournaments")
}

func (r *Repo) Create(ctx context.Context, clubID string, t Tournament) (*Tournament, error) {
	ref := r.col(clubID).NewDoc()
	t.ID = ref.ID
	t.ClubID = clubID
	if _, err := ref.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return &t, nil
}

func (r *Repo) Get(ctx context.Context, clubID, tournamentID string) (*Tournament, error) {
	doc, err := r.col(clubID).Doc(tournamentID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: tournament not found", ErrNotFound)
	}
	var t Tournament
	if err := doc.DataTo(&t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament: %w", err)
	}
	t.ID = doc.Ref.ID
	t.ClubID = clubID
	return &t, nil
}

func (r *Repo) List(ctx context.Context, clubID string) ([]Tournament, error) {
	iter := r.col(clubID).OrderBy("startDate", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	out := []Tournament{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list tournaments: %w", err)
		}
		var t Tournament
		if err := doc.DataTo(&t); err != nil {
			continue
		}
		t.ID = doc.Ref.ID
		t.ClubID = clubID
		out = append(out, t)
	}
	return out, nil
}

func (r *Repo) Update(ctx context.Context, clubID, tournamentID string, updates map[string]interface{}) (*Tournament, error) {
	if len(updates) > 0 {
		updates["updatedAt"] = time.Now().UTC()
		if _, err := r.col(clubID).Doc(tournamentID).Set(ctx, updates, firestore.MergeAll); err != nil {
			return nil, fmt.Errorf("failed to update tournament: %w", err)
		}
	}
	return r.Get(ctx, clubID, tournamentID)
}

func (r *Repo) Delete(ctx context.Context, clubID, tournamentID string) error {
	if _, err := r.col(clubID).Doc(tournamentID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	return nil
}

// SetStage links or relinks a match to a tournament stage.
func (r *Repo) SetStage(ctx context.Context, clubID, tournamentID, matchID, stage string) error {
	_, err := r.col(clubID).Doc(tournamentID).Update(ctx, []firestore.Update{
		{Path: "stages." + matchID, Value: stage},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to link match: %w", err)
	}
	return nil
}

// RemoveStage unlinks a match from the tournament.
func (r *Repo) RemoveStage(ctx context.Context, clubID, tournamentID, matchID string) error {
	_, err := r.col(clubID).Doc(tournamentID).Update(ctx, []firestore.Update{
		{Path: "stages." + matchID, Value: firestore.Delete},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to unlink match: %w", err)
	}
	return nil
}
