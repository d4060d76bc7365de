package matches

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
	return r.fs.Collection("clubs").Doc(clubID).Collection("matches")
}

func (r *Repo) photosCol(clubID string) *firestore.CollectionRef {
	return r.fs.Collection("clubs").Doc(clubID).Collection("match_photos")
}

func (r *Repo) Create(ctx context.Context, clubID string, m Match) (*Match, error) {
	ref := r.col(clubID).NewDoc()
	m.ID = ref.ID
	m.ClubID = clubID
	if _, err := ref.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return &m, nil
}

func (r *Repo) Get(ctx context.Context, clubID, matchID string) (*Match, error) {
	doc, err := r.col(clubID).Doc(matchID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: match not found", ErrNotFound)
	}
	var m Match
	if err := doc.DataTo(&m); err != nil {
		return nil, fmt.Errorf("failed to decode match: %w", err)
	}
	m.ID = doc.Ref.ID
	m.ClubID = clubID
	return &m, nil
}

// List returns the club's matches, most recent first.
func (r *Repo) List(ctx context.Context, clubID string) ([]Match, error) {
	iter := r.col(clubID).OrderBy("date", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	out := []Match{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list matches: %w", err)
		}
		var m Match
		if err := doc.DataTo(&m); err != nil {
			continue
		}
		m.ID = doc.Ref.ID
		m.ClubID = clubID
		out = append(out, m)
	}
	return out, nil
}

func (r *Repo) Update(ctx context.Context, clubID, matchID string, updates map[string]interface{}) (*Match, error) {
	if len(updates) > 0 {
		updates["updatedAt"] = time.Now().UTC()
		if _, err := r.col(clubID).Doc(matchID).Set(ctx, updates, firestore.MergeAll); err != nil {
			return nil, fmt.Errorf("failed to update match: %w", err)
		}
	}
	return r.Get(ctx, clubID, matchID)
}

func (r *Repo) Delete(ctx context.Context, clubID, matchID string) error {
	if _, err := r.col(clubID).Doc(matchID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	return nil
}

func (r *Repo) InsertPhoto(ctx context.Context, clubID string, p Photo) (*Photo, error) {
	ref := r.photosCol(clubID).NewDoc()
	p.ID = ref.ID
	p.ClubID = clubID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if _, err := ref.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to insert photo: %w", err)
	}
	return &p, nil
}

func (r *Repo) GetPhoto(ctx context.Context, clubID, photoID string) (*Photo, error) {
	doc, err := r.photosCol(clubID).Doc(photoID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: photo not found", ErrNotFound)
	}
	var p Photo
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode photo: %w", err)
	}
	p.ID = doc.Ref.ID
	p.ClubID = clubID
	return &p, nil
}

// ListPhotos returns the club's photos, newest first. When matchID is
// non-empty only that match's photos are returned.
func (r *Repo) ListPhotos(ctx context.Context, clubID, matchID string) ([]Photo, error) {
	q := r.photosCol(clubID).Query
	if matchID != "" {
		q = q.Where("matchId", "==", matchID)
	}
	iter := q.OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	out := []Photo{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list photos: %w", err)
		}
		var p Photo
		if err := doc.DataTo(&p); err != nil {
			continue
		}
		p.ID = doc.Ref.ID
		p.ClubID = clubID
		out = append(out, p)
	}
	return out, nil
}

func (r *Repo) DeletePhoto(ctx context.Context, clubID, photoID string) error {
	if _, err := r.photosCol(clubID).Doc(photoID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}
