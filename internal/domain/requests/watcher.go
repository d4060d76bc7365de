package requests

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
)

// Event signals that a club's request collection changed. Consumers
// re-fetch rather than apply deltas, so events carry no payload and
// pending ones coalesce.
type Event struct {
	ClubID string    `json:"clubId"`
	At     time.Time `json:"at"`
}

// Watcher streams change notifications off Firestore snapshot
// listeners. Delivery is at least once and unordered relative to local
// writes; the consumer's re-fetch makes the last one win.
type Watcher struct {
	fs *firestore.Client
}

func NewWatcher(fs *firestore.Client) *Watcher {
	return &Watcher{fs: fs}
}

// Subscribe starts a snapshot listener for the club's requests and
// returns a buffered event channel plus a stop function. The channel
// is closed when the listener ends; stop is safe to call more than
// once.
func (w *Watcher) Subscribe(ctx context.Context, clubID string) (<-chan Event, func()) {
	ctx, cancel := context.WithCancel(ctx)
	events := make(chan Event, 8)

	go func() {
		defer close(events)
		snaps := w.fs.Collection("clubs").Doc(clubID).Collection("member_requests").Snapshots(ctx)
		defer snaps.Stop()

		for {
			if _, err := snaps.Next(); err != nil {
				if ctx.Err() == nil {
					log.Printf("request watcher for club %s stopped: %v", clubID, err)
				}
				return
			}
			select {
			case events <- Event{ClubID: clubID, At: time.Now().UTC()}:
			default:
				// A queued event already triggers a re-fetch.
			}
		}
	}()

	return events, cancel
}
