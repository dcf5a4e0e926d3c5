package events

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps events in memory. Used in tests and in deployments
// that run the ingest pipeline without a database-backed trail.
type MemoryStore struct {
	mu   sync.Mutex
	seq  int64
	evs  []StoredEvent
	byID map[string][]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string][]int)}
}

func (s *MemoryStore) Append(_ context.Context, evs ...Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range evs {
		b, err := e.MarshalData()
		if err != nil {
			return err
		}
		at := e.Timestamp()
		if at.IsZero() {
			at = time.Now()
		}
		s.seq++
		s.evs = append(s.evs, StoredEvent{
			Seq:       s.seq,
			ArtworkID: e.ArtworkID(),
			Type:      e.Type(),
			Ts:        at,
			Payload:   b,
		})
		s.byID[e.ArtworkID()] = append(s.byID[e.ArtworkID()], len(s.evs)-1)
	}
	return nil
}

func (s *MemoryStore) ListByArtwork(_ context.Context, artworkID string) ([]StoredEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idxs := s.byID[artworkID]
	out := make([]StoredEvent, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, s.evs[i])
	}
	return out, nil
}

// Len reports the total number of stored events.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.evs)
}

var _ Store = (*MemoryStore)(nil)
