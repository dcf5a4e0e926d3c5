// Package events keeps an append-only audit trail of dedup decisions.
// Every ingest outcome is recorded so moderators can answer "why was this
// import skipped" long after the batch ran.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event is the base interface for all dedup audit events.
// Keep payloads small, use JSON-friendly fields.
type Event interface {
	Type() string
	ArtworkID() string
	Timestamp() time.Time
	MarshalData() ([]byte, error)
}

// Base contains common event metadata.
type Base struct {
	Ts  time.Time `json:"ts"`
	AID string    `json:"artwork_id"`
}

func (b Base) Timestamp() time.Time { return b.Ts }
func (b Base) ArtworkID() string    { return b.AID }

const (
	TypeCreated = "artwork.ingest.created"
	TypeSkipped = "artwork.ingest.skipped"
	TypeFlagged = "artwork.ingest.flagged"
	TypeFailed  = "artwork.ingest.failed"
)

// ArtworkCreated is emitted when an import record passes the dedup check
// and is inserted.
type ArtworkCreated struct {
	Base
	Source string `json:"source,omitempty"`
}

func (e ArtworkCreated) Type() string                 { return TypeCreated }
func (e ArtworkCreated) MarshalData() ([]byte, error) { return json.Marshal(e) }

// DuplicateSkipped is emitted when a record is dropped as a confident
// duplicate of an existing artwork.
type DuplicateSkipped struct {
	Base
	DuplicateOf string  `json:"duplicate_of"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation,omitempty"`
}

func (e DuplicateSkipped) Type() string                 { return TypeSkipped }
func (e DuplicateSkipped) MarshalData() ([]byte, error) { return json.Marshal(e) }

// DuplicateFlagged is emitted when a record is inserted but left marked
// for manual review because of a borderline match.
type DuplicateFlagged struct {
	Base
	SuspectedDuplicateOf string  `json:"suspected_duplicate_of"`
	Score                float64 `json:"score"`
	Explanation          string  `json:"explanation,omitempty"`
}

func (e DuplicateFlagged) Type() string                 { return TypeFlagged }
func (e DuplicateFlagged) MarshalData() ([]byte, error) { return json.Marshal(e) }

// IngestFailed is emitted when storage errors prevent a decision.
type IngestFailed struct {
	Base
	Reason string `json:"reason"`
}

func (e IngestFailed) Type() string                 { return TypeFailed }
func (e IngestFailed) MarshalData() ([]byte, error) { return json.Marshal(e) }

// Store defines persistence and replay.
// Implementations must guarantee ordering per artwork.
type Store interface {
	Append(ctx context.Context, evs ...Event) error
	ListByArtwork(ctx context.Context, artworkID string) ([]StoredEvent, error)
}

// StoredEvent is a durable representation.
// Seq is a monotonic order within the store.
type StoredEvent struct {
	Seq       int64           `json:"seq"`
	ArtworkID string          `json:"artwork_id"`
	Type      string          `json:"type"`
	Ts        time.Time       `json:"ts"`
	Payload   json.RawMessage `json:"payload"`
}

// ArtworkState is the result of replaying an artwork's audit trail.
// Intentionally small: last decision and its context. UIs can still show
// full history by listing events.
type ArtworkState struct {
	ArtworkID   string    `json:"artwork_id"`
	Status      string    `json:"status"`
	DuplicateOf string    `json:"duplicate_of,omitempty"`
	LastScore   float64   `json:"last_score"`
	LastUpdated time.Time `json:"last_updated"`
}

// Replay applies events in order and rebuilds the artwork's dedup state.
func Replay(events []StoredEvent) *ArtworkState {
	st := &ArtworkState{}
	for _, se := range events {
		st.ArtworkID = se.ArtworkID
		st.LastUpdated = se.Ts
		switch se.Type {
		case TypeCreated:
			st.Status = "created"
			st.DuplicateOf = ""
			st.LastScore = 0
		case TypeSkipped:
			var ev DuplicateSkipped
			_ = json.Unmarshal(se.Payload, &ev)
			st.Status = "skipped"
			st.DuplicateOf = ev.DuplicateOf
			st.LastScore = ev.Score
		case TypeFlagged:
			var ev DuplicateFlagged
			_ = json.Unmarshal(se.Payload, &ev)
			st.Status = "flagged"
			st.DuplicateOf = ev.SuspectedDuplicateOf
			st.LastScore = ev.Score
		case TypeFailed:
			st.Status = "failed"
		}
	}
	return st
}
