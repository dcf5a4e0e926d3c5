package events

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_OrderingPerArtwork(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	evs := []Event{
		DuplicateFlagged{Base: Base{Ts: base, AID: "aw-1"}, SuspectedDuplicateOf: "aw-9", Score: 0.7},
		ArtworkCreated{Base: Base{Ts: base.Add(time.Second), AID: "aw-2"}},
		ArtworkCreated{Base: Base{Ts: base.Add(2 * time.Second), AID: "aw-1"}},
	}
	if err := store.Append(ctx, evs...); err != nil {
		t.Fatalf("unexpected: %+v", err)
	}

	got, err := store.ListByArtwork(ctx, "aw-1")
	if err != nil {
		t.Fatalf("unexpected: %+v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events for aw-1, got %d", len(got))
	}
	if got[0].Type != TypeFlagged || got[1].Type != TypeCreated {
		t.Fatalf("wrong order: %s, %s", got[0].Type, got[1].Type)
	}
	if got[0].Seq >= got[1].Seq {
		t.Fatalf("seq not monotonic: %d, %d", got[0].Seq, got[1].Seq)
	}
}

func TestReplay_LastDecisionWins(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected: %+v", err)
		}
	}
	must(store.Append(ctx, DuplicateSkipped{
		Base:        Base{Ts: base, AID: "aw-5"},
		DuplicateOf: "aw-2",
		Score:       0.91,
	}))
	must(store.Append(ctx, DuplicateFlagged{
		Base:                 Base{Ts: base.Add(time.Minute), AID: "aw-5"},
		SuspectedDuplicateOf: "aw-3",
		Score:                0.68,
	}))

	evs, err := store.ListByArtwork(ctx, "aw-5")
	if err != nil {
		t.Fatalf("unexpected: %+v", err)
	}
	st := Replay(evs)
	if st.Status != "flagged" {
		t.Fatalf("expected flagged, got %q", st.Status)
	}
	if st.DuplicateOf != "aw-3" {
		t.Fatalf("expected aw-3, got %q", st.DuplicateOf)
	}
	if st.LastScore != 0.68 {
		t.Fatalf("expected 0.68, got %v", st.LastScore)
	}
	if !st.LastUpdated.Equal(base.Add(time.Minute)) {
		t.Fatalf("wrong timestamp: %v", st.LastUpdated)
	}
}

func TestReplay_CreatedClearsDuplicateInfo(t *testing.T) {
	evs := []StoredEvent{
		{Seq: 1, ArtworkID: "aw-7", Type: TypeSkipped, Ts: time.Now(),
			Payload: []byte(`{"artwork_id":"aw-7","duplicate_of":"aw-1","score":0.85}`)},
		{Seq: 2, ArtworkID: "aw-7", Type: TypeCreated, Ts: time.Now()},
	}
	st := Replay(evs)
	if st.Status != "created" {
		t.Fatalf("expected created, got %q", st.Status)
	}
	if st.DuplicateOf != "" || st.LastScore != 0 {
		t.Fatalf("duplicate info not cleared: %+v", st)
	}
}
