// Package ingest runs the deduplication pass for mass-import batches.
// Each record is checked against nearby stored artworks before insertion;
// confident duplicates are skipped, borderline ones flagged for review.
package ingest

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"artwork-dedup/internal/constants"
	"artwork-dedup/internal/domain"
	"artwork-dedup/internal/models"
	"artwork-dedup/internal/similarity"
	errs "artwork-dedup/pkg/errors"
	"artwork-dedup/pkg/events"
)

// Record is one raw incoming artwork from an import batch.
type Record struct {
	ExternalID  string             `json:"external_id"`
	Coordinates models.Coordinates `json:"coordinates"`
	Title       *string            `json:"title,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	TypeName    *string            `json:"type_name,omitempty"`
}

// Action describes what the pipeline did with a record.
type Action string

const (
	ActionCreated Action = "created" // no duplicate found, inserted
	ActionSkipped Action = "skipped" // high-confidence duplicate, not inserted
	ActionFlagged Action = "flagged" // warn-level match, inserted but flagged
	ActionFailed  Action = "failed"  // storage error
)

// Result is the per-record outcome of an ingest run.
type Result struct {
	ExternalID string
	Action     Action
	BestMatch  *models.SimilarityResult
	Err        error
}

// Stats tracks pipeline counters. Read via Pipeline.Stats.
type Stats struct {
	TotalRecords      int64
	Created           int64
	SkippedDuplicates int64
	Flagged           int64
	Failed            int64
}

// Config tunes the pipeline.
type Config struct {
	WorkerCount   int
	JobTimeout    time.Duration
	RadiusMeters  float64
	MaxCandidates int
}

// DefaultConfig returns sensible pipeline defaults.
func DefaultConfig() Config {
	return Config{
		WorkerCount:   constants.IngestWorkerCountDefault,
		JobTimeout:    constants.IngestJobTimeoutDefault,
		RadiusMeters:  constants.CandidateRadiusMetersDefault,
		MaxCandidates: constants.CandidateLimitDefault,
	}
}

// Pipeline fans import records out to workers that each run a dedup check and
// decide the record's fate. Safe for a single Run at a time per instance.
type Pipeline struct {
	repo     domain.ArtworkRepository
	strategy similarity.Strategy
	audit    events.Store
	cfg      Config

	totalRecords int64
	created      int64
	skipped      int64
	flagged      int64
	failed       int64
}

func NewPipeline(repo domain.ArtworkRepository, strategy similarity.Strategy, cfg Config) *Pipeline {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = constants.IngestWorkerCountDefault
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = constants.IngestJobTimeoutDefault
	}
	if cfg.RadiusMeters <= 0 {
		cfg.RadiusMeters = constants.CandidateRadiusMetersDefault
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = constants.CandidateLimitDefault
	}
	return &Pipeline{repo: repo, strategy: strategy, cfg: cfg}
}

// WithAuditLog records every ingest decision to the given store.
// Append failures are logged, never fatal for the batch.
func (p *Pipeline) WithAuditLog(store events.Store) *Pipeline {
	p.audit = store
	return p
}

// Run processes the batch and returns one result per record, in completion
// order. Cancelling ctx stops workers after their current record.
func (p *Pipeline) Run(ctx context.Context, records []Record) []Result {
	jobs := make(chan Record)
	out := make(chan Result, len(records))

	var wg sync.WaitGroup
	for i := 0; i < p.cfg.WorkerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				out <- p.processRecord(ctx, record)
			}
		}()
	}

	atomic.AddInt64(&p.totalRecords, int64(len(records)))

feed:
	for _, record := range records {
		select {
		case jobs <- record:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(out)

	results := make([]Result, 0, len(records))
	for r := range out {
		results = append(results, r)
	}
	return results
}

func (p *Pipeline) processRecord(ctx context.Context, record Record) Result {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.JobTimeout)
	defer cancel()

	query := models.SimilarityQuery{
		Coordinates: record.Coordinates,
		Title:       record.Title,
		Tags:        record.Tags,
	}

	candidates, err := p.repo.FindNearbyArtworks(ctx, record.Coordinates, p.cfg.RadiusMeters, p.cfg.MaxCandidates)
	if err != nil {
		atomic.AddInt64(&p.failed, 1)
		p.recordEvent(ctx, events.IngestFailed{Base: p.eventBase(record), Reason: err.Error()})
		return Result{ExternalID: record.ExternalID, Action: ActionFailed, Err: err}
	}

	results := make([]models.SimilarityResult, 0, len(candidates))
	for _, candidate := range candidates {
		results = append(results, p.strategy.CalculateSimilarity(query, candidate))
	}
	similarity.SortByScore(results)

	var best *models.SimilarityResult
	if len(results) > 0 {
		best = &results[0]
	}

	if best != nil && best.Threshold == models.ThresholdHigh {
		atomic.AddInt64(&p.skipped, 1)
		explanation := similarity.Explain(*best)
		log.Printf("Ingest: skipping %s as duplicate of %s (%s)",
			record.ExternalID, best.ArtworkID, explanation)
		p.recordEvent(ctx, events.DuplicateSkipped{
			Base:        p.eventBase(record),
			DuplicateOf: best.ArtworkID,
			Score:       best.OverallScore,
			Explanation: explanation,
		})
		return Result{ExternalID: record.ExternalID, Action: ActionSkipped, BestMatch: best}
	}

	if err := p.insertRecord(ctx, record); err != nil {
		atomic.AddInt64(&p.failed, 1)
		p.recordEvent(ctx, events.IngestFailed{Base: p.eventBase(record), Reason: err.Error()})
		return Result{ExternalID: record.ExternalID, Action: ActionFailed, BestMatch: best, Err: err}
	}

	if best != nil && best.Threshold == models.ThresholdWarn {
		atomic.AddInt64(&p.flagged, 1)
		explanation := similarity.Explain(*best)
		log.Printf("Ingest: created %s with possible duplicate %s (%s)",
			record.ExternalID, best.ArtworkID, explanation)
		p.recordEvent(ctx, events.DuplicateFlagged{
			Base:                 p.eventBase(record),
			SuspectedDuplicateOf: best.ArtworkID,
			Score:                best.OverallScore,
			Explanation:          explanation,
		})
		return Result{ExternalID: record.ExternalID, Action: ActionFlagged, BestMatch: best}
	}

	atomic.AddInt64(&p.created, 1)
	p.recordEvent(ctx, events.ArtworkCreated{Base: p.eventBase(record), Source: "import"})
	return Result{ExternalID: record.ExternalID, Action: ActionCreated, BestMatch: best}
}

func (p *Pipeline) eventBase(record Record) events.Base {
	return events.Base{Ts: time.Now(), AID: record.ExternalID}
}

func (p *Pipeline) recordEvent(ctx context.Context, e events.Event) {
	if p.audit == nil {
		return
	}
	if err := p.audit.Append(ctx, e); err != nil {
		log.Printf("Ingest: audit append failed for %s: %v", e.ArtworkID(), err)
	}
}

func (p *Pipeline) insertRecord(ctx context.Context, record Record) error {
	artwork := models.CandidateArtwork{
		ID:          record.ExternalID,
		Coordinates: record.Coordinates,
		Title:       record.Title,
		TypeName:    record.TypeName,
	}
	if len(record.Tags) > 0 {
		data, err := json.Marshal(record.Tags)
		if err != nil {
			return errs.NewIngest("ingest.insertRecord", "cannot serialize tags", err)
		}
		s := string(data)
		artwork.Tags = &s
	}
	return p.repo.InsertArtwork(ctx, artwork)
}

// Stats returns a snapshot of the pipeline counters.
func (p *Pipeline) Stats() Stats {
	return Stats{
		TotalRecords:      atomic.LoadInt64(&p.totalRecords),
		Created:           atomic.LoadInt64(&p.created),
		SkippedDuplicates: atomic.LoadInt64(&p.skipped),
		Flagged:           atomic.LoadInt64(&p.flagged),
		Failed:            atomic.LoadInt64(&p.failed),
	}
}
