package models

import (
	"time"
)

// Coordinates is a plain lat/lon value pair. No identity, treated as immutable.
type Coordinates struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// SimilarityQuery describes the incoming record being checked for duplicates.
// Created fresh per deduplication check; never persisted.
type SimilarityQuery struct {
	Coordinates  Coordinates `json:"coordinates"`
	Title        *string     `json:"title,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
	RadiusMeters *float64    `json:"radius_meters,omitempty"` // informational; filtering happens in storage
}

// CandidateArtwork is an existing stored artwork supplied by the storage layer.
// Tags hold the raw JSON string as stored, in whatever shape the importer
// produced; parsing is the similarity engine's problem.
type CandidateArtwork struct {
	ID             string      `json:"id" db:"id"`
	Coordinates    Coordinates `json:"coordinates"`
	Title          *string     `json:"title,omitempty" db:"title"`
	Tags           *string     `json:"tags,omitempty" db:"tags"`
	TypeName       *string     `json:"type_name,omitempty" db:"type_name"`
	DistanceMeters *float64    `json:"distance_meters,omitempty" db:"distance_meters"`
	CreatedAt      *time.Time  `json:"created_at,omitempty" db:"created_at"`
}

// SignalType identifies one similarity dimension.
type SignalType string

const (
	SignalDistance SignalType = "distance"
	SignalTitle    SignalType = "title"
	SignalTags     SignalType = "tags"
)

// ThresholdBand is the discrete classification of a composite score.
type ThresholdBand string

const (
	ThresholdNone ThresholdBand = "none"
	ThresholdWarn ThresholdBand = "warn"
	ThresholdHigh ThresholdBand = "high"
)

// SimilaritySignal is one computed similarity dimension for a single
// query/candidate comparison. Ephemeral; produced and consumed in-process.
type SimilaritySignal struct {
	Type          SignalType             `json:"type"`
	RawScore      float64                `json:"raw_score"`      // 0..1 before weighting
	WeightedScore float64                `json:"weighted_score"` // raw * configured weight
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// SimilarityResult is the outcome of comparing one query against one candidate.
// OverallScore is the weighted sum of computed signals divided by the sum of
// the weights actually applied, so a skipped signal never drags the score down.
type SimilarityResult struct {
	ArtworkID    string                 `json:"artwork_id"`
	OverallScore float64                `json:"overall_score"`
	Signals      []SimilaritySignal     `json:"signals"`
	Threshold    ThresholdBand          `json:"threshold"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// DedupStats contains aggregate counters for the check/ingest surfaces.
type DedupStats struct {
	ChecksPerformed int64 `json:"checks_performed"`
	CandidatesSeen  int64 `json:"candidates_seen"`
	HighMatches     int64 `json:"high_matches"`
	WarnMatches     int64 `json:"warn_matches"`
}
