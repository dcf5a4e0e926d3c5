// Package similarity implements the artwork deduplication scoring engine.
// It combines geographic distance, fuzzy title matching, and tag-set overlap
// into one composite confidence score classified against warn/high thresholds.
// Everything in this package is pure and safe for concurrent use.
package similarity

import (
	"artwork-dedup/internal/models"
	"artwork-dedup/pkg/geography"
)

// Strategy is the capability interface for one query/candidate comparison.
// Alternate implementations can be substituted without touching callers.
type Strategy interface {
	CalculateSimilarity(query models.SimilarityQuery, candidate models.CandidateArtwork) models.SimilarityResult
}

// DefaultStrategy is the weighted multi-signal implementation of Strategy.
type DefaultStrategy struct {
	cfg Config
}

// NewDefaultStrategy creates a strategy with the given configuration.
// The config is assumed validated; run Config.Validate at startup.
func NewDefaultStrategy(cfg Config) *DefaultStrategy {
	return &DefaultStrategy{cfg: cfg}
}

// NewDefault creates a strategy with production default configuration.
func NewDefault() *DefaultStrategy { return NewDefaultStrategy(DefaultConfig()) }

// Config returns the strategy's configuration. Handy for callers that render
// thresholds in explanations or UI.
func (s *DefaultStrategy) Config() Config { return s.cfg }

// CalculateSimilarity scores one candidate against the query. The distance
// signal is always computed; title and tag signals only when both sides carry
// the field. The overall score divides by the weights of the signals actually
// computed, so a missing title never drags a candidate down.
func (s *DefaultStrategy) CalculateSimilarity(query models.SimilarityQuery, candidate models.CandidateArtwork) models.SimilarityResult {
	signals := make([]models.SimilaritySignal, 0, 3)

	distSignal, distanceMeters := s.distanceSignal(query, candidate)
	signals = append(signals, distSignal)

	if titleSignal, ok := s.titleSignal(query, candidate); ok {
		signals = append(signals, titleSignal)
	}
	if tagSignal, ok := s.tagSignal(query, candidate); ok {
		signals = append(signals, tagSignal)
	}

	var weightedSum, weightTotal float64
	for _, sig := range signals {
		weightedSum += sig.WeightedScore
		weightTotal += s.cfg.weightFor(sig.Type)
	}

	overall := 0.0
	if weightTotal > 0 {
		overall = weightedSum / weightTotal
	}

	metadata := map[string]interface{}{
		"distance_meters": distanceMeters,
	}
	if candidate.Title != nil {
		metadata["title"] = *candidate.Title
	}
	if candidate.Tags != nil {
		if parsed := ParseTagValues(*candidate.Tags); len(parsed) > 0 {
			metadata["tags"] = parsed
		}
	}

	return models.SimilarityResult{
		ArtworkID:    candidate.ID,
		OverallScore: overall,
		Signals:      signals,
		Threshold:    s.classify(overall),
		Metadata:     metadata,
	}
}

// distanceSignal is mandatory; coordinates are required on both sides.
func (s *DefaultStrategy) distanceSignal(query models.SimilarityQuery, candidate models.CandidateArtwork) (models.SimilaritySignal, float64) {
	distance := geography.Distance(query.Coordinates, candidate.Coordinates)

	var raw float64
	switch {
	case distance <= s.cfg.OptimalDistanceMeters:
		raw = 1.0
	case distance >= s.cfg.MaxDistanceMeters:
		raw = 0.0
	default:
		raw = 1 - (distance-s.cfg.OptimalDistanceMeters)/(s.cfg.MaxDistanceMeters-s.cfg.OptimalDistanceMeters)
	}

	return models.SimilaritySignal{
		Type:          models.SignalDistance,
		RawScore:      raw,
		WeightedScore: raw * s.cfg.DistanceWeight,
		Metadata: map[string]interface{}{
			"distance_meters": distance,
		},
	}, distance
}

// titleSignal is computed only when both sides have a non-empty title. A title
// that normalizes to something shorter than MinTitleLength still produces a
// signal, scored 0, so it counts in the weight denominator.
func (s *DefaultStrategy) titleSignal(query models.SimilarityQuery, candidate models.CandidateArtwork) (models.SimilaritySignal, bool) {
	if query.Title == nil || *query.Title == "" || candidate.Title == nil || *candidate.Title == "" {
		return models.SimilaritySignal{}, false
	}

	norm1 := normalizeTitle(*query.Title, s.cfg.StopWords)
	norm2 := normalizeTitle(*candidate.Title, s.cfg.StopWords)

	metadata := map[string]interface{}{
		"query_title":     norm1,
		"candidate_title": norm2,
	}

	raw := 0.0
	if len([]rune(norm1)) < s.cfg.MinTitleLength || len([]rune(norm2)) < s.cfg.MinTitleLength {
		metadata["reason"] = "title too short after normalization"
	} else {
		raw = jaroWinkler(norm1, norm2)
	}

	return models.SimilaritySignal{
		Type:          models.SignalTitle,
		RawScore:      raw,
		WeightedScore: raw * s.cfg.TitleWeight,
		Metadata:      metadata,
	}, true
}

// tagSignal is computed only when the query carries tags and the candidate's
// stored tag JSON parses to a non-empty value set.
func (s *DefaultStrategy) tagSignal(query models.SimilarityQuery, candidate models.CandidateArtwork) (models.SimilaritySignal, bool) {
	if len(query.Tags) == 0 || candidate.Tags == nil {
		return models.SimilaritySignal{}, false
	}

	candidateTags := ParseTagValues(*candidate.Tags)
	if len(candidateTags) == 0 {
		return models.SimilaritySignal{}, false
	}

	raw, matched := jaccardSimilarity(query.Tags, candidateTags)

	return models.SimilaritySignal{
		Type:          models.SignalTags,
		RawScore:      raw,
		WeightedScore: raw * s.cfg.TagWeight,
		Metadata: map[string]interface{}{
			"query_tags":     query.Tags,
			"candidate_tags": candidateTags,
			"matched_tags":   matched,
		},
	}, true
}

func (s *DefaultStrategy) classify(score float64) models.ThresholdBand {
	switch {
	case score >= s.cfg.HighThreshold:
		return models.ThresholdHigh
	case score >= s.cfg.WarnThreshold:
		return models.ThresholdWarn
	default:
		return models.ThresholdNone
	}
}
