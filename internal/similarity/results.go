package similarity

import (
	"fmt"
	"sort"
	"strings"

	"artwork-dedup/internal/models"
)

// Cutoffs below which a signal is considered minor and left out of
// explanations. Distance is always shown.
const (
	explainTitleCutoff = 0.5
	explainTagCutoff   = 0.3
)

// SortByScore sorts results in place, descending by overall score. The sort is
// stable so candidates with equal scores keep their storage order.
func SortByScore(results []models.SimilarityResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})
}

// FilterByThreshold keeps results at or above the given band: "warn" keeps
// warn and high, "high" keeps only high. Filtering by "none" returns
// everything.
func FilterByThreshold(results []models.SimilarityResult, band models.ThresholdBand) []models.SimilarityResult {
	filtered := make([]models.SimilarityResult, 0, len(results))
	for _, r := range results {
		switch band {
		case models.ThresholdHigh:
			if r.Threshold == models.ThresholdHigh {
				filtered = append(filtered, r)
			}
		case models.ThresholdWarn:
			if r.Threshold == models.ThresholdHigh || r.Threshold == models.ThresholdWarn {
				filtered = append(filtered, r)
			}
		default:
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Explain renders a short human-readable summary of the contributing signals
// for moderation UI and logs, e.g.
// "15m away, similar title (87%), 2 matching tags - 84% match".
func Explain(result models.SimilarityResult) string {
	var parts []string

	for _, sig := range result.Signals {
		switch sig.Type {
		case models.SignalDistance:
			meters := 0.0
			if d, ok := sig.Metadata["distance_meters"].(float64); ok {
				meters = d
			}
			parts = append(parts, fmt.Sprintf("%.0fm away", meters))
		case models.SignalTitle:
			if sig.RawScore > explainTitleCutoff {
				parts = append(parts, fmt.Sprintf("similar title (%.0f%%)", sig.RawScore*100))
			}
		case models.SignalTags:
			if sig.RawScore > explainTagCutoff {
				matched, _ := sig.Metadata["matched_tags"].([]string)
				parts = append(parts, fmt.Sprintf("%d matching tags", len(matched)))
			}
		}
	}

	return fmt.Sprintf("%s - %.0f%% match", strings.Join(parts, ", "), result.OverallScore*100)
}
