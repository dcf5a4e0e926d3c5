// Package api exposes the in-process dedup engine over HTTP for the
// submission frontend and moderation tools.
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"artwork-dedup/internal/domain"
	"artwork-dedup/internal/models"
	"artwork-dedup/internal/similarity"
	"artwork-dedup/internal/validation"
	"artwork-dedup/pkg/metrics"
	"artwork-dedup/pkg/monitoring"
)

// Verdict is the caller-facing duplicate decision for a whole check.
type Verdict string

const (
	// VerdictBlock asks the UI to require explicit confirmation before saving.
	VerdictBlock Verdict = "block"
	// VerdictWarn asks the UI to show a duplicate warning banner.
	VerdictWarn Verdict = "warn"
	// VerdictAllow lets the submission through silently.
	VerdictAllow Verdict = "allow"
)

var (
	mChecks      = metrics.Default.Counter("similarity_checks_total", "Similarity checks performed")
	mCandidates  = metrics.Default.Counter("similarity_candidates_total", "Candidates scored across all checks")
	mHighMatches = metrics.Default.Counter("similarity_high_matches_total", "Checks that found at least one high-confidence duplicate")
	mWarnMatches = metrics.Default.Counter("similarity_warn_matches_total", "Checks that found warn-level duplicates only")
)

// CheckResponse is the payload returned by the check-similarity endpoint.
type CheckResponse struct {
	Verdict           Verdict       `json:"verdict"`
	CandidatesChecked int           `json:"candidates_checked"`
	Matches           []MatchResult `json:"matches"`
}

// MatchResult pairs a similarity result with its rendered explanation.
type MatchResult struct {
	models.SimilarityResult
	Explanation string `json:"explanation"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// CheckSimilarityHandler scores an incoming submission against stored
// artworks near its coordinates and returns sorted warn-or-better matches.
func CheckSimilarityHandler(repo domain.ArtworkRepository, strategy similarity.Strategy, radiusMeters float64, limit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var query models.SimilarityQuery
		if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		if err := validation.ValidateQuery(query); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		radius := radiusMeters
		if query.RadiusMeters != nil && *query.RadiusMeters < radius {
			radius = *query.RadiusMeters
		}

		candidates, err := repo.FindNearbyArtworks(r.Context(), query.Coordinates, radius, limit)
		if err != nil {
			log.Printf("Error fetching candidates: %v", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "candidate lookup failed"})
			return
		}

		results := make([]models.SimilarityResult, 0, len(candidates))
		for _, candidate := range candidates {
			results = append(results, strategy.CalculateSimilarity(query, candidate))
		}

		similarity.SortByScore(results)
		relevant := similarity.FilterByThreshold(results, models.ThresholdWarn)

		matches := make([]MatchResult, 0, len(relevant))
		for _, result := range relevant {
			matches = append(matches, MatchResult{
				SimilarityResult: result,
				Explanation:      similarity.Explain(result),
			})
		}

		verdict := classifyVerdict(relevant)
		recordCheckMetrics(verdict, len(candidates))

		writeJSON(w, http.StatusOK, CheckResponse{
			Verdict:           verdict,
			CandidatesChecked: len(candidates),
			Matches:           matches,
		})
	}
}

func classifyVerdict(relevant []models.SimilarityResult) Verdict {
	verdict := VerdictAllow
	for _, r := range relevant {
		if r.Threshold == models.ThresholdHigh {
			return VerdictBlock
		}
		verdict = VerdictWarn
	}
	return verdict
}

func recordCheckMetrics(verdict Verdict, candidates int) {
	mChecks.Inc(1)
	mCandidates.Inc(int64(candidates))
	switch verdict {
	case VerdictBlock:
		mHighMatches.Inc(1)
	case VerdictWarn:
		mWarnMatches.Inc(1)
	}
}

// StatsHandler reports aggregate dedup activity and corpus size.
func StatsHandler(repo domain.ArtworkRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := repo.CountArtworks(r.Context())
		if err != nil {
			log.Printf("Error counting artworks: %v", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "stats unavailable"})
			return
		}

		requests, avgMs, p50Ms, p95Ms := monitoring.Default.Snapshot()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"artworks_total":   total,
			"checks_performed": mChecks.Get(),
			"candidates_seen":  mCandidates.Get(),
			"high_matches":     mHighMatches.Get(),
			"warn_matches":     mWarnMatches.Get(),
			"requests_total":   requests,
			"latency_avg_ms":   avgMs,
			"latency_p50_ms":   p50Ms,
			"latency_p95_ms":   p95Ms,
		})
	}
}

// Pinger is the narrow health-check dependency; satisfied by *database.DB.
type Pinger interface {
	Ping() error
}

// HealthHandler reports liveness and database connectivity.
func HealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]string{"status": status})
	}
}

// NewRouter assembles the HTTP surface.
func NewRouter(repo domain.ArtworkRepository, strategy similarity.Strategy, db Pinger, radiusMeters float64, limit int, metricsEnabled bool, metricsPath string) *mux.Router {
	router := mux.NewRouter()
	router.Use(mux.MiddlewareFunc(monitoring.Default.Middleware))

	apiV1 := router.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/artworks/check-similarity", CheckSimilarityHandler(repo, strategy, radiusMeters, limit)).Methods(http.MethodPost)
	apiV1.HandleFunc("/stats", StatsHandler(repo)).Methods(http.MethodGet)

	router.HandleFunc("/health", HealthHandler(db)).Methods(http.MethodGet)
	if metricsEnabled {
		router.HandleFunc(metricsPath, metrics.Default.Handler()).Methods(http.MethodGet)
	}

	return router
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
