// Package domain defines the storage interfaces consumed by the dedup
// surfaces. Implementations live under internal/infrastructure.
package domain

import (
	"context"

	"artwork-dedup/internal/models"
)

// ArtworkRepository supplies candidate artworks for deduplication checks and
// persists records accepted by the ingest pipeline.
type ArtworkRepository interface {
	// FindNearbyArtworks returns stored artworks within radiusMeters of
	// center, nearest first, capped at limit. Tags come back as the raw JSON
	// string exactly as stored; parsing is the similarity engine's concern.
	FindNearbyArtworks(ctx context.Context, center models.Coordinates, radiusMeters float64, limit int) ([]models.CandidateArtwork, error)

	// InsertArtwork stores a new artwork record.
	InsertArtwork(ctx context.Context, artwork models.CandidateArtwork) error

	// CountArtworks returns the total number of stored artworks.
	CountArtworks(ctx context.Context) (int, error)
}
