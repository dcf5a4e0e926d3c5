// Package repository provides the MySQL implementation of the domain
// repository interfaces.
package repository

import (
	"context"
	"database/sql"
	"sort"

	"artwork-dedup/internal/domain"
	"artwork-dedup/internal/models"
	"artwork-dedup/pkg/database"
	errs "artwork-dedup/pkg/errors"
	"artwork-dedup/pkg/geography"
)

// SQLRepository implements domain.ArtworkRepository on MySQL.
type SQLRepository struct {
	db *database.DB
}

func NewSQLRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

var _ domain.ArtworkRepository = (*SQLRepository)(nil)

// FindNearbyArtworks prefilters with a lat/lon bounding box the index can
// serve, then computes exact haversine distances in Go and drops corner rows
// outside the radius. Results come back nearest first with DistanceMeters set.
func (r *SQLRepository) FindNearbyArtworks(ctx context.Context, center models.Coordinates, radiusMeters float64, limit int) ([]models.CandidateArtwork, error) {
	box := geography.BoxAround(center, radiusMeters)

	query := `
		SELECT id, lat, lon, title, tags, type_name, created_at
		FROM artworks
		WHERE status = 'approved'
		  AND lat BETWEEN ? AND ?
		  AND lon BETWEEN ? AND ?`

	ctx, cancel := r.db.ReadContext(ctx)
	defer cancel()

	rows, err := r.db.Conn().QueryContext(ctx, query, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon)
	if err != nil {
		return nil, errs.NewStorage("repository.FindNearbyArtworks", "bounding box query failed", err)
	}
	defer rows.Close()

	var candidates []models.CandidateArtwork
	for rows.Next() {
		var (
			c         models.CandidateArtwork
			title     sql.NullString
			tags      sql.NullString
			typeName  sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&c.ID, &c.Coordinates.Lat, &c.Coordinates.Lon, &title, &tags, &typeName, &createdAt); err != nil {
			return nil, errs.NewStorage("repository.FindNearbyArtworks", "row scan failed", err)
		}
		if title.Valid {
			c.Title = &title.String
		}
		if tags.Valid {
			c.Tags = &tags.String
		}
		if typeName.Valid {
			c.TypeName = &typeName.String
		}
		if createdAt.Valid {
			t := createdAt.Time
			c.CreatedAt = &t
		}

		distance := geography.Distance(center, c.Coordinates)
		if distance > radiusMeters {
			continue // bounding box corner, outside the true radius
		}
		c.DistanceMeters = &distance
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewStorage("repository.FindNearbyArtworks", "row iteration failed", err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return *candidates[i].DistanceMeters < *candidates[j].DistanceMeters
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

func (r *SQLRepository) InsertArtwork(ctx context.Context, artwork models.CandidateArtwork) error {
	query := `
		INSERT INTO artworks (id, lat, lon, title, tags, type_name, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 'approved', NOW())`

	ctx, cancel := r.db.WriteContext(ctx)
	defer cancel()

	_, err := r.db.Conn().ExecContext(ctx, query,
		artwork.ID,
		artwork.Coordinates.Lat,
		artwork.Coordinates.Lon,
		nullable(artwork.Title),
		nullable(artwork.Tags),
		nullable(artwork.TypeName),
	)
	if err != nil {
		return errs.NewStorage("repository.InsertArtwork", "insert failed", err)
	}
	return nil
}

func (r *SQLRepository) CountArtworks(ctx context.Context) (int, error) {
	ctx, cancel := r.db.ReadContext(ctx)
	defer cancel()

	var count int
	if err := r.db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM artworks WHERE status = 'approved'`).Scan(&count); err != nil {
		return 0, errs.NewStorage("repository.CountArtworks", "count query failed", err)
	}
	return count, nil
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
