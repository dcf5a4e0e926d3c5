package testutil

import (
	"context"
	"sync"

	"artwork-dedup/internal/models"
	"artwork-dedup/pkg/geography"
)

// MockArtworkRepository implements domain.ArtworkRepository for tests.
// Candidates are held in memory; FindNearbyArtworks applies the same radius
// semantics as the SQL implementation.
type MockArtworkRepository struct {
	Mu        sync.Mutex
	Artworks  []models.CandidateArtwork
	FindErr   error
	InsertErr error
	Inserted  []models.CandidateArtwork
}

func NewMockArtworkRepository(artworks ...models.CandidateArtwork) *MockArtworkRepository {
	return &MockArtworkRepository{Artworks: artworks}
}

func (m *MockArtworkRepository) FindNearbyArtworks(ctx context.Context, center models.Coordinates, radiusMeters float64, limit int) ([]models.CandidateArtwork, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}

	var result []models.CandidateArtwork
	for _, a := range m.Artworks {
		d := geography.Distance(center, a.Coordinates)
		if d > radiusMeters {
			continue
		}
		c := a
		dist := d
		c.DistanceMeters = &dist
		result = append(result, c)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (m *MockArtworkRepository) InsertArtwork(ctx context.Context, artwork models.CandidateArtwork) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.Inserted = append(m.Inserted, artwork)
	m.Artworks = append(m.Artworks, artwork)
	return nil
}

func (m *MockArtworkRepository) CountArtworks(ctx context.Context) (int, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	return len(m.Artworks), nil
}
