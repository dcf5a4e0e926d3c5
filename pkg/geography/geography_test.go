package geography

import (
	"math"
	"testing"

	"artwork-dedup/internal/models"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name      string
		a, b      models.Coordinates
		expected  float64
		tolerance float64
	}{
		{
			name:      "Identical points",
			a:         models.Coordinates{Lat: 49.2827, Lon: -123.1207},
			b:         models.Coordinates{Lat: 49.2827, Lon: -123.1207},
			expected:  0,
			tolerance: 0.001,
		},
		{
			name: "Vancouver downtown block",
			// Digital Orca to Olympic Cauldron, roughly 120m apart
			a:         models.Coordinates{Lat: 49.2886, Lon: -123.1112},
			b:         models.Coordinates{Lat: 49.2875, Lon: -123.1115},
			expected:  124,
			tolerance: 15,
		},
		{
			name:      "One degree of latitude",
			a:         models.Coordinates{Lat: 0, Lon: 0},
			b:         models.Coordinates{Lat: 1, Lon: 0},
			expected:  111195,
			tolerance: 100,
		},
		{
			name:      "Vancouver to Toronto",
			a:         models.Coordinates{Lat: 49.2827, Lon: -123.1207},
			b:         models.Coordinates{Lat: 43.6532, Lon: -79.3832},
			expected:  3358000,
			tolerance: 10000,
		},
		{
			name:      "Antipodal points",
			a:         models.Coordinates{Lat: 0, Lon: 0},
			b:         models.Coordinates{Lat: 0, Lon: 180},
			expected:  math.Pi * 6371000,
			tolerance: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.expected) > tt.tolerance {
				t.Errorf("Distance() = %.1f, want %.1f ± %.1f", got, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := models.Coordinates{Lat: 49.2827, Lon: -123.1207}
	b := models.Coordinates{Lat: 49.2886, Lon: -123.1112}
	if d1, d2 := Distance(a, b), Distance(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("Distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestBoxAround(t *testing.T) {
	center := models.Coordinates{Lat: 49.2827, Lon: -123.1207}
	box := BoxAround(center, 500)

	if box.MinLat >= center.Lat || box.MaxLat <= center.Lat {
		t.Errorf("latitude bounds do not contain center: %+v", box)
	}
	if box.MinLon >= center.Lon || box.MaxLon <= center.Lon {
		t.Errorf("longitude bounds do not contain center: %+v", box)
	}

	// Corners must be at least the radius away, edges no closer than radius.
	north := models.Coordinates{Lat: box.MaxLat, Lon: center.Lon}
	if d := Distance(center, north); d < 499 {
		t.Errorf("north edge only %.1fm from center, want >= 500", d)
	}
	east := models.Coordinates{Lat: center.Lat, Lon: box.MaxLon}
	if d := Distance(center, east); d < 499 {
		t.Errorf("east edge only %.1fm from center, want >= 500", d)
	}
}

func TestBoxAround_NearPole(t *testing.T) {
	center := models.Coordinates{Lat: 89.9999, Lon: 0}
	box := BoxAround(center, 1000)
	if box.MinLon > -179 || box.MaxLon < 179 {
		t.Errorf("expected near-full longitude span near pole, got %+v", box)
	}
}

func BenchmarkDistance(b *testing.B) {
	p1 := models.Coordinates{Lat: 49.2827, Lon: -123.1207}
	p2 := models.Coordinates{Lat: 49.2886, Lon: -123.1112}
	for i := 0; i < b.N; i++ {
		Distance(p1, p2)
	}
}
