package validation

import (
	"math"
	"strings"
	"testing"

	"artwork-dedup/internal/models"
)

func TestValidateLatitude(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		wantErr bool
	}{
		{"Valid downtown", 49.2827, false},
		{"North pole", 90, false},
		{"South pole", -90, false},
		{"Too far north", 90.01, true},
		{"Too far south", -90.01, true},
		{"NaN", math.NaN(), true},
		{"Infinity", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLatitude(tt.lat)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLatitude(%v) error = %v, wantErr %v", tt.lat, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLongitude(t *testing.T) {
	tests := []struct {
		name    string
		lon     float64
		wantErr bool
	}{
		{"Valid", -123.1207, false},
		{"Date line east", 180, false},
		{"Date line west", -180, false},
		{"Out of range", 180.5, true},
		{"NaN", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLongitude(tt.lon)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLongitude(%v) error = %v, wantErr %v", tt.lon, err, tt.wantErr)
			}
		})
	}
}

func TestValidateQuery(t *testing.T) {
	longTitle := strings.Repeat("x", 501)
	negRadius := -5.0

	tests := []struct {
		name    string
		query   models.SimilarityQuery
		wantErr bool
	}{
		{
			name:  "Coordinates only",
			query: models.SimilarityQuery{Coordinates: models.Coordinates{Lat: 49.2827, Lon: -123.1207}},
		},
		{
			name: "Full query",
			query: models.SimilarityQuery{
				Coordinates: models.Coordinates{Lat: 49.2827, Lon: -123.1207},
				Title:       ptr("Digital Orca"),
				Tags:        []string{"sculpture", "whale"},
			},
		},
		{
			name:    "Bad latitude",
			query:   models.SimilarityQuery{Coordinates: models.Coordinates{Lat: 120, Lon: 0}},
			wantErr: true,
		},
		{
			name: "Oversized title",
			query: models.SimilarityQuery{
				Coordinates: models.Coordinates{Lat: 0, Lon: 0},
				Title:       &longTitle,
			},
			wantErr: true,
		},
		{
			name: "Negative radius",
			query: models.SimilarityQuery{
				Coordinates:  models.Coordinates{Lat: 0, Lon: 0},
				RadiusMeters: &negRadius,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.query)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQuery() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func ptr(s string) *string { return &s }
