package validation

import (
	"fmt"
	"math"
	"strings"

	"artwork-dedup/internal/models"
)

// The similarity engine assumes well-formed numeric coordinates; this package
// is the caller-side gate that enforces that before anything is scored.

// ValidateLatitude validates a latitude coordinate.
func ValidateLatitude(lat float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return fmt.Errorf("latitude must be a finite number")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	return nil
}

// ValidateLongitude validates a longitude coordinate.
func ValidateLongitude(lon float64) error {
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return fmt.Errorf("longitude must be a finite number")
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateTitle validates an optional query title.
func ValidateTitle(title *string) error {
	if title == nil {
		return nil
	}
	if len(strings.TrimSpace(*title)) > 500 {
		return fmt.Errorf("title must be less than 500 characters")
	}
	return nil
}

// ValidateTags validates an optional tag list.
func ValidateTags(tags []string) error {
	if len(tags) > 100 {
		return fmt.Errorf("at most 100 tags allowed")
	}
	for _, tag := range tags {
		if len(tag) > 200 {
			return fmt.Errorf("tag %q exceeds 200 characters", tag[:20]+"...")
		}
	}
	return nil
}

// ValidateQuery runs all checks on an incoming similarity query.
func ValidateQuery(q models.SimilarityQuery) error {
	if err := ValidateLatitude(q.Coordinates.Lat); err != nil {
		return err
	}
	if err := ValidateLongitude(q.Coordinates.Lon); err != nil {
		return err
	}
	if err := ValidateTitle(q.Title); err != nil {
		return err
	}
	if err := ValidateTags(q.Tags); err != nil {
		return err
	}
	if q.RadiusMeters != nil && (*q.RadiusMeters <= 0 || math.IsNaN(*q.RadiusMeters)) {
		return fmt.Errorf("radius must be a positive number")
	}
	return nil
}
