package similarity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"artwork-dedup/internal/models"
	errs "artwork-dedup/pkg/errors"
)

// Config holds the static weights, thresholds, and normalization parameters
// for the scoring strategy. It is passed into the strategy constructor and
// never mutated at runtime; tests construct alternates freely.
type Config struct {
	// Score thresholds. High must be strictly greater than Warn.
	WarnThreshold float64 `yaml:"warn_threshold"`
	HighThreshold float64 `yaml:"high_threshold"`

	// Signal weights. Must sum to 1.0.
	DistanceWeight float64 `yaml:"distance_weight"`
	TitleWeight    float64 `yaml:"title_weight"`
	TagWeight      float64 `yaml:"tag_weight"`

	// Distance normalization: score is 1.0 at or under OptimalDistanceMeters,
	// 0.0 at or beyond MaxDistanceMeters, linear in between.
	OptimalDistanceMeters float64 `yaml:"optimal_distance_meters"`
	MaxDistanceMeters     float64 `yaml:"max_distance_meters"`

	// Title matching. Normalized titles shorter than MinTitleLength score 0.
	MinTitleLength int      `yaml:"min_title_length"`
	StopWords      []string `yaml:"stop_words,omitempty"`
}

// DefaultConfig returns the production defaults. Change deliberately; the
// threshold bands these produce drive moderation UI behavior.
func DefaultConfig() Config {
	return Config{
		WarnThreshold:         0.65,
		HighThreshold:         0.8,
		DistanceWeight:        0.5,
		TitleWeight:           0.35,
		TagWeight:             0.15,
		OptimalDistanceMeters: 50,
		MaxDistanceMeters:     1000,
		MinTitleLength:        3,
		StopWords:             defaultStopWords(),
	}
}

func defaultStopWords() []string {
	return []string{
		"the", "a", "an", "and", "or", "but",
		"in", "on", "at", "to", "for", "of", "with", "by",
	}
}

const weightSumTolerance = 1e-9

// Validate checks the configuration invariants. Callers run this once at
// startup; the per-comparison scoring path assumes a valid config.
func (c Config) Validate() error {
	var problems []string

	if c.HighThreshold <= c.WarnThreshold {
		problems = append(problems, fmt.Sprintf("high_threshold (%.2f) must be greater than warn_threshold (%.2f)", c.HighThreshold, c.WarnThreshold))
	}
	if c.WarnThreshold < 0 || c.HighThreshold > 1 {
		problems = append(problems, "thresholds must be within [0,1]")
	}
	if sum := c.DistanceWeight + c.TitleWeight + c.TagWeight; sum < 1-weightSumTolerance || sum > 1+weightSumTolerance {
		problems = append(problems, fmt.Sprintf("signal weights must sum to 1.0, got %.4f", sum))
	}
	if c.DistanceWeight < 0 || c.TitleWeight < 0 || c.TagWeight < 0 {
		problems = append(problems, "signal weights must be non-negative")
	}
	if c.OptimalDistanceMeters < 0 || c.MaxDistanceMeters <= c.OptimalDistanceMeters {
		problems = append(problems, fmt.Sprintf("max_distance_meters (%.0f) must be greater than optimal_distance_meters (%.0f)", c.MaxDistanceMeters, c.OptimalDistanceMeters))
	}
	if c.MinTitleLength < 1 {
		problems = append(problems, "min_title_length must be at least 1")
	}

	if len(problems) > 0 {
		msg := problems[0]
		for _, p := range problems[1:] {
			msg += "; " + p
		}
		return errs.NewValidation("similarity.Config.Validate", msg, nil)
	}
	return nil
}

// weightFor maps a signal type to its configured weight.
func (c Config) weightFor(t models.SignalType) float64 {
	switch t {
	case models.SignalDistance:
		return c.DistanceWeight
	case models.SignalTitle:
		return c.TitleWeight
	case models.SignalTags:
		return c.TagWeight
	default:
		return 0
	}
}

// LoadConfig reads a Config from a YAML file and validates it. Fields omitted
// in the file keep their defaults, so a file can override just the weights.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errs.NewValidation("similarity.LoadConfig", fmt.Sprintf("cannot read config file %s", path), err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errs.NewValidation("similarity.LoadConfig", fmt.Sprintf("cannot parse config file %s", path), err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
