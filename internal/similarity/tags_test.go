package similarity

import (
	"math"
	"reflect"
	"testing"
)

func TestParseTagValues(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"Flat array", `["sculpture","whale"]`, []string{"sculpture", "whale"}},
		{"Flat array skips non-strings", `["sculpture", 42, null, "whale"]`, []string{"sculpture", "whale"}},
		{"Flat object values", `{"material":"bronze","subject":"whale"}`, []string{"bronze", "whale"}},
		{"Flat object skips non-strings", `{"material":"bronze","year":1984}`, []string{"bronze"}},
		{"Nested tags object", `{"tags":{"material":"bronze","artist":"unknown"}}`, []string{"unknown", "bronze"}},
		{"Nested tags with non-strings", `{"tags":{"material":"steel","height":12.5}}`, []string{"steel"}},
		{"Empty array", `[]`, nil},
		{"Empty object", `{}`, nil},
		{"Empty string", ``, nil},
		{"Whitespace only", `   `, nil},
		{"Invalid JSON", `{not valid json`, nil},
		{"JSON scalar", `"sculpture"`, nil},
		{"JSON number", `42`, nil},
		{"Array of objects", `[{"a":"b"}]`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTagValues(tt.raw)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseTagValues(%q) = %v, want %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestParseTagValues_ObjectOrderDeterministic(t *testing.T) {
	raw := `{"z":"zebra","a":"anchor","m":"mural"}`
	first := ParseTagValues(raw)
	for i := 0; i < 20; i++ {
		if got := ParseTagValues(raw); !reflect.DeepEqual(got, first) {
			t.Fatalf("non-deterministic parse: %v vs %v", got, first)
		}
	}
	if !reflect.DeepEqual(first, []string{"anchor", "mural", "zebra"}) {
		t.Errorf("expected key-sorted values, got %v", first)
	}
}

func TestJaccardSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []string
		expected float64
		matched  []string
	}{
		{"Identical sets", []string{"sculpture", "whale"}, []string{"sculpture", "whale"}, 1.0, []string{"sculpture", "whale"}},
		{"Disjoint sets", []string{"mural"}, []string{"sculpture"}, 0.0, nil},
		{"Partial overlap", []string{"sculpture", "whale"}, []string{"sculpture", "orca"}, 1.0 / 3.0, []string{"sculpture"}},
		{"Case insensitive", []string{"Sculpture", "WHALE"}, []string{"sculpture", "whale"}, 1.0, []string{"sculpture", "whale"}},
		{"Duplicates collapse", []string{"whale", "whale"}, []string{"whale"}, 1.0, []string{"whale"}},
		{"Empty side", nil, []string{"whale"}, 0.0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, matched := jaccardSimilarity(tt.a, tt.b)
			if math.Abs(score-tt.expected) > 1e-9 {
				t.Errorf("jaccardSimilarity(%v, %v) = %.4f, want %.4f", tt.a, tt.b, score, tt.expected)
			}
			if len(matched) != len(tt.matched) {
				t.Errorf("matched = %v, want %v", matched, tt.matched)
				return
			}
			for i := range matched {
				if matched[i] != tt.matched[i] {
					t.Errorf("matched = %v, want %v", matched, tt.matched)
				}
			}
		})
	}
}
