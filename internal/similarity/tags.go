package similarity

import (
	"encoding/json"
	"sort"
	"strings"
)

// ParseTagValues extracts a flat list of tag values from the raw JSON string
// stored on a candidate. Imported data is inconsistent, so three shapes are
// tolerated:
//
//	["sculpture","whale"]                      flat array of strings
//	{"material":"bronze","subject":"whale"}    object; string values become tags
//	{"tags":{"material":"bronze"}}             structured-tag convention, nested object
//
// Anything malformed, including invalid JSON, yields an empty slice rather
// than an error; the tag signal is simply skipped for that comparison.
func ParseTagValues(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	// Flat array of strings.
	var arr []interface{}
	if err := json.Unmarshal([]byte(trimmed), &arr); err == nil {
		var values []string
		for _, v := range arr {
			if s, ok := v.(string); ok && s != "" {
				values = append(values, s)
			}
		}
		return values
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return nil
	}

	// Structured-tag convention: {"tags": {...}} flattens the nested object.
	if nested, ok := obj["tags"].(map[string]interface{}); ok {
		return stringValues(nested)
	}

	return stringValues(obj)
}

// stringValues collects the string-typed values of an object in key order so
// output is deterministic; non-string values are ignored.
func stringValues(obj map[string]interface{}) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var values []string
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && s != "" {
			values = append(values, s)
		}
	}
	return values
}

// jaccardSimilarity returns |intersection| / |union| over the lower-cased tag
// value sets, together with the matched subset for explanation metadata.
func jaccardSimilarity(a, b []string) (float64, []string) {
	setA := toLowerSet(a)
	setB := toLowerSet(b)

	if len(setA) == 0 || len(setB) == 0 {
		return 0, nil
	}

	var matched []string
	union := make(map[string]bool, len(setA)+len(setB))
	for v := range setA {
		union[v] = true
		if setB[v] {
			matched = append(matched, v)
		}
	}
	for v := range setB {
		union[v] = true
	}
	sort.Strings(matched)

	return float64(len(matched)) / float64(len(union)), matched
}

func toLowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = true
		}
	}
	return set
}
