package similarity

import (
	"regexp"
	"strings"
)

// nonWordRe strips punctuation before tokenizing; unicode letters and digits
// survive so non-English titles still compare.
var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

// normalizeTitle lowercases, strips punctuation, removes stop words, and
// collapses whitespace. The result is what the fuzzy matcher actually compares.
func normalizeTitle(title string, stopWords []string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))
	cleaned := nonWordRe.ReplaceAllString(lowered, "")

	stop := make(map[string]bool, len(stopWords))
	for _, w := range stopWords {
		stop[w] = true
	}

	var kept []string
	for _, word := range strings.Fields(cleaned) {
		if !stop[word] {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// jaroSimilarity computes the Jaro similarity of two strings in [0,1].
// Characters match when equal and within the standard window
// floor(max(len1,len2)/2)-1; transpositions are counted among matched
// characters in order.
func jaroSimilarity(s1, s2 string) float64 {
	r1 := []rune(s1)
	r2 := []rune(s2)
	len1, len2 := len(r1), len(r2)

	if len1 == 0 && len2 == 0 {
		return 1
	}
	if len1 == 0 || len2 == 0 {
		return 0
	}

	window := max(len1, len2)/2 - 1
	if window < 0 {
		window = 0
	}

	matched1 := make([]bool, len1)
	matched2 := make([]bool, len2)

	matches := 0
	for i := 0; i < len1; i++ {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window
		if hi >= len2 {
			hi = len2 - 1
		}
		for j := lo; j <= hi; j++ {
			if matched2[j] || r1[i] != r2[j] {
				continue
			}
			matched1[i] = true
			matched2[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0
	}

	// Count transpositions between the matched characters in order.
	transpositions := 0
	k := 0
	for i := 0; i < len1; i++ {
		if !matched1[i] {
			continue
		}
		for !matched2[k] {
			k++
		}
		if r1[i] != r2[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	t := float64(transpositions) / 2
	return (m/float64(len1) + m/float64(len2) + (m-t)/m) / 3
}

// maxCommonPrefix caps the Winkler prefix bonus.
const maxCommonPrefix = 4

// jaroWinkler boosts the Jaro similarity by up to 0.1 per character of exact
// common prefix, capped at four characters.
func jaroWinkler(s1, s2 string) float64 {
	jaro := jaroSimilarity(s1, s2)

	r1 := []rune(s1)
	r2 := []rune(s2)
	prefix := 0
	for i := 0; i < len(r1) && i < len(r2) && i < maxCommonPrefix; i++ {
		if r1[i] != r2[i] {
			break
		}
		prefix++
	}

	return jaro + 0.1*float64(prefix)*(1-jaro)
}
