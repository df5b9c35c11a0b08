package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// Closest returns the candidate most similar to name by Jaro-Winkler distance,
// ok is false when nothing reaches minSimilarity.
func Closest(name string, candidates []string, minSimilarity float64) (best string, ok bool) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return "", false
	}

	var bestSimilarity float64
	for _, c := range candidates {
		similarity := matchr.JaroWinkler(normalized, NormalizeName(c), false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = c
		}
	}
	if bestSimilarity < minSimilarity {
		return "", false
	}
	return best, true
}
