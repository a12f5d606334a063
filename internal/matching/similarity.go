// internal/matching/similarity.go
// Pure similarity primitives shared by the scorer and the ranker.

package matching

import (
	"math"
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`\W+`)

// JaccardSimilarity computes |intersection| / |union| over two string sets.
// Returns 0 when both sets are empty, by convention.
func JaccardSimilarity(set1, set2 []string) float64 {
	if len(set1) == 0 && len(set2) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(set1))
	union := make(map[string]bool, len(set1)+len(set2))
	for _, s := range set1 {
		seen[s] = true
		union[s] = true
	}

	intersection := 0
	counted := make(map[string]bool, len(set2))
	for _, s := range set2 {
		if seen[s] && !counted[s] {
			intersection++
			counted[s] = true
		}
		union[s] = true
	}

	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}

// AgeSimilarity is a Gaussian kernel over the age difference, sigma = 5 years.
func AgeSimilarity(age1, age2 int) float64 {
	const sigma = 5.0
	diff := float64(age1 - age2)
	return math.Exp(-(diff * diff) / (2 * sigma * sigma))
}

// DistanceDecay maps a distance in km to (0,1) with a sigmoid falloff,
// midpoint 50 km, scale 20 km.
func DistanceDecay(km float64) float64 {
	return 1 / (1 + math.Exp((km-50)/20))
}

// Tokenize lowercases text, splits on non-word runs and keeps tokens longer
// than two characters.
func Tokenize(text string) []string {
	words := nonWord.Split(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) > 2 {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// traitKeywords maps personality traits to the bio keywords that signal them.
var traitKeywords = map[string][]string{
	"adventurous": {"adventure", "explore", "bold", "daring"},
	"social":      {"social", "outgoing", "friendly", "people"},
	"creative":    {"creative", "art", "music", "design"},
	"analytical":  {"logical", "analytical", "technical", "data"},
	"empathetic":  {"caring", "empathy", "kind", "compassion"},
	"ambitious":   {"ambitious", "driven", "goal", "success"},
}

// ExtractTraits scans a free-text bio for trait keywords and returns the
// detected traits.
func ExtractTraits(bio string) []string {
	lower := strings.ToLower(bio)
	traits := make([]string, 0, len(traitKeywords))
	for trait, keywords := range traitKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				traits = append(traits, trait)
				break
			}
		}
	}
	return traits
}
