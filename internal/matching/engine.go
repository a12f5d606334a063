// internal/matching/engine.go
// Hybrid compatibility scoring: six independent signals combined into one
// weighted score with a confidence estimate and human-readable reasons.

package matching

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
)

// Component weights for the hybrid score. Sum to 1.0.
var componentWeights = map[string]float64{
	"contentBased":      0.35,
	"collaborative":     0.25,
	"graphSimilarity":   0.15,
	"textSimilarity":    0.15,
	"temporalRelevance": 0.05,
	"diversityBonus":    0.05,
}

// Feature weights within the content-based signal. Sum to 1.0.
var featureWeights = struct {
	destination, travelStyle, interests, location, age, personality float64
}{
	destination: 0.25,
	travelStyle: 0.20,
	interests:   0.20,
	location:    0.15,
	age:         0.10,
	personality: 0.10,
}

const (
	defaultAge       = 25
	explorationRate  = 0.10
	localCommunityKm = 50
)

// Engine scores candidate users against a target user. The random source
// drives the exploration roll in the diversity signal; inject a fixed seed
// in tests for deterministic scores.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewEngine(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// Score computes the full compatibility score for a (user, candidate) pair.
// Missing optional fields never cause an error; every signal has a
// documented default.
func (e *Engine) Score(user, candidate *UserProfile, history *UserHistory) *CompatibilityScore {
	contentBased := e.contentBasedScore(user, candidate)
	collaborative := e.collaborativeScore(history)
	graphSimilarity := e.graphSimilarity(user, candidate)
	textSimilarity := e.textSimilarity(user, candidate)
	temporalRelevance := e.temporalRelevance(user, candidate)
	diversityBonus := e.diversityBonus(user, candidate)

	overall := contentBased*componentWeights["contentBased"] +
		collaborative*componentWeights["collaborative"] +
		graphSimilarity*componentWeights["graphSimilarity"] +
		textSimilarity*componentWeights["textSimilarity"] +
		temporalRelevance*componentWeights["temporalRelevance"] +
		diversityBonus*componentWeights["diversityBonus"]

	signals := map[string]float64{
		"contentBased":      contentBased,
		"collaborative":     collaborative,
		"graphSimilarity":   graphSimilarity,
		"textSimilarity":    textSimilarity,
		"temporalRelevance": temporalRelevance,
		"diversityBonus":    diversityBonus,
	}

	return &CompatibilityScore{
		Overall:    math.Round(overall*100) / 100,
		Confidence: math.Round(e.confidence(user, candidate, history)*100) / 100,
		Breakdown: ScoreBreakdown{
			ContentBased:      int(math.Round(contentBased * 100)),
			Collaborative:     int(math.Round(collaborative * 100)),
			GraphSimilarity:   int(math.Round(graphSimilarity * 100)),
			TextSimilarity:    int(math.Round(textSimilarity * 100)),
			TemporalRelevance: int(math.Round(temporalRelevance * 100)),
			DiversityBonus:    int(math.Round(diversityBonus * 100)),
		},
		EloRating:              int(math.Round((user.Rating() + candidate.Rating()) / 2)),
		Reasons:                e.reasons(candidate, signals),
		ImprovementSuggestions: improvementSuggestions(user),
	}
}

// Shuffle permutes profiles in place with the engine's random source
// (Fisher-Yates). Explore mode uses it so the whole flow stays seedable.
func (e *Engine) Shuffle(profiles []*UserProfile) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := len(profiles) - 1; i > 0; i-- {
		j := e.rng.Intn(i + 1)
		profiles[i], profiles[j] = profiles[j], profiles[i]
	}
}

// Categorize maps an overall score to a coarse quality label.
func Categorize(overall float64) string {
	switch {
	case overall >= 0.9:
		return CategoryPerfect
	case overall >= 0.8:
		return CategoryExcellent
	case overall >= 0.7:
		return CategoryGood
	case overall >= 0.6:
		return CategoryPotential
	default:
		return CategoryExploratory
	}
}

// contentBasedScore is the weighted sum of per-feature similarities.
func (e *Engine) contentBasedScore(user, candidate *UserProfile) float64 {
	return destinationSimilarity(user.NextDestination, candidate.NextDestination)*featureWeights.destination +
		JaccardSimilarity(user.TravelStyles, candidate.TravelStyles)*featureWeights.travelStyle +
		JaccardSimilarity(user.Interests, candidate.Interests)*featureWeights.interests +
		locationSimilarity(user, candidate)*featureWeights.location +
		ageSimilarityOrDefault(user.Age, candidate.Age)*featureWeights.age +
		personalitySimilarity(user.Bio, candidate.Bio)*featureWeights.personality
}

// collaborativeScore is a like-ratio proxy over the target's own swipe
// history. Neutral 0.5 on cold start.
func (e *Engine) collaborativeScore(history *UserHistory) float64 {
	ratio, ok := history.LikeRatio()
	if !ok {
		return 0.5
	}
	return ratio
}

// graphSimilarity is an additive community signal: shared destination
// community, geographic proximity and travel-style overlap.
func (e *Engine) graphSimilarity(user, candidate *UserProfile) float64 {
	score := 0.0

	if inSameTravelCommunity(user.NextDestination, candidate.NextDestination) {
		score += 0.3
	}

	if lat1, lng1, ok1 := user.Coordinates(); ok1 {
		if lat2, lng2, ok2 := candidate.Coordinates(); ok2 {
			if HaversineDistance(lat1, lng1, lat2, lng2) < localCommunityKm {
				score += 0.2
			}
		}
	}

	score += JaccardSimilarity(user.TravelStyles, candidate.TravelStyles) * 0.5

	return math.Min(score, 1.0)
}

// textSimilarity is token Jaccard over the concatenated profile text.
// Neutral 0.5 when either side has nothing to compare.
func (e *Engine) textSimilarity(user, candidate *UserProfile) float64 {
	tokens1 := Tokenize(profileText(user))
	tokens2 := Tokenize(profileText(candidate))
	if len(tokens1) == 0 || len(tokens2) == 0 {
		return 0.5
	}
	return JaccardSimilarity(tokens1, tokens2)
}

func (e *Engine) temporalRelevance(user, candidate *UserProfile) float64 {
	score := 0.5
	if user.TravelDates != "" && candidate.TravelDates != "" {
		score += 0.3
	}
	// Recent-activity bonus; both users are assumed active.
	score += 0.2
	return math.Min(score, 1.0)
}

// diversityBonus implements an epsilon-greedy exploration roll: with 10%
// probability a sufficiently different candidate gets boosted, otherwise
// the signal stays neutral.
func (e *Engine) diversityBonus(user, candidate *UserProfile) float64 {
	diversity := 1 - profileSimilarity(user, candidate)

	e.mu.Lock()
	explore := e.rng.Float64() < explorationRate
	e.mu.Unlock()

	if explore && diversity > 0.6 {
		return 0.8
	}
	return 0.5
}

// confidence estimates how much to trust the score given data availability.
func (e *Engine) confidence(user, candidate *UserProfile, history *UserHistory) float64 {
	confidence := (profileCompleteness(user) + profileCompleteness(candidate)) / 2 * 0.4

	if history != nil {
		switch {
		case len(history.Swipes) > 10:
			confidence += 0.3
		case len(history.Swipes) > 0:
			confidence += 0.1
		}
	}

	confidence += math.Min(float64(commonDataPoints(user, candidate))/10, 0.3)

	return math.Min(confidence, 1.0)
}

func (e *Engine) reasons(candidate *UserProfile, signals map[string]float64) []string {
	type entry struct {
		name  string
		score float64
	}
	sorted := make([]entry, 0, len(signals))
	for name, score := range signals {
		sorted = append(sorted, entry{name, score})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].score != sorted[j].score {
			return sorted[i].score > sorted[j].score
		}
		return sorted[i].name < sorted[j].name
	})

	reasons := make([]string, 0, 3)
	for _, en := range sorted[:3] {
		if en.score > 0.7 {
			reasons = append(reasons, reasonFor(en.name, candidate))
		}
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Compatible travel preferences")
	}
	return reasons
}

func reasonFor(component string, candidate *UserProfile) string {
	switch component {
	case "contentBased":
		return "Strong match on travel preferences and interests"
	case "collaborative":
		return "Users with similar taste also liked " + displayName(candidate)
	case "graphSimilarity":
		return "Part of the same travel community"
	case "textSimilarity":
		return "Similar personality and travel style"
	case "temporalRelevance":
		return "Planning trips around the same time"
	case "diversityBonus":
		return "Offers a fresh perspective on travel"
	default:
		return "Compatible profile"
	}
}

func displayName(u *UserProfile) string {
	if u.DisplayName == "" {
		return "this profile"
	}
	return u.DisplayName
}

func improvementSuggestions(user *UserProfile) []string {
	var suggestions []string
	if len(user.Interests) < 3 {
		suggestions = append(suggestions, "Add more interests to your profile for better matches")
	}
	if len(user.Bio) < 50 {
		suggestions = append(suggestions, "Expand your bio to help find more compatible matches")
	}
	return suggestions
}

// destinationSimilarity: exact match 1.0, shared token 0.7, otherwise a
// neutral 0.3 floor so sparse destination data never zero-starves the score.
func destinationSimilarity(dest1, dest2 string) float64 {
	d1 := strings.ToLower(strings.TrimSpace(dest1))
	d2 := strings.ToLower(strings.TrimSpace(dest2))

	if d1 != "" && d1 == d2 {
		return 1.0
	}

	words1 := Tokenize(d1)
	words2 := Tokenize(d2)
	for _, w1 := range words1 {
		for _, w2 := range words2 {
			if w1 == w2 {
				return 0.7
			}
		}
	}

	return 0.3
}

func locationSimilarity(user, candidate *UserProfile) float64 {
	lat1, lng1, ok1 := user.Coordinates()
	lat2, lng2, ok2 := candidate.Coordinates()
	if !ok1 || !ok2 {
		return 0.5
	}
	return DistanceDecay(HaversineDistance(lat1, lng1, lat2, lng2))
}

func ageSimilarityOrDefault(age1, age2 int) float64 {
	if age1 <= 0 {
		age1 = defaultAge
	}
	if age2 <= 0 {
		age2 = defaultAge
	}
	return AgeSimilarity(age1, age2)
}

func personalitySimilarity(bio1, bio2 string) float64 {
	return JaccardSimilarity(ExtractTraits(bio1), ExtractTraits(bio2))
}

// inSameTravelCommunity is a coarse destination clustering: the first
// destination token decides the community.
func inSameTravelCommunity(dest1, dest2 string) bool {
	first := func(s string) string {
		fields := strings.Fields(strings.ToLower(s))
		if len(fields) == 0 {
			return ""
		}
		return fields[0]
	}
	f1, f2 := first(dest1), first(dest2)
	return f1 != "" && f1 == f2
}

func profileText(u *UserProfile) string {
	parts := []string{
		u.Bio,
		strings.Join(u.Interests, " "),
		strings.Join(u.TravelStyles, " "),
		u.NextDestination,
		u.Location,
	}
	return strings.Join(parts, " ")
}

// profileSimilarity is Jaccard over the union of interests and travel
// styles. The ranker uses the same measure for MMR diversity.
func profileSimilarity(u1, u2 *UserProfile) float64 {
	set1 := append(append([]string{}, u1.Interests...), u1.TravelStyles...)
	set2 := append(append([]string{}, u2.Interests...), u2.TravelStyles...)
	return JaccardSimilarity(set1, set2)
}

func profileCompleteness(u *UserProfile) float64 {
	score := 0.0
	if len(u.Bio) > 20 {
		score += 0.2
	}
	if len(u.Interests) >= 3 {
		score += 0.2
	}
	if len(u.TravelStyles) >= 2 {
		score += 0.2
	}
	if _, _, ok := u.Coordinates(); ok {
		score += 0.2
	}
	if u.NextDestination != "" {
		score += 0.2
	}
	return score
}

func commonDataPoints(u1, u2 *UserProfile) int {
	count := 0
	if len(u1.Interests) > 0 && len(u2.Interests) > 0 {
		count++
	}
	if len(u1.TravelStyles) > 0 && len(u2.TravelStyles) > 0 {
		count++
	}
	_, _, ok1 := u1.Coordinates()
	_, _, ok2 := u2.Coordinates()
	if ok1 && ok2 {
		count++
	}
	if u1.NextDestination != "" && u2.NextDestination != "" {
		count++
	}
	return count
}
