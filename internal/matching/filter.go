// internal/matching/filter.go
// Hard candidate filters applied before scoring.

package matching

import "strings"

// ApplyFilters returns the subset of candidates satisfying every supplied
// predicate in cfg. Unset fields impose no constraint. Candidates without
// coordinates are never excluded by the distance filter; missing data leans
// toward inclusion.
func ApplyFilters(user *UserProfile, candidates []*UserProfile, cfg FilterConfig) []*UserProfile {
	out := make([]*UserProfile, 0, len(candidates))
	for _, c := range candidates {
		if passesFilters(user, c, cfg) {
			out = append(out, c)
		}
	}
	return out
}

func passesFilters(user, candidate *UserProfile, cfg FilterConfig) bool {
	// Age range is inclusive on both ends.
	if cfg.MinAge > 0 && candidate.Age < cfg.MinAge {
		return false
	}
	if cfg.MaxAge > 0 && candidate.Age > cfg.MaxAge {
		return false
	}

	if cfg.MaxDistance > 0 {
		lat1, lng1, ok1 := user.Coordinates()
		lat2, lng2, ok2 := candidate.Coordinates()
		if ok1 && ok2 && HaversineDistance(lat1, lng1, lat2, lng2) > cfg.MaxDistance {
			return false
		}
	}

	if cfg.VerifiedOnly && !candidate.IsVerified {
		return false
	}

	// Travel styles use OR semantics: one shared style is enough.
	if len(cfg.TravelStyles) > 0 {
		found := false
		for _, want := range cfg.TravelStyles {
			for _, have := range candidate.TravelStyles {
				if want == have {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(cfg.Destinations) > 0 {
		dest := strings.ToLower(candidate.NextDestination)
		loc := strings.ToLower(candidate.Location)
		found := false
		for _, want := range cfg.Destinations {
			kw := strings.ToLower(want)
			if kw != "" && (strings.Contains(dest, kw) || strings.Contains(loc, kw)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
