// internal/matching/service.go

package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

var (
	ErrCannotSwipeSelf     = errors.New("cannot swipe on yourself")
	ErrLocationUnavailable = errors.New("user location not available")
)

// MatchNotifier pushes a match-created event to the transport layer. The
// core never talks to the non-acting user directly.
type MatchNotifier interface {
	NotifyMatch(user1ID, user2ID int64, match *Match)
}

type Service interface {
	// Discovery
	FindMatches(ctx context.Context, userID int64, params *DiscoverParams) ([]*MatchRecommendation, error)
	NearbyMatches(ctx context.Context, userID int64, params *DiscoverParams) ([]*MatchRecommendation, error)
	ExploreMatches(ctx context.Context, userID int64, params *DiscoverParams) ([]*MatchRecommendation, error)

	// Swipe ledger
	RecordSwipe(ctx context.Context, userID int64, dto *RecordSwipeDTO) (*SwipeResult, error)

	// Queries
	GetUserMatches(ctx context.Context, userID int64) ([]*MatchView, error)
	GetLikesReceived(ctx context.Context, userID int64) ([]*LikeReceived, error)
	GetCompatibility(ctx context.Context, userID, targetUserID int64) (*CompatibilityScore, error)

	// Maintenance
	CleanupDuplicateSwipes(ctx context.Context) (*CleanupResult, error)
}

type service struct {
	repo     Repository
	engine   *Engine
	cache    *ScoreCache
	notifier MatchNotifier
}

// NewService wires the matching core. cache and notifier may be nil.
func NewService(repo Repository, engine *Engine, cache *ScoreCache, notifier MatchNotifier) Service {
	return &service{
		repo:     repo,
		engine:   engine,
		cache:    cache,
		notifier: notifier,
	}
}

const defaultLimit = 20

func (s *service) FindMatches(ctx context.Context, userID int64, params *DiscoverParams) ([]*MatchRecommendation, error) {
	start := time.Now()
	params = normalizeParams(params)

	user, err := s.repo.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.buildUserHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := s.repo.GetCandidatePool(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := ApplyFilters(user, pool, params.Filters)
	RecordCandidatesScored(len(filtered))

	// Per-candidate scoring has no shared mutable state, so it runs with
	// full data parallelism. Ranking stays sequential.
	scored := make([]*MatchRecommendation, len(filtered))
	var wg sync.WaitGroup
	for i, candidate := range filtered {
		wg.Add(1)
		go func(i int, candidate *UserProfile) {
			defer wg.Done()
			score := s.engine.Score(user, candidate, history)
			scored[i] = &MatchRecommendation{
				User:     candidate,
				Score:    score,
				Category: Categorize(score.Overall),
			}
		}(i, candidate)
	}
	wg.Wait()

	for _, rec := range scored {
		RecordCompatibilityScore(rec.Score.Overall)
	}

	ranked := RankWithDiversity(scored)
	ranked = truncate(ranked, limitOrDefault(params))

	RecordDiscoverDuration("smart", time.Since(start))
	return ranked, nil
}

// NearbyMatches sorts eligible candidates by great-circle distance instead
// of compatibility. Candidates without coordinates are skipped; the caller
// must have coordinates.
func (s *service) NearbyMatches(ctx context.Context, userID int64, params *DiscoverParams) ([]*MatchRecommendation, error) {
	start := time.Now()
	params = normalizeParams(params)

	user, err := s.repo.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	lat, lng, ok := user.Coordinates()
	if !ok {
		return nil, ErrLocationUnavailable
	}

	pool, err := s.repo.GetCandidatePool(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := ApplyFilters(user, pool, params.Filters)

	recs := make([]*MatchRecommendation, 0, len(filtered))
	for _, candidate := range filtered {
		clat, clng, ok := candidate.Coordinates()
		if !ok {
			continue
		}
		distance := HaversineDistance(lat, lng, clat, clng)
		recs = append(recs, &MatchRecommendation{
			User:     candidate,
			Score:    neutralScore(fmt.Sprintf("%.1f km away", distance)),
			Category: CategoryNearby,
			Distance: &distance,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return *recs[i].Distance < *recs[j].Distance
	})

	recs = truncate(recs, limitOrDefault(params))
	for i, rec := range recs {
		rec.Rank = i + 1
	}

	RecordDiscoverDuration("nearby", time.Since(start))
	return recs, nil
}

// ExploreMatches returns a randomized slice of the eligible pool with
// neutral scores, for users who want to browse outside their bubble.
func (s *service) ExploreMatches(ctx context.Context, userID int64, params *DiscoverParams) ([]*MatchRecommendation, error) {
	start := time.Now()
	params = normalizeParams(params)

	user, err := s.repo.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := s.repo.GetCandidatePool(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := ApplyFilters(user, pool, params.Filters)
	s.engine.Shuffle(filtered)

	filtered = truncateProfiles(filtered, limitOrDefault(params))

	recs := make([]*MatchRecommendation, len(filtered))
	for i, candidate := range filtered {
		recs[i] = &MatchRecommendation{
			User:     candidate,
			Score:    neutralScore("Discover someone new"),
			Rank:     i + 1,
			Category: CategoryExploratory,
		}
	}

	RecordDiscoverDuration("explore", time.Since(start))
	return recs, nil
}

// RecordSwipe supersedes any prior swipe for the ordered pair, inserts the
// new record and creates a match when the reverse direction already holds an
// active positive swipe. Match creation is idempotent: a concurrent or
// retried call that loses the insert race reads back the existing match.
func (s *service) RecordSwipe(ctx context.Context, userID int64, dto *RecordSwipeDTO) (*SwipeResult, error) {
	if userID == dto.TargetUserID {
		return nil, ErrCannotSwipeSelf
	}

	// Not-found is surfaced, never silently defaulted.
	if _, err := s.repo.GetUserProfile(ctx, dto.TargetUserID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetSwipesForPair(ctx, userID, dto.TargetUserID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		ids := make([]int64, len(existing))
		for i, sw := range existing {
			ids[i] = sw.ID
		}
		if err := s.repo.DeleteSwipes(ctx, ids); err != nil {
			return nil, err
		}
	}

	swipe := &SwipeRecord{
		SwiperID: userID,
		SwipedID: dto.TargetUserID,
		Kind:     dto.Kind,
	}
	if err := s.repo.InsertSwipe(ctx, swipe); err != nil {
		return nil, err
	}

	RecordSwipeMetric(dto.Kind)
	s.cache.Invalidate(ctx, userID, dto.TargetUserID)

	if dto.Kind != SwipeLike && dto.Kind != SwipeSuperlike {
		return &SwipeResult{Match: false}, nil
	}

	mutual, err := s.repo.HasPositiveSwipe(ctx, dto.TargetUserID, userID)
	if err != nil {
		return nil, err
	}
	if !mutual {
		return &SwipeResult{Match: false}, nil
	}

	match := &Match{
		User1ID: userID,
		User2ID: dto.TargetUserID,
		Status:  "accepted",
	}
	created, err := s.repo.CreateMatch(ctx, match)
	if err != nil {
		return nil, err
	}

	if !created {
		existing, err := s.repo.GetMatchForPair(ctx, userID, dto.TargetUserID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &SwipeResult{Match: true, MatchRef: existing.MatchRef}, nil
		}
		// Lost the race and the winner's row is not visible yet; still a match.
		return &SwipeResult{Match: true}, nil
	}

	RecordMatchCreated()
	if s.notifier != nil {
		s.notifier.NotifyMatch(userID, dto.TargetUserID, match)
	}

	return &SwipeResult{Match: true, MatchRef: match.MatchRef}, nil
}

func (s *service) GetUserMatches(ctx context.Context, userID int64) ([]*MatchView, error) {
	matches, err := s.repo.GetUserMatches(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*MatchView, 0, len(matches))
	for _, m := range matches {
		view := &MatchView{
			MatchRef:      m.MatchRef,
			Status:        m.Status,
			MatchedAt:     m.MatchedAt,
			LastMessageAt: m.LastMessageAt,
		}
		if m.User1ID == userID {
			view.MatchedUserID = m.User2ID
			view.UnreadCount = m.UnreadCountUser1
		} else {
			view.MatchedUserID = m.User1ID
			view.UnreadCount = m.UnreadCountUser2
		}

		profile, err := s.repo.GetUserProfile(ctx, view.MatchedUserID)
		if err == nil {
			view.MatchedUser = profile
		} else if err != ErrUserNotFound {
			return nil, err
		}

		views = append(views, view)
	}

	return views, nil
}

// GetLikesReceived lists active positive swipes targeting the user,
// excluding likers who already share a match with them and keeping only the
// most recent swipe per distinct liker, newest first.
func (s *service) GetLikesReceived(ctx context.Context, userID int64) ([]*LikeReceived, error) {
	likes, err := s.repo.GetLikesTargeting(ctx, userID)
	if err != nil {
		return nil, err
	}

	matches, err := s.repo.GetUserMatches(ctx, userID)
	if err != nil {
		return nil, err
	}
	matched := make(map[int64]bool, len(matches))
	for _, m := range matches {
		if m.User1ID == userID {
			matched[m.User2ID] = true
		} else {
			matched[m.User1ID] = true
		}
	}

	// Likes arrive newest-first, so the first entry per liker wins.
	seen := make(map[int64]bool, len(likes))
	out := make([]*LikeReceived, 0, len(likes))
	for _, like := range likes {
		likerID := like.Liker.ID
		if matched[likerID] || seen[likerID] {
			continue
		}
		seen[likerID] = true
		out = append(out, like)
	}

	return out, nil
}

func (s *service) GetCompatibility(ctx context.Context, userID, targetUserID int64) (*CompatibilityScore, error) {
	if cached, ok := s.cache.Get(ctx, userID, targetUserID); ok {
		return cached, nil
	}

	user, err := s.repo.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	target, err := s.repo.GetUserProfile(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	history, err := s.buildUserHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	score := s.engine.Score(user, target, history)
	RecordCompatibilityScore(score.Overall)
	s.cache.Set(ctx, userID, targetUserID, score)

	return score, nil
}

// CleanupDuplicateSwipes is the batch counterpart of the incremental
// supersede in RecordSwipe: it groups all swipes by ordered pair and removes
// everything but the most recent per group. Rows inserted through other
// paths make this a required periodic sweep, not an optional one.
func (s *service) CleanupDuplicateSwipes(ctx context.Context) (*CleanupResult, error) {
	swipes, err := s.repo.GetAllSwipes(ctx)
	if err != nil {
		return nil, err
	}

	type pair struct{ swiper, swiped int64 }
	newest := make(map[pair]*SwipeRecord, len(swipes))
	var stale []int64

	for _, sw := range swipes {
		key := pair{sw.SwiperID, sw.SwipedID}
		best, ok := newest[key]
		if !ok {
			newest[key] = sw
			continue
		}
		if sw.CreatedAt.After(best.CreatedAt) {
			stale = append(stale, best.ID)
			newest[key] = sw
		} else {
			stale = append(stale, sw.ID)
		}
	}

	if len(stale) > 0 {
		if err := s.repo.DeleteSwipes(ctx, stale); err != nil {
			return nil, err
		}
		RecordDuplicatesRemoved(len(stale))
	}

	return &CleanupResult{Removed: len(stale)}, nil
}

func (s *service) buildUserHistory(ctx context.Context, userID int64) (*UserHistory, error) {
	swipes, err := s.repo.GetSwipesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	matches, err := s.repo.GetUserMatches(ctx, userID)
	if err != nil {
		return nil, err
	}

	history := &UserHistory{
		UserID:  userID,
		Swipes:  make(map[int64]string, len(swipes)),
		Matches: make(map[int64]bool, len(matches)),
	}
	for _, sw := range swipes {
		// Newest-first ordering: keep the first (active) kind per target.
		if _, ok := history.Swipes[sw.SwipedID]; !ok {
			history.Swipes[sw.SwipedID] = sw.Kind
		}
	}
	for _, m := range matches {
		if m.User1ID == userID {
			history.Matches[m.User2ID] = true
		} else {
			history.Matches[m.User1ID] = true
		}
	}

	return history, nil
}

func neutralScore(reason string) *CompatibilityScore {
	return &CompatibilityScore{
		Overall:    0.5,
		Confidence: 0.5,
		EloRating:  BaseEloRating,
		Reasons:    []string{reason},
	}
}

func normalizeParams(params *DiscoverParams) *DiscoverParams {
	if params == nil {
		return &DiscoverParams{}
	}
	return params
}

func limitOrDefault(params *DiscoverParams) int {
	if params.Limit <= 0 {
		return defaultLimit
	}
	return params.Limit
}

func truncate(recs []*MatchRecommendation, limit int) []*MatchRecommendation {
	if len(recs) > limit {
		return recs[:limit]
	}
	return recs
}

func truncateProfiles(profiles []*UserProfile, limit int) []*UserProfile {
	if len(profiles) > limit {
		return profiles[:limit]
	}
	return profiles
}
