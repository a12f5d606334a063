package matching

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandermatch/wandermatch-backend/internal/auth"
)

func authedRequest(t *testing.T, userID int64, method, target, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(auth.ContextWithUserID(req.Context(), userID))
}

func TestRecordSwipeHandler(t *testing.T) {
	repo := newFakeRepo(seedProfiles(2)...)
	handler := NewHandler(newTestService(repo, nil))

	req := authedRequest(t, 1, "POST", "/api/v1/matching/swipes",
		`{"target_user_id": 2, "kind": "like"}`)
	rr := httptest.NewRecorder()
	handler.RecordSwipe(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var result SwipeResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.False(t, result.Match)
}

func TestRecordSwipeHandlerValidation(t *testing.T) {
	handler := NewHandler(newTestService(newFakeRepo(seedProfiles(2)...), nil))

	tests := []struct {
		name string
		body string
		code int
	}{
		{"invalid kind", `{"target_user_id": 2, "kind": "maybe"}`, http.StatusBadRequest},
		{"missing target", `{"kind": "like"}`, http.StatusBadRequest},
		{"malformed json", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(t, 1, "POST", "/api/v1/matching/swipes", tt.body)
			rr := httptest.NewRecorder()
			handler.RecordSwipe(rr, req)
			assert.Equal(t, tt.code, rr.Code)
		})
	}
}

func TestRecordSwipeHandlerErrors(t *testing.T) {
	handler := NewHandler(newTestService(newFakeRepo(seedProfiles(2)...), nil))

	// Swiping yourself
	req := authedRequest(t, 1, "POST", "/api/v1/matching/swipes",
		`{"target_user_id": 1, "kind": "like"}`)
	rr := httptest.NewRecorder()
	handler.RecordSwipe(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Unknown target
	req = authedRequest(t, 1, "POST", "/api/v1/matching/swipes",
		`{"target_user_id": 99, "kind": "like"}`)
	rr = httptest.NewRecorder()
	handler.RecordSwipe(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Missing auth context
	req = httptest.NewRequest("POST", "/api/v1/matching/swipes",
		strings.NewReader(`{"target_user_id": 2, "kind": "like"}`))
	rr = httptest.NewRecorder()
	handler.RecordSwipe(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDiscoverHandler(t *testing.T) {
	handler := NewHandler(newTestService(newFakeRepo(seedProfiles(5)...), nil))

	req := authedRequest(t, 1, "GET", "/api/v1/matching/discover?limit=2", "")
	rr := httptest.NewRecorder()
	handler.Discover(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var recs []*MatchRecommendation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &recs))
	assert.Len(t, recs, 2)
}

func TestDiscoverNearbyHandlerNoLocation(t *testing.T) {
	noLoc := testProfile(1)
	noLoc.LocationLat = nil
	noLoc.LocationLng = nil
	handler := NewHandler(newTestService(newFakeRepo(noLoc, testProfile(2)), nil))

	req := authedRequest(t, 1, "GET", "/api/v1/matching/discover/nearby", "")
	rr := httptest.NewRecorder()
	handler.DiscoverNearby(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetCompatibilityHandler(t *testing.T) {
	handler := NewHandler(newTestService(newFakeRepo(seedProfiles(2)...), nil))

	req := authedRequest(t, 1, "GET", "/api/v1/matching/compatibility/2", "")
	req = mux.SetURLVars(req, map[string]string{"userId": "2"})
	rr := httptest.NewRecorder()
	handler.GetCompatibility(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var score CompatibilityScore
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &score))
	assert.Greater(t, score.Overall, 0.0)
}

func TestGetCompatibilityHandlerInvalidID(t *testing.T) {
	handler := NewHandler(newTestService(newFakeRepo(seedProfiles(2)...), nil))

	req := authedRequest(t, 1, "GET", "/api/v1/matching/compatibility/abc", "")
	req = mux.SetURLVars(req, map[string]string{"userId": "abc"})
	rr := httptest.NewRecorder()
	handler.GetCompatibility(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestParseDiscoverParams(t *testing.T) {
	req := httptest.NewRequest("GET",
		"/discover?limit=5&min_age=21&max_age=35&max_distance=120.5&verified=true&travel_styles=budget,luxury&destinations=bali,%20lisbon", nil)

	params := parseDiscoverParams(req)
	assert.Equal(t, 5, params.Limit)
	assert.Equal(t, 21, params.Filters.MinAge)
	assert.Equal(t, 35, params.Filters.MaxAge)
	assert.InDelta(t, 120.5, params.Filters.MaxDistance, 1e-9)
	assert.True(t, params.Filters.VerifiedOnly)
	assert.Equal(t, []string{"budget", "luxury"}, params.Filters.TravelStyles)
	assert.Equal(t, []string{"bali", "lisbon"}, params.Filters.Destinations)
}

func TestParseDiscoverParamsDefaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/discover", nil)
	params := parseDiscoverParams(req)

	assert.Equal(t, 0, params.Limit)
	assert.Equal(t, FilterConfig{}, params.Filters)
}
