package matching

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wandermatch/wandermatch-backend/internal/auth"
	"github.com/wandermatch/wandermatch-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RecordSwipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var dto RecordSwipeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.RecordSwipe(r.Context(), userID, &dto)
	if err != nil {
		switch err {
		case ErrCannotSwipeSelf:
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case ErrUserNotFound:
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record swipe")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, result)
}

func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	h.discover(w, r, h.service.FindMatches)
}

func (h *Handler) DiscoverNearby(w http.ResponseWriter, r *http.Request) {
	h.discover(w, r, h.service.NearbyMatches)
}

func (h *Handler) DiscoverExplore(w http.ResponseWriter, r *http.Request) {
	h.discover(w, r, h.service.ExploreMatches)
}

type discoverFunc func(ctx context.Context, userID int64, params *DiscoverParams) ([]*MatchRecommendation, error)

func (h *Handler) discover(w http.ResponseWriter, r *http.Request, find discoverFunc) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	recommendations, err := find(r.Context(), userID, parseDiscoverParams(r))
	if err != nil {
		switch err {
		case ErrUserNotFound:
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case ErrLocationUnavailable:
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to find matches")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, recommendations)
}

func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matches, err := h.service.GetUserMatches(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get matches")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, matches)
}

func (h *Handler) GetLikesReceived(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	likes, err := h.service.GetLikesReceived(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get likes")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, likes)
}

func (h *Handler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	targetID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	score, err := h.service.GetCompatibility(r.Context(), userID, targetID)
	if err != nil {
		if err == ErrUserNotFound {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to calculate compatibility")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, score)
}

func (h *Handler) CleanupSwipes(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CleanupDuplicateSwipes(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Cleanup failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

// parseDiscoverParams reads filter settings off the query string. Absent
// parameters impose no constraint.
func parseDiscoverParams(r *http.Request) *DiscoverParams {
	q := r.URL.Query()
	params := &DiscoverParams{}

	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			params.Limit = n
		}
	}
	if v := q.Get("min_age"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.Filters.MinAge = n
		}
	}
	if v := q.Get("max_age"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.Filters.MaxAge = n
		}
	}
	if v := q.Get("max_distance"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.Filters.MaxDistance = f
		}
	}
	if v := q.Get("verified"); v == "true" {
		params.Filters.VerifiedOnly = true
	}
	if v := q.Get("travel_styles"); v != "" {
		params.Filters.TravelStyles = splitCSV(v)
	}
	if v := q.Get("destinations"); v != "" {
		params.Filters.Destinations = splitCSV(v)
	}

	return params
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
