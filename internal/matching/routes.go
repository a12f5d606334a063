package matching

import (
	"github.com/gorilla/mux"

	"github.com/wandermatch/wandermatch-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, hub *Hub, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/matching").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Swipes
	api.HandleFunc("/swipes", handler.RecordSwipe).Methods("POST")

	// Discovery
	api.HandleFunc("/discover", handler.Discover).Methods("GET")
	api.HandleFunc("/discover/nearby", handler.DiscoverNearby).Methods("GET")
	api.HandleFunc("/discover/explore", handler.DiscoverExplore).Methods("GET")

	// Matches & likes
	api.HandleFunc("/matches", handler.GetMatches).Methods("GET")
	api.HandleFunc("/likes", handler.GetLikesReceived).Methods("GET")
	api.HandleFunc("/compatibility/{userId}", handler.GetCompatibility).Methods("GET")

	// Maintenance
	api.HandleFunc("/admin/cleanup-swipes", handler.CleanupSwipes).Methods("POST")

	// Realtime match notifications
	api.HandleFunc("/ws", hub.ServeWS).Methods("GET")
}
