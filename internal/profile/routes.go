// internal/profile/routes.go

package profile

import (
	"github.com/gorilla/mux"

	"github.com/wandermatch/wandermatch-backend/internal/auth"
)

// RegisterRoutes registers all profile routes
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/profile", handler.GetMyProfile).Methods("GET")
	api.HandleFunc("/profile", handler.UpdateProfile).Methods("PUT")
	api.HandleFunc("/profile/location", handler.UpdateLocation).Methods("PUT")
	api.HandleFunc("/profile/completion", handler.GetProfileCompletion).Methods("GET")
	api.HandleFunc("/users/{id:[0-9]+}/profile", handler.GetUserProfile).Methods("GET")
	api.HandleFunc("/search/users", handler.SearchUsers).Methods("GET")
}
