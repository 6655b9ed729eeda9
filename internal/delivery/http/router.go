package http

import (
	"net/http"

	"research-directory/internal/delivery/http/handler"
	"research-directory/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	researcherHandler *handler.ResearcherHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	researcherHandler *handler.ResearcherHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		researcherHandler: researcherHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public directory
	api.HandleFunc("/researchers", r.researcherHandler.ListResearchers).Methods(http.MethodGet)

	// Auth routes
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.RequireSession)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Admin routes (protected - privileged session required)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.RequireSession)

	admin.HandleFunc("/researchers", r.researcherHandler.ListAllResearchers).Methods(http.MethodGet)
	admin.HandleFunc("/researchers", r.researcherHandler.CreateResearcher).Methods(http.MethodPost)
	admin.HandleFunc("/researchers/{id}", r.researcherHandler.GetResearcher).Methods(http.MethodGet)
	admin.HandleFunc("/researchers/{id}", r.researcherHandler.UpdateResearcher).Methods(http.MethodPut)
	admin.HandleFunc("/researchers/{id}", r.researcherHandler.DeleteResearcher).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
