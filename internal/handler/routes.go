package handler

import (
	"net/http"

	"github.com/Dan9191/solar-simulator/internal/config"
	"github.com/Dan9191/solar-simulator/internal/middleware"
	"github.com/gorilla/mux"
)

// NewRouter wires every route of the simulator
func NewRouter(h *Handler, cfg *config.Config, metrics http.Handler) *mux.Router {
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.HandleFunc("/dashboard", h.Dashboard).Methods("GET")
	r.HandleFunc("/demand", h.Demand).Methods("GET")
	r.HandleFunc("/scenarios", h.Scenarios).Methods("GET")
	r.HandleFunc("/diesel-price", h.DieselPrice).Methods("GET")
	r.HandleFunc("/charts/demand.png", h.DemandChart).Methods("GET")
	r.HandleFunc("/charts/benefits.png", h.BenefitsChart).Methods("GET")
	r.HandleFunc("/export.xlsx", h.Export).Methods("GET")
	if metrics != nil {
		r.Handle("/metrics", metrics).Methods("GET")
	}
	// Protected routes
	authRouter := r.PathPrefix("/reports").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/email", h.EmailReport).Methods("POST")
	return r
}
