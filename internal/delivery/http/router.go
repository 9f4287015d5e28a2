package http

import (
	"net/http"

	"patient-records-api/internal/delivery/http/handler"
	"patient-records-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router              *mux.Router
	patientHandler      *handler.PatientHandler
	visitHandler        *handler.VisitHandler
	auditLogHandler     *handler.AuditLogHandler
	requestIDMiddleware *middleware.RequestIDMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
	metricsMiddleware   *middleware.MetricsMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	metricsGatherer     prometheus.Gatherer
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	visitHandler *handler.VisitHandler,
	auditLogHandler *handler.AuditLogHandler,
	requestIDMiddleware *middleware.RequestIDMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	metricsGatherer prometheus.Gatherer,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		patientHandler:      patientHandler,
		visitHandler:        visitHandler,
		auditLogHandler:     auditLogHandler,
		requestIDMiddleware: requestIDMiddleware,
		loggingMiddleware:   loggingMiddleware,
		metricsMiddleware:   metricsMiddleware,
		corsMiddleware:      corsMiddleware,
		metricsGatherer:     metricsGatherer,
	}
}

func (r *Router) Setup() *mux.Router {
	// Prometheus scrape endpoint
	r.router.Handle("/metrics", promhttp.HandlerFor(r.metricsGatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patient routes
	api.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	api.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	api.HandleFunc("/patients/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	// Visit routes
	api.HandleFunc("/patients/{id}/visits", r.visitHandler.GetPatientVisits).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}/visits", r.visitHandler.AddPatientVisit).Methods(http.MethodPost)

	// Audit trail
	api.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	api.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Preflight requests must match a route for the middleware chain to run
	api.PathPrefix("/").HandlerFunc(r.preflight).Methods(http.MethodOptions)

	// Middleware chain, outermost first
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.requestIDMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.metricsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

func (r *Router) preflight(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
