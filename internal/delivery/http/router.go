package http

import (
	"net/http"

	"go-surgical-scheduling/internal/delivery/http/handler"
	"go-surgical-scheduling/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	gradeHandler       *handler.GradeHandler
	replicationHandler *handler.ReplicationHandler
	transferHandler    *handler.TransferHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	gradeHandler *handler.GradeHandler,
	replicationHandler *handler.ReplicationHandler,
	transferHandler *handler.TransferHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		gradeHandler:       gradeHandler,
		replicationHandler: replicationHandler,
		transferHandler:    transferHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Everything below requires a verified token from the auth service.
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.Use(middleware.RequireScheduler)

	// Day grade
	protected.HandleFunc("/hospitals/{hospitalId}/grades/{date}", r.gradeHandler.GetDayGrade).Methods(http.MethodGet)
	protected.HandleFunc("/hospitals/{hospitalId}/grades/{date}/specialties", r.gradeHandler.AddSpecialty).Methods(http.MethodPost)
	protected.HandleFunc("/hospitals/{hospitalId}/grades/{date}/procedures", r.gradeHandler.AddProcedure).Methods(http.MethodPost)
	protected.HandleFunc("/hospitals/{hospitalId}/grades/{date}", r.gradeHandler.ClearDay).Methods(http.MethodDelete)

	// Slots and items
	protected.HandleFunc("/slots/{id}/specification", r.gradeHandler.SetSpecification).Methods(http.MethodPut)
	protected.HandleFunc("/slots/{id}/patient", r.gradeHandler.AssignPatient).Methods(http.MethodPut)
	protected.HandleFunc("/slots/{id}/patient", r.gradeHandler.RemovePatient).Methods(http.MethodDelete)
	protected.HandleFunc("/items/{id}", r.gradeHandler.RemoveItem).Methods(http.MethodDelete)

	// Records (export tooling, legacy import)
	protected.HandleFunc("/hospitals/{hospitalId}/records", r.gradeHandler.ListRecords).Methods(http.MethodGet)
	protected.HandleFunc("/hospitals/{hospitalId}/records/import", r.gradeHandler.ImportRecords).Methods(http.MethodPost)

	// Replication
	protected.HandleFunc("/hospitals/{hospitalId}/replications", r.replicationHandler.Replicate).Methods(http.MethodPost)
	protected.HandleFunc("/hospitals/{hospitalId}/replications/clear", r.replicationHandler.ClearMonths).Methods(http.MethodPost)

	// Patient transfer
	protected.HandleFunc("/transfers", r.transferHandler.MovePatient).Methods(http.MethodPost)

	// Audit trail (admin only)
	admin := api.NewRoute().Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
