// Package rest wires the HTTP surface: JSON handlers behind JWT auth and
// role gating, plus the CSV, backup and metrics endpoints.
package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rentaldesk-backend/internal/backup"
	"rentaldesk-backend/internal/config"
	"rentaldesk-backend/internal/repository/postgres"
	"rentaldesk-backend/internal/security"
	"rentaldesk-backend/internal/service"
)

type Server struct {
	responder
	cfg    *config.Config
	tokens security.TokenManager

	auth        service.AuthService
	rental      service.RentalService
	equipment   service.EquipmentService
	clients     service.ClientService
	maintenance service.MaintenanceService
	auditLogs   service.AuditService

	// Thin reference resources go straight to the store.
	store   *postgres.Store
	backups *backup.Manager
}

type Services struct {
	Auth        service.AuthService
	Rental      service.RentalService
	Equipment   service.EquipmentService
	Clients     service.ClientService
	Maintenance service.MaintenanceService
	AuditLogs   service.AuditService
}

func NewServer(cfg *config.Config, tokens security.TokenManager, svcs Services, store *postgres.Store, backups *backup.Manager, observer HTTPErrorObserver) *Server {
	return &Server{
		responder:   responder{observer: observer},
		cfg:         cfg,
		tokens:      tokens,
		auth:        svcs.Auth,
		rental:      svcs.Rental,
		equipment:   svcs.Equipment,
		clients:     svcs.Clients,
		maintenance: svcs.Maintenance,
		auditLogs:   svcs.AuditLogs,
		store:       store,
		backups:     backups,
	}
}

// Router builds the full route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	p := api.NewRoute().Subrouter()
	p.Use(s.authMiddleware)

	// Equipment
	p.HandleFunc("/equipment", s.handleListEquipment).Methods(http.MethodGet)
	p.HandleFunc("/equipment", s.handleCreateEquipment).Methods(http.MethodPost)
	p.HandleFunc("/equipment/bulk-status", s.handleBulkEquipmentStatus).Methods(http.MethodPost)
	p.HandleFunc("/equipment/{id:[0-9]+}", s.handleGetEquipment).Methods(http.MethodGet)
	p.HandleFunc("/equipment/{id:[0-9]+}", s.handleUpdateEquipment).Methods(http.MethodPut)
	p.HandleFunc("/equipment/{id:[0-9]+}", s.handleDeleteEquipment).Methods(http.MethodDelete)

	// Clients
	p.HandleFunc("/clients", s.handleListClients).Methods(http.MethodGet)
	p.HandleFunc("/clients", s.handleCreateClient).Methods(http.MethodPost)
	p.HandleFunc("/clients/{id:[0-9]+}", s.handleGetClient).Methods(http.MethodGet)
	p.HandleFunc("/clients/{id:[0-9]+}", s.handleUpdateClient).Methods(http.MethodPut)
	p.HandleFunc("/clients/{id:[0-9]+}", s.handleDeleteClient).Methods(http.MethodDelete)
	p.HandleFunc("/clients/{id:[0-9]+}/details", s.handleGetClientDetails).Methods(http.MethodGet)
	p.HandleFunc("/clients/{id:[0-9]+}/details", s.handlePutClientDetails).Methods(http.MethodPut)
	p.HandleFunc("/clients/{id:[0-9]+}/history", s.handleClientHistory).Methods(http.MethodGet)

	// Rents
	p.HandleFunc("/rents", s.handleListRents).Methods(http.MethodGet)
	p.HandleFunc("/rents", s.handleCreateRent).Methods(http.MethodPost)
	p.HandleFunc("/rents/quote", s.handleQuoteRent).Methods(http.MethodPost)
	p.HandleFunc("/rent-items", s.handleListRentItems).Methods(http.MethodGet)
	p.HandleFunc("/rents/{id:[0-9]+}", s.handleGetRent).Methods(http.MethodGet)
	p.HandleFunc("/rents/{id:[0-9]+}", s.handleDeleteRent).Methods(http.MethodDelete)
	p.HandleFunc("/rents/{id:[0-9]+}/complete", s.handleCompleteRent).Methods(http.MethodPost)
	p.HandleFunc("/rents/{id:[0-9]+}/pay", s.handlePayRent).Methods(http.MethodPost)
	p.HandleFunc("/rents/{id:[0-9]+}/extend", s.handleExtendRent).Methods(http.MethodPost)
	p.HandleFunc("/rents/{id:[0-9]+}/late-fee", s.handleRentLateFee).Methods(http.MethodGet)

	// Maintenance
	p.HandleFunc("/maintenance", s.handleListMaintenance).Methods(http.MethodGet)
	p.HandleFunc("/maintenance", s.handleCreateMaintenance).Methods(http.MethodPost)
	p.HandleFunc("/maintenance/{id:[0-9]+}", s.handleGetMaintenance).Methods(http.MethodGet)
	p.HandleFunc("/maintenance/{id:[0-9]+}", s.handleUpdateMaintenance).Methods(http.MethodPut)
	p.HandleFunc("/maintenance/{id:[0-9]+}", s.handleDeleteMaintenance).Methods(http.MethodDelete)

	// Addresses
	p.HandleFunc("/addresses", s.handleListAddresses).Methods(http.MethodGet)
	p.HandleFunc("/addresses", s.handleCreateAddress).Methods(http.MethodPost)
	p.HandleFunc("/addresses/{id:[0-9]+}", s.handleGetAddress).Methods(http.MethodGet)
	p.HandleFunc("/addresses/{id:[0-9]+}", s.handleUpdateAddress).Methods(http.MethodPut)
	p.HandleFunc("/addresses/{id:[0-9]+}", s.handleDeleteAddress).Methods(http.MethodDelete)

	// Dictionaries
	p.HandleFunc("/dictionaries/{kind}", s.handleListDictionary).Methods(http.MethodGet)
	p.HandleFunc("/dictionaries/{kind}", s.handleCreateDictionary).Methods(http.MethodPost)
	p.HandleFunc("/dictionaries/{kind}/{id:[0-9]+}", s.handleDeleteDictionary).Methods(http.MethodDelete)

	// Staff
	p.HandleFunc("/staff", s.handleListStaff).Methods(http.MethodGet)
	p.HandleFunc("/staff", s.handleCreateStaff).Methods(http.MethodPost)
	p.HandleFunc("/staff/{id:[0-9]+}", s.handleGetStaff).Methods(http.MethodGet)
	p.HandleFunc("/staff/{id:[0-9]+}", s.handleUpdateStaff).Methods(http.MethodPut)
	p.HandleFunc("/staff/{id:[0-9]+}/groups", s.handleSetStaffGroups).Methods(http.MethodPut)

	// Preferences (own)
	p.HandleFunc("/preferences", s.handleGetPreferences).Methods(http.MethodGet)
	p.HandleFunc("/preferences", s.handlePutPreferences).Methods(http.MethodPut)

	// Audit log
	p.HandleFunc("/logs", s.handleListLogs).Methods(http.MethodGet)

	// CSV exchange
	p.HandleFunc("/export/{resource}", s.handleExport).Methods(http.MethodGet)
	p.HandleFunc("/import/{resource}", s.handleImport).Methods(http.MethodPost)

	// Backups
	p.HandleFunc("/backups", s.handleListBackups).Methods(http.MethodGet)
	p.HandleFunc("/backups", s.handleRunBackup).Methods(http.MethodPost)
	p.HandleFunc("/backups/{filename}", s.handleDownloadBackup).Methods(http.MethodGet)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
