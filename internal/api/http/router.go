package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"carrental-backoffice/internal/repository"
	"carrental-backoffice/internal/security"
	"carrental-backoffice/internal/service"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	Auth      service.AuthService
	Rentals   service.RentalService
	Fleet     service.FleetService
	Customers service.CustomerService
	Settings  service.SettingsService
	Activity  service.ActivityService
	Users     repository.UserRepository
}

// NewRouter builds the API route table. Staff routes live under /api/admin.
func NewRouter(h *Handler, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestMetaMiddleware)
	r.Use(authMiddleware(tokens))

	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	api.HandleFunc("/cars", h.listCars).Methods(http.MethodGet)
	api.HandleFunc("/cars/available", h.availableCars).Methods(http.MethodGet)
	api.HandleFunc("/cars/{id:[0-9]+}", h.getCar).Methods(http.MethodGet)

	// Authenticated customers
	api.HandleFunc("/rental-requests", requireAuth(h.createRentalRequest)).Methods(http.MethodPost)

	// Staff back office
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/rental-requests", requireStaff(h.listRentalRequests)).Methods(http.MethodGet)
	admin.HandleFunc("/rental-requests/{id:[0-9]+}", requireStaff(h.getRentalRequest)).Methods(http.MethodGet)
	admin.HandleFunc("/rental-requests/{id:[0-9]+}", requireStaff(h.editRentalRequest)).Methods(http.MethodPatch)
	admin.HandleFunc("/rental-requests/{id:[0-9]+}", requireStaff(h.deleteRentalRequest)).Methods(http.MethodDelete)
	admin.HandleFunc("/rental-requests/{id:[0-9]+}/approve", requireStaff(h.approveRentalRequest)).Methods(http.MethodPost)
	admin.HandleFunc("/rental-requests/{id:[0-9]+}/reject", requireStaff(h.rejectRentalRequest)).Methods(http.MethodPost)
	admin.HandleFunc("/rental-requests/{id:[0-9]+}/complete", requireStaff(h.completeRentalRequest)).Methods(http.MethodPost)

	admin.HandleFunc("/walk-ins", requireStaff(h.createWalkIn)).Methods(http.MethodPost)
	admin.HandleFunc("/walk-ins/active", requireStaff(h.todayActiveWalkIns)).Methods(http.MethodGet)
	admin.HandleFunc("/walk-ins/history", requireStaff(h.walkInHistory)).Methods(http.MethodGet)

	admin.HandleFunc("/cars", requireStaff(h.createCar)).Methods(http.MethodPost)
	admin.HandleFunc("/cars/{id:[0-9]+}", requireStaff(h.updateCar)).Methods(http.MethodPut)
	admin.HandleFunc("/cars/{id:[0-9]+}", requireStaff(h.deleteCar)).Methods(http.MethodDelete)
	admin.HandleFunc("/cars/{id:[0-9]+}/status", requireStaff(h.setCarStatus)).Methods(http.MethodPost)
	admin.HandleFunc("/cars/{id:[0-9]+}/disable", requireStaff(h.disableCar)).Methods(http.MethodPost)
	admin.HandleFunc("/cars/{id:[0-9]+}/enable", requireStaff(h.enableCar)).Methods(http.MethodPost)
	admin.HandleFunc("/car-statuses", requireStaff(h.listCarStatuses)).Methods(http.MethodGet)

	admin.HandleFunc("/customers", requireStaff(h.listCustomers)).Methods(http.MethodGet)
	admin.HandleFunc("/customers", requireStaff(h.createCustomer)).Methods(http.MethodPost)
	admin.HandleFunc("/customers/{id:[0-9]+}", requireStaff(h.getCustomer)).Methods(http.MethodGet)
	admin.HandleFunc("/customers/{id:[0-9]+}", requireStaff(h.updateCustomer)).Methods(http.MethodPut)

	admin.HandleFunc("/settings", requireStaff(h.listSettings)).Methods(http.MethodGet)
	admin.HandleFunc("/settings/{key}", requireStaff(h.updateSetting)).Methods(http.MethodPut)

	admin.HandleFunc("/activity-logs", requireStaff(h.listActivityLogs)).Methods(http.MethodGet)

	return r
}
