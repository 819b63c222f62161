package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fleetrent-backend/internal/metrics"
	"fleetrent-backend/internal/security"
	"fleetrent-backend/internal/service"
)

// Services are the operations exposed over REST.
type Services struct {
	Auth       service.AuthService
	Rents      service.RentService
	Cars       service.CarService
	Incomes    service.EntryService
	Outcomes   service.EntryService
	Monitoring service.MonitoringService
	Statements service.StatementService
}

type RouterOptions struct {
	TokenManager security.TokenManager
	Metrics      *metrics.Metrics // nil disables /metrics
	MetricsPath  string
	// Ping reports store health for /healthz.
	Ping func(r *http.Request) error
}

// NewRouter registers every route by name; the names key the security table.
func NewRouter(svc Services, opts RouterOptions) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestID, Recover)
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, opts.Metrics.Handler()).Methods(http.MethodGet).Name("metrics")
	}
	router.Use(NewAuthMiddleware(opts.TokenManager).Handler)

	router.HandleFunc("/healthz", healthz(opts.Ping)).Methods(http.MethodGet).Name("healthz")

	api := router.PathPrefix("/api/v1").Subrouter()

	auth := &authHandler{svc: svc.Auth}
	api.HandleFunc("/auth/login", auth.login).Methods(http.MethodPost).Name("auth.login")

	rents := &rentHandler{svc: svc.Rents}
	api.HandleFunc("/rents", rents.create).Methods(http.MethodPost).Name("rents.create")
	api.HandleFunc("/rents", rents.list).Methods(http.MethodGet).Name("rents.list")
	api.HandleFunc("/rents/page", rents.page).Methods(http.MethodGet).Name("rents.page")
	api.HandleFunc("/rents/search", rents.search).Methods(http.MethodGet).Name("rents.search")
	api.HandleFunc("/rents/{id:[0-9]+}", rents.get).Methods(http.MethodGet).Name("rents.get")
	api.HandleFunc("/rents/{id:[0-9]+}", rents.update).Methods(http.MethodPatch).Name("rents.update")
	api.HandleFunc("/rents/{id:[0-9]+}", rents.remove).Methods(http.MethodDelete).Name("rents.remove")
	api.HandleFunc("/rents/{id:[0-9]+}/extensions", rents.createExtension).Methods(http.MethodPost).Name("extensions.create")
	api.HandleFunc("/extensions/{id:[0-9]+}", rents.getExtension).Methods(http.MethodGet).Name("extensions.get")
	api.HandleFunc("/extensions/{id:[0-9]+}", rents.updateExtension).Methods(http.MethodPatch).Name("extensions.update")
	api.HandleFunc("/extensions/{id:[0-9]+}", rents.deleteExtension).Methods(http.MethodDelete).Name("extensions.delete")

	cars := &carHandler{svc: svc.Cars}
	api.HandleFunc("/cars", cars.create).Methods(http.MethodPost).Name("cars.create")
	api.HandleFunc("/cars", cars.list).Methods(http.MethodGet).Name("cars.list")
	api.HandleFunc("/cars/free", cars.free).Methods(http.MethodGet).Name("cars.free")
	api.HandleFunc("/cars/{id:[0-9]+}", cars.get).Methods(http.MethodGet).Name("cars.get")
	api.HandleFunc("/cars/{id:[0-9]+}", cars.update).Methods(http.MethodPatch).Name("cars.update")
	api.HandleFunc("/cars/{id:[0-9]+}", cars.remove).Methods(http.MethodDelete).Name("cars.remove")

	registerEntryRoutes(api, "incomes", &entryHandler{svc: svc.Incomes})
	registerEntryRoutes(api, "outcomes", &entryHandler{svc: svc.Outcomes})

	mon := &monitoringHandler{svc: svc.Monitoring}
	api.HandleFunc("/monitoring/rents", mon.rents).Methods(http.MethodGet).Name("monitoring.rents")
	api.HandleFunc("/monitoring/sum", mon.sum).Methods(http.MethodGet).Name("monitoring.sum")
	api.HandleFunc("/monitoring/rents/{year:[0-9]+}/{month:[0-9]+}", mon.rentsByMonth).Methods(http.MethodGet).Name("monitoring.rentsByMonth")
	api.HandleFunc("/monitoring/sum/{year:[0-9]+}/{month:[0-9]+}", mon.sumByMonth).Methods(http.MethodGet).Name("monitoring.sumByMonth")
	api.HandleFunc("/monitoring/ownersIncome", mon.ownersIncome).Methods(http.MethodGet).Name("monitoring.ownersIncome")
	api.HandleFunc("/monitoring/history", mon.history).Methods(http.MethodGet).Name("monitoring.history")

	statements := &statementHandler{svc: svc.Statements}
	api.HandleFunc("/statements/{key:.+}", statements.download).Methods(http.MethodGet).Name("statements.get")

	return router
}

func registerEntryRoutes(api *mux.Router, name string, h *entryHandler) {
	api.HandleFunc("/"+name, h.create).Methods(http.MethodPost).Name(name + ".create")
	api.HandleFunc("/"+name, h.list).Methods(http.MethodGet).Name(name + ".list")
	api.HandleFunc("/"+name+"/{id:[0-9]+}", h.get).Methods(http.MethodGet).Name(name + ".get")
	api.HandleFunc("/"+name+"/{id:[0-9]+}", h.update).Methods(http.MethodPatch).Name(name + ".update")
	api.HandleFunc("/"+name+"/{id:[0-9]+}", h.remove).Methods(http.MethodDelete).Name(name + ".delete")
}

func healthz(ping func(r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
