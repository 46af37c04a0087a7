package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"workshop-manager/internal/app"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, logger *zap.Logger, allowedOrigins []string, registry *prometheus.Registry) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	if registry != nil {
		r.Get("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Route("/api/materials", func(r chi.Router) {
			r.Get("/", h.listMaterials)
			r.Post("/", h.createMaterial)
			r.Get("/{id}", h.getMaterial)
			r.Patch("/{id}", h.updateMaterial)
			r.Delete("/{id}", h.deleteMaterial)
		})

		r.Route("/api/workers", func(r chi.Router) {
			r.Get("/", h.listWorkers)
			r.Post("/", h.createWorker)
			r.Get("/{id}", h.getWorker)
			r.Patch("/{id}", h.updateWorker)
			r.Delete("/{id}", h.deleteWorker)
		})

		r.Route("/api/furniture", func(r chi.Router) {
			r.Get("/", h.listFurniture)
			r.Post("/", h.createFurniture)
			r.Get("/{id}", h.getFurniture)
			r.Patch("/{id}", h.updateFurniture)
			r.Delete("/{id}", h.deleteFurniture)
		})

		// Production orders cannot be deleted: the stock deduction already
		// happened and is not reversed.
		r.Route("/api/productions", func(r chi.Router) {
			r.Get("/", h.listProductions)
			r.Post("/", h.createProduction)
			r.Get("/{id}", h.getProduction)
			r.Patch("/{id}", h.updateProduction)
		})

		r.Route("/api/sales", func(r chi.Router) {
			r.Get("/", h.listSales)
			r.Post("/", h.createSale)
			r.Get("/{id}", h.getSale)
			r.Patch("/{id}", h.updateSale)
			r.Delete("/{id}", h.deleteSale)
		})

		r.Route("/api/udhar", func(r chi.Router) {
			r.Get("/", h.listLedgerTransactions)
			r.Post("/", h.createLedgerTransaction)
			r.Patch("/{id}/status", h.updateLedgerStatus)
		})

		r.Get("/api/dashboard", h.dashboard)
		r.Get("/api/export", h.exportSnapshot)
		r.Post("/api/import", h.importSnapshot)

		r.Post("/api/ai/propose", h.proposeEntry)
		r.Post("/api/ai/apply", h.applyProposal)
	})

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
