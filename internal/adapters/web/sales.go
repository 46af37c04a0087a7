package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"workshop-manager/internal/core"
)

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.svc.ListSales(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, sales)
}

func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.svc.GetSale(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, sale)
}

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var in core.SaleInput
	if !decodeBody(w, r, &in) {
		return
	}
	sale, err := h.svc.CreateSale(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, sale)
}

func (h *Handler) updateSale(w http.ResponseWriter, r *http.Request) {
	var patch core.SalePatch
	if !decodeBody(w, r, &patch) {
		return
	}
	sale, err := h.svc.UpdateSale(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, sale)
}

func (h *Handler) deleteSale(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSale(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Dashboard & snapshots ─────────────────────────────────────────────────────

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetDashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, d)
}

func (h *Handler) exportSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.ExportSnapshot(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="workshop-backup.json"`)
	writeJSON(w, snap)
}

func (h *Handler) importSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap core.Snapshot
	if !decodeBody(w, r, &snap) {
		return
	}
	if err := h.svc.ImportSnapshot(r.Context(), snap); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "imported"})
}
