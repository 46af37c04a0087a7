package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"workshop-manager/internal/core"
)

func (h *Handler) listFurniture(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListFurniture(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, items)
}

func (h *Handler) getFurniture(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.GetFurniture(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, item)
}

func (h *Handler) createFurniture(w http.ResponseWriter, r *http.Request) {
	var in core.FurnitureInput
	if !decodeBody(w, r, &in) {
		return
	}
	item, err := h.svc.CreateFurniture(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, item)
}

func (h *Handler) updateFurniture(w http.ResponseWriter, r *http.Request) {
	var patch core.FurniturePatch
	if !decodeBody(w, r, &patch) {
		return
	}
	item, err := h.svc.UpdateFurniture(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, item)
}

func (h *Handler) deleteFurniture(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteFurniture(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Production orders ─────────────────────────────────────────────────────────

// productionResponse pairs the created order with any stock shortages the
// cascade ran into, so clients can surface them to the user.
type productionResponse struct {
	Order     core.ProductionOrder `json:"order"`
	Shortages []core.StockShortage `json:"shortages,omitempty"`
}

func (h *Handler) listProductions(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListProductions(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, orders)
}

func (h *Handler) getProduction(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.GetProduction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, order)
}

func (h *Handler) createProduction(w http.ResponseWriter, r *http.Request) {
	var in core.ProductionInput
	if !decodeBody(w, r, &in) {
		return
	}
	order, shortages, err := h.svc.CreateProduction(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, productionResponse{Order: order, Shortages: shortages})
}

func (h *Handler) updateProduction(w http.ResponseWriter, r *http.Request) {
	var patch core.ProductionPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	order, err := h.svc.UpdateProduction(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, order)
}
