package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"workshop-manager/internal/core"
)

func (h *Handler) listMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.svc.ListMaterials(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, materials)
}

func (h *Handler) getMaterial(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.GetMaterial(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, m)
}

func (h *Handler) createMaterial(w http.ResponseWriter, r *http.Request) {
	var in core.MaterialInput
	if !decodeBody(w, r, &in) {
		return
	}
	m, err := h.svc.CreateMaterial(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, m)
}

func (h *Handler) updateMaterial(w http.ResponseWriter, r *http.Request) {
	var patch core.MaterialPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	m, err := h.svc.UpdateMaterial(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, m)
}

func (h *Handler) deleteMaterial(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteMaterial(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
