package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"workshop-manager/internal/core"
)

func (h *Handler) listWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.svc.ListWorkers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, workers)
}

func (h *Handler) getWorker(w http.ResponseWriter, r *http.Request) {
	worker, err := h.svc.GetWorker(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, worker)
}

func (h *Handler) createWorker(w http.ResponseWriter, r *http.Request) {
	var in core.WorkerInput
	if !decodeBody(w, r, &in) {
		return
	}
	worker, err := h.svc.CreateWorker(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, worker)
}

func (h *Handler) updateWorker(w http.ResponseWriter, r *http.Request) {
	var patch core.WorkerPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	worker, err := h.svc.UpdateWorker(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, worker)
}

func (h *Handler) deleteWorker(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteWorker(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Udhar ledger ──────────────────────────────────────────────────────────────

func (h *Handler) listLedgerTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.svc.ListLedgerTransactions(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, txns)
}

func (h *Handler) createLedgerTransaction(w http.ResponseWriter, r *http.Request) {
	var in core.LedgerInput
	if !decodeBody(w, r, &in) {
		return
	}
	txn, err := h.svc.CreateLedgerTransaction(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, txn)
}

func (h *Handler) updateLedgerStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status core.LedgerStatus `json:"status"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	txn, err := h.svc.UpdateLedgerStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, txn)
}
