package web

import (
	"net/http"

	"workshop-manager/internal/core"
)

// proposeEntry runs a free-text event description through the interpreter
// and returns the structured proposal for human review. Nothing is written.
func (h *Handler) proposeEntry(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Text == "" {
		writeError(w, r, "text must not be empty", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	proposal, err := h.svc.ProposeEntry(r.Context(), body.Text)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, proposal)
}

// applyProposal executes a reviewed (possibly hand-edited) proposal.
func (h *Handler) applyProposal(w http.ResponseWriter, r *http.Request) {
	var proposal core.EntryProposal
	if !decodeBody(w, r, &proposal) {
		return
	}
	result, err := h.svc.ApplyProposal(r.Context(), proposal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}
