package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/lead-insights/internal/entity"
	"github.com/xavierca1/lead-insights/internal/infra/broadcast"
)

const defaultLeadLimit = 50

type LeadHandler struct {
	Leads        entity.LeadRepositoryInterface
	Interactions entity.InteractionRepositoryInterface
	Broadcaster  broadcast.Broadcaster
	Log          *logrus.Entry
}

func NewLeadHandler(leads entity.LeadRepositoryInterface, interactions entity.InteractionRepositoryInterface, broadcaster broadcast.Broadcaster, log *logrus.Entry) *LeadHandler {
	return &LeadHandler{
		Leads:        leads,
		Interactions: interactions,
		Broadcaster:  broadcaster,
		Log:          log.WithField("handler", "leads"),
	}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	limit := defaultLeadLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, r, h.Log, NewAppError(http.StatusBadRequest, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	leads, err := h.Leads.List(r.Context(), status, limit)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, err := h.Leads.FindByIDWithRelations(r.Context(), id)
	if err == entity.ErrNotFound {
		writeError(w, r, h.Log, NewAppError(http.StatusNotFound, "Lead not found"))
		return
	}
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// Update applies a partial edit. Fields absent from the body stay
// untouched; a patch with only notes never moves score or status.
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch entity.LeadPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, r, h.Log, NewAppError(http.StatusBadRequest, "Invalid JSON"))
		return
	}

	lead, err := h.Leads.Patch(r.Context(), id, patch)
	if err == entity.ErrNotFound {
		writeError(w, r, h.Log, NewAppError(http.StatusNotFound, "Lead not found"))
		return
	}
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	h.Broadcaster.Publish("lead_"+lead.ID, broadcast.Event{
		Name: broadcast.EventLeadUpdated,
		Payload: map[string]any{
			"leadId": lead.ID,
			"lead":   lead,
		},
	})

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	interactions, err := h.Interactions.ListByLead(r.Context(), id)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, interactions)
}
