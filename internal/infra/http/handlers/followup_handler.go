package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/lead-insights/internal/entity"
)

type FollowUpHandler struct {
	FollowUps entity.FollowUpRepositoryInterface
	Log       *logrus.Entry
}

func NewFollowUpHandler(followUps entity.FollowUpRepositoryInterface, log *logrus.Entry) *FollowUpHandler {
	return &FollowUpHandler{
		FollowUps: followUps,
		Log:       log.WithField("handler", "followups"),
	}
}

type createFollowUpRequest struct {
	LeadID        string  `json:"leadId"`
	ScheduledDate string  `json:"scheduledDate"`
	ActionType    string  `json:"actionType"`
	Notes         *string `json:"notes"`
}

func (h *FollowUpHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFollowUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.Log, NewAppError(http.StatusBadRequest, "Invalid JSON"))
		return
	}

	if req.LeadID == "" || req.ScheduledDate == "" || req.ActionType == "" {
		writeError(w, r, h.Log, NewAppError(http.StatusBadRequest, "leadId, scheduledDate, and actionType are required"))
		return
	}

	scheduledDate, err := parseDate(req.ScheduledDate)
	if err != nil {
		writeError(w, r, h.Log, NewAppError(http.StatusBadRequest, "scheduledDate must be a date (YYYY-MM-DD) or RFC3339 timestamp"))
		return
	}

	followUp := entity.NewFollowUp(req.LeadID, scheduledDate, req.ActionType, req.Notes)
	if err := h.FollowUps.Create(r.Context(), followUp); err == entity.ErrNotFound {
		writeError(w, r, h.Log, NewAppError(http.StatusNotFound, "Lead not found"))
		return
	} else if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, followUp)
}

func (h *FollowUpHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	leadID := r.URL.Query().Get("leadId")

	followUps, err := h.FollowUps.List(r.Context(), status, leadID)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, followUps)
}

func (h *FollowUpHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch entity.FollowUpPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, r, h.Log, NewAppError(http.StatusBadRequest, "Invalid JSON"))
		return
	}

	followUp, err := h.FollowUps.Patch(r.Context(), id, patch)
	if err == entity.ErrNotFound {
		writeError(w, r, h.Log, NewAppError(http.StatusNotFound, "FollowUp not found"))
		return
	}
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, followUp)
}

func parseDate(dateStr string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", dateStr); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, dateStr)
}
