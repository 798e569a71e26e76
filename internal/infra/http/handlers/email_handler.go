package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/lead-insights/internal/entity"
	"github.com/xavierca1/lead-insights/internal/infra/metrics"
	"github.com/xavierca1/lead-insights/internal/usecase"
)

// ResponseSender dispatches an approved email response over SMTP.
type ResponseSender interface {
	SendResponse(to, subject, body string) error
}

type EmailHandler struct {
	ProcessEmailUC *usecase.ProcessEmailUseCase
	Emails         entity.EmailRepositoryInterface
	Mail           ResponseSender // nil when SMTP is not configured
	Log            *logrus.Entry
}

func NewEmailHandler(uc *usecase.ProcessEmailUseCase, emails entity.EmailRepositoryInterface, mail ResponseSender, log *logrus.Entry) *EmailHandler {
	return &EmailHandler{
		ProcessEmailUC: uc,
		Emails:         emails,
		Mail:           mail,
		Log:            log.WithField("handler", "emails"),
	}
}

// Create is fully synchronous: the client waits for the agent analysis and
// gets the ids plus the raw analysis back.
func (h *EmailHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.ProcessEmailInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, r, h.Log, NewAppError(http.StatusBadRequest, "Invalid JSON"))
		return
	}

	output, err := h.ProcessEmailUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	metrics.RecordEmailProcessed()
	writeJSON(w, http.StatusOK, output)
}

func (h *EmailHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	email, err := h.Emails.FindByIDWithLead(r.Context(), id)
	if err == entity.ErrNotFound {
		writeError(w, r, h.Log, NewAppError(http.StatusNotFound, "Email not found"))
		return
	}
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, email)
}

type sendResponseRequest struct {
	ResponseBody string `json:"responseBody"`
}

// SendResponse marks the email as answered. Actual SMTP dispatch is
// best-effort after the row update; the record is the source of truth.
func (h *EmailHandler) SendResponse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req sendResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.Log, NewAppError(http.StatusBadRequest, "Invalid JSON"))
		return
	}
	if req.ResponseBody == "" {
		writeError(w, r, h.Log, NewAppError(http.StatusBadRequest, "responseBody is required"))
		return
	}

	email, err := h.Emails.FindByIDWithLead(r.Context(), id)
	if err == entity.ErrNotFound {
		writeError(w, r, h.Log, NewAppError(http.StatusNotFound, "Email not found"))
		return
	}
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	updated, err := h.Emails.MarkResponseSent(r.Context(), id, req.ResponseBody)
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	if h.Mail != nil {
		to := email.FromEmail
		subject := "Re: " + email.Subject
		go func() {
			if err := h.Mail.SendResponse(to, subject, req.ResponseBody); err != nil {
				h.Log.WithError(err).WithField("email_id", id).Error("SMTP dispatch failed")
			}
		}()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Email sent successfully",
		"email":   updated,
	})
}
