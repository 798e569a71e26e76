package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/lead-insights/internal/entity"
)

func followUpRouter(h *FollowUpHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/followups", h.Create)
	r.Get("/api/followups", h.List)
	r.Patch("/api/followups/{id}", h.Update)
	return r
}

func TestFollowUpHandler_CreateMissingFields(t *testing.T) {
	repo := new(MockFollowUpRepository)
	h := NewFollowUpHandler(repo, testLog())

	req := httptest.NewRequest(http.MethodPost, "/api/followups", strings.NewReader(`{"leadId":"l1"}`))
	rec := httptest.NewRecorder()
	followUpRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFollowUpHandler_Create(t *testing.T) {
	repo := new(MockFollowUpRepository)
	h := NewFollowUpHandler(repo, testLog())

	var created *entity.FollowUp
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entity.FollowUp) }).
		Return(nil)

	body := `{"leadId":"l1","scheduledDate":"2025-01-10","actionType":"call"}`
	req := httptest.NewRequest(http.MethodPost, "/api/followups", strings.NewReader(body))
	rec := httptest.NewRecorder()
	followUpRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "l1", created.LeadID)
	assert.Equal(t, "call", created.ActionType)
	assert.Equal(t, entity.FollowUpStatusPending, created.Status)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), created.ScheduledDate)
	assert.Nil(t, created.CompletedAt)
}

func TestFollowUpHandler_CreateUnknownLead(t *testing.T) {
	repo := new(MockFollowUpRepository)
	h := NewFollowUpHandler(repo, testLog())

	repo.On("Create", mock.Anything, mock.Anything).Return(entity.ErrNotFound)

	body := `{"leadId":"nope","scheduledDate":"2025-01-10","actionType":"call"}`
	req := httptest.NewRequest(http.MethodPost, "/api/followups", strings.NewReader(body))
	rec := httptest.NewRecorder()
	followUpRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFollowUpHandler_ListFilters(t *testing.T) {
	repo := new(MockFollowUpRepository)
	h := NewFollowUpHandler(repo, testLog())

	repo.On("List", mock.Anything, "pending", "l1").Return([]entity.FollowUp{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/followups?status=pending&leadId=l1", nil)
	rec := httptest.NewRecorder()
	followUpRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestFollowUpHandler_Complete(t *testing.T) {
	repo := new(MockFollowUpRepository)
	h := NewFollowUpHandler(repo, testLog())

	completedAt := time.Now()
	var applied entity.FollowUpPatch
	repo.On("Patch", mock.Anything, "f1", mock.Anything).
		Run(func(args mock.Arguments) { applied = args.Get(2).(entity.FollowUpPatch) }).
		Return(&entity.FollowUp{
			ID:          "f1",
			LeadID:      "l1",
			Status:      entity.FollowUpStatusCompleted,
			CompletedAt: &completedAt,
		}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/followups/f1", strings.NewReader(`{"status":"completed"}`))
	rec := httptest.NewRecorder()
	followUpRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.FollowUpStatusCompleted, *applied.Status)
	assert.Nil(t, applied.Notes)

	var body entity.FollowUp
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, entity.FollowUpStatusCompleted, body.Status)
	assert.NotNil(t, body.CompletedAt)
}
