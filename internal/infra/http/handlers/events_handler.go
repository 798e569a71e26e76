package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/lead-insights/internal/infra/broadcast"
	"github.com/xavierca1/lead-insights/internal/infra/metrics"
)

// EventsHandler streams hub events to the dashboard over SSE. A lead_id
// query param registers interest in that lead's topic; delivery is still
// every event to every client (the dashboard refreshes on all of them).
type EventsHandler struct {
	Hub *broadcast.Hub
	Log *logrus.Entry
}

func NewEventsHandler(hub *broadcast.Hub, log *logrus.Entry) *EventsHandler {
	return &EventsHandler{
		Hub: hub,
		Log: log.WithField("handler", "events"),
	}
}

func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, h.Log, NewAppError(http.StatusInternalServerError, "streaming unsupported"))
		return
	}

	var topics []string
	if leadID := r.URL.Query().Get("lead_id"); leadID != "" {
		topics = append(topics, "lead_"+leadID)
	}

	sub := h.Hub.Subscribe(topics...)
	defer h.Hub.Unsubscribe(sub)

	metrics.SSEClientConnected()
	defer metrics.SSEClientDisconnected()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.Log.WithField("remote", r.RemoteAddr).Debug("dashboard client connected")

	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Payload)
			if err != nil {
				h.Log.WithError(err).Error("marshal event payload")
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()
			metrics.RecordEventBroadcast(event.Name)
		}
	}
}
