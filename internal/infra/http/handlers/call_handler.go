package handlers

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/lead-insights/internal/entity"
	"github.com/xavierca1/lead-insights/internal/infra/queue"
)

var allowedAudioTypes = map[string]bool{
	"audio/wav":  true,
	"audio/mpeg": true,
	"audio/mp3":  true,
	"audio/webm": true,
	"audio/ogg":  true,
}

type CallHandler struct {
	Calls       entity.CallRepositoryInterface
	Producer    queue.ProducerInterface
	UploadDir   string
	MaxFileSize int64
	Log         *logrus.Entry
}

func NewCallHandler(calls entity.CallRepositoryInterface, producer queue.ProducerInterface, uploadDir string, maxFileSize int64, log *logrus.Entry) *CallHandler {
	return &CallHandler{
		Calls:       calls,
		Producer:    producer,
		UploadDir:   uploadDir,
		MaxFileSize: maxFileSize,
		Log:         log.WithField("handler", "calls"),
	}
}

// Upload stores the audio, creates the Call row and hands the analysis to
// the queue. The response never reflects what happens to the analysis.
func (h *CallHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxFileSize)

	file, header, err := r.FormFile("audio_file")
	if err != nil {
		writeError(w, r, h.Log, NewAppError(http.StatusBadRequest, "Audio file is required"))
		return
	}
	defer file.Close()

	if !allowedAudioTypes[header.Header.Get("Content-Type")] {
		writeError(w, r, h.Log, NewAppError(http.StatusBadRequest, "Invalid file type. Only audio files are allowed."))
		return
	}

	filename := fmt.Sprintf("call-%d-%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), filepath.Ext(header.Filename))
	audioPath := filepath.Join(h.UploadDir, filename)

	dst, err := os.Create(audioPath)
	if err != nil {
		writeError(w, r, h.Log, fmt.Errorf("store audio file: %w", err))
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		writeError(w, r, h.Log, fmt.Errorf("store audio file: %w", err))
		return
	}

	call := entity.NewCall(audioPath)
	if err := h.Calls.Create(ctx, call); err != nil {
		writeError(w, r, h.Log, fmt.Errorf("create call: %w", err))
		return
	}

	if err := h.Producer.PublishCallJob(ctx, queue.CallJob{CallID: call.ID, AudioPath: audioPath}); err != nil {
		writeError(w, r, h.Log, fmt.Errorf("enqueue call analysis: %w", err))
		return
	}

	h.Log.WithField("call_id", call.ID).Info("call uploaded, analysis queued")

	writeJSON(w, http.StatusOK, map[string]string{
		"callId":  call.ID,
		"message": "Call uploaded and processing started",
	})
}

func (h *CallHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	call, err := h.Calls.FindByIDWithLead(r.Context(), id)
	if err == entity.ErrNotFound {
		writeError(w, r, h.Log, NewAppError(http.StatusNotFound, "Call not found"))
		return
	}
	if err != nil {
		writeError(w, r, h.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, call)
}
