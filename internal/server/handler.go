package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "monpro-diagnostic/internal/common/errors"
	"monpro-diagnostic/internal/common/logger"
	"monpro-diagnostic/internal/common/metrics"
	"monpro-diagnostic/internal/diagnostic/cooldown"
	"monpro-diagnostic/internal/diagnostic/sanitize"
	"monpro-diagnostic/internal/models"
)

// Enqueuer accepts submissions for background processing.
type Enqueuer interface {
	Enqueue(sub *models.Submission) error
}

// Handler serves the diagnostic submission endpoint.
type Handler struct {
	cooldown cooldown.Store
	pipeline Enqueuer
	logger   logger.Logger
	now      func() time.Time
}

func NewHandler(store cooldown.Store, pipeline Enqueuer, log logger.Logger) *Handler {
	return &Handler{
		cooldown: store,
		pipeline: pipeline,
		logger:   log.WithFields(map[string]interface{}{"component": "server"}),
		now:      time.Now,
	}
}

// handleSubmit runs the synchronous validate, throttle, respond
// sequence and then hands the submission to the background pipeline.
// The caller never waits on generation or delivery.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)

	var sub models.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		// Lead capture is never blocked by a malformed body: the
		// client still sees success and nothing is processed.
		h.logger.Error("submission parse failed", map[string]interface{}{
			"ip":    ip,
			"error": err.Error(),
		})
		writeAccepted(w)
		return
	}

	sanitized, err := sanitize.Submission(&sub)
	if err != nil {
		code := apperrors.CodeOf(err)
		h.logger.Warn("submission rejected", map[string]interface{}{
			"ip":     ip,
			"reason": string(code),
		})
		metrics.SubmissionsRejected.WithLabelValues(string(code)).Inc()
		writeRejected(w, rejectionMessage(code))
		return
	}

	result, err := h.cooldown.CheckAndRecord(r.Context(), sanitized.Email, h.now())
	if err != nil {
		// Fail open: a broken throttle store must not cost the lead.
		h.logger.Error("cooldown store unavailable, allowing submission", map[string]interface{}{
			"error": err.Error(),
		})
		result = cooldown.Result{Allowed: true}
	}
	if !result.Allowed {
		metrics.SubmissionsThrottled.Inc()
		writeThrottled(w,
			fmt.Sprintf("Please wait %d more day(s) before submitting again. Your proposal is being prepared.",
				result.DaysRemaining),
			result.DaysRemaining)
		return
	}

	// Respond first; everything after this line is invisible to the
	// caller.
	metrics.SubmissionsAccepted.Inc()
	writeAccepted(w)

	if err := h.pipeline.Enqueue(sanitized); err != nil {
		h.logger.Error("background enqueue failed", map[string]interface{}{
			"email": sanitized.Email,
			"error": err.Error(),
		})
	}
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// rejectionMessage keeps 400 responses generic per validation
// category, never naming the offending field value.
func rejectionMessage(code apperrors.ErrorCode) string {
	switch code {
	case apperrors.ErrCodeInvalidRegion:
		return "Invalid region"
	case apperrors.ErrCodeInvalidPath:
		return "Invalid path"
	case apperrors.ErrCodeInvalidEmail:
		return "Invalid email format"
	case apperrors.ErrCodeInvalidName:
		return "Invalid name"
	case apperrors.ErrCodeInvalidPhone:
		return "Invalid phone number"
	default:
		return "Invalid data"
	}
}
