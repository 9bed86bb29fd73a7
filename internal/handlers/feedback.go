package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
)

var errInvalidFeedback = errors.New("session_id and recommendation_id are required")

type FeedbackHandler struct {
	log *logger.Logger
}

func NewFeedbackHandler(log *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{log: log.With("handler", "FeedbackHandler")}
}

type feedbackRequest struct {
	SessionID        uuid.UUID `json:"session_id"`
	RecommendationID uuid.UUID `json:"recommendation_id"`
	Helpful          bool      `json:"helpful"`
	Comment          string    `json:"comment"`
}

// POST /api/feedback
// Feedback is logged, not stored. The log line feeds offline tuning of the
// match weights.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	if req.SessionID == uuid.Nil || req.RecommendationID == uuid.Nil {
		RespondError(c, http.StatusBadRequest, "invalid_feedback",
			errInvalidFeedback)
		return
	}
	h.log.Info("Recommendation feedback",
		"session_id", req.SessionID.String(),
		"recommendation_id", req.RecommendationID.String(),
		"helpful", req.Helpful,
		"has_comment", req.Comment != "",
	)
	RespondOK(c, gin.H{"recorded": true})
}
