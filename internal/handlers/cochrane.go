package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/services"
)

type CochraneHandler struct {
	log        *logger.Logger
	catalogSvc services.CatalogService
}

func NewCochraneHandler(log *logger.Logger, catalogSvc services.CatalogService) *CochraneHandler {
	return &CochraneHandler{
		log:        log.With("handler", "CochraneHandler"),
		catalogSvc: catalogSvc,
	}
}

// GET /api/cochrane/reviews
func (h *CochraneHandler) ListReviews(c *gin.Context) {
	page, err := h.catalogSvc.ListCochraneReviews(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		h.log.Error("ListReviews failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_reviews_failed", err)
		return
	}
	RespondOK(c, page)
}

// GET /api/cochrane/reviews/:cochraneID
func (h *CochraneHandler) GetReview(c *gin.Context) {
	cochraneID := strings.TrimSpace(c.Param("cochraneID"))
	if cochraneID == "" {
		RespondError(c, http.StatusBadRequest, "invalid_cochrane_id", errors.New("missing cochrane id"))
		return
	}
	detail, err := h.catalogSvc.GetCochraneReview(c.Request.Context(), cochraneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "review_not_found", err)
			return
		}
		h.log.Error("GetReview failed", "error", err, "cochrane_id", cochraneID)
		RespondError(c, http.StatusInternalServerError, "load_review_failed", err)
		return
	}
	RespondOK(c, detail)
}
