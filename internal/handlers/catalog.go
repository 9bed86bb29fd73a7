package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/repos"
	"github.com/openoralcare/oralhealth-backend/internal/services"
)

type CatalogHandler struct {
	log        *logger.Logger
	catalogSvc services.CatalogService
}

func NewCatalogHandler(log *logger.Logger, catalogSvc services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:        log.With("handler", "CatalogHandler"),
		catalogSvc: catalogSvc,
	}
}

// GET /api/recommendations
// Filters: q, country, topic, strength, evidence_quality, page, limit.
func (h *CatalogHandler) ListRecommendations(c *gin.Context) {
	params := repos.SearchParams{
		Query:       strings.TrimSpace(c.Query("q")),
		CountryCode: strings.TrimSpace(c.Query("country")),
		Page:        queryInt(c, "page", 1),
		Limit:       queryInt(c, "limit", 20),
	}
	var err error
	if params.TopicID, err = queryUUID(c, "topic"); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_topic", err)
		return
	}
	if params.StrengthID, err = queryUUID(c, "strength"); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_strength", err)
		return
	}
	if params.EvidenceQualityID, err = queryUUID(c, "evidence_quality"); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_evidence_quality", err)
		return
	}

	page, err := h.catalogSvc.SearchRecommendations(c.Request.Context(), params)
	if err != nil {
		h.log.Error("ListRecommendations failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "search_failed", err)
		return
	}
	RespondOK(c, page)
}

// GET /api/recommendations/:id
func (h *CatalogHandler) GetRecommendation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	rec, err := h.catalogSvc.GetRecommendation(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "recommendation_not_found", err)
			return
		}
		h.log.Error("GetRecommendation failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_recommendation_failed", err)
		return
	}
	RespondOK(c, gin.H{"recommendation": rec})
}

// GET /api/search?q=
// Lightweight suggestion search; queries under 2 chars return an empty list.
func (h *CatalogHandler) Suggest(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < 2 {
		RespondOK(c, gin.H{"suggestions": []repos.Suggestion{}})
		return
	}
	suggestions, err := h.catalogSvc.Suggest(c.Request.Context(), query)
	if err != nil {
		h.log.Error("Suggest failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "suggest_failed", err)
		return
	}
	RespondOK(c, gin.H{"suggestions": suggestions})
}

// GET /api/topics
func (h *CatalogHandler) ListTopics(c *gin.Context) {
	vocabs, err := h.catalogSvc.Vocabularies(c.Request.Context())
	if err != nil {
		h.log.Error("ListTopics failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_topics_failed", err)
		return
	}
	RespondOK(c, gin.H{"topics": vocabs.Topics})
}

// GET /api/countries
func (h *CatalogHandler) ListCountries(c *gin.Context) {
	vocabs, err := h.catalogSvc.Vocabularies(c.Request.Context())
	if err != nil {
		h.log.Error("ListCountries failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_countries_failed", err)
		return
	}
	RespondOK(c, gin.H{"countries": vocabs.Countries})
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func queryUUID(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
