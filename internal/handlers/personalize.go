package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/services"
	"github.com/openoralcare/oralhealth-backend/internal/types"
)

type PersonalizeHandler struct {
	log     *logger.Logger
	persSvc services.PersonalizationService
}

func NewPersonalizeHandler(log *logger.Logger, persSvc services.PersonalizationService) *PersonalizeHandler {
	return &PersonalizeHandler{
		log:     log.With("handler", "PersonalizeHandler"),
		persSvc: persSvc,
	}
}

type profileIntakeRequest struct {
	AgeGroup          string `json:"age_group"`
	LocationCountry   string `json:"location_country"`
	CariesRisk        string `json:"caries_risk"`
	PeriodontalStatus string `json:"periodontal_status"`
	FluorideExposure  string `json:"fluoride_exposure"`
	HasOrthodontics   bool   `json:"has_orthodontics"`
	HasDentalImplants bool   `json:"has_dental_implants"`
	HasDiabetes       bool   `json:"has_diabetes"`
	IsPregnant        bool   `json:"is_pregnant"`
	HasDryMouth       bool   `json:"has_dry_mouth"`
	BrushingFrequency string `json:"brushing_frequency"`
	FlossingFrequency string `json:"flossing_frequency"`
	DietSugarIntake   string `json:"diet_sugar_intake"`
	SpecificConcerns  string `json:"specific_concerns"`
	Medications       string `json:"medications"`
}

func (r profileIntakeRequest) toProfile() (*types.UserProfile, error) {
	profile := &types.UserProfile{
		AgeGroup:          types.AgeGroup(r.AgeGroup),
		LocationCountry:   strings.TrimSpace(r.LocationCountry),
		CariesRisk:        types.RiskLevel(r.CariesRisk),
		PeriodontalStatus: types.PeriodontalStatus(r.PeriodontalStatus),
		FluorideExposure:  types.FluorideExposure(r.FluorideExposure),
		HasOrthodontics:   r.HasOrthodontics,
		HasDentalImplants: r.HasDentalImplants,
		HasDiabetes:       r.HasDiabetes,
		IsPregnant:        r.IsPregnant,
		HasDryMouth:       r.HasDryMouth,
		BrushingFrequency: strings.TrimSpace(r.BrushingFrequency),
		FlossingFrequency: strings.TrimSpace(r.FlossingFrequency),
		DietSugarIntake:   types.RiskLevel(r.DietSugarIntake),
		SpecificConcerns:  strings.TrimSpace(r.SpecificConcerns),
		Medications:       strings.TrimSpace(r.Medications),
	}
	if !profile.AgeGroup.Valid() {
		return nil, fmt.Errorf("invalid age_group %q", r.AgeGroup)
	}
	if profile.LocationCountry == "" {
		return nil, errors.New("location_country is required")
	}
	if !profile.CariesRisk.Valid() {
		return nil, fmt.Errorf("invalid caries_risk %q", r.CariesRisk)
	}
	if !profile.PeriodontalStatus.Valid() {
		return nil, fmt.Errorf("invalid periodontal_status %q", r.PeriodontalStatus)
	}
	if !profile.FluorideExposure.Valid() {
		return nil, fmt.Errorf("invalid fluoride_exposure %q", r.FluorideExposure)
	}
	if r.DietSugarIntake != "" && !profile.DietSugarIntake.Valid() {
		return nil, fmt.Errorf("invalid diet_sugar_intake %q", r.DietSugarIntake)
	}
	return profile, nil
}

// POST /api/personalize
// Stores the profile and runs the pipeline synchronously. The response
// carries the session handle the client polls and fetches results with.
func (h *PersonalizeHandler) Personalize(c *gin.Context) {
	var req profileIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	profile, err := req.toProfile()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_profile", err)
		return
	}

	stored, session, err := h.persSvc.Intake(c.Request.Context(), profile)
	if err != nil {
		h.log.Error("Personalize failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "personalization_failed",
			errors.New("personalization failed"))
		return
	}
	RespondOK(c, gin.H{
		"session_id": stored.SessionID,
		"status":     session.Status,
	})
}

// GET /api/personalize/:sessionID
func (h *PersonalizeHandler) GetResults(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	results, err := h.persSvc.GetResults(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "session_not_found", err)
			return
		}
		h.log.Error("GetResults failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_results_failed", err)
		return
	}
	RespondOK(c, results)
}

// GET /api/personalize/:sessionID/status
func (h *PersonalizeHandler) GetStatus(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	status, err := h.persSvc.GetStatus(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "session_not_found", err)
			return
		}
		h.log.Error("GetStatus failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_status_failed", err)
		return
	}
	RespondOK(c, status)
}
