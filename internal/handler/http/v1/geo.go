package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/shenikar/emergency_geo/internal/service"
	"github.com/sirupsen/logrus"
)

// @Summary Update responder location
// @Description Upsert a responder position in the responder index. Requires API key.
// @Tags Responders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Responder ID"
// @Param location body UpdateResponderLocationRequest true "Responder location"
// @Success 200 {object} EntryResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 503 {object} map[string]string "Index unavailable"
// @Router /responders/{id}/location [put]
func (h *Handler) updateResponderLocation(c *gin.Context) {
	responderID := c.Param("id")
	log := h.logger.WithField("method", "updateResponderLocation").WithField("responder_id", responderID)

	var input UpdateResponderLocationRequest
	if !h.bind(c, log, &input) {
		return
	}

	payload := map[string]string{models.PayloadAddress: input.Address}
	entry, err := h.responderService.Index(c.Request.Context(), responderID, pointFromDTO(input.Latitude, input.Longitude), payload)
	if err != nil {
		writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEntryResponse(entry))
}

// @Summary Remove responder
// @Description Remove a responder from the responder index (off duty). Requires API key.
// @Tags Responders
// @Security ApiKeyAuth
// @Param id path string true "Responder ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Responder not found"
// @Router /responders/{id} [delete]
func (h *Handler) removeResponder(c *gin.Context) {
	responderID := c.Param("id")
	log := h.logger.WithField("method", "removeResponder").WithField("responder_id", responderID)

	if err := h.responderService.Remove(c.Request.Context(), responderID); err != nil {
		writeError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Search responders
// @Description Find responders within a radius, nearest first. Requires API key.
// @Tags Responders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param search body SearchRequest true "Search request"
// @Success 200 {array} MatchResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 503 {object} map[string]string "Search unavailable"
// @Router /responders/search [post]
func (h *Handler) searchResponders(c *gin.Context) {
	h.search(c, "searchResponders", h.responderService, h.cfg.ResponderSearchRadiusMeters)
}

// @Summary Report a crime
// @Description Index a crime report at a location. Requires API key.
// @Tags Crimes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param report body ReportCrimeRequest true "Crime report"
// @Success 201 {object} EntryResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 503 {object} map[string]string "Index unavailable"
// @Router /crimes [post]
func (h *Handler) reportCrime(c *gin.Context) {
	var input ReportCrimeRequest
	log := h.logger.WithField("method", "reportCrime")

	if !h.bind(c, log, &input) {
		return
	}

	payload := map[string]string{
		models.PayloadTitle:     input.Title,
		models.PayloadCrimeType: input.CrimeType,
	}
	if input.Severity != "" {
		payload[models.PayloadSeverity] = input.Severity
	}

	entry, err := h.crimeService.Index(c.Request.Context(), uuid.NewString(), pointFromDTO(input.Latitude, input.Longitude), payload)
	if err != nil {
		writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToEntryResponse(entry))
}

// @Summary Search crimes
// @Description Find crime reports within a radius, nearest first. Requires API key.
// @Tags Crimes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param search body SearchRequest true "Search request"
// @Success 200 {array} MatchResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 503 {object} map[string]string "Search unavailable"
// @Router /crimes/search [post]
func (h *Handler) searchCrimes(c *gin.Context) {
	h.search(c, "searchCrimes", h.crimeService, h.cfg.CrimeSearchRadiusMeters)
}

func (h *Handler) search(c *gin.Context, method string, svc service.ProximityService, defaultRadius float64) {
	var input SearchRequest
	log := h.logger.WithField("method", method)

	if !h.bind(c, log, &input) {
		return
	}

	radius := defaultRadius
	if input.RadiusMeters != nil {
		radius = *input.RadiusMeters
	}

	matches, err := svc.FindNear(c.Request.Context(), pointFromDTO(input.Latitude, input.Longitude), radius)
	if err != nil {
		writeError(c, log.WithFields(logrus.Fields{"radius_meters": radius}), err)
		return
	}
	c.JSON(http.StatusOK, ModelsToMatchResponses(matches))
}
