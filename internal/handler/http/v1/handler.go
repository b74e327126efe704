package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/emergency_geo/internal/config"
	"github.com/shenikar/emergency_geo/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	emergencyService service.EmergencyService
	responderService service.ProximityService
	crimeService     service.ProximityService
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(
	emergencyService service.EmergencyService,
	responderService service.ProximityService,
	crimeService service.ProximityService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		emergencyService: emergencyService,
		responderService: responderService,
		crimeService:     crimeService,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// bind разбирает JSON и проверяет его валидатором; при ошибке ответ уже записан
func (h *Handler) bind(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func parseIncidentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Trigger an emergency
// @Description Create an active emergency for a subject, engage nearby responders and notify trusted contacts. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param emergency body TriggerEmergencyRequest true "Emergency trigger request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /emergencies [post]
func (h *Handler) triggerEmergency(c *gin.Context) {
	var input TriggerEmergencyRequest
	log := h.logger.WithField("method", "triggerEmergency")

	if !h.bind(c, log, &input) {
		return
	}

	incident, err := h.emergencyService.Trigger(c.Request.Context(), input.SubjectID, pointFromDTO(input.Latitude, input.Longitude))
	if err != nil {
		writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// @Summary Get emergency by ID
// @Description Get an emergency with its track and chat. Requires API key.
// @Tags Emergencies
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /emergencies/{id} [get]
func (h *Handler) getEmergency(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getEmergency").WithField("id", id)

	incident, err := h.emergencyService.GetIncident(c.Request.Context(), id)
	if err != nil {
		writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Push a track point
// @Description Append a location to an active emergency. Requires API key.
// @Tags Emergencies
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param location body PushLocationRequest true "Track point"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Incident is closed"
// @Router /emergencies/{id}/locations [post]
func (h *Handler) pushLocation(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "pushLocation").WithField("id", id)

	var input PushLocationRequest
	if !h.bind(c, log, &input) {
		return
	}

	if err := h.emergencyService.PushLocation(c.Request.Context(), id, pointFromDTO(input.Latitude, input.Longitude), input.RecordedAt); err != nil {
		writeError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Resolve an emergency
// @Description Close an active emergency with the subject's secret. The response does not reveal which secret was used. Requires API key.
// @Tags Emergencies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param secret body ResolveRequest true "Secret"
// @Success 200 {object} ResolveResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Invalid secret"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Incident is closed"
// @Router /emergencies/{id}/resolve [post]
func (h *Handler) resolveEmergency(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "resolveEmergency").WithField("id", id)

	var input ResolveRequest
	if !h.bind(c, log, &input) {
		return
	}

	if _, err := h.emergencyService.Resolve(c.Request.Context(), id, input.Secret); err != nil {
		writeError(c, log, err)
		return
	}
	// отмена и эскалация выглядят для клиента одинаково
	c.JSON(http.StatusOK, ResolveResponse{Status: "resolved"})
}

// @Summary Post a chat message
// @Description Add a message to an active emergency chat. Requires API key.
// @Tags Emergencies
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param message body PostMessageRequest true "Message"
// @Success 201 "Created"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Incident is closed"
// @Router /emergencies/{id}/messages [post]
func (h *Handler) postMessage(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "postMessage").WithField("id", id)

	var input PostMessageRequest
	if !h.bind(c, log, &input) {
		return
	}

	if err := h.emergencyService.PostMessage(c.Request.Context(), id, input.SenderID, input.Body); err != nil {
		writeError(c, log, err)
		return
	}
	c.Status(http.StatusCreated)
}

// @Summary Set dual secret
// @Description Set the primary (safe) and duress secrets of a subject. Requires API key.
// @Tags Subjects
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Subject ID"
// @Param secrets body SetSecretsRequest true "Secrets"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 422 {object} map[string]string "Secrets must differ"
// @Router /subjects/{id}/secrets [put]
func (h *Handler) setSecrets(c *gin.Context) {
	subjectID := c.Param("id")
	log := h.logger.WithField("method", "setSecrets").WithField("subject_id", subjectID)

	var input SetSecretsRequest
	if !h.bind(c, log, &input) {
		return
	}

	if err := h.emergencyService.SetDualSecret(c.Request.Context(), subjectID, input.Primary, input.Duress); err != nil {
		writeError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Set trusted contacts
// @Description Replace the trusted contact delivery addresses of a subject. Requires API key.
// @Tags Subjects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Subject ID"
// @Param contacts body SetContactsRequest true "Contacts"
// @Success 200 {object} ContactsResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /subjects/{id}/contacts [put]
func (h *Handler) setContacts(c *gin.Context) {
	subjectID := c.Param("id")
	log := h.logger.WithField("method", "setContacts").WithField("subject_id", subjectID)

	var input SetContactsRequest
	if !h.bind(c, log, &input) {
		return
	}

	contacts, err := h.emergencyService.SetTrustedContacts(c.Request.Context(), subjectID, input.Contacts)
	if err != nil {
		writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ContactsResponse{SubjectID: subjectID, Contacts: contacts})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
