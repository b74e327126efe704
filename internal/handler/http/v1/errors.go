package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/emergency_geo/internal/service"
	"github.com/sirupsen/logrus"
)

// statusFor сопоставляет ошибки сервисного слоя с HTTP-статусами
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidCoordinate),
		errors.Is(err, service.ErrInvalidRadius),
		errors.Is(err, service.ErrInvalidEntity),
		errors.Is(err, service.ErrEmptyMessage):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, service.ErrSecretTooLong):
		return http.StatusBadRequest, "secret must not exceed 72 bytes"
	case errors.Is(err, service.ErrInvalidSecret):
		return http.StatusForbidden, "invalid secret"
	case errors.Is(err, service.ErrIncidentNotFound):
		return http.StatusNotFound, "incident not found"
	case errors.Is(err, service.ErrEntryNotFound):
		return http.StatusNotFound, "entity not found"
	case errors.Is(err, service.ErrIncidentClosed):
		return http.StatusConflict, "incident is closed"
	case errors.Is(err, service.ErrSecretCollision):
		return http.StatusUnprocessableEntity, "primary and duress secrets must differ"
	case errors.Is(err, service.ErrSearchUnavailable), errors.Is(err, service.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// writeError логирует ошибку с уровнем по статусу и отвечает клиенту без внутренних деталей
func writeError(c *gin.Context, log *logrus.Entry, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
	} else {
		log.WithError(err).Warn("Request rejected")
	}
	c.JSON(status, gin.H{"error": message})
}
