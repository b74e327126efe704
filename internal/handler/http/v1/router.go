package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check доступен без ключа
	api.GET("/system/health", h.healthCheck)

	protected := api.Group("")
	protected.Use(APIKeyAuthMiddleware(h.cfg, h.logger))

	// Жизненный цикл экстренного вызова
	emergencies := protected.Group("/emergencies")
	{
		emergencies.POST("", h.triggerEmergency)
		emergencies.GET("/:id", h.getEmergency)
		emergencies.POST("/:id/locations", h.pushLocation)
		emergencies.POST("/:id/resolve", h.resolveEmergency)
		emergencies.POST("/:id/messages", h.postMessage)
	}

	subjects := protected.Group("/subjects")
	{
		subjects.PUT("/:id/secrets", h.setSecrets)
		subjects.PUT("/:id/contacts", h.setContacts)
	}

	responders := protected.Group("/responders")
	{
		responders.POST("/search", h.searchResponders)
		responders.PUT("/:id/location", h.updateResponderLocation)
		responders.DELETE("/:id", h.removeResponder)
	}

	crimes := protected.Group("/crimes")
	{
		crimes.POST("", h.reportCrime)
		crimes.POST("/search", h.searchCrimes)
	}
}
