package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func deliveryFeeHandler(svc SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fee, err := svc.BaseDeliveryFee(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"baseDeliveryFee": fee})
	}
}
