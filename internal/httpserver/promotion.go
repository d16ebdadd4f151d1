package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func listTiersHandler(svc PromotionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tiers, err := svc.Tiers(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, tiers)
	}
}

// evaluateHandler backs the storefront's reward progress bar.
func evaluateHandler(svc PromotionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		subtotal, err := decimal.NewFromString(c.Query("subtotal"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subtotal"})
			return
		}
		result, err := svc.Evaluate(c.Request.Context(), subtotal)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
