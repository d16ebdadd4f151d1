package httpserver

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"pakety/internal/domain"
	cartsvc "pakety/internal/service/cart"
)

// Deps are the services the router exposes. Interfaces keep handler tests
// free of the database.
type Deps struct {
	CartSvc      CartService
	ProductSvc   ProductService
	PromotionSvc PromotionService
	SettingsSvc  SettingsService
}

type CartService interface {
	List(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	Add(ctx context.Context, sessionID, productID string, quantity decimal.Decimal) (*domain.CartLine, error)
	UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity decimal.Decimal) error
	Remove(ctx context.Context, sessionID, lineID string) error
	Clear(ctx context.Context, sessionID string) error
	Summarize(ctx context.Context, sessionID string) (*cartsvc.Summary, error)
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type PromotionService interface {
	Tiers(ctx context.Context) ([]domain.PromotionTier, error)
	Evaluate(ctx context.Context, subtotal decimal.Decimal) (domain.PromotionResult, error)
}

type SettingsService interface {
	BaseDeliveryFee(ctx context.Context) (decimal.Decimal, error)
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = allowedOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, sessionHeader)
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/products", listProductsHandler(deps.ProductSvc))
	router.GET("/products/:id", getProductHandler(deps.ProductSvc))

	router.GET("/promotions/tiers", listTiersHandler(deps.PromotionSvc))
	router.GET("/promotions/evaluate", evaluateHandler(deps.PromotionSvc))

	router.GET("/settings/delivery-fee", deliveryFeeHandler(deps.SettingsSvc))

	cart := router.Group("/cart", sessionMiddleware())
	{
		cart.GET("", listCartHandler(deps.CartSvc))
		cart.GET("/summary", cartSummaryHandler(deps.CartSvc))
		cart.POST("", addLineHandler(deps.CartSvc))
		cart.PATCH("/:lineID", updateQuantityHandler(deps.CartSvc))
		cart.DELETE("/:lineID", removeLineHandler(deps.CartSvc))
		cart.DELETE("", clearCartHandler(deps.CartSvc))
	}

	return router
}

const sessionHeader = "X-Session-ID"

type sessionKeyType struct{}

var sessionCtxKey = sessionKeyType{}

// sessionMiddleware requires the storefront-supplied session id on every
// cart route.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(sessionHeader)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + sessionHeader + " header"})
			return
		}
		ctx := context.WithValue(c.Request.Context(), sessionCtxKey, sessionID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	v, _ := c.Request.Context().Value(sessionCtxKey).(string)
	return v
}
