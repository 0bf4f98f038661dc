package httpserver

import (
	"context"
	"io"
	"log"
	"time"

	"casecraft/internal/domain"
	checkoutsvc "casecraft/internal/service/checkout"
	configsvc "casecraft/internal/service/configuration"
	paymentsvc "casecraft/internal/service/payment"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConfigurationService covers the upload/preview/finalize flow.
type ConfigurationService interface {
	CreateFromUpload(ctx context.Context, r io.Reader, configID string) (*domain.Configuration, error)
	Get(ctx context.Context, id string) (*domain.Configuration, error)
	Finalize(ctx context.Context, configID string, in configsvc.FinalizeInput) (*domain.Configuration, error)
}

// CheckoutService opens hosted payment sessions.
type CheckoutService interface {
	Create(ctx context.Context, in checkoutsvc.CreateInput) (*checkoutsvc.Result, error)
}

// OrderGetter serves the thank-you page's payment polling.
type OrderGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

// PaymentProcessor handles incoming provider webhooks.
type PaymentProcessor interface {
	Process(ctx context.Context, payload []byte, sigHeader string) (*paymentsvc.Result, error)
}

// Deps carries the services the router dispatches to.
type Deps struct {
	Configurations ConfigurationService
	Checkout       CheckoutService
	Orders         OrderGetter
	Payments       PaymentProcessor
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	{
		api.GET("/catalog", catalogHandler)
		api.POST("/uploads", uploadHandler(deps.Configurations))
		api.GET("/configurations/:id", getConfigurationHandler(deps.Configurations))
		api.POST("/configurations/:id/finalize", finalizeHandler(deps.Configurations))
		api.POST("/checkout", checkoutHandler(deps.Checkout))
		api.GET("/orders/:id", getOrderHandler(deps.Orders))
		api.POST("/webhooks/stripe", webhookHandler(deps.Payments, logger))
	}

	return router
}
