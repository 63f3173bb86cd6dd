// Package httpapi exposes the generation pipelines and stored records over
// HTTP. It owns request/response shapes and the typed-error to status
// mapping; all domain behavior lives in the pipeline packages.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/exportiq/exportiq/internal/intelligence"
	"github.com/exportiq/exportiq/internal/pricing"
	"github.com/exportiq/exportiq/internal/store"
)

type IntelligenceService interface {
	Generate(ctx context.Context, req intelligence.Request) (intelligence.Record, error)
}

type PricingService interface {
	Generate(ctx context.Context, req pricing.Request) (pricing.Result, error)
}

type RecordSource interface {
	List(ctx context.Context, f store.Filter) ([]intelligence.Record, error)
	ByID(ctx context.Context, id string) (intelligence.Record, error)
}

type OptimizationSource interface {
	Lookup(ctx context.Context, companyID, productID, targetMarket string) (pricing.Record, error)
	List(ctx context.Context, companyID, productID, targetMarket string) ([]pricing.Record, error)
}

type ProductStore interface {
	Create(ctx context.Context, p pricing.Product) (pricing.Product, error)
	List(ctx context.Context, companyID string) ([]pricing.Product, error)
	Delete(ctx context.Context, companyID, productID string) error
}

type TradeStore interface {
	Insert(ctx context.Context, t pricing.TradePoint) error
}

type ReportRenderer interface {
	Render(ctx context.Context, rec intelligence.Record) ([]byte, error)
}

type Deps struct {
	Intelligence  IntelligenceService
	Pricing       PricingService
	Records       RecordSource
	Optimizations OptimizationSource
	Products      ProductStore
	Trades        TradeStore
	PDF           ReportRenderer
}

type Server struct {
	deps Deps
}

// NewRouter builds the gin engine with all routes registered. An empty
// apiKey disables authentication (local development).
func NewRouter(deps Deps, apiKey string) *gin.Engine {
	s := &Server{deps: deps}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/health", s.handleHealth)

	v1 := r.Group("/api/v1")
	v1.Use(apiKeyMiddleware(apiKey))
	{
		v1.POST("/intelligence", s.handleGenerateIntelligence)
		v1.GET("/intelligence", s.handleListIntelligence)
		v1.GET("/intelligence/:id/report", s.handleIntelligenceReport)

		v1.POST("/price-optimization", s.handleGeneratePriceOptimization)
		v1.GET("/price-optimization", s.handleListPriceOptimizations)

		v1.POST("/products", s.handleCreateProduct)
		v1.GET("/products", s.handleListProducts)
		v1.DELETE("/products/:id", s.handleDeleteProduct)

		v1.POST("/trade-data", s.handleCreateTradeData)
	}
	return r
}

func apiKeyMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-API-Key") != apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps a pipeline error onto an HTTP status. Only the typed
// message crosses the boundary; wrapped internals (raw engine output
// included) stay server-side.
func writeError(c *gin.Context, err error) {
	kind := intelligence.KindOf(err)
	var status int
	switch kind {
	case intelligence.KindInvalidRequest:
		status = http.StatusBadRequest
	case intelligence.KindNotFound:
		status = http.StatusNotFound
	case intelligence.KindReasoningUnavailable:
		status = http.StatusServiceUnavailable
	case intelligence.KindSchemaViolation:
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
		if kind == "" {
			kind = "internal"
		}
	}

	message := "internal error"
	var e *intelligence.Error
	if errors.As(err, &e) {
		message = e.Message
	}
	c.JSON(status, gin.H{"error": message, "kind": kind})
}
