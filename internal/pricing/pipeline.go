package pricing

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/exportiq/exportiq/internal/intelligence"
	"github.com/exportiq/exportiq/pkg/logger"
)

// ProductSource resolves a product scoped to its owning company. A product
// that exists but belongs to another company is indistinguishable from a
// missing one.
type ProductSource interface {
	ProductByID(ctx context.Context, companyID, productID string) (Product, error)
}

// TradeHistory returns the most recent trade-data points for an
// (hs code, country) pair, newest year first.
type TradeHistory interface {
	RecentTradeData(ctx context.Context, hsCode, country string, limit int) ([]TradePoint, error)
}

// Upserter is the single-writer capability for the natural key
// (company, product, market). The write must be one atomic conflict-
// resolving statement, never read-then-decide-then-write.
type Upserter interface {
	Upsert(ctx context.Context, rec Record) (Record, error)
}

// Pipeline is the price-optimization instance of the generation pipeline.
// Structurally the same linear flow as intelligence generation, but with a
// product-ownership check, trade-history prompt grounding, and idempotent
// upsert persistence.
type Pipeline struct {
	client   intelligence.ReasoningClient
	products ProductSource
	trades   TradeHistory
	store    Upserter
	tracer   trace.Tracer
}

func NewPipeline(client intelligence.ReasoningClient, products ProductSource, trades TradeHistory, store Upserter) *Pipeline {
	return &Pipeline{
		client:   client,
		products: products,
		trades:   trades,
		store:    store,
		tracer:   otel.Tracer("pricing"),
	}
}

// Generate produces and upserts the current recommendation for
// (company, product, market). Re-running for the same key never creates a
// duplicate row.
func (p *Pipeline) Generate(ctx context.Context, req Request) (Result, error) {
	ctx, span := p.tracer.Start(ctx, "pricing.generate", trace.WithAttributes(
		attribute.String("pricing.product_id", req.ProductID),
		attribute.String("pricing.market", req.TargetMarket),
	))
	defer span.End()

	res, err := p.generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, intelligence.KindOf(err))
		return Result{}, err
	}
	return res, nil
}

func (p *Pipeline) generate(ctx context.Context, req Request) (Result, error) {
	if err := validateRequest(&req); err != nil {
		return Result{}, err
	}

	product, err := p.products.ProductByID(ctx, req.CompanyID, req.ProductID)
	if err != nil {
		if intelligence.KindOf(err) != "" {
			return Result{}, err
		}
		return Result{}, intelligence.NewPersistenceFailure(err)
	}

	history, err := p.trades.RecentTradeData(ctx, product.HSCode, req.TargetMarket, historyLimit)
	if err != nil {
		return Result{}, intelligence.NewPersistenceFailure(err)
	}

	prompt, err := BuildPrompt(req, product, history)
	if err != nil {
		return Result{}, err
	}

	raw, err := p.client.Complete(ctx, prompt.System, prompt.User)
	if err != nil {
		return Result{}, intelligence.NewReasoningUnavailable(err)
	}

	opt, err := Normalize(raw)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, intelligence.NewPersistenceFailure(err)
	}

	rec, err := p.store.Upsert(ctx, Record{
		CompanyID:            req.CompanyID,
		ProductID:            req.ProductID,
		TargetMarket:         req.TargetMarket,
		CurrentPrice:         product.UnitPrice,
		OptimalPrice:         opt.OptimalPrice,
		PriceRange:           opt.PriceRange,
		ProfitMargin:         opt.ProfitMargin,
		CompetitivenessScore: opt.CompetitivenessScore,
		MarketPositioning:    opt.MarketPositioning,
		PricingStrategy:      opt.PricingStrategy,
		KeyFactors:           opt.KeyFactors,
		Risks:                opt.Risks,
		Recommendations:      opt.Recommendations,
		ConfidenceScore:      opt.ConfidenceScore,
		DataSources:          DataSources,
	})
	if err != nil {
		if intelligence.KindOf(err) != "" {
			return Result{}, err
		}
		return Result{}, intelligence.NewPersistenceFailure(err)
	}

	logger.Infow("price optimization generated",
		"company_id", rec.CompanyID,
		"product_id", rec.ProductID,
		"market", rec.TargetMarket,
		"optimal_price", rec.OptimalPrice,
		"confidence", rec.ConfidenceScore,
	)
	return Result{Record: rec, Summary: opt.Summary}, nil
}

func validateRequest(req *Request) error {
	var missing []string
	if strings.TrimSpace(req.CompanyID) == "" {
		missing = append(missing, "company_id")
	}
	if strings.TrimSpace(req.ProductID) == "" {
		missing = append(missing, "product_id")
	}
	if len(missing) > 0 {
		return intelligence.NewInvalidRequest(fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}
	if strings.TrimSpace(req.TargetMarket) == "" {
		req.TargetMarket = intelligence.DefaultMarket
	}
	return nil
}
