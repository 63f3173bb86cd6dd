package intelligence

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/exportiq/exportiq/pkg/logger"
)

// Recorder is the append-only persistence capability the pipeline needs.
// There is deliberately no update or upsert here: intelligence history is
// never overwritten.
type Recorder interface {
	Insert(ctx context.Context, rec Record) (Record, error)
}

// Pipeline runs one generation request end to end:
// validate -> prompt -> invoke -> normalize -> persist.
// It holds no mutable state between requests, so any number of requests may
// run concurrently. The reasoning call and the store write are strictly
// sequential; no store resource is held across the engine call.
type Pipeline struct {
	client ReasoningClient
	store  Recorder
	tracer trace.Tracer
}

func NewPipeline(client ReasoningClient, store Recorder) *Pipeline {
	return &Pipeline{
		client: client,
		store:  store,
		tracer: otel.Tracer("intelligence"),
	}
}

// Generate produces and persists one intelligence record. Every failure
// carries its kind; nothing is retried here — the caller owns retry policy.
func (p *Pipeline) Generate(ctx context.Context, req Request) (Record, error) {
	ctx, span := p.tracer.Start(ctx, "intelligence.generate", trace.WithAttributes(
		attribute.String("intelligence.type", string(req.Type)),
		attribute.String("intelligence.period", string(req.Period)),
	))
	defer span.End()

	rec, err := p.generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, KindOf(err))
		return Record{}, err
	}
	span.SetAttributes(attribute.String("intelligence.record_id", rec.ID))
	return rec, nil
}

func (p *Pipeline) generate(ctx context.Context, req Request) (Record, error) {
	if err := ValidateRequest(&req); err != nil {
		return Record{}, err
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return Record{}, err
	}

	raw, err := p.client.Complete(ctx, prompt.System, prompt.User)
	if err != nil {
		return Record{}, NewReasoningUnavailable(err)
	}

	analysis, err := Normalize(req.Type, raw)
	if err != nil {
		return Record{}, err
	}

	// An abandoned request must not leave a row behind.
	if err := ctx.Err(); err != nil {
		return Record{}, NewPersistenceFailure(err)
	}

	rec, err := p.store.Insert(ctx, Record{
		CompanyID:       req.CompanyID,
		Type:            req.Type,
		TargetMarket:    req.TargetMarket,
		ProductCategory: req.ProductCategory,
		HSCode:          req.HSCode,
		Period:          req.Period,
		ConfidenceScore: analysis.ConfidenceScore,
		Result:          analysis.Result,
		KeyInsights:     analysis.KeyInsights,
		Recommendations: analysis.Recommendations,
		DataSources:     analysis.DataSources,
	})
	if err != nil {
		if KindOf(err) != "" {
			return Record{}, err
		}
		return Record{}, NewPersistenceFailure(err)
	}

	logger.Infow("intelligence record generated",
		"record_id", rec.ID,
		"company_id", rec.CompanyID,
		"type", rec.Type,
		"market", rec.TargetMarket,
		"confidence", rec.ConfidenceScore,
	)
	return rec, nil
}

// ValidateRequest checks the mandatory identity fields and canonicalizes the
// target market. Validation failures never reach the reasoning engine.
func ValidateRequest(req *Request) error {
	var missing []string
	if strings.TrimSpace(req.CompanyID) == "" {
		missing = append(missing, "company_id")
	}
	if req.Type == "" {
		missing = append(missing, "prediction_type")
	}
	if req.Period == "" {
		missing = append(missing, "period")
	}
	if len(missing) > 0 {
		return NewInvalidRequest(fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}
	if !req.Type.Valid() {
		return NewInvalidRequest(fmt.Sprintf("unknown intelligence type %q", req.Type))
	}
	if !req.Period.Valid() {
		return NewInvalidRequest(fmt.Sprintf("unknown period %q", req.Period))
	}
	if strings.TrimSpace(req.TargetMarket) == "" {
		req.TargetMarket = DefaultMarket
	}
	return nil
}
