package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/exportiq/exportiq/internal/intelligence"
	"github.com/exportiq/exportiq/internal/pricing"
)

// PricingRepo is the upsert-by-natural-key repository for price
// optimizations. It exposes no plain insert: the only write path is the
// atomic conflict-resolving upsert, so a duplicate row for a key cannot be
// created even under concurrent generations.
type PricingRepo struct {
	store *Store
}

func NewPricingRepo(store *Store) *PricingRepo {
	return &PricingRepo{store: store}
}

type pricingRow struct {
	ID                   string  `db:"id"`
	CompanyID            string  `db:"company_id"`
	ProductID            string  `db:"product_id"`
	TargetMarket         string  `db:"target_market"`
	CurrentPrice         float64 `db:"current_price"`
	OptimalPrice         float64 `db:"optimal_price"`
	PriceRangeMin        float64 `db:"price_range_min"`
	PriceRangeMax        float64 `db:"price_range_max"`
	ProfitMargin         float64 `db:"profit_margin"`
	CompetitivenessScore float64 `db:"competitiveness_score"`
	MarketPositioning    string  `db:"market_positioning"`
	PricingStrategy      string  `db:"pricing_strategy"`
	KeyFactors           string  `db:"key_factors"`
	Risks                string  `db:"risks"`
	Recommendations      string  `db:"recommendations"`
	ConfidenceScore      float64 `db:"confidence_score"`
	DataSources          string  `db:"data_sources"`
	CreatedAt            string  `db:"created_at"`
	UpdatedAt            string  `db:"updated_at"`
}

// Upsert writes the current recommendation for (company, product, market)
// in one atomic statement. On conflict every mutable field is overwritten
// and updated_at is refreshed; created_at keeps its original value.
func (r *PricingRepo) Upsert(ctx context.Context, rec pricing.Record) (pricing.Record, error) {
	factorsJSON, err := json.Marshal(orEmptySlice(rec.KeyFactors))
	if err != nil {
		return pricing.Record{}, fmt.Errorf("encode key factors: %w", err)
	}
	risksJSON, err := json.Marshal(orEmptySlice(rec.Risks))
	if err != nil {
		return pricing.Record{}, fmt.Errorf("encode risks: %w", err)
	}
	recsJSON, err := json.Marshal(orEmptySlice(rec.Recommendations))
	if err != nil {
		return pricing.Record{}, fmt.Errorf("encode recommendations: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = r.store.db.ExecContext(ctx, `
		INSERT INTO price_optimizations (
			id, company_id, product_id, target_market, current_price,
			optimal_price, price_range_min, price_range_max, profit_margin,
			competitiveness_score, market_positioning, pricing_strategy,
			key_factors, risks, recommendations, confidence_score,
			data_sources, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (company_id, product_id, target_market) DO UPDATE SET
			current_price         = excluded.current_price,
			optimal_price         = excluded.optimal_price,
			price_range_min       = excluded.price_range_min,
			price_range_max       = excluded.price_range_max,
			profit_margin         = excluded.profit_margin,
			competitiveness_score = excluded.competitiveness_score,
			market_positioning    = excluded.market_positioning,
			pricing_strategy      = excluded.pricing_strategy,
			key_factors           = excluded.key_factors,
			risks                 = excluded.risks,
			recommendations       = excluded.recommendations,
			confidence_score      = excluded.confidence_score,
			data_sources          = excluded.data_sources,
			updated_at            = excluded.updated_at`,
		uuid.NewString(), rec.CompanyID, rec.ProductID, rec.TargetMarket, rec.CurrentPrice,
		rec.OptimalPrice, rec.PriceRange.Min, rec.PriceRange.Max, rec.ProfitMargin,
		rec.CompetitivenessScore, rec.MarketPositioning, rec.PricingStrategy,
		string(factorsJSON), string(risksJSON), string(recsJSON), rec.ConfidenceScore,
		rec.DataSources, now, now,
	)
	if err != nil {
		return pricing.Record{}, fmt.Errorf("upsert price optimization: %w", err)
	}
	return r.Lookup(ctx, rec.CompanyID, rec.ProductID, rec.TargetMarket)
}

// Lookup returns the single recommendation for a fully-specified natural
// key. The unique constraint guarantees at most one row can match.
func (r *PricingRepo) Lookup(ctx context.Context, companyID, productID, targetMarket string) (pricing.Record, error) {
	var row pricingRow
	err := r.store.db.GetContext(ctx, &row, `
		SELECT * FROM price_optimizations
		WHERE company_id = ? AND product_id = ? AND target_market = ?`,
		companyID, productID, targetMarket)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.Record{}, intelligence.NewNotFound(
			fmt.Sprintf("no price optimization for product %s in %s", productID, targetMarket))
	}
	if err != nil {
		return pricing.Record{}, fmt.Errorf("load price optimization: %w", err)
	}
	return row.toRecord()
}

// List returns a company's recommendations, optionally narrowed by product
// and market, most recently updated first.
func (r *PricingRepo) List(ctx context.Context, companyID, productID, targetMarket string) ([]pricing.Record, error) {
	if companyID == "" {
		return nil, intelligence.NewInvalidRequest("company_id is required")
	}

	query := `SELECT * FROM price_optimizations WHERE company_id = ?`
	args := []any{companyID}
	if productID != "" {
		query += ` AND product_id = ?`
		args = append(args, productID)
	}
	if targetMarket != "" {
		query += ` AND target_market = ?`
		args = append(args, targetMarket)
	}
	query += ` ORDER BY updated_at DESC, rowid DESC`

	var rows []pricingRow
	if err := r.store.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list price optimizations: %w", err)
	}
	records := make([]pricing.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (row pricingRow) toRecord() (pricing.Record, error) {
	var factors, risks, recs []string
	if err := json.Unmarshal([]byte(row.KeyFactors), &factors); err != nil {
		return pricing.Record{}, fmt.Errorf("decode key factors for %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Risks), &risks); err != nil {
		return pricing.Record{}, fmt.Errorf("decode risks for %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Recommendations), &recs); err != nil {
		return pricing.Record{}, fmt.Errorf("decode recommendations for %s: %w", row.ID, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return pricing.Record{}, fmt.Errorf("parse created_at for %s: %w", row.ID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, row.UpdatedAt)
	if err != nil {
		return pricing.Record{}, fmt.Errorf("parse updated_at for %s: %w", row.ID, err)
	}
	return pricing.Record{
		ID:                   row.ID,
		CompanyID:            row.CompanyID,
		ProductID:            row.ProductID,
		TargetMarket:         row.TargetMarket,
		CurrentPrice:         row.CurrentPrice,
		OptimalPrice:         row.OptimalPrice,
		PriceRange:           pricing.PriceRange{Min: row.PriceRangeMin, Max: row.PriceRangeMax},
		ProfitMargin:         row.ProfitMargin,
		CompetitivenessScore: row.CompetitivenessScore,
		MarketPositioning:    row.MarketPositioning,
		PricingStrategy:      row.PricingStrategy,
		KeyFactors:           factors,
		Risks:                risks,
		Recommendations:      recs,
		ConfidenceScore:      row.ConfidenceScore,
		DataSources:          row.DataSources,
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
	}, nil
}
