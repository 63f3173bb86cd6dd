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
)

// IntelligenceRepo is the append-only repository for intelligence records.
// Its capability set is deliberately {insert, list}: history is never
// updated or overwritten through this interface.
type IntelligenceRepo struct {
	store *Store
}

func NewIntelligenceRepo(store *Store) *IntelligenceRepo {
	return &IntelligenceRepo{store: store}
}

type intelligenceRow struct {
	ID              string  `db:"id"`
	CompanyID       string  `db:"company_id"`
	PredictionType  string  `db:"prediction_type"`
	TargetMarket    string  `db:"target_market"`
	ProductCategory string  `db:"product_category"`
	HSCode          string  `db:"hs_code"`
	Period          string  `db:"period"`
	ConfidenceScore float64 `db:"confidence_score"`
	PredictionData  string  `db:"prediction_data"`
	KeyInsights     string  `db:"key_insights"`
	Recommendations string  `db:"recommendations"`
	DataSources     string  `db:"data_sources"`
	CreatedAt       string  `db:"created_at"`
}

// Insert appends one record and returns the stored row with its generated
// id and timestamp. Multiple rows per (company, type, market, period) are
// expected and valid.
func (r *IntelligenceRepo) Insert(ctx context.Context, rec intelligence.Record) (intelligence.Record, error) {
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()

	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return intelligence.Record{}, fmt.Errorf("encode prediction data: %w", err)
	}
	insightsJSON, err := json.Marshal(orEmptySlice(rec.KeyInsights))
	if err != nil {
		return intelligence.Record{}, fmt.Errorf("encode key insights: %w", err)
	}
	recsJSON, err := json.Marshal(orEmptySlice(rec.Recommendations))
	if err != nil {
		return intelligence.Record{}, fmt.Errorf("encode recommendations: %w", err)
	}

	_, err = r.store.db.ExecContext(ctx, `
		INSERT INTO intelligence_records (
			id, company_id, prediction_type, target_market, product_category,
			hs_code, period, confidence_score, prediction_data,
			key_insights, recommendations, data_sources, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CompanyID, string(rec.Type), rec.TargetMarket, rec.ProductCategory,
		rec.HSCode, string(rec.Period), rec.ConfidenceScore, string(resultJSON),
		string(insightsJSON), string(recsJSON), rec.DataSources,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return intelligence.Record{}, fmt.Errorf("insert intelligence record: %w", err)
	}
	return r.ByID(ctx, rec.ID)
}

// ByID fetches one stored record.
func (r *IntelligenceRepo) ByID(ctx context.Context, id string) (intelligence.Record, error) {
	var row intelligenceRow
	err := r.store.db.GetContext(ctx, &row, `SELECT * FROM intelligence_records WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return intelligence.Record{}, intelligence.NewNotFound(fmt.Sprintf("intelligence record %s not found", id))
	}
	if err != nil {
		return intelligence.Record{}, fmt.Errorf("load intelligence record: %w", err)
	}
	return row.toRecord()
}

// Filter narrows a listing. CompanyID is mandatory; every other field is
// combined conjunctively when present and omitted from the query entirely
// when absent.
type Filter struct {
	CompanyID       string
	Type            intelligence.Type
	Period          intelligence.Period
	ProductCategory string
	TargetMarket    string
}

// List returns matching records, newest first.
func (r *IntelligenceRepo) List(ctx context.Context, f Filter) ([]intelligence.Record, error) {
	if f.CompanyID == "" {
		return nil, intelligence.NewInvalidRequest("company_id is required")
	}

	query := `SELECT * FROM intelligence_records WHERE company_id = ?`
	args := []any{f.CompanyID}
	if f.Type != "" {
		query += ` AND prediction_type = ?`
		args = append(args, string(f.Type))
	}
	if f.Period != "" {
		query += ` AND period = ?`
		args = append(args, string(f.Period))
	}
	if f.ProductCategory != "" {
		query += ` AND product_category = ?`
		args = append(args, f.ProductCategory)
	}
	if f.TargetMarket != "" {
		query += ` AND target_market = ?`
		args = append(args, f.TargetMarket)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	var rows []intelligenceRow
	if err := r.store.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list intelligence records: %w", err)
	}
	records := make([]intelligence.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (row intelligenceRow) toRecord() (intelligence.Record, error) {
	result, err := intelligence.DecodeResult(intelligence.Type(row.PredictionType), []byte(row.PredictionData))
	if err != nil {
		return intelligence.Record{}, fmt.Errorf("decode prediction data for %s: %w", row.ID, err)
	}
	var insights, recs []string
	if err := json.Unmarshal([]byte(row.KeyInsights), &insights); err != nil {
		return intelligence.Record{}, fmt.Errorf("decode key insights for %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Recommendations), &recs); err != nil {
		return intelligence.Record{}, fmt.Errorf("decode recommendations for %s: %w", row.ID, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return intelligence.Record{}, fmt.Errorf("parse created_at for %s: %w", row.ID, err)
	}
	return intelligence.Record{
		ID:              row.ID,
		CompanyID:       row.CompanyID,
		Type:            intelligence.Type(row.PredictionType),
		TargetMarket:    row.TargetMarket,
		ProductCategory: row.ProductCategory,
		HSCode:          row.HSCode,
		Period:          intelligence.Period(row.Period),
		ConfidenceScore: row.ConfidenceScore,
		Result:          result,
		KeyInsights:     insights,
		Recommendations: recs,
		DataSources:     row.DataSources,
		CreatedAt:       createdAt,
	}, nil
}

func orEmptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
