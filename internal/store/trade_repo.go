package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/exportiq/exportiq/internal/intelligence"
	"github.com/exportiq/exportiq/internal/pricing"
)

// TradeRepo stores historical trade statistics keyed by (hs code, country).
type TradeRepo struct {
	store *Store
}

func NewTradeRepo(store *Store) *TradeRepo {
	return &TradeRepo{store: store}
}

type tradeRow struct {
	HSCode       string  `db:"hs_code"`
	Country      string  `db:"country"`
	Year         int     `db:"year"`
	ImportValue  float64 `db:"import_value"`
	ImportVolume float64 `db:"import_volume"`
	GrowthRate   float64 `db:"growth_rate"`
}

// Insert records one trade-data point.
func (r *TradeRepo) Insert(ctx context.Context, t pricing.TradePoint) error {
	if strings.TrimSpace(t.HSCode) == "" || strings.TrimSpace(t.Country) == "" || t.Year == 0 {
		return intelligence.NewInvalidRequest("hs_code, country and year are required")
	}
	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO trade_data (hs_code, country, year, import_value, import_volume, growth_rate)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.HSCode, t.Country, t.Year, t.ImportValue, t.ImportVolume, t.GrowthRate)
	if err != nil {
		return fmt.Errorf("insert trade data: %w", err)
	}
	return nil
}

// RecentTradeData returns the most recent points for an (hs code, country)
// pair, newest year first. It implements pricing.TradeHistory.
func (r *TradeRepo) RecentTradeData(ctx context.Context, hsCode, country string, limit int) ([]pricing.TradePoint, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []tradeRow
	err := r.store.db.SelectContext(ctx, &rows, `
		SELECT * FROM trade_data
		WHERE hs_code = ? AND country = ?
		ORDER BY year DESC LIMIT ?`,
		hsCode, country, limit)
	if err != nil {
		return nil, fmt.Errorf("list trade data: %w", err)
	}
	points := make([]pricing.TradePoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, pricing.TradePoint(row))
	}
	return points, nil
}
