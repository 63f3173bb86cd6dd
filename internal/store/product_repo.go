package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/exportiq/exportiq/internal/intelligence"
	"github.com/exportiq/exportiq/internal/pricing"
)

// ProductRepo is the product catalog. Deleting a product cascades to its
// price recommendation via the schema's foreign key.
type ProductRepo struct {
	store *Store
}

func NewProductRepo(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

type productRow struct {
	ID             string  `db:"id"`
	CompanyID      string  `db:"company_id"`
	ProductName    string  `db:"product_name"`
	Category       string  `db:"category"`
	HSCode         string  `db:"hs_code"`
	UnitPrice      float64 `db:"unit_price"`
	Currency       string  `db:"currency"`
	Material       string  `db:"material"`
	TechnicalSpecs string  `db:"technical_specs"`
	CreatedAt      string  `db:"created_at"`
}

// Create stores a new product and returns it with its generated id.
func (r *ProductRepo) Create(ctx context.Context, p pricing.Product) (pricing.Product, error) {
	if strings.TrimSpace(p.CompanyID) == "" || strings.TrimSpace(p.Name) == "" {
		return pricing.Product{}, intelligence.NewInvalidRequest("company_id and product_name are required")
	}
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	if p.Currency == "" {
		p.Currency = "USD"
	}

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO products (
			id, company_id, product_name, category, hs_code,
			unit_price, currency, material, technical_specs, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CompanyID, p.Name, p.Category, p.HSCode,
		p.UnitPrice, p.Currency, p.Material, p.TechnicalSpecs,
		p.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return pricing.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

// ProductByID resolves a product scoped to its owning company. A product
// owned by another company is reported as not found, not as forbidden.
func (r *ProductRepo) ProductByID(ctx context.Context, companyID, productID string) (pricing.Product, error) {
	var row productRow
	err := r.store.db.GetContext(ctx, &row, `
		SELECT * FROM products WHERE id = ? AND company_id = ?`,
		productID, companyID)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.Product{}, intelligence.NewNotFound(fmt.Sprintf("product %s not found", productID))
	}
	if err != nil {
		return pricing.Product{}, fmt.Errorf("load product: %w", err)
	}
	return row.toProduct()
}

// List returns a company's products, newest first.
func (r *ProductRepo) List(ctx context.Context, companyID string) ([]pricing.Product, error) {
	if companyID == "" {
		return nil, intelligence.NewInvalidRequest("company_id is required")
	}
	var rows []productRow
	err := r.store.db.SelectContext(ctx, &rows, `
		SELECT * FROM products WHERE company_id = ?
		ORDER BY created_at DESC, rowid DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := make([]pricing.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// Delete removes a product and, through the cascade, its recommendation.
func (r *ProductRepo) Delete(ctx context.Context, companyID, productID string) error {
	res, err := r.store.db.ExecContext(ctx, `
		DELETE FROM products WHERE id = ? AND company_id = ?`,
		productID, companyID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return intelligence.NewNotFound(fmt.Sprintf("product %s not found", productID))
	}
	return nil
}

func (row productRow) toProduct() (pricing.Product, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return pricing.Product{}, fmt.Errorf("parse created_at for %s: %w", row.ID, err)
	}
	return pricing.Product{
		ID:             row.ID,
		CompanyID:      row.CompanyID,
		Name:           row.ProductName,
		Category:       row.Category,
		HSCode:         row.HSCode,
		UnitPrice:      row.UnitPrice,
		Currency:       row.Currency,
		Material:       row.Material,
		TechnicalSpecs: row.TechnicalSpecs,
		CreatedAt:      createdAt,
	}, nil
}
