package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ItemInput struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type Repo struct{ DB *pgxpool.Pool }

// RecordSale inserts the sale and its items in one transaction and returns
// the stored sale with its server-assigned timestamp.
func (r *Repo) RecordSale(ctx context.Context, totalAmount decimal.Decimal, paymentMethod string, items []ItemInput) (Sale, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Sale{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sale := Sale{
		ID:            uuid.NewString(),
		TotalAmount:   totalAmount,
		PaymentMethod: paymentMethod,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO sales(id, total_amount, payment_method)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, sale.ID, totalAmount, paymentMethod).Scan(&sale.CreatedAt)
	if err != nil {
		return Sale{}, err
	}

	for _, it := range items {
		item := SaleItem{
			ID:          uuid.NewString(),
			SaleID:      sale.ID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO sale_items(id, sale_id, product_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			item.ID, item.SaleID, item.ProductName, item.Quantity, item.UnitPrice,
		); err != nil {
			return Sale{}, err
		}
		sale.Items = append(sale.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return Sale{}, err
	}
	return sale, nil
}

// SalesBetween returns sales with created_at in [start, end), items attached.
func (r *Repo) SalesBetween(ctx context.Context, start, end time.Time) ([]Sale, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, total_amount, payment_method, created_at
		FROM sales
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []Sale
	byID := map[string]int{}
	ids := make([]string, 0)
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.TotalAmount, &s.PaymentMethod, &s.CreatedAt); err != nil {
			return nil, err
		}
		byID[s.ID] = len(sales)
		ids = append(ids, s.ID)
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return sales, nil
	}

	itemRows, err := r.DB.Query(ctx, `
		SELECT id, sale_id, product_name, quantity, unit_price
		FROM sale_items
		WHERE sale_id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it SaleItem
		if err := itemRows.Scan(&it.ID, &it.SaleID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		if idx, ok := byID[it.SaleID]; ok {
			sales[idx].Items = append(sales[idx].Items, it)
		}
	}
	return sales, itemRows.Err()
}

// ItemHistory returns every line item ever recorded, joined to its sale's
// timestamp. Unbounded lookback; the forecaster wants all of it.
func (r *Repo) ItemHistory(ctx context.Context) ([]ItemSale, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT i.product_name, i.quantity, s.created_at
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		ORDER BY s.created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ItemSale
	for rows.Next() {
		var h ItemSale
		if err := rows.Scan(&h.ProductName, &h.Quantity, &h.SoldAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
