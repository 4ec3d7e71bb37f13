package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("product not found")

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) List(ctx context.Context, offset, limit int) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, description, price, category
		FROM products ORDER BY name OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, description, price, category FROM products WHERE id=$1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) Create(ctx context.Context, p Product) (Product, error) {
	p.ID = uuid.NewString()
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products(id, name, description, price, category)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.Name, p.Description, p.Price, p.Category)
	return p, err
}

func (r *Repo) Update(ctx context.Context, id string, p Product) (Product, error) {
	p.ID = id
	ct, err := r.DB.Exec(ctx, `
		UPDATE products SET name=$2, description=$3, price=$4, category=$5 WHERE id=$1
	`, id, p.Name, p.Description, p.Price, p.Category)
	if err != nil {
		return Product{}, err
	}
	if ct.RowsAffected() == 0 {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// Delete removes the product and returns it, mirroring the API contract.
// Historical sale items keep the product's name; their analytics silently
// lose the catalog link.
func (r *Repo) Delete(ctx context.Context, id string) (Product, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	_, err = r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return p, err
}
