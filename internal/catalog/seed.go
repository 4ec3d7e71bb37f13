package catalog

import (
	"context"

	"github.com/op/go-logging"
	"github.com/shopspring/decimal"
)

var log = logging.MustGetLogger("log")

var initialProducts = []Product{
	{Name: "Expresso", Price: decimal.NewFromInt(2800), Category: CategoryCafes, Description: "Pocillo"},
	{Name: "Latte", Price: decimal.NewFromInt(3300), Category: CategoryCafeConLeche, Description: "Jarro 6 OZ"},
	{Name: "Medialuna", Price: decimal.NewFromInt(900), Category: CategorySides, Description: ""},
}

// Seed inserts the starter menu when the catalog is empty. Called once on
// API startup.
func (r *Repo) Seed(ctx context.Context) error {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	log.Infof("empty product catalog, seeding %d initial products", len(initialProducts))
	for _, p := range initialProducts {
		if _, err := r.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
