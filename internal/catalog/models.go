package catalog

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryCafes          Category = "Cafés"
	CategoryCafeConLeche   Category = "Café c/ Leche"
	CategoryBebidasFrias   Category = "Bebidas Frías"
	CategorySides          Category = "Acompañamientos"
	CategoryBebidasAlcohol Category = "Bebidas con Alcohol"
	CategoryPatisserie     Category = "Patisserie"
	CategoryBebidas        Category = "Bebidas"
	CategoryOtros          Category = "Otros"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
}
