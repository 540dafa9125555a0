package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nrehman/cart-service/internal/domain"
)

// StaticCatalog serves the hard-coded demo catalog. It backs the service when
// no database is configured and keeps the full stack testable in-process.
type StaticCatalog struct {
	products []domain.Product
	promos   []domain.PromoCode
}

func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{
		products: seedProducts(),
		promos:   seedPromoCodes(),
	}
}

func (c *StaticCatalog) ListProducts(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

func (c *StaticCatalog) GetProduct(_ context.Context, id domain.ProductID) (*domain.Product, error) {
	for i := range c.products {
		if c.products[i].ID == id {
			product := c.products[i]
			return &product, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (c *StaticCatalog) ListPromoCodes(_ context.Context) ([]domain.PromoCode, error) {
	out := make([]domain.PromoCode, len(c.promos))
	copy(out, c.promos)
	return out, nil
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{ID: "prod-001", Name: "Wireless Headphones", UnitPrice: decimal.RequireFromString("79.99")},
		{ID: "prod-002", Name: "Smart Watch", UnitPrice: decimal.RequireFromString("199.99")},
		{ID: "prod-003", Name: "Bluetooth Speaker", UnitPrice: decimal.RequireFromString("49.99")},
		{ID: "prod-004", Name: "Laptop Sleeve", UnitPrice: decimal.RequireFromString("29.99")},
		{ID: "prod-005", Name: "USB-C Cable", UnitPrice: decimal.RequireFromString("12.99")},
		{ID: "prod-006", Name: "Phone Stand", UnitPrice: decimal.RequireFromString("10.99")},
		{ID: "prod-007", Name: "Screen Cleaner Kit", UnitPrice: decimal.RequireFromString("5.99")},
	}
}

func seedPromoCodes() []domain.PromoCode {
	return []domain.PromoCode{
		{
			Code:        "SAVE15",
			Discount:    domain.Discount{Type: domain.DiscountPercentage, Value: decimal.NewFromInt(15)},
			Description: "15% off your order",
		},
		{
			Code:        "WELCOME20",
			Discount:    domain.Discount{Type: domain.DiscountPercentage, Value: decimal.NewFromInt(20)},
			Description: "20% off for new customers",
		},
		{
			Code:        "10OFF",
			Discount:    domain.Discount{Type: domain.DiscountFixed, Value: decimal.NewFromInt(10)},
			Description: "$10 off your order",
		},
	}
}

var _ Catalog = (*StaticCatalog)(nil)
