package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nrehman/cart-service/internal/domain"
)

// Catalog exposes the read-only product and promo catalog. The cart core
// only consumes this data; it never creates or mutates catalog entries.
type Catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error)
	ListPromoCodes(ctx context.Context) ([]domain.PromoCode, error)
}

type PostgresCatalog struct {
	pool *pgxpool.Pool
}

func NewPostgresCatalog(pool *pgxpool.Pool) *PostgresCatalog {
	return &PostgresCatalog{pool: pool}
}

func (c *PostgresCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT id, name, unit_price::text FROM products ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (c *PostgresCatalog) GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	row := c.pool.QueryRow(ctx,
		`SELECT id, name, unit_price::text FROM products WHERE id = $1`,
		string(id),
	)

	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *PostgresCatalog) ListPromoCodes(ctx context.Context) ([]domain.PromoCode, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT code, discount_type, discount_value::text, description FROM promo_codes`,
	)
	if err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}
	defer rows.Close()

	var promos []domain.PromoCode
	for rows.Next() {
		var promo domain.PromoCode
		var discountType, discountValue string
		if err := rows.Scan(&promo.Code, &discountType, &discountValue, &promo.Description); err != nil {
			return nil, fmt.Errorf("scan promo code: %w", err)
		}

		value, err := decimal.NewFromString(discountValue)
		if err != nil {
			return nil, fmt.Errorf("promo %s discount value: %w", promo.Code, err)
		}
		promo.Discount = domain.Discount{
			Type:  domain.DiscountType(discountType),
			Value: value,
		}
		if err := promo.Discount.Validate(); err != nil {
			return nil, fmt.Errorf("promo %s: %w", promo.Code, err)
		}
		promos = append(promos, promo)
	}
	return promos, rows.Err()
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var product domain.Product
	var id, price string
	if err := row.Scan(&id, &product.Name, &price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, err
		}
		return domain.Product{}, fmt.Errorf("scan product: %w", err)
	}

	unitPrice, err := decimal.NewFromString(price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s unit price: %w", id, err)
	}
	product.ID = domain.ProductID(id)
	product.UnitPrice = unitPrice
	return product, nil
}

var _ Catalog = (*PostgresCatalog)(nil)
