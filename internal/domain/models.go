package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrPromoNotFound       = errors.New("promo code not found")
	ErrInvalidQuantity     = errors.New("quantity must be a positive integer")
	ErrUnknownDiscountType = errors.New("unknown discount type")
	ErrInvalidDiscount     = errors.New("invalid discount value")
)

// ProductID is an opaque catalog identifier. A dedicated type keeps product
// references from mixing with arbitrary strings.
type ProductID string

type Product struct {
	ID        ProductID       `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount is a tagged value: a percentage in [0,100] or a fixed amount >= 0.
type Discount struct {
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

var hundred = decimal.NewFromInt(100)

// Validate rejects unknown discount kinds and out-of-range values. Catalog
// adapters call this at load time so the calculator only ever sees valid tags.
func (d Discount) Validate() error {
	switch d.Type {
	case DiscountPercentage:
		if d.Value.IsNegative() || d.Value.GreaterThan(hundred) {
			return ErrInvalidDiscount
		}
	case DiscountFixed:
		if d.Value.IsNegative() {
			return ErrInvalidDiscount
		}
	default:
		return ErrUnknownDiscountType
	}
	return nil
}

type PromoCode struct {
	Code        string   `json:"code"`
	Discount    Discount `json:"discount"`
	Description string   `json:"description"`
}

// LineItem pairs a product with a positive quantity. The reducer guarantees
// a cart never holds a line item with quantity < 1.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is unit price times quantity, rounded half-up at the cent.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Product.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))).Round(2)
}

// CartState is an immutable snapshot: line items in insertion order plus at
// most one applied promo. Transitions return a new value, never mutate.
type CartState struct {
	Items []LineItem `json:"items"`
	Promo *PromoCode `json:"promo,omitempty"`
}

func EmptyCart() CartState {
	return CartState{}
}

// Clone returns a deep copy so callers can hand out snapshots safely.
func (s CartState) Clone() CartState {
	out := CartState{}
	if len(s.Items) > 0 {
		out.Items = make([]LineItem, len(s.Items))
		copy(out.Items, s.Items)
	}
	if s.Promo != nil {
		promo := *s.Promo
		out.Promo = &promo
	}
	return out
}

// CartTotals is derived from a CartState and never stored.
type CartTotals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	ItemCount      int
}
