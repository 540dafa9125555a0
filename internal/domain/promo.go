package domain

import "strings"

// NormalizePromoCode trims surrounding whitespace and uppercases the input.
func NormalizePromoCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidatePromoCode resolves a raw user-entered code against the catalog.
// Catalog codes are assumed already normalized. Returns nil when nothing
// matches; malformed or empty input simply fails to match.
func ValidatePromoCode(raw string, catalog []PromoCode) *PromoCode {
	code := NormalizePromoCode(raw)
	if code == "" {
		return nil
	}
	for i := range catalog {
		if catalog[i].Code == code {
			promo := catalog[i]
			return &promo
		}
	}
	return nil
}
