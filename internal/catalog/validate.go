package catalog

import (
	"fmt"
	"strings"

	"catalog-service/internal/models"
)

// Normalize decides a candidate product's pricing mode, validates it,
// and derives the persisted fields (pricingMode, totalStock). It runs on
// every create and on every update after merging, so a partial update
// can never leave a product mode-inconsistent.
func Normalize(p *models.Product) error {
	if len(p.Variants) > 0 {
		return normalizeVariantMode(p)
	}
	return normalizeSimpleMode(p)
}

func normalizeVariantMode(p *models.Product) error {
	if p.MainAttributeID == nil || strings.TrimSpace(*p.MainAttributeID) == "" {
		return &ValidationError{
			Rule:    RuleMainAttributeRequired,
			Field:   "mainAttributeId",
			Message: "variant products require a main attribute",
		}
	}
	mainID := strings.TrimSpace(*p.MainAttributeID)

	total := 0
	for i := range p.Variants {
		v := &p.Variants[i]
		if err := validateVariant(v, i, mainID); err != nil {
			return err
		}
		total += v.Stock
	}

	p.PricingMode = models.PricingModeVariant
	p.TotalStock = total
	p.Stock = nil
	p.PricingFields = models.PricingFields{}
	return nil
}

func validateVariant(v *models.Variant, index int, mainID string) error {
	covered := false
	for _, val := range v.Values {
		if val.AttributeID == mainID {
			covered = true
			break
		}
	}
	if !covered {
		return &ValidationError{
			Rule:    RuleMainAttributeCoverageMissing,
			Field:   "variants",
			Message: fmt.Sprintf("%s has no value for the main attribute", variantName(v, index)),
		}
	}

	if v.Stock < 0 {
		return &ValidationError{
			Rule:    RuleInvalidVariantPricing,
			Field:   "stock",
			Message: fmt.Sprintf("%s stock must be >= 0", variantName(v, index)),
		}
	}
	if v.Price == nil || *v.Price < 0 {
		return &ValidationError{
			Rule:    RuleInvalidVariantPricing,
			Field:   "price",
			Message: fmt.Sprintf("%s requires a non-negative price", variantName(v, index)),
		}
	}
	if v.SalePrice != nil && *v.SalePrice > *v.Price {
		return &ValidationError{
			Rule:    RuleInvalidVariantPricing,
			Field:   "salePrice",
			Message: fmt.Sprintf("%s salePrice must be <= price", variantName(v, index)),
		}
	}
	if v.CompareAtPrice != nil && *v.CompareAtPrice < *v.Price {
		return &ValidationError{
			Rule:    RuleInvalidVariantPricing,
			Field:   "compareAtPrice",
			Message: fmt.Sprintf("%s compareAtPrice must be >= price", variantName(v, index)),
		}
	}
	if v.OfferStart != nil && v.OfferEnd != nil && v.OfferEnd.Before(*v.OfferStart) {
		return &ValidationError{
			Rule:    RuleInvalidVariantPricing,
			Field:   "offerEnd",
			Message: fmt.Sprintf("%s offerEnd cannot be before offerStart", variantName(v, index)),
		}
	}
	return nil
}

func variantName(v *models.Variant, index int) string {
	if v.SKU != nil && *v.SKU != "" {
		return fmt.Sprintf("variant %q", *v.SKU)
	}
	return fmt.Sprintf("variant #%d", index)
}

func normalizeSimpleMode(p *models.Product) error {
	if p.Price == nil || p.Stock == nil {
		return &ValidationError{
			Rule:    RuleSimpleProductRequiresPriceStock,
			Field:   "price",
			Message: "simple products require price and stock",
		}
	}
	if *p.Price < 0 {
		return &ValidationError{
			Rule:    RuleInvalidSimplePricing,
			Field:   "price",
			Message: "price must be >= 0",
		}
	}
	if *p.Stock < 0 {
		return &ValidationError{
			Rule:    RuleInvalidSimplePricing,
			Field:   "stock",
			Message: "stock must be >= 0",
		}
	}
	if p.SalePrice != nil && *p.SalePrice > *p.Price {
		return &ValidationError{
			Rule:    RuleInvalidSimplePricing,
			Field:   "salePrice",
			Message: "salePrice must be <= price",
		}
	}
	if p.CompareAtPrice != nil && *p.CompareAtPrice < *p.Price {
		return &ValidationError{
			Rule:    RuleInvalidSimplePricing,
			Field:   "compareAtPrice",
			Message: "compareAtPrice must be >= price",
		}
	}
	if p.OfferStart != nil && p.OfferEnd != nil && p.OfferEnd.Before(*p.OfferStart) {
		return &ValidationError{
			Rule:    RuleInvalidSimplePricing,
			Field:   "offerEnd",
			Message: "offerEnd cannot be before offerStart",
		}
	}

	p.PricingMode = models.PricingModeSimple
	p.TotalStock = *p.Stock
	return nil
}
