package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/models"
)

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func simpleProduct() *models.Product {
	return &models.Product{
		ID:    uuid.New(),
		Title: "Mug",
		Slug:  "mug",
		PricingFields: models.PricingFields{
			Price: f64(12),
		},
		Stock: intPtr(30),
	}
}

func variantProduct(mainAttr string) *models.Product {
	return &models.Product{
		ID:              uuid.New(),
		Title:           "Hoodie",
		Slug:            "hoodie",
		MainAttributeID: strPtr(mainAttr),
		Variants: []models.Variant{
			{
				ID:            uuid.New(),
				SKU:           strPtr("HOOD-BLK"),
				PricingFields: models.PricingFields{Price: f64(40)},
				Stock:         5,
				Values: []models.VariantValue{
					{AttributeID: mainAttr, AttributeValueIDs: models.ValueIDList{"v-black"}},
				},
			},
			{
				ID:            uuid.New(),
				SKU:           strPtr("HOOD-WHT"),
				PricingFields: models.PricingFields{Price: f64(42), SalePrice: f64(35)},
				Stock:         7,
				Values: []models.VariantValue{
					{AttributeID: mainAttr, AttributeValueIDs: models.ValueIDList{"v-white"}},
				},
			},
		},
	}
}

// ===========================================
// Simple mode
// ===========================================

func TestNormalize_SimpleProduct(t *testing.T) {
	p := simpleProduct()

	err := Normalize(p)

	require.NoError(t, err)
	assert.Equal(t, models.PricingModeSimple, p.PricingMode)
	assert.Equal(t, 30, p.TotalStock)
	require.NotNil(t, p.Stock)
	assert.Equal(t, 30, *p.Stock)
}

func TestNormalize_SimpleMissingPrice(t *testing.T) {
	p := simpleProduct()
	p.Price = nil

	err := Normalize(p)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, RuleSimpleProductRequiresPriceStock, ve.Rule)
}

func TestNormalize_SimpleMissingStock(t *testing.T) {
	p := simpleProduct()
	p.Stock = nil

	err := Normalize(p)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, RuleSimpleProductRequiresPriceStock, ve.Rule)
}

func TestNormalize_SimpleSalePriceAbovePrice(t *testing.T) {
	p := simpleProduct()
	p.SalePrice = f64(15)

	err := Normalize(p)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, RuleInvalidSimplePricing, ve.Rule)
	assert.Equal(t, "salePrice", ve.Field)
}

func TestNormalize_SimpleCompareAtBelowPrice(t *testing.T) {
	p := simpleProduct()
	p.CompareAtPrice = f64(10)

	err := Normalize(p)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, RuleInvalidSimplePricing, ve.Rule)
	assert.Equal(t, "compareAtPrice", ve.Field)
}

func TestNormalize_SimpleOfferWindowInverted(t *testing.T) {
	p := simpleProduct()
	p.OfferStart = ts("2026-02-01T00:00:00Z")
	p.OfferEnd = ts("2026-01-01T00:00:00Z")

	err := Normalize(p)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, RuleInvalidSimplePricing, ve.Rule)
	assert.Equal(t, "offerEnd", ve.Field)
}

func TestNormalize_SimpleNegativeStock(t *testing.T) {
	p := simpleProduct()
	p.Stock = intPtr(-1)

	err := Normalize(p)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, RuleInvalidSimplePricing, ve.Rule)
}

// ===========================================
// Variant mode
// ===========================================

func TestNormalize_VariantProduct(t *testing.T) {
	p := variantProduct("attr-color")
	p.Price = f64(99)
	p.Stock = intPtr(3)

	err := Normalize(p)

	require.NoError(t, err)
	assert.Equal(t, models.PricingModeVariant, p.PricingMode)
	assert.Equal(t, 12, p.TotalStock)
	// top-level pricing fields are cleared in variant mode
	assert.Nil(t, p.Stock)
	assert.Nil(t, p.Price)
}

func TestNormalize_VariantMissingMainAttribute(t *testing.T) {
	p := variantProduct("attr-color")
	p.MainAttributeID = nil

	err := Normalize(p)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, RuleMainAttributeRequired, ve.Rule)
}

func TestNormalize_VariantBlankMainAttribute(t *testing.T) {
	p := variantProduct("attr-color")
	p.MainAttributeID = strPtr("   ")

	err := Normalize(p)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, RuleMainAttributeRequired, ve.Rule)
}

func TestNormalize_VariantMissingCoverage(t *testing.T) {
	p := variantProduct("attr-color")
	p.Variants[1].Values = []models.VariantValue{
		{AttributeID: "attr-size", AttributeValueIDs: models.ValueIDList{"v-m"}},
	}

	err := Normalize(p)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, RuleMainAttributeCoverageMissing, ve.Rule)
	assert.Contains(t, ve.Message, "HOOD-WHT")
}

func TestNormalize_VariantEmptyValues(t *testing.T) {
	p := variantProduct("attr-color")
	p.Variants[0].Values = nil

	err := Normalize(p)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, RuleMainAttributeCoverageMissing, ve.Rule)
}

func TestNormalize_VariantMissingPrice(t *testing.T) {
	p := variantProduct("attr-color")
	p.Variants[0].Price = nil

	err := Normalize(p)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, RuleInvalidVariantPricing, ve.Rule)
	assert.Equal(t, "price", ve.Field)
}

func TestNormalize_VariantNegativeStock(t *testing.T) {
	p := variantProduct("attr-color")
	p.Variants[0].Stock = -2

	err := Normalize(p)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, RuleInvalidVariantPricing, ve.Rule)
	assert.Equal(t, "stock", ve.Field)
}

func TestNormalize_VariantSalePriceAbovePrice(t *testing.T) {
	p := variantProduct("attr-color")
	p.Variants[1].SalePrice = f64(50)

	err := Normalize(p)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, RuleInvalidVariantPricing, ve.Rule)
	assert.Equal(t, "salePrice", ve.Field)
}

func TestNormalize_VariantOfferWindowInverted(t *testing.T) {
	p := variantProduct("attr-color")
	p.Variants[0].OfferStart = ts("2026-03-01T00:00:00Z")
	p.Variants[0].OfferEnd = ts("2026-02-01T00:00:00Z")

	err := Normalize(p)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, RuleInvalidVariantPricing, ve.Rule)
	assert.Equal(t, "offerEnd", ve.Field)
}

func TestNormalize_ModeExclusivity(t *testing.T) {
	// Exactly one of the two stock derivations holds after Normalize.
	simple := simpleProduct()
	require.NoError(t, Normalize(simple))
	assert.NotNil(t, simple.Stock)
	assert.Equal(t, *simple.Stock, simple.TotalStock)
	assert.Empty(t, simple.Variants)

	variant := variantProduct("attr-color")
	require.NoError(t, Normalize(variant))
	assert.Nil(t, variant.Stock)
	sum := 0
	for _, v := range variant.Variants {
		sum += v.Stock
	}
	assert.Equal(t, sum, variant.TotalStock)
}
