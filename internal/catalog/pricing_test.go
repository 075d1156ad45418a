package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"catalog-service/internal/models"
)

func f64(v float64) *float64 { return &v }

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func TestEffectivePrice_SaleNoWindow(t *testing.T) {
	p := models.PricingFields{Price: f64(100), SalePrice: f64(80)}

	eff := EffectivePrice(p, now)

	assert.NotNil(t, eff)
	assert.Equal(t, 80.0, *eff)
	assert.Equal(t, 20, DiscountPercent(p.Price, eff))
}

func TestEffectivePrice_WindowNotStarted(t *testing.T) {
	p := models.PricingFields{
		Price:      f64(100),
		SalePrice:  f64(80),
		OfferStart: ts("2030-01-01T00:00:00Z"),
		OfferEnd:   ts("2030-02-01T00:00:00Z"),
	}

	eff := EffectivePrice(p, now)

	assert.Equal(t, 100.0, *eff)
	assert.Equal(t, 0, DiscountPercent(p.Price, eff))
}

func TestEffectivePrice_WindowExpired(t *testing.T) {
	p := models.PricingFields{
		Price:      f64(100),
		SalePrice:  f64(80),
		OfferStart: ts("2020-01-01T00:00:00Z"),
		OfferEnd:   ts("2020-02-01T00:00:00Z"),
	}

	assert.Equal(t, 100.0, *EffectivePrice(p, now))
}

func TestEffectivePrice_WindowBounds(t *testing.T) {
	// Every combination of absent/present bounds with now inside.
	cases := []struct {
		name  string
		start *time.Time
		end   *time.Time
	}{
		{"both absent", nil, nil},
		{"start only", ts("2026-01-01T00:00:00Z"), nil},
		{"end only", nil, ts("2026-12-31T00:00:00Z")},
		{"both present", ts("2026-01-01T00:00:00Z"), ts("2026-12-31T00:00:00Z")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := models.PricingFields{Price: f64(50), SalePrice: f64(40), OfferStart: tc.start, OfferEnd: tc.end}
			assert.Equal(t, 40.0, *EffectivePrice(p, now))
		})
	}
}

func TestEffectivePrice_WindowBoundsInclusive(t *testing.T) {
	p := models.PricingFields{
		Price:      f64(100),
		SalePrice:  f64(75),
		OfferStart: &now,
		OfferEnd:   &now,
	}

	assert.Equal(t, 75.0, *EffectivePrice(p, now))
}

func TestEffectivePrice_NoSalePrice(t *testing.T) {
	p := models.PricingFields{Price: f64(100)}

	assert.Equal(t, 100.0, *EffectivePrice(p, now))
}

func TestEffectivePrice_NoPriceAtAll(t *testing.T) {
	assert.Nil(t, EffectivePrice(models.PricingFields{}, now))
}

func TestDiscountPercent_Rounding(t *testing.T) {
	// 100 -> 66.5 is a 33.5% discount, rounds half away from zero to 34.
	assert.Equal(t, 34, DiscountPercent(f64(100), f64(66.5)))
	assert.Equal(t, 33, DiscountPercent(f64(100), f64(66.6)))
}

func TestDiscountPercent_Degenerate(t *testing.T) {
	assert.Equal(t, 0, DiscountPercent(nil, f64(10)))
	assert.Equal(t, 0, DiscountPercent(f64(100), nil))
	assert.Equal(t, 0, DiscountPercent(f64(0), f64(0)))
	assert.Equal(t, 0, DiscountPercent(f64(-5), f64(-10)))
	// effective >= base means no discount
	assert.Equal(t, 0, DiscountPercent(f64(100), f64(100)))
	assert.Equal(t, 0, DiscountPercent(f64(100), f64(120)))
}

func TestDiscountPercent_Range(t *testing.T) {
	for _, sale := range []float64{0, 1, 25, 50, 99.99} {
		pct := DiscountPercent(f64(100), f64(sale))
		assert.GreaterOrEqual(t, pct, 0)
		assert.LessOrEqual(t, pct, 100)
	}
}
