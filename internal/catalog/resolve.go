package catalog

import (
	"time"

	"catalog-service/internal/models"
)

// View selects which fields a variant projection exposes.
type View int

const (
	ViewAdmin View = iota
	ViewStorefront
)

// AttributeLookup maps attribute id to the attribute, pre-fetched in one
// batched query for all ids a product references.
type AttributeLookup map[string]*models.Attribute

// AttributeInfo is the resolved attribute header inside a variant view.
// Descriptive fields are nil when the referenced attribute no longer
// exists; the id is echoed back so clients can still key on it.
type AttributeInfo struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Code     *string `json:"code"`
	Type     *string `json:"type"`
	IsActive *bool   `json:"isActive"`
}

// ValueInfo is one resolved attribute value. Nil descriptive fields mean
// the value id no longer resolves.
type ValueInfo struct {
	ID    string      `json:"id"`
	Label *string     `json:"label"`
	Value *string     `json:"value"`
	Meta  models.JSON `json:"meta"`
}

// ResolvedPair is one attribute/values pairing of a variant with ids
// expanded to display data.
type ResolvedPair struct {
	Attribute AttributeInfo `json:"attribute"`
	Values    []ValueInfo   `json:"values"`
	Stock     *int          `json:"stock"`
	ImageURL  *string       `json:"imageUrl"`
}

// VariantView is the read projection of a variant. Admin-only fields are
// omitted from storefront output.
type VariantView struct {
	ID                 string         `json:"id"`
	SKU                *string        `json:"sku"`
	Price              *float64       `json:"price"`
	SalePrice          *float64       `json:"salePrice"`
	CompareAtPrice     *float64       `json:"compareAtPrice,omitempty"`
	OfferStart         *time.Time     `json:"offerStart,omitempty"`
	OfferEnd           *time.Time     `json:"offerEnd,omitempty"`
	Stock              int            `json:"stock"`
	ImageURL           *string        `json:"imageUrl"`
	Barcode            *string        `json:"barcode,omitempty"`
	EffectivePrice     *float64       `json:"effectivePrice"`
	DiscountPercent    int            `json:"discountPercent"`
	AttributesResolved []ResolvedPair `json:"attributesResolved"`
}

// CollectAttributeIDs returns the de-duplicated set of attribute ids
// referenced across all variants, in first-seen order. Callers use it to
// fetch the lookup map in a single query.
func CollectAttributeIDs(variants []models.Variant) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, v := range variants {
		for _, pair := range v.Values {
			if _, ok := seen[pair.AttributeID]; ok {
				continue
			}
			seen[pair.AttributeID] = struct{}{}
			ids = append(ids, pair.AttributeID)
		}
	}
	return ids
}

// ResolveVariants expands every variant's attribute/value ids against
// lookup and computes per-variant effective pricing at now. Unresolvable
// ids degrade to null-field stubs; a read never fails on a dangling
// reference. The view controls which fields survive projection.
func ResolveVariants(variants []models.Variant, lookup AttributeLookup, now time.Time, view View) []VariantView {
	views := make([]VariantView, 0, len(variants))
	for i := range variants {
		v := &variants[i]
		eff := EffectivePrice(v.PricingFields, now)

		resolved := make([]ResolvedPair, 0, len(v.Values))
		for _, pair := range v.Values {
			resolved = append(resolved, resolvePair(pair, lookup))
		}

		vw := VariantView{
			ID:                 v.ID.String(),
			SKU:                v.SKU,
			Price:              v.Price,
			SalePrice:          v.SalePrice,
			CompareAtPrice:     v.CompareAtPrice,
			OfferStart:         v.OfferStart,
			OfferEnd:           v.OfferEnd,
			Stock:              v.Stock,
			ImageURL:           v.ImageURL,
			Barcode:            v.Barcode,
			EffectivePrice:     eff,
			DiscountPercent:    DiscountPercent(v.Price, eff),
			AttributesResolved: resolved,
		}
		if view == ViewStorefront {
			vw.CompareAtPrice = nil
			vw.OfferStart = nil
			vw.OfferEnd = nil
			vw.Barcode = nil
		}
		views = append(views, vw)
	}
	return views
}

func resolvePair(pair models.VariantValue, lookup AttributeLookup) ResolvedPair {
	out := ResolvedPair{
		Attribute: AttributeInfo{ID: pair.AttributeID},
		Stock:     pair.Stock,
		ImageURL:  pair.ImageURL,
	}

	attr := lookup[pair.AttributeID]
	if attr != nil {
		t := string(attr.Type)
		out.Attribute.Name = &attr.Name
		out.Attribute.Code = &attr.Code
		out.Attribute.Type = &t
		out.Attribute.IsActive = &attr.IsActive
	}

	out.Values = make([]ValueInfo, 0, len(pair.AttributeValueIDs))
	for _, vid := range pair.AttributeValueIDs {
		info := ValueInfo{ID: vid}
		if attr != nil {
			if av := attr.FindValue(vid); av != nil {
				info.Label = &av.Label
				info.Value = av.Value
				info.Meta = av.Meta
			}
		}
		out.Values = append(out.Values, info)
	}
	return out
}

// MainOption is one bucket of the storefront main-attribute summary:
// all variants carrying the same main-attribute value, with aggregate
// stock and a representative image.
type MainOption struct {
	ValueID        string      `json:"valueId"`
	Label          *string     `json:"label"`
	Meta           models.JSON `json:"meta,omitempty"`
	SampleImageURL *string     `json:"sampleImageUrl"`
	TotalStock     int         `json:"totalStock"`
	VariantIDs     []string    `json:"variantIds"`
}

// MainOptions buckets a product's variants by main-attribute value.
// Per-pair stock/image overrides win over the variant-level fields.
// Returns nil for simple products or when no main attribute is set.
func MainOptions(p *models.Product, lookup AttributeLookup) []MainOption {
	if p.MainAttributeID == nil || len(p.Variants) == 0 {
		return nil
	}
	mainID := *p.MainAttributeID
	attr := lookup[mainID]

	byValue := make(map[string]*MainOption)
	var order []string
	for i := range p.Variants {
		v := &p.Variants[i]
		for _, pair := range v.Values {
			if pair.AttributeID != mainID {
				continue
			}
			stock := v.Stock
			if pair.Stock != nil {
				stock = *pair.Stock
			}
			image := v.ImageURL
			if pair.ImageURL != nil {
				image = pair.ImageURL
			}
			for _, vid := range pair.AttributeValueIDs {
				opt := byValue[vid]
				if opt == nil {
					opt = &MainOption{ValueID: vid}
					if attr != nil {
						if av := attr.FindValue(vid); av != nil {
							opt.Label = &av.Label
							opt.Meta = av.Meta
						}
					}
					byValue[vid] = opt
					order = append(order, vid)
				}
				opt.TotalStock += stock
				opt.VariantIDs = append(opt.VariantIDs, v.ID.String())
				if opt.SampleImageURL == nil {
					opt.SampleImageURL = image
				}
			}
		}
	}

	options := make([]MainOption, 0, len(order))
	for _, vid := range order {
		options = append(options, *byValue[vid])
	}
	return options
}

// MainAttributeInfo resolves the product's main attribute header, or nil
// when none is set. Dangling ids produce the usual stub.
func MainAttributeInfo(p *models.Product, lookup AttributeLookup) *AttributeInfo {
	if p.MainAttributeID == nil {
		return nil
	}
	info := AttributeInfo{ID: *p.MainAttributeID}
	if attr := lookup[*p.MainAttributeID]; attr != nil {
		t := string(attr.Type)
		info.Name = &attr.Name
		info.Code = &attr.Code
		info.Type = &t
		info.IsActive = &attr.IsActive
	}
	return &info
}

// SecondaryAttributes resolves the non-main attributes referenced by a
// product's variants, in first-seen order.
func SecondaryAttributes(p *models.Product, lookup AttributeLookup) []AttributeInfo {
	var out []AttributeInfo
	for _, id := range CollectAttributeIDs(p.Variants) {
		if p.MainAttributeID != nil && id == *p.MainAttributeID {
			continue
		}
		info := AttributeInfo{ID: id}
		if attr := lookup[id]; attr != nil {
			t := string(attr.Type)
			info.Name = &attr.Name
			info.Code = &attr.Code
			info.Type = &t
			info.IsActive = &attr.IsActive
		}
		out = append(out, info)
	}
	return out
}

// PriceBounds returns the lowest and highest chosen price across a
// product's purchase options, where chosen price is salePrice when set,
// base price otherwise. Simple products collapse to a single bound.
func PriceBounds(p *models.Product) (lowest, highest *float64) {
	chosen := func(f models.PricingFields) *float64 {
		if f.SalePrice != nil {
			return f.SalePrice
		}
		return f.Price
	}
	if len(p.Variants) == 0 {
		c := chosen(p.PricingFields)
		return c, c
	}
	for i := range p.Variants {
		c := chosen(p.Variants[i].PricingFields)
		if c == nil {
			continue
		}
		if lowest == nil || *c < *lowest {
			lowest = c
		}
		if highest == nil || *c > *highest {
			highest = c
		}
	}
	return lowest, highest
}
