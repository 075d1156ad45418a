package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PricingMode tags which pricing shape a product carries. It is derived
// from the variant list on every persist, never supplied by clients.
type PricingMode string

const (
	PricingModeSimple  PricingMode = "SIMPLE"
	PricingModeVariant PricingMode = "VARIANT"
)

// PricingFields groups the price columns shared by products (simple mode)
// and variants. All fields are optional at the type level; the validator
// enforces per-mode presence rules.
type PricingFields struct {
	Price          *float64   `json:"price,omitempty"`
	SalePrice      *float64   `json:"salePrice,omitempty" gorm:"column:sale_price"`
	CompareAtPrice *float64   `json:"compareAtPrice,omitempty" gorm:"column:compare_at_price"`
	OfferStart     *time.Time `json:"offerStart,omitempty" gorm:"column:offer_start"`
	OfferEnd       *time.Time `json:"offerEnd,omitempty" gorm:"column:offer_end"`
}

// VariantValue pairs an attribute with one or more selected values.
// Both ids are weak references into the attribute catalog: they are not
// foreign-key checked at write time and may dangle after catalog edits.
// Dangling refs surface as stubs when the detail view resolves them.
type VariantValue struct {
	AttributeID       string      `json:"attributeId"`
	AttributeValueIDs ValueIDList `json:"attributesValueId"`
	Stock             *int        `json:"stock,omitempty"`
	ImageURL          *string     `json:"imageUrl,omitempty"`
}

// VariantValueList is stored as a JSONB column on product_variants.
type VariantValueList []VariantValue

func (l VariantValueList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *VariantValueList) Scan(value interface{}) error {
	if value == nil {
		*l = make(VariantValueList, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Variant represents one purchasable combination of a variant-mode
// product. Variants are written only as a full-list replacement on the
// parent product, so rows carry no independent update surface.
type Variant struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID     uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	SKU           *string   `json:"sku,omitempty"`
	PricingFields `gorm:"embedded"`
	Stock         int              `json:"stock" gorm:"not null;default:0"`
	ImageURL      *string          `json:"imageUrl,omitempty" gorm:"column:image_url"`
	Barcode       *string          `json:"barcode,omitempty"`
	Values        VariantValueList `json:"values" gorm:"type:jsonb"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// Product represents a catalog product in either pricing mode.
// TotalStock and PricingMode are derived on every persist; Stock is set
// only for simple products and cleared when variants exist.
type Product struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title         string     `json:"title" gorm:"not null"`
	Slug          string     `json:"slug" gorm:"not null;uniqueIndex"`
	Description   *string    `json:"description,omitempty"`
	Brand         *string    `json:"brand,omitempty" gorm:"index"`
	CategoryID    *uuid.UUID `json:"category,omitempty" gorm:"type:uuid;column:category_id;index"`
	ImageURL      string     `json:"imageUrl" gorm:"column:image_url;not null"`
	Currency      string     `json:"currency" gorm:"not null;default:'USD'"`
	PricingFields `gorm:"embedded"`
	Stock           *int        `json:"stock,omitempty"`
	TotalStock      int         `json:"totalStock" gorm:"column:total_stock;not null;default:0;index"`
	MainAttributeID *string     `json:"mainAttributeId,omitempty" gorm:"column:main_attribute_id"`
	PricingMode     PricingMode `json:"pricingMode" gorm:"column:pricing_mode;not null;default:'SIMPLE';index"`
	IsActive        bool        `json:"isActive" gorm:"column:is_active;default:true;index"`
	Variants        []Variant   `json:"variants,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// HasVariants reports the structural pricing-mode discriminant.
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// TableName returns the table name for the Variant model
func (Variant) TableName() string {
	return "product_variants"
}

// VariantValueRequest is one attribute/value pairing inside a variant payload.
type VariantValueRequest struct {
	AttributeID       string      `json:"attributeId" binding:"required"`
	AttributeValueIDs ValueIDList `json:"attributesValueId" binding:"required"`
	Stock             *int        `json:"stock,omitempty"`
	ImageURL          *string     `json:"imageUrl,omitempty"`
}

// VariantRequest is a variant payload inside a product write. An id may
// be supplied to keep a variant stable across full-list replacements;
// absent ids get a fresh one.
type VariantRequest struct {
	ID             *string               `json:"id,omitempty"`
	SKU            *string               `json:"sku,omitempty"`
	Price          *float64              `json:"price,omitempty"`
	SalePrice      *float64              `json:"salePrice,omitempty"`
	CompareAtPrice *float64              `json:"compareAtPrice,omitempty"`
	OfferStart     *time.Time            `json:"offerStart,omitempty"`
	OfferEnd       *time.Time            `json:"offerEnd,omitempty"`
	Stock          *int                  `json:"stock,omitempty"`
	ImageURL       *string               `json:"imageUrl,omitempty"`
	Barcode        *string               `json:"barcode,omitempty"`
	Values         []VariantValueRequest `json:"values"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Title           string           `json:"title" binding:"required"`
	Slug            *string          `json:"slug,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Brand           *string          `json:"brand,omitempty"`
	CategoryID      *string          `json:"category,omitempty"`
	ImageURL        string           `json:"imageUrl" binding:"required"`
	Currency        *string          `json:"currency,omitempty"`
	Price           *float64         `json:"price,omitempty"`
	SalePrice       *float64         `json:"salePrice,omitempty"`
	CompareAtPrice  *float64         `json:"compareAtPrice,omitempty"`
	OfferStart      *time.Time       `json:"offerStart,omitempty"`
	OfferEnd        *time.Time       `json:"offerEnd,omitempty"`
	Stock           *int             `json:"stock,omitempty"`
	MainAttributeID *string          `json:"mainAttributeId,omitempty"`
	IsActive        *bool            `json:"isActive,omitempty"`
	Variants        []VariantRequest `json:"variants,omitempty"`
}

// UpdateProductRequest represents a partial product update. Nil fields
// are left untouched; the merged result is revalidated as a whole.
type UpdateProductRequest struct {
	Title           *string           `json:"title,omitempty"`
	Slug            *string           `json:"slug,omitempty"`
	Description     *string           `json:"description,omitempty"`
	Brand           *string           `json:"brand,omitempty"`
	CategoryID      *string           `json:"category,omitempty"`
	ImageURL        *string           `json:"imageUrl,omitempty"`
	Currency        *string           `json:"currency,omitempty"`
	Price           *float64          `json:"price,omitempty"`
	SalePrice       *float64          `json:"salePrice,omitempty"`
	CompareAtPrice  *float64          `json:"compareAtPrice,omitempty"`
	OfferStart      *time.Time        `json:"offerStart,omitempty"`
	OfferEnd        *time.Time        `json:"offerEnd,omitempty"`
	Stock           *int              `json:"stock,omitempty"`
	MainAttributeID *string           `json:"mainAttributeId,omitempty"`
	IsActive        *bool             `json:"isActive,omitempty"`
	Variants        *[]VariantRequest `json:"variants,omitempty"`
}

// BulkDeleteProductsRequest represents bulk delete request for products
type BulkDeleteProductsRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1,max=100"`
}

// BulkDeleteProductsResponse represents bulk delete response for products
type BulkDeleteProductsResponse struct {
	Success        bool `json:"success"`
	RequestedCount int  `json:"requestedCount"`
	DeletedCount   int  `json:"deletedCount"`
}

// ProductListItem is the flat row shape shared by the admin and
// storefront listings. Admin rows carry the main attribute id;
// storefront rows carry the price bounds across purchase options.
type ProductListItem struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	Slug            string      `json:"slug"`
	Brand           *string     `json:"brand,omitempty"`
	ImageURL        string      `json:"imageUrl"`
	Currency        string      `json:"currency"`
	CategoryID      *uuid.UUID  `json:"category,omitempty"`
	IsActive        bool        `json:"isActive"`
	TotalStock      int         `json:"totalStock"`
	PricingMode     PricingMode `json:"pricingMode"`
	HasVariants     bool        `json:"hasVariants"`
	MainAttributeID *string     `json:"mainAttributeId,omitempty"`
	LowestPrice     *float64    `json:"lowestPrice,omitempty"`
	HighestPrice    *float64    `json:"highestPrice,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// ProductListQuery carries the parsed listing filters. Zero values mean
// "not filtered".
type ProductListQuery struct {
	Page        int
	Limit       int
	Search      string
	Brand       string
	CategoryID  *uuid.UUID
	IsActive    *bool
	InStock     bool
	HasVariants *bool
	MinPrice    *float64
	MaxPrice    *float64
	Sort        string
}
