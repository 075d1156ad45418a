package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
)

// ProductsStore is the persistence surface the product handlers depend on.
type ProductsStore interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetByIDOrSlug(ctx context.Context, idOrSlug string, onlyActive bool) (*models.Product, error)
	List(ctx context.Context, q models.ProductListQuery) ([]models.Product, int64, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// AttributesStore is the persistence surface for the attribute catalog.
// GetByIDs is the batched lookup the variant projector relies on.
type AttributesStore interface {
	Create(ctx context.Context, attribute *models.Attribute) error
	GetByIDOrCode(ctx context.Context, idOrCode string) (*models.Attribute, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Attribute, error)
	List(ctx context.Context, q models.AttributeListQuery) ([]models.Attribute, int64, error)
	Update(ctx context.Context, attribute *models.Attribute) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// CategoriesStore is the persistence surface for categories.
type CategoriesStore interface {
	Create(ctx context.Context, category *models.Category) error
	GetByIDOrSlug(ctx context.Context, idOrSlug string) (*models.Category, error)
	List(ctx context.Context, q models.CategoryListQuery) ([]models.Category, int64, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BannersStore is the persistence surface for storefront banners.
type BannersStore interface {
	Create(ctx context.Context, banner *models.Banner) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Banner, error)
	List(ctx context.Context, activeOnly bool) ([]models.Banner, error)
	Update(ctx context.Context, banner *models.Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// translateError maps driver/gorm errors to the catalog taxonomy.
// Postgres unique violations carry the constraint name in the message;
// we surface the columns we know about so callers get a usable field.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.ErrNotFound
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "23505") {
		return &catalog.DuplicateKeyError{Fields: duplicateFields(msg)}
	}
	return err
}

func duplicateFields(msg string) []string {
	known := []string{"slug", "code", "name", "sku"}
	var fields []string
	for _, f := range known {
		if strings.Contains(msg, f) {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		fields = []string{"unknown"}
	}
	return fields
}
