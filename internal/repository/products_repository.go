package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
)

// Cache TTL constants
const (
	ProductCacheTTL   = 5 * time.Minute
	AttributeCacheTTL = 30 * time.Minute
)

type ProductsRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

var _ ProductsStore = (*ProductsRepository)(nil)

func NewProductsRepository(db *gorm.DB, redis *redis.Client) *ProductsRepository {
	return &ProductsRepository{db: db, redis: redis}
}

func productCacheKey(id uuid.UUID) string {
	return "catalog:product:" + id.String()
}

// cacheGet reads a JSON value from Redis. A nil client or a miss both
// report false; callers fall through to the database.
func cacheGet(ctx context.Context, rdb *redis.Client, key string, dest interface{}) bool {
	if rdb == nil {
		return false
	}
	data, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func cacheSet(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) {
	if rdb == nil {
		return
	}
	if data, err := json.Marshal(value); err == nil {
		rdb.Set(ctx, key, data, ttl)
	}
}

func cacheDel(ctx context.Context, rdb *redis.Client, keys ...string) {
	if rdb == nil || len(keys) == 0 {
		return
	}
	rdb.Del(ctx, keys...)
}

func (r *ProductsRepository) invalidateProduct(ctx context.Context, id uuid.UUID) {
	cacheDel(ctx, r.redis, productCacheKey(id))
}

// Create persists a new product together with its variant rows.
func (r *ProductsRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	for i := range product.Variants {
		if product.Variants[i].ID == uuid.Nil {
			product.Variants[i].ID = uuid.New()
		}
		product.Variants[i].ProductID = product.ID
	}
	return translateError(r.db.WithContext(ctx).Create(product).Error)
}

// GetByID fetches a product with its variants, served from cache when warm.
func (r *ProductsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var cached models.Product
	if cacheGet(ctx, r.redis, productCacheKey(id), &cached) {
		return &cached, nil
	}

	var product models.Product
	err := r.db.WithContext(ctx).Preload("Variants").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	cacheSet(ctx, r.redis, productCacheKey(id), &product, ProductCacheTTL)
	return &product, nil
}

// GetByIDOrSlug accepts a uuid or a slug. Slug lookups are lowercased.
// onlyActive restricts to active products for the public surface. Id
// lookups go through GetByID so they share its cache; the active check
// applies after, keeping one cache entry per product.
func (r *ProductsRepository) GetByIDOrSlug(ctx context.Context, idOrSlug string, onlyActive bool) (*models.Product, error) {
	if id, err := uuid.Parse(idOrSlug); err == nil {
		product, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if onlyActive && !product.IsActive {
			return nil, catalog.ErrNotFound
		}
		return product, nil
	}

	query := r.db.WithContext(ctx).Preload("Variants").Where("slug = ?", strings.ToLower(idOrSlug))
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	var product models.Product
	if err := query.First(&product).Error; err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

// productSortColumns whitelists sortable fields, wire name to column.
var productSortColumns = map[string]string{
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"title":      "title",
	"totalStock": "total_stock",
	"price":      "price",
}

// List applies the catalog listing filters and returns one page plus the
// unpaged total. Variants are preloaded so callers can project prices
// without a second round-trip.
func (r *ProductsRepository) List(ctx context.Context, q models.ProductListQuery) ([]models.Product, int64, error) {
	var total int64
	countQuery := applyProductFilters(r.db.WithContext(ctx).Model(&models.Product{}), q, time.Now())
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	sortField, desc := "created_at", true
	if q.Sort != "" {
		name := strings.TrimPrefix(q.Sort, "-")
		if col, ok := productSortColumns[name]; ok {
			sortField = col
			desc = strings.HasPrefix(q.Sort, "-")
		}
	}
	order := sortField
	if desc {
		order += " DESC"
	}

	var products []models.Product
	listQuery := applyProductFilters(r.db.WithContext(ctx).Model(&models.Product{}), q, time.Now())
	err := listQuery.
		Preload("Variants").
		Order(order).
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return products, total, nil
}

// effectivePriceSQL is the chosen-price expression for a price filter:
// the sale price when one is set and its offer window covers now, the
// base price otherwise. tbl qualifies the columns so the same expression
// serves both the products table and the variant subquery.
func effectivePriceSQL(tbl string) string {
	return fmt.Sprintf(
		"CASE WHEN %[1]s.sale_price IS NOT NULL"+
			" AND (%[1]s.offer_start IS NULL OR %[1]s.offer_start <= ?)"+
			" AND (%[1]s.offer_end IS NULL OR %[1]s.offer_end >= ?) "+
			"THEN %[1]s.sale_price ELSE %[1]s.price END", tbl)
}

func applyProductFilters(query *gorm.DB, q models.ProductListQuery, now time.Time) *gorm.DB {
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("(title ILIKE ? OR description ILIKE ? OR brand ILIKE ?)", pattern, pattern, pattern)
	}
	if q.Brand != "" {
		query = query.Where("LOWER(brand) = LOWER(?)", q.Brand)
	}
	if q.CategoryID != nil {
		query = query.Where("category_id = ?", *q.CategoryID)
	}
	if q.IsActive != nil {
		query = query.Where("is_active = ?", *q.IsActive)
	}
	if q.InStock {
		query = query.Where("total_stock > 0")
	}
	if q.HasVariants != nil {
		mode := models.PricingModeSimple
		if *q.HasVariants {
			mode = models.PricingModeVariant
		}
		query = query.Where("pricing_mode = ?", mode)
	}

	// A price bound must match either the simple-mode top-level price or
	// any variant's price, each respecting its own offer window.
	if q.MinPrice != nil || q.MaxPrice != nil {
		topExpr := effectivePriceSQL("products")
		varExpr := effectivePriceSQL("pv")

		topCond := topExpr + " IS NOT NULL"
		varCond := varExpr + " IS NOT NULL"
		topArgs := []interface{}{now, now}
		varArgs := []interface{}{now, now}
		if q.MinPrice != nil {
			topCond += " AND " + topExpr + " >= ?"
			varCond += " AND " + varExpr + " >= ?"
			topArgs = append(topArgs, now, now, *q.MinPrice)
			varArgs = append(varArgs, now, now, *q.MinPrice)
		}
		if q.MaxPrice != nil {
			topCond += " AND " + topExpr + " <= ?"
			varCond += " AND " + varExpr + " <= ?"
			topArgs = append(topArgs, now, now, *q.MaxPrice)
			varArgs = append(varArgs, now, now, *q.MaxPrice)
		}

		sql := "((" + topCond + ") OR EXISTS (SELECT 1 FROM product_variants pv WHERE pv.product_id = products.id AND " + varCond + "))"
		query = query.Where(sql, append(topArgs, varArgs...)...)
	}

	return query
}

// Update persists the merged product, replacing the variant list
// wholesale in one transaction. Variant rows keep their ids when the
// caller supplied them, so the delete-then-insert is invisible on the
// wire.
func (r *ProductsRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	for i := range product.Variants {
		if product.Variants[i].ID == uuid.Nil {
			product.Variants[i].ID = uuid.New()
		}
		product.Variants[i].ProductID = product.ID
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Variant{}).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
			return err
		}
		if len(product.Variants) > 0 {
			if err := tx.Create(&product.Variants).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translateError(err)
	}
	r.invalidateProduct(ctx, product.ID)
	return nil
}

// Delete removes a product and its variants.
func (r *ProductsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.Variant{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Product{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return catalog.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return translateError(err)
	}
	r.invalidateProduct(ctx, id)
	return nil
}

// BulkDelete removes products by id and reports how many went away.
func (r *ProductsRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id IN ?", ids).Delete(&models.Variant{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Product{}, "id IN ?", ids)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, translateError(err)
	}
	for _, id := range ids {
		r.invalidateProduct(ctx, id)
	}
	return deleted, nil
}
