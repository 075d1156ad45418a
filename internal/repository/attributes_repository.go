package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"catalog-service/internal/models"
)

type AttributesRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

var _ AttributesStore = (*AttributesRepository)(nil)

func NewAttributesRepository(db *gorm.DB, redis *redis.Client) *AttributesRepository {
	return &AttributesRepository{db: db, redis: redis}
}

func attributeCacheKey(id uuid.UUID) string {
	return "catalog:attribute:" + id.String()
}

func (r *AttributesRepository) invalidateAttribute(ctx context.Context, id uuid.UUID) {
	cacheDel(ctx, r.redis, attributeCacheKey(id))
}

func (r *AttributesRepository) Create(ctx context.Context, attribute *models.Attribute) error {
	if attribute.ID == uuid.Nil {
		attribute.ID = uuid.New()
	}
	attribute.CreatedAt = time.Now()
	attribute.UpdatedAt = time.Now()
	return translateError(r.db.WithContext(ctx).Create(attribute).Error)
}

// GetByIDOrCode accepts a uuid or a code. Codes are stored lowercase.
func (r *AttributesRepository) GetByIDOrCode(ctx context.Context, idOrCode string) (*models.Attribute, error) {
	query := r.db.WithContext(ctx)
	if id, err := uuid.Parse(idOrCode); err == nil {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("code = ?", strings.ToLower(idOrCode))
	}

	var attribute models.Attribute
	if err := query.First(&attribute).Error; err != nil {
		return nil, translateError(err)
	}
	return &attribute, nil
}

// GetByIDs batch-fetches attributes for the projection lookup, serving
// warm entries from cache. Ids that do not parse as uuids are skipped
// rather than failing the batch; the projector stubs them out like any
// other dangling reference.
func (r *AttributesRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Attribute, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var attributes []models.Attribute
	var misses []uuid.UUID
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		var cached models.Attribute
		if cacheGet(ctx, r.redis, attributeCacheKey(id), &cached) {
			attributes = append(attributes, cached)
			continue
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return attributes, nil
	}

	var fetched []models.Attribute
	if err := r.db.WithContext(ctx).Where("id IN ?", misses).Find(&fetched).Error; err != nil {
		return nil, translateError(err)
	}
	for i := range fetched {
		cacheSet(ctx, r.redis, attributeCacheKey(fetched[i].ID), &fetched[i], AttributeCacheTTL)
	}
	return append(attributes, fetched...), nil
}

// attributeSortColumns whitelists sortable fields.
var attributeSortColumns = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"code":      "code",
	"type":      "type",
	"isActive":  "is_active",
}

func (r *AttributesRepository) List(ctx context.Context, q models.AttributeListQuery) ([]models.Attribute, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Attribute{})
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("(name ILIKE ? OR code ILIKE ?)", pattern, pattern)
	}
	if q.IsActive != nil {
		query = query.Where("is_active = ?", *q.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	sortCol, ok := attributeSortColumns[q.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	order := sortCol + " DESC"
	if strings.EqualFold(q.Order, "asc") {
		order = sortCol + " ASC"
	}

	var attributes []models.Attribute
	err := query.
		Order(order).
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&attributes).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return attributes, total, nil
}

func (r *AttributesRepository) Update(ctx context.Context, attribute *models.Attribute) error {
	attribute.UpdatedAt = time.Now()
	if err := translateError(r.db.WithContext(ctx).Save(attribute).Error); err != nil {
		return err
	}
	r.invalidateAttribute(ctx, attribute.ID)
	return nil
}

func (r *AttributesRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Attribute{}, "id IN ?", ids)
	if result.Error != nil {
		return 0, translateError(result.Error)
	}
	for _, id := range ids {
		r.invalidateAttribute(ctx, id)
	}
	return result.RowsAffected, nil
}
