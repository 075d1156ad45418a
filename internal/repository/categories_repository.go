package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
)

type CategoriesRepository struct {
	db *gorm.DB
}

var _ CategoriesStore = (*CategoriesRepository)(nil)

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

func (r *CategoriesRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	return translateError(r.db.WithContext(ctx).Create(category).Error)
}

func (r *CategoriesRepository) GetByIDOrSlug(ctx context.Context, idOrSlug string) (*models.Category, error) {
	query := r.db.WithContext(ctx)
	if id, err := uuid.Parse(idOrSlug); err == nil {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("slug = ?", strings.ToLower(idOrSlug))
	}

	var category models.Category
	if err := query.First(&category).Error; err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

func (r *CategoriesRepository) List(ctx context.Context, q models.CategoryListQuery) ([]models.Category, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Category{})
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where("(name ILIKE ? OR slug ILIKE ?)", pattern, pattern)
	}
	if q.IsActive != nil {
		query = query.Where("is_active = ?", *q.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var categories []models.Category
	err := query.
		Order("name ASC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&categories).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return categories, total, nil
}

func (r *CategoriesRepository) Update(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = time.Now()
	return translateError(r.db.WithContext(ctx).Save(category).Error)
}

func (r *CategoriesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
