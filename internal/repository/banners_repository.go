package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
)

type BannersRepository struct {
	db *gorm.DB
}

var _ BannersStore = (*BannersRepository)(nil)

func NewBannersRepository(db *gorm.DB) *BannersRepository {
	return &BannersRepository{db: db}
}

func (r *BannersRepository) Create(ctx context.Context, banner *models.Banner) error {
	if banner.ID == uuid.Nil {
		banner.ID = uuid.New()
	}
	banner.CreatedAt = time.Now()
	banner.UpdatedAt = time.Now()
	return translateError(r.db.WithContext(ctx).Create(banner).Error)
}

func (r *BannersRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.WithContext(ctx).First(&banner, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &banner, nil
}

// List returns banners ordered by position. activeOnly additionally
// requires the display window to cover the current time.
func (r *BannersRepository) List(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	query := r.db.WithContext(ctx).Model(&models.Banner{})
	if activeOnly {
		now := time.Now()
		query = query.
			Where("is_active = ?", true).
			Where("(start_date IS NULL OR start_date <= ?)", now).
			Where("(end_date IS NULL OR end_date >= ?)", now)
	}

	var banners []models.Banner
	if err := query.Order("position ASC, created_at DESC").Find(&banners).Error; err != nil {
		return nil, translateError(err)
	}
	return banners, nil
}

func (r *BannersRepository) Update(ctx context.Context, banner *models.Banner) error {
	banner.UpdatedAt = time.Now()
	return translateError(r.db.WithContext(ctx).Save(banner).Error)
}

func (r *BannersRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Banner{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
