package models

import (
	"time"

	"github.com/google/uuid"
)

// Banner represents a storefront promo banner. Visibility on the
// storefront requires isActive plus the current time falling inside the
// optional start/end window.
type Banner struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string     `json:"title" gorm:"not null"`
	Subtitle    *string    `json:"subtitle,omitempty"`
	Description *string    `json:"description,omitempty"`
	ImageURL    string     `json:"imageUrl" gorm:"column:image_url;not null"`
	LinkURL     *string    `json:"linkUrl,omitempty" gorm:"column:link_url"`
	Position    int        `json:"position" gorm:"not null;default:0;index"`
	IsActive    bool       `json:"isActive" gorm:"column:is_active;default:true;index"`
	StartDate   *time.Time `json:"startDate,omitempty" gorm:"column:start_date"`
	EndDate     *time.Time `json:"endDate,omitempty" gorm:"column:end_date"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Banner model
func (Banner) TableName() string {
	return "banners"
}

// CreateBannerRequest represents a request to create a banner
type CreateBannerRequest struct {
	Title       string     `json:"title" binding:"required"`
	Subtitle    *string    `json:"subtitle,omitempty"`
	Description *string    `json:"description,omitempty"`
	ImageURL    string     `json:"imageUrl" binding:"required"`
	LinkURL     *string    `json:"linkUrl,omitempty"`
	Position    *int       `json:"position,omitempty"`
	IsActive    *bool      `json:"isActive,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

// UpdateBannerRequest represents a partial banner update
type UpdateBannerRequest struct {
	Title       *string    `json:"title,omitempty"`
	Subtitle    *string    `json:"subtitle,omitempty"`
	Description *string    `json:"description,omitempty"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	LinkURL     *string    `json:"linkUrl,omitempty"`
	Position    *int       `json:"position,omitempty"`
	IsActive    *bool      `json:"isActive,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}
