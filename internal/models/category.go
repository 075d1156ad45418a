package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a product category. The slug is re-derived from
// the name whenever the name changes.
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Slug        string    `json:"slug" gorm:"not null;uniqueIndex"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty" gorm:"column:image_url"`
	IsActive    bool      `json:"isActive" gorm:"column:is_active;default:true;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// UpdateCategoryRequest represents a partial category update
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// CategoryListQuery carries the parsed category listing filters.
type CategoryListQuery struct {
	Page     int
	Limit    int
	Search   string
	IsActive *bool
}
