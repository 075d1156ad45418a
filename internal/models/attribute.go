package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AttributeType is a UI hint for how an attribute's values render.
type AttributeType string

const (
	AttributeTypeText   AttributeType = "text"
	AttributeTypeColor  AttributeType = "color"
	AttributeTypeSize   AttributeType = "size"
	AttributeTypeNumber AttributeType = "number"
	AttributeTypeSelect AttributeType = "select"
)

// ValidAttributeType reports whether t is one of the known types.
func ValidAttributeType(t AttributeType) bool {
	switch t {
	case AttributeTypeText, AttributeTypeColor, AttributeTypeSize, AttributeTypeNumber, AttributeTypeSelect:
		return true
	}
	return false
}

// AttributeValue is one selectable value of an attribute. IDs are stable
// across edits so variant rows can reference values by id.
type AttributeValue struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Value *string `json:"value,omitempty"`
	Meta  JSON    `json:"meta,omitempty"`
}

// AttributeValueList is stored as a JSONB column on attributes.
type AttributeValueList []AttributeValue

func (l AttributeValueList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *AttributeValueList) Scan(value interface{}) error {
	if value == nil {
		*l = make(AttributeValueList, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Attribute represents a reusable product attribute (Color, Size, ...).
// Code is the unique slug form of the name; it is re-derived when the
// name changes and the client left code untouched.
type Attribute struct {
	ID        uuid.UUID          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string             `json:"name" gorm:"not null"`
	Code      string             `json:"code" gorm:"not null;uniqueIndex"`
	Type      AttributeType      `json:"type" gorm:"not null;default:'text'"`
	Values    AttributeValueList `json:"values" gorm:"type:jsonb"`
	IsActive  bool               `json:"isActive" gorm:"column:is_active;default:true;index"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// TableName returns the table name for the Attribute model
func (Attribute) TableName() string {
	return "attributes"
}

// FindValue returns the value with the given id, or nil.
func (a *Attribute) FindValue(id string) *AttributeValue {
	for i := range a.Values {
		if a.Values[i].ID == id {
			return &a.Values[i]
		}
	}
	return nil
}

// AttributeValueRequest is a value payload inside attribute writes.
type AttributeValueRequest struct {
	ID    *string `json:"id,omitempty"`
	Label string  `json:"label" binding:"required"`
	Value *string `json:"value,omitempty"`
	Meta  JSON    `json:"meta,omitempty"`
}

// CreateAttributeRequest represents a request to create an attribute
type CreateAttributeRequest struct {
	Name     string                  `json:"name" binding:"required"`
	Code     *string                 `json:"code,omitempty"`
	Type     *AttributeType          `json:"type,omitempty"`
	Values   []AttributeValueRequest `json:"values,omitempty"`
	IsActive *bool                   `json:"isActive,omitempty"`
}

// UpdateAttributeRequest represents a partial attribute update. A non-nil
// Values replaces the whole list.
type UpdateAttributeRequest struct {
	Name     *string                  `json:"name,omitempty"`
	Code     *string                  `json:"code,omitempty"`
	Type     *AttributeType           `json:"type,omitempty"`
	Values   *[]AttributeValueRequest `json:"values,omitempty"`
	IsActive *bool                    `json:"isActive,omitempty"`
}

// AddAttributeValueRequest adds a single value to an attribute.
type AddAttributeValueRequest struct {
	Label string  `json:"label" binding:"required"`
	Value *string `json:"value,omitempty"`
	Meta  JSON    `json:"meta,omitempty"`
}

// UpdateAttributeValueRequest patches a single value in place.
type UpdateAttributeValueRequest struct {
	Label *string `json:"label,omitempty"`
	Value *string `json:"value,omitempty"`
	Meta  JSON    `json:"meta,omitempty"`
}

// RemoveAttributeValuesRequest removes values by id.
type RemoveAttributeValuesRequest struct {
	ValueIDs []string `json:"valueIds" binding:"required,min=1"`
}

// BulkDeleteAttributesRequest represents bulk delete request for attributes
type BulkDeleteAttributesRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// AttributeListQuery carries the parsed attribute listing filters.
type AttributeListQuery struct {
	Page     int
	Limit    int
	Search   string
	IsActive *bool
	SortBy   string
	Order    string
}
