package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductListItem_AdminRowShape(t *testing.T) {
	mainAttr := "11111111-1111-1111-1111-111111111111"
	item := ProductListItem{
		ID:              uuid.New(),
		Title:           "Classic Hoodie",
		Slug:            "classic-hoodie",
		ImageURL:        "https://cdn.example.com/hoodie.jpg",
		Currency:        "USD",
		IsActive:        true,
		TotalStock:      8,
		PricingMode:     PricingModeVariant,
		HasVariants:     true,
		MainAttributeID: &mainAttr,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "classic-hoodie", out["slug"])
	assert.Equal(t, "VARIANT", out["pricingMode"])
	assert.Equal(t, true, out["hasVariants"])
	assert.Equal(t, mainAttr, out["mainAttributeId"])
	assert.NotContains(t, out, "lowestPrice")
	assert.NotContains(t, out, "highestPrice")
}

func TestProductListItem_StorefrontRowShape(t *testing.T) {
	lowest, highest := 35.0, 40.0
	item := ProductListItem{
		ID:           uuid.New(),
		Title:        "Classic Hoodie",
		Slug:         "classic-hoodie",
		ImageURL:     "https://cdn.example.com/hoodie.jpg",
		Currency:     "USD",
		IsActive:     true,
		TotalStock:   8,
		PricingMode:  PricingModeVariant,
		HasVariants:  true,
		LowestPrice:  &lowest,
		HighestPrice: &highest,
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, 35.0, out["lowestPrice"])
	assert.Equal(t, 40.0, out["highestPrice"])
	assert.NotContains(t, out, "mainAttributeId")
	assert.NotContains(t, out, "brand")
}
