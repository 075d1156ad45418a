package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/models"
)

func TestCreateBanner_Success(t *testing.T) {
	banners := new(MockBannersStore)
	handler := NewBannersHandler(banners, testLogger())

	banners.On("Create", mock.Anything, mock.AnythingOfType("*models.Banner")).Return(nil)

	router := setupTestRouter()
	router.POST("/banners", handler.CreateBanner)

	body := jsonBody(t, map[string]interface{}{
		"title":    "Summer Sale",
		"imageUrl": "https://cdn.example.com/sale.png",
		"linkUrl":  "https://shop.example.com/sale",
		"position": 2,
	})
	req := httptest.NewRequest(http.MethodPost, "/banners", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Summer Sale", data["title"])
	assert.Equal(t, float64(2), data["position"])
	assert.Equal(t, true, data["isActive"])
}

func TestCreateBanner_RequiresImageURL(t *testing.T) {
	handler := NewBannersHandler(new(MockBannersStore), testLogger())

	router := setupTestRouter()
	router.POST("/banners", handler.CreateBanner)

	body := jsonBody(t, map[string]interface{}{"title": "Summer Sale"})
	req := httptest.NewRequest(http.MethodPost, "/banners", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBanner_InvalidWindow(t *testing.T) {
	handler := NewBannersHandler(new(MockBannersStore), testLogger())

	router := setupTestRouter()
	router.POST("/banners", handler.CreateBanner)

	start := time.Now()
	end := start.Add(-24 * time.Hour)
	body := jsonBody(t, map[string]interface{}{
		"title":     "Summer Sale",
		"imageUrl":  "https://cdn.example.com/sale.png",
		"startDate": start,
		"endDate":   end,
	})
	req := httptest.NewRequest(http.MethodPost, "/banners", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBanner_InvalidID(t *testing.T) {
	handler := NewBannersHandler(new(MockBannersStore), testLogger())

	router := setupTestRouter()
	router.PATCH("/banners/:id", handler.UpdateBanner)

	body := jsonBody(t, map[string]interface{}{"title": "New"})
	req := httptest.NewRequest(http.MethodPatch, "/banners/not-a-uuid", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBanner_MergedWindowValidated(t *testing.T) {
	banners := new(MockBannersStore)
	handler := NewBannersHandler(banners, testLogger())

	start := time.Now()
	stored := &models.Banner{
		ID:        uuid.New(),
		Title:     "Summer Sale",
		ImageURL:  "https://cdn.example.com/sale.png",
		IsActive:  true,
		StartDate: &start,
	}
	banners.On("GetByID", mock.Anything, stored.ID).Return(stored, nil)

	router := setupTestRouter()
	router.PATCH("/banners/:id", handler.UpdateBanner)

	end := start.Add(-time.Hour)
	body := jsonBody(t, map[string]interface{}{"endDate": end})
	req := httptest.NewRequest(http.MethodPatch, "/banners/"+stored.ID.String(), body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	banners.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteBanner_Success(t *testing.T) {
	banners := new(MockBannersStore)
	handler := NewBannersHandler(banners, testLogger())

	id := uuid.New()
	banners.On("Delete", mock.Anything, id).Return(nil)

	router := setupTestRouter()
	router.DELETE("/banners/:id", handler.DeleteBanner)

	req := httptest.NewRequest(http.MethodDelete, "/banners/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	banners.AssertExpectations(t)
}
