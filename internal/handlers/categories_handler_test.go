package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
)

func storedCategory() *models.Category {
	return &models.Category{
		ID:       uuid.New(),
		Name:     "Outerwear",
		Slug:     "outerwear",
		IsActive: true,
	}
}

func TestCreateCategory_DerivesSlug(t *testing.T) {
	categories := new(MockCategoriesStore)
	handler := NewCategoriesHandler(categories, testLogger())

	var created *models.Category
	categories.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Category)
		}).Return(nil)

	router := setupTestRouter()
	router.POST("/categories", handler.CreateCategory)

	body := jsonBody(t, map[string]interface{}{"name": "Winter Jackets & Coats"})
	req := httptest.NewRequest(http.MethodPost, "/categories", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, created)
	assert.Equal(t, "winter-jackets-coats", created.Slug)
	assert.True(t, created.IsActive)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	categories := new(MockCategoriesStore)
	handler := NewCategoriesHandler(categories, testLogger())

	categories.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).
		Return(&catalog.DuplicateKeyError{Fields: []string{"name"}})

	router := setupTestRouter()
	router.POST("/categories", handler.CreateCategory)

	body := jsonBody(t, map[string]interface{}{"name": "Outerwear"})
	req := httptest.NewRequest(http.MethodPost, "/categories", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateCategory_NameChangeRederivesSlug(t *testing.T) {
	categories := new(MockCategoriesStore)
	handler := NewCategoriesHandler(categories, testLogger())

	categories.On("GetByIDOrSlug", mock.Anything, "outerwear").Return(storedCategory(), nil)
	categories.On("Update", mock.Anything, mock.AnythingOfType("*models.Category")).Return(nil)

	router := setupTestRouter()
	router.PATCH("/categories/:idOrSlug", handler.UpdateCategory)

	body := jsonBody(t, map[string]interface{}{"name": "Cold Weather"})
	req := httptest.NewRequest(http.MethodPatch, "/categories/outerwear", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "cold-weather", data["slug"])
}

func TestUpdateCategory_BadImageURL(t *testing.T) {
	categories := new(MockCategoriesStore)
	handler := NewCategoriesHandler(categories, testLogger())

	categories.On("GetByIDOrSlug", mock.Anything, "outerwear").Return(storedCategory(), nil)

	router := setupTestRouter()
	router.PATCH("/categories/:idOrSlug", handler.UpdateCategory)

	body := jsonBody(t, map[string]interface{}{"imageUrl": "ftp://bad"})
	req := httptest.NewRequest(http.MethodPatch, "/categories/outerwear", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	categories.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	categories := new(MockCategoriesStore)
	handler := NewCategoriesHandler(categories, testLogger())

	categories.On("GetByIDOrSlug", mock.Anything, "missing").Return(nil, catalog.ErrNotFound)

	router := setupTestRouter()
	router.DELETE("/categories/:idOrSlug", handler.DeleteCategory)

	req := httptest.NewRequest(http.MethodDelete, "/categories/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
