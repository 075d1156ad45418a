package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

type CategoriesHandler struct {
	categories repository.CategoriesStore
	logger     *logrus.Logger
}

func NewCategoriesHandler(categories repository.CategoriesStore, logger *logrus.Logger) *CategoriesHandler {
	return &CategoriesHandler{categories: categories, logger: logger}
}

// CreateCategory creates a new category
// @Summary Create category
// @Description Create a category; the slug is derived from the name
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.CreateCategoryRequest true "Category data"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/categories [post]
func (h *CategoriesHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "")
		return
	}
	if req.ImageURL != nil && *req.ImageURL != "" && !validHTTPURL(*req.ImageURL) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "imageUrl must be a valid http(s) URL", "imageUrl")
		return
	}

	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        catalog.Slugify(req.Name),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.categories.Create(c.Request.Context(), category); err != nil {
		h.logger.WithError(err).Error("Failed to create category")
		respondRepoError(c, err, "category")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    category,
		Message: stringPtr("Category created successfully"),
	})
}

// GetCategories lists categories
// @Summary List categories
// @Description List categories with search and pagination
// @Tags categories
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search in name or slug"
// @Param isActive query bool false "Active filter"
// @Success 200 {object} models.ListResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/categories [get]
func (h *CategoriesHandler) GetCategories(c *gin.Context) {
	page, limit := parsePagination(c)

	q := models.CategoryListQuery{
		Page:     page,
		Limit:    limit,
		Search:   strings.TrimSpace(c.Query("search")),
		IsActive: parseBoolQuery(c, "isActive"),
	}

	categories, total, err := h.categories.List(c.Request.Context(), q)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list categories")
		respondError(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to retrieve categories", "")
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success:    true,
		Data:       categories,
		Pagination: models.NewPaginationInfo(page, limit, total),
	})
}

// GetCategory fetches one category by id or slug
// @Summary Get category
// @Description Get a category by ID or slug
// @Tags categories
// @Produce json
// @Param idOrSlug path string true "Category ID or slug"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/categories/{idOrSlug} [get]
func (h *CategoriesHandler) GetCategory(c *gin.Context) {
	category, err := h.categories.GetByIDOrSlug(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		respondRepoError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: category})
}

// UpdateCategory applies a partial update. The slug follows the name
// whenever the name changes.
// @Summary Update category
// @Description Partially update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param idOrSlug path string true "Category ID or slug"
// @Param category body models.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/categories/{idOrSlug} [patch]
func (h *CategoriesHandler) UpdateCategory(c *gin.Context) {
	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "")
		return
	}

	category, err := h.categories.GetByIDOrSlug(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		respondRepoError(c, err, "Category")
		return
	}

	nameChanged := false
	if req.Name != nil && strings.TrimSpace(*req.Name) != category.Name {
		category.Name = strings.TrimSpace(*req.Name)
		nameChanged = true
	}
	category.Slug = catalog.DeriveSlug(category.Slug, category.Name, nameChanged, nil)

	if req.Description != nil {
		category.Description = req.Description
	}
	if req.ImageURL != nil {
		if *req.ImageURL != "" && !validHTTPURL(*req.ImageURL) {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "imageUrl must be a valid http(s) URL", "imageUrl")
			return
		}
		category.ImageURL = req.ImageURL
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.categories.Update(c.Request.Context(), category); err != nil {
		h.logger.WithError(err).Error("Failed to update category")
		respondRepoError(c, err, "category")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    category,
		Message: stringPtr("Category updated successfully"),
	})
}

// DeleteCategory removes a category. Products keep their weak category
// reference; listings simply stop matching it.
// @Summary Delete category
// @Description Delete a category by ID or slug
// @Tags categories
// @Produce json
// @Param idOrSlug path string true "Category ID or slug"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/categories/{idOrSlug} [delete]
func (h *CategoriesHandler) DeleteCategory(c *gin.Context) {
	category, err := h.categories.GetByIDOrSlug(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		respondRepoError(c, err, "Category")
		return
	}

	if err := h.categories.Delete(c.Request.Context(), category.ID); err != nil {
		h.logger.WithError(err).Error("Failed to delete category")
		respondRepoError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Category deleted successfully"),
	})
}
