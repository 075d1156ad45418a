package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// StorefrontHandler serves the public read surface. Everything here is
// unauthenticated and restricted to active records.
type StorefrontHandler struct {
	products   repository.ProductsStore
	attrs      repository.AttributesStore
	categories repository.CategoriesStore
	banners    repository.BannersStore
	logger     *logrus.Logger
}

func NewStorefrontHandler(
	products repository.ProductsStore,
	attrs repository.AttributesStore,
	categories repository.CategoriesStore,
	banners repository.BannersStore,
	logger *logrus.Logger,
) *StorefrontHandler {
	return &StorefrontHandler{
		products:   products,
		attrs:      attrs,
		categories: categories,
		banners:    banners,
		logger:     logger,
	}
}

// ListProducts returns the lightweight storefront list with per-product
// price bounds across purchase options
// @Summary List storefront products
// @Description List active products with price bounds across purchase options
// @Tags storefront
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search in title, description, brand"
// @Param brand query string false "Exact brand filter"
// @Param category query string false "Category ID"
// @Param inStock query bool false "Only products with stock"
// @Param minPrice query number false "Minimum effective price"
// @Param maxPrice query number false "Maximum effective price"
// @Param sort query string false "Sort field, - prefix for descending" default(-createdAt)
// @Success 200 {object} models.ListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /storefront/products [get]
func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	page, limit := parsePagination(c)

	q := models.ProductListQuery{
		Page:     page,
		Limit:    limit,
		Search:   strings.TrimSpace(c.Query("search")),
		Brand:    strings.TrimSpace(c.Query("brand")),
		IsActive: boolPtr(true),
		InStock:  c.Query("inStock") == "true",
		MinPrice: parseFloatQuery(c, "minPrice"),
		MaxPrice: parseFloatQuery(c, "maxPrice"),
		Sort:     c.DefaultQuery("sort", "-createdAt"),
	}
	if category := c.Query("category"); category != "" {
		if id, err := uuid.Parse(category); err == nil {
			q.CategoryID = &id
		}
	}

	products, total, err := h.products.List(c.Request.Context(), q)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list storefront products")
		respondError(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to retrieve products", "")
		return
	}

	items := make([]models.ProductListItem, 0, len(products))
	for i := range products {
		p := &products[i]
		lowest, highest := catalog.PriceBounds(p)
		items = append(items, models.ProductListItem{
			ID:           p.ID,
			Title:        p.Title,
			Slug:         p.Slug,
			Brand:        p.Brand,
			ImageURL:     p.ImageURL,
			Currency:     p.Currency,
			CategoryID:   p.CategoryID,
			IsActive:     p.IsActive,
			TotalStock:   p.TotalStock,
			PricingMode:  p.PricingMode,
			HasVariants:  p.HasVariants(),
			LowestPrice:  lowest,
			HighestPrice: highest,
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success:    true,
		Data:       items,
		Pagination: models.NewPaginationInfo(page, limit, total),
	})
}

// GetProduct returns one active product in the storefront shape:
// resolved variants without admin fields, plus the main-attribute
// option summary for variant products
// @Summary Get storefront product
// @Description Get an active product by ID or slug with resolved variants and main options
// @Tags storefront
// @Produce json
// @Param idOrSlug path string true "Product ID or slug"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /storefront/products/{idOrSlug} [get]
func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	idOrSlug := c.Param("idOrSlug")

	product, err := h.products.GetByIDOrSlug(c.Request.Context(), idOrSlug, true)
	if err != nil {
		respondRepoError(c, err, "Product")
		return
	}

	detail, err := buildProductDetail(c.Request.Context(), h.attrs, product, catalog.ViewStorefront)
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve product attributes")
		respondRepoError(c, err, "product")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: detail})
}

// ListCategories returns active categories
// @Summary List storefront categories
// @Description List active categories
// @Tags storefront
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search in name or slug"
// @Success 200 {object} models.ListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /storefront/categories [get]
func (h *StorefrontHandler) ListCategories(c *gin.Context) {
	page, limit := parsePagination(c)

	q := models.CategoryListQuery{
		Page:     page,
		Limit:    limit,
		Search:   strings.TrimSpace(c.Query("search")),
		IsActive: boolPtr(true),
	}

	categories, total, err := h.categories.List(c.Request.Context(), q)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list storefront categories")
		respondError(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to retrieve categories", "")
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success:    true,
		Data:       categories,
		Pagination: models.NewPaginationInfo(page, limit, total),
	})
}

// ListBanners returns banners currently visible on the storefront
// @Summary List storefront banners
// @Description List active banners whose date window covers now, ordered by position
// @Tags storefront
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /storefront/banners [get]
func (h *StorefrontHandler) ListBanners(c *gin.Context) {
	banners, err := h.banners.List(c.Request.Context(), true)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list storefront banners")
		respondError(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to retrieve banners", "")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: banners})
}
