package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

type ProductsHandler struct {
	products repository.ProductsStore
	attrs    repository.AttributesStore
	logger   *logrus.Logger
}

func NewProductsHandler(products repository.ProductsStore, attrs repository.AttributesStore, logger *logrus.Logger) *ProductsHandler {
	return &ProductsHandler{products: products, attrs: attrs, logger: logger}
}

// productDetail is the flat detail payload. The embedded product keeps
// its wire fields; the outer Variants shadows the raw variant rows with
// resolved views.
type productDetail struct {
	*models.Product
	Variants            []catalog.VariantView   `json:"variants"`
	EffectivePrice      *float64                `json:"effectivePrice,omitempty"`
	DiscountPercent     int                     `json:"discountPercent"`
	MainAttribute       *catalog.AttributeInfo  `json:"mainAttribute,omitempty"`
	MainOptions         []catalog.MainOption    `json:"mainOptions,omitempty"`
	SecondaryAttributes []catalog.AttributeInfo `json:"secondaryAttributes,omitempty"`
}

// attributeLookup bulk-fetches every attribute a product's variants
// reference, one query per detail read.
func attributeLookup(ctx context.Context, attrs repository.AttributesStore, variants []models.Variant) (catalog.AttributeLookup, error) {
	ids := catalog.CollectAttributeIDs(variants)
	if len(ids) == 0 {
		return catalog.AttributeLookup{}, nil
	}
	fetched, err := attrs.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	lookup := make(catalog.AttributeLookup, len(fetched))
	for i := range fetched {
		lookup[fetched[i].ID.String()] = &fetched[i]
	}
	return lookup, nil
}

func buildProductDetail(ctx context.Context, attrs repository.AttributesStore, product *models.Product, view catalog.View) (*productDetail, error) {
	lookup, err := attributeLookup(ctx, attrs, product.Variants)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	detail := &productDetail{
		Product:         product,
		Variants:        catalog.ResolveVariants(product.Variants, lookup, now, view),
		EffectivePrice:  catalog.EffectivePrice(product.PricingFields, now),
		DiscountPercent: catalog.DiscountPercent(product.Price, catalog.EffectivePrice(product.PricingFields, now)),
	}
	if view == catalog.ViewStorefront && product.HasVariants() {
		detail.MainAttribute = catalog.MainAttributeInfo(product, lookup)
		detail.MainOptions = catalog.MainOptions(product, lookup)
		detail.SecondaryAttributes = catalog.SecondaryAttributes(product, lookup)
	}
	return detail, nil
}

func buildVariants(reqs []models.VariantRequest) []models.Variant {
	variants := make([]models.Variant, 0, len(reqs))
	for _, vr := range reqs {
		v := models.Variant{
			SKU: vr.SKU,
			PricingFields: models.PricingFields{
				Price:          vr.Price,
				SalePrice:      vr.SalePrice,
				CompareAtPrice: vr.CompareAtPrice,
				OfferStart:     vr.OfferStart,
				OfferEnd:       vr.OfferEnd,
			},
			ImageURL: vr.ImageURL,
			Barcode:  vr.Barcode,
		}
		if vr.Stock != nil {
			v.Stock = *vr.Stock
		}
		if vr.ID != nil {
			if id, err := uuid.Parse(*vr.ID); err == nil {
				v.ID = id
			}
		}
		for _, pair := range vr.Values {
			v.Values = append(v.Values, models.VariantValue{
				AttributeID:       pair.AttributeID,
				AttributeValueIDs: pair.AttributeValueIDs,
				Stock:             pair.Stock,
				ImageURL:          pair.ImageURL,
			})
		}
		variants = append(variants, v)
	}
	return variants
}

// CreateProduct creates a new product
// @Summary Create product
// @Description Create a product in simple or variant pricing mode
// @Tags products
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product data"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/products [post]
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "")
		return
	}
	if !validHTTPURL(req.ImageURL) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "imageUrl must be a valid http(s) URL", "imageUrl")
		return
	}
	if len(req.Variants) > maxProductVariants {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"A product cannot have more than "+strconv.Itoa(maxProductVariants)+" variants", "variants")
		return
	}

	product := &models.Product{
		Title:       strings.TrimSpace(req.Title),
		Slug:        catalog.DeriveSlug("", req.Title, true, req.Slug),
		Description: req.Description,
		Brand:       req.Brand,
		ImageURL:    req.ImageURL,
		Currency:    defaultCurrency,
		PricingFields: models.PricingFields{
			Price:          req.Price,
			SalePrice:      req.SalePrice,
			CompareAtPrice: req.CompareAtPrice,
			OfferStart:     req.OfferStart,
			OfferEnd:       req.OfferEnd,
		},
		Stock:           req.Stock,
		MainAttributeID: req.MainAttributeID,
		IsActive:        true,
		Variants:        buildVariants(req.Variants),
	}
	if req.Currency != nil && *req.Currency != "" {
		product.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "category must be a valid id", "category")
			return
		}
		product.CategoryID = &id
	}

	if err := catalog.Normalize(product); err != nil {
		respondRepoError(c, err, "product")
		return
	}

	if err := h.products.Create(c.Request.Context(), product); err != nil {
		h.logger.WithError(err).Error("Failed to create product")
		respondRepoError(c, err, "product")
		return
	}

	detail, err := buildProductDetail(c.Request.Context(), h.attrs, product, catalog.ViewAdmin)
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve product attributes")
		respondRepoError(c, err, "product")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    detail,
		Message: stringPtr("Product created successfully"),
	})
}

// GetProducts retrieves the admin product list with filtering and pagination
// @Summary List products
// @Description List products with search, filters, and pagination
// @Tags products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search in title, description, brand"
// @Param brand query string false "Exact brand filter"
// @Param category query string false "Category ID"
// @Param isActive query bool false "Active filter"
// @Param inStock query bool false "Only products with stock"
// @Param hasVariants query bool false "Pricing mode filter"
// @Param minPrice query number false "Minimum effective price"
// @Param maxPrice query number false "Maximum effective price"
// @Param sort query string false "Sort field, - prefix for descending" default(-createdAt)
// @Success 200 {object} models.ListResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/products [get]
func (h *ProductsHandler) GetProducts(c *gin.Context) {
	page, limit := parsePagination(c)

	q := models.ProductListQuery{
		Page:        page,
		Limit:       limit,
		Search:      strings.TrimSpace(c.Query("search")),
		Brand:       strings.TrimSpace(c.Query("brand")),
		IsActive:    parseBoolQuery(c, "isActive"),
		InStock:     c.Query("inStock") == "true",
		HasVariants: parseBoolQuery(c, "hasVariants"),
		MinPrice:    parseFloatQuery(c, "minPrice"),
		MaxPrice:    parseFloatQuery(c, "maxPrice"),
		Sort:        c.DefaultQuery("sort", "-createdAt"),
	}
	if category := c.Query("category"); category != "" {
		if id, err := uuid.Parse(category); err == nil {
			q.CategoryID = &id
		}
	}

	products, total, err := h.products.List(c.Request.Context(), q)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list products")
		respondError(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to retrieve products", "")
		return
	}

	items := make([]models.ProductListItem, 0, len(products))
	for i := range products {
		p := &products[i]
		items = append(items, models.ProductListItem{
			ID:              p.ID,
			Title:           p.Title,
			Slug:            p.Slug,
			Brand:           p.Brand,
			ImageURL:        p.ImageURL,
			Currency:        p.Currency,
			CategoryID:      p.CategoryID,
			IsActive:        p.IsActive,
			TotalStock:      p.TotalStock,
			PricingMode:     p.PricingMode,
			HasVariants:     p.HasVariants(),
			MainAttributeID: p.MainAttributeID,
			CreatedAt:       p.CreatedAt,
			UpdatedAt:       p.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success:    true,
		Data:       items,
		Pagination: models.NewPaginationInfo(page, limit, total),
	})
}

// GetProduct retrieves one product with resolved variants (admin shape)
// @Summary Get product
// @Description Get a product by ID or slug with resolved variant attributes
// @Tags products
// @Produce json
// @Param idOrSlug path string true "Product ID or slug"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/products/{idOrSlug} [get]
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	idOrSlug := c.Param("idOrSlug")

	product, err := h.products.GetByIDOrSlug(c.Request.Context(), idOrSlug, false)
	if err != nil {
		respondRepoError(c, err, "Product")
		return
	}

	detail, err := buildProductDetail(c.Request.Context(), h.attrs, product, catalog.ViewAdmin)
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve product attributes")
		respondRepoError(c, err, "product")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: detail})
}

// UpdateProduct applies a partial update. The request merges into the
// stored product and the merged result goes through full normalization,
// so an update can never leave a product mode-inconsistent.
// @Summary Update product
// @Description Partially update a product; the merged result is fully revalidated
// @Tags products
// @Accept json
// @Produce json
// @Param idOrSlug path string true "Product ID or slug"
// @Param product body models.UpdateProductRequest true "Fields to update"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/products/{idOrSlug} [patch]
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	idOrSlug := c.Param("idOrSlug")

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "")
		return
	}
	if req.Variants != nil && len(*req.Variants) > maxProductVariants {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"A product cannot have more than "+strconv.Itoa(maxProductVariants)+" variants", "variants")
		return
	}

	product, err := h.products.GetByIDOrSlug(c.Request.Context(), idOrSlug, false)
	if err != nil {
		respondRepoError(c, err, "Product")
		return
	}

	titleChanged := false
	if req.Title != nil && strings.TrimSpace(*req.Title) != product.Title {
		product.Title = strings.TrimSpace(*req.Title)
		titleChanged = true
	}
	product.Slug = catalog.DeriveSlug(product.Slug, product.Title, titleChanged, req.Slug)

	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Brand != nil {
		product.Brand = req.Brand
	}
	if req.ImageURL != nil {
		if !validHTTPURL(*req.ImageURL) {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "imageUrl must be a valid http(s) URL", "imageUrl")
			return
		}
		product.ImageURL = *req.ImageURL
	}
	if req.Currency != nil && *req.Currency != "" {
		product.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			product.CategoryID = nil
		} else {
			id, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "category must be a valid id", "category")
				return
			}
			product.CategoryID = &id
		}
	}
	if req.Price != nil {
		product.Price = req.Price
	}
	if req.SalePrice != nil {
		product.SalePrice = req.SalePrice
	}
	if req.CompareAtPrice != nil {
		product.CompareAtPrice = req.CompareAtPrice
	}
	if req.OfferStart != nil {
		product.OfferStart = req.OfferStart
	}
	if req.OfferEnd != nil {
		product.OfferEnd = req.OfferEnd
	}
	if req.Stock != nil {
		product.Stock = req.Stock
	}
	if req.MainAttributeID != nil {
		product.MainAttributeID = req.MainAttributeID
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.Variants != nil {
		product.Variants = buildVariants(*req.Variants)
	}

	if err := catalog.Normalize(product); err != nil {
		respondRepoError(c, err, "product")
		return
	}

	if err := h.products.Update(c.Request.Context(), product); err != nil {
		h.logger.WithError(err).Error("Failed to update product")
		respondRepoError(c, err, "product")
		return
	}

	detail, err := buildProductDetail(c.Request.Context(), h.attrs, product, catalog.ViewAdmin)
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve product attributes")
		respondRepoError(c, err, "product")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    detail,
		Message: stringPtr("Product updated successfully"),
	})
}

// DeleteProduct removes a product and its variants
// @Summary Delete product
// @Description Delete a product and its variant rows
// @Tags products
// @Produce json
// @Param idOrSlug path string true "Product ID or slug"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/products/{idOrSlug} [delete]
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	idOrSlug := c.Param("idOrSlug")

	product, err := h.products.GetByIDOrSlug(c.Request.Context(), idOrSlug, false)
	if err != nil {
		respondRepoError(c, err, "Product")
		return
	}

	if err := h.products.Delete(c.Request.Context(), product.ID); err != nil {
		h.logger.WithError(err).Error("Failed to delete product")
		respondRepoError(c, err, "Product")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Product deleted successfully"),
	})
}

// BulkDeleteProducts removes up to 100 products in one call
// @Summary Bulk delete products
// @Description Delete multiple products by ID
// @Tags products
// @Accept json
// @Produce json
// @Param request body models.BulkDeleteProductsRequest true "Product IDs"
// @Success 200 {object} models.BulkDeleteProductsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/products/bulk-delete [post]
func (h *ProductsHandler) BulkDeleteProducts(c *gin.Context) {
	var req models.BulkDeleteProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "ids")
		return
	}

	deleted, err := h.products.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		h.logger.WithError(err).Error("Failed to bulk delete products")
		respondRepoError(c, err, "products")
		return
	}
	if deleted == 0 {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "No products found to delete", "ids")
		return
	}

	c.JSON(http.StatusOK, models.BulkDeleteProductsResponse{
		Success:        true,
		RequestedCount: len(req.IDs),
		DeletedCount:   int(deleted),
	})
}
