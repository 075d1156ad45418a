package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

type AttributesHandler struct {
	attrs  repository.AttributesStore
	logger *logrus.Logger
}

func NewAttributesHandler(attrs repository.AttributesStore, logger *logrus.Logger) *AttributesHandler {
	return &AttributesHandler{attrs: attrs, logger: logger}
}

func buildAttributeValues(reqs []models.AttributeValueRequest) models.AttributeValueList {
	values := make(models.AttributeValueList, 0, len(reqs))
	for _, vr := range reqs {
		value := models.AttributeValue{
			Label: strings.TrimSpace(vr.Label),
			Value: vr.Value,
			Meta:  vr.Meta,
		}
		// ids stay stable across full-list replacements when supplied
		if vr.ID != nil && *vr.ID != "" {
			value.ID = *vr.ID
		} else {
			value.ID = uuid.NewString()
		}
		values = append(values, value)
	}
	return values
}

// CreateAttribute creates a new attribute
// @Summary Create attribute
// @Description Create an attribute with its value list; the code is derived from the name when not supplied
// @Tags attributes
// @Accept json
// @Produce json
// @Param attribute body models.CreateAttributeRequest true "Attribute data"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/attributes [post]
func (h *AttributesHandler) CreateAttribute(c *gin.Context) {
	var req models.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name is required", "name")
		return
	}

	attribute := &models.Attribute{
		Name:     strings.TrimSpace(req.Name),
		Code:     catalog.DeriveSlug("", req.Name, true, req.Code),
		Type:     models.AttributeTypeText,
		Values:   buildAttributeValues(req.Values),
		IsActive: true,
	}
	if req.Type != nil {
		if !models.ValidAttributeType(*req.Type) {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown attribute type", "type")
			return
		}
		attribute.Type = *req.Type
	}
	if req.IsActive != nil {
		attribute.IsActive = *req.IsActive
	}

	if err := h.attrs.Create(c.Request.Context(), attribute); err != nil {
		h.logger.WithError(err).Error("Failed to create attribute")
		respondRepoError(c, err, "attribute")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    attribute,
		Message: stringPtr("Attribute created successfully"),
	})
}

// GetAttributes lists attributes with search, filters, and sorting
// @Summary List attributes
// @Description List attributes with search and pagination
// @Tags attributes
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search in name or code"
// @Param isActive query bool false "Active filter"
// @Param sortBy query string false "Sort field" default(createdAt)
// @Param order query string false "asc or desc" default(desc)
// @Success 200 {object} models.ListResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/attributes [get]
func (h *AttributesHandler) GetAttributes(c *gin.Context) {
	page, limit := parsePagination(c)

	q := models.AttributeListQuery{
		Page:     page,
		Limit:    limit,
		Search:   strings.TrimSpace(c.Query("search")),
		IsActive: parseBoolQuery(c, "isActive"),
		SortBy:   c.DefaultQuery("sortBy", "createdAt"),
		Order:    c.DefaultQuery("order", "desc"),
	}

	attributes, total, err := h.attrs.List(c.Request.Context(), q)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list attributes")
		respondError(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to retrieve attributes", "")
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		Success:    true,
		Data:       attributes,
		Pagination: models.NewPaginationInfo(page, limit, total),
	})
}

// GetAttribute fetches one attribute by id or code
// @Summary Get attribute
// @Description Get an attribute by ID or code
// @Tags attributes
// @Produce json
// @Param idOrCode path string true "Attribute ID or code"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/attributes/{idOrCode} [get]
func (h *AttributesHandler) GetAttribute(c *gin.Context) {
	attribute, err := h.attrs.GetByIDOrCode(c.Request.Context(), c.Param("idOrCode"))
	if err != nil {
		respondRepoError(c, err, "Attribute")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: attribute})
}

// UpdateAttribute applies a partial update. The code is re-derived from
// the name exactly when the name changed and no code was supplied.
// @Summary Update attribute
// @Description Partially update an attribute
// @Tags attributes
// @Accept json
// @Produce json
// @Param idOrCode path string true "Attribute ID or code"
// @Param attribute body models.UpdateAttributeRequest true "Fields to update"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/attributes/{idOrCode} [patch]
func (h *AttributesHandler) UpdateAttribute(c *gin.Context) {
	var req models.UpdateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "")
		return
	}

	attribute, err := h.attrs.GetByIDOrCode(c.Request.Context(), c.Param("idOrCode"))
	if err != nil {
		respondRepoError(c, err, "Attribute")
		return
	}

	nameChanged := false
	if req.Name != nil && strings.TrimSpace(*req.Name) != attribute.Name {
		attribute.Name = strings.TrimSpace(*req.Name)
		nameChanged = true
	}
	attribute.Code = catalog.DeriveSlug(attribute.Code, attribute.Name, nameChanged, req.Code)

	if req.Type != nil {
		if !models.ValidAttributeType(*req.Type) {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown attribute type", "type")
			return
		}
		attribute.Type = *req.Type
	}
	if req.IsActive != nil {
		attribute.IsActive = *req.IsActive
	}
	if req.Values != nil {
		attribute.Values = buildAttributeValues(*req.Values)
	}

	if err := h.attrs.Update(c.Request.Context(), attribute); err != nil {
		h.logger.WithError(err).Error("Failed to update attribute")
		respondRepoError(c, err, "attribute")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    attribute,
		Message: stringPtr("Attribute updated successfully"),
	})
}

// BulkDeleteAttributes deletes attributes by id
// @Summary Bulk delete attributes
// @Description Delete multiple attributes by ID
// @Tags attributes
// @Accept json
// @Produce json
// @Param request body models.BulkDeleteAttributesRequest true "Attribute IDs"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/attributes/bulk-delete [post]
func (h *AttributesHandler) BulkDeleteAttributes(c *gin.Context) {
	var req models.BulkDeleteAttributesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "ids")
		return
	}

	deleted, err := h.attrs.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		h.logger.WithError(err).Error("Failed to bulk delete attributes")
		respondRepoError(c, err, "attributes")
		return
	}
	if deleted == 0 {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "No attributes found to delete", "ids")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    gin.H{"deletedCount": deleted},
		Message: stringPtr("Attributes deleted successfully"),
	})
}

// AddAttributeValue appends one value to an attribute
// @Summary Add attribute value
// @Description Append a value to an attribute's value list
// @Tags attributes
// @Accept json
// @Produce json
// @Param idOrCode path string true "Attribute ID or code"
// @Param value body models.AddAttributeValueRequest true "Value data"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/attributes/{idOrCode}/values [post]
func (h *AttributesHandler) AddAttributeValue(c *gin.Context) {
	var req models.AddAttributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "")
		return
	}
	if strings.TrimSpace(req.Label) == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "label is required", "label")
		return
	}

	attribute, err := h.attrs.GetByIDOrCode(c.Request.Context(), c.Param("idOrCode"))
	if err != nil {
		respondRepoError(c, err, "Attribute")
		return
	}

	attribute.Values = append(attribute.Values, models.AttributeValue{
		ID:    uuid.NewString(),
		Label: strings.TrimSpace(req.Label),
		Value: req.Value,
		Meta:  req.Meta,
	})

	if err := h.attrs.Update(c.Request.Context(), attribute); err != nil {
		h.logger.WithError(err).Error("Failed to add attribute value")
		respondRepoError(c, err, "attribute")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: attribute})
}

// UpdateAttributeValue patches one value in place
// @Summary Update attribute value
// @Description Update one value of an attribute in place; the value keeps its ID
// @Tags attributes
// @Accept json
// @Produce json
// @Param idOrCode path string true "Attribute ID or code"
// @Param valueId path string true "Value ID"
// @Param value body models.UpdateAttributeValueRequest true "Fields to update"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/attributes/{idOrCode}/values/{valueId} [patch]
func (h *AttributesHandler) UpdateAttributeValue(c *gin.Context) {
	var req models.UpdateAttributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "")
		return
	}

	attribute, err := h.attrs.GetByIDOrCode(c.Request.Context(), c.Param("idOrCode"))
	if err != nil {
		respondRepoError(c, err, "Attribute")
		return
	}

	value := attribute.FindValue(c.Param("valueId"))
	if value == nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Attribute value not found", "valueId")
		return
	}

	if req.Label != nil {
		value.Label = strings.TrimSpace(*req.Label)
	}
	if req.Value != nil {
		value.Value = req.Value
	}
	if req.Meta != nil {
		value.Meta = req.Meta
	}

	if err := h.attrs.Update(c.Request.Context(), attribute); err != nil {
		h.logger.WithError(err).Error("Failed to update attribute value")
		respondRepoError(c, err, "attribute")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: attribute})
}

// RemoveAttributeValues removes values by id
// @Summary Remove attribute values
// @Description Remove multiple values from an attribute by value ID
// @Tags attributes
// @Accept json
// @Produce json
// @Param idOrCode path string true "Attribute ID or code"
// @Param request body models.RemoveAttributeValuesRequest true "Value IDs"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/attributes/{idOrCode}/values/remove-many [post]
func (h *AttributesHandler) RemoveAttributeValues(c *gin.Context) {
	var req models.RemoveAttributeValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "valueIds")
		return
	}

	attribute, err := h.attrs.GetByIDOrCode(c.Request.Context(), c.Param("idOrCode"))
	if err != nil {
		respondRepoError(c, err, "Attribute")
		return
	}

	remove := make(map[string]struct{}, len(req.ValueIDs))
	for _, id := range req.ValueIDs {
		remove[id] = struct{}{}
	}
	kept := make(models.AttributeValueList, 0, len(attribute.Values))
	for _, v := range attribute.Values {
		if _, ok := remove[v.ID]; !ok {
			kept = append(kept, v)
		}
	}
	removed := len(attribute.Values) - len(kept)
	attribute.Values = kept

	if err := h.attrs.Update(c.Request.Context(), attribute); err != nil {
		h.logger.WithError(err).Error("Failed to remove attribute values")
		respondRepoError(c, err, "attribute")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    attribute,
		Message: stringPtr("Removed " + pluralCount(removed, "value")),
	})
}

func pluralCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
