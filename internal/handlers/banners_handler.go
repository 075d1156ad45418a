package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

type BannersHandler struct {
	banners repository.BannersStore
	logger  *logrus.Logger
}

func NewBannersHandler(banners repository.BannersStore, logger *logrus.Logger) *BannersHandler {
	return &BannersHandler{banners: banners, logger: logger}
}

// CreateBanner creates a promotional banner
// @Summary Create banner
// @Description Create a promotional banner with an optional visibility window
// @Tags banners
// @Accept json
// @Produce json
// @Param banner body models.CreateBannerRequest true "Banner data"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/banners [post]
func (h *BannersHandler) CreateBanner(c *gin.Context) {
	var req models.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "")
		return
	}
	if !validHTTPURL(req.ImageURL) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "imageUrl must be a valid http(s) URL", "imageUrl")
		return
	}
	if req.LinkURL != nil && *req.LinkURL != "" && !validHTTPURL(*req.LinkURL) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "linkUrl must be a valid http(s) URL", "linkUrl")
		return
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "endDate must not precede startDate", "endDate")
		return
	}

	banner := &models.Banner{
		Title:       strings.TrimSpace(req.Title),
		Subtitle:    req.Subtitle,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		LinkURL:     req.LinkURL,
		IsActive:    true,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Position != nil {
		banner.Position = *req.Position
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := h.banners.Create(c.Request.Context(), banner); err != nil {
		h.logger.WithError(err).Error("Failed to create banner")
		respondRepoError(c, err, "banner")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    banner,
		Message: stringPtr("Banner created successfully"),
	})
}

// GetBanners lists all banners, including inactive and out-of-window ones
// @Summary List banners
// @Description List all banners ordered by position
// @Tags banners
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/banners [get]
func (h *BannersHandler) GetBanners(c *gin.Context) {
	banners, err := h.banners.List(c.Request.Context(), false)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list banners")
		respondError(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to retrieve banners", "")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: banners})
}

// GetBanner fetches one banner
// @Summary Get banner
// @Description Get a banner by ID
// @Tags banners
// @Produce json
// @Param id path string true "Banner ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/banners/{id} [get]
func (h *BannersHandler) GetBanner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid banner ID", "id")
		return
	}
	banner, err := h.banners.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "Banner")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: banner})
}

// UpdateBanner applies a partial update
// @Summary Update banner
// @Description Partially update a banner; the merged visibility window is revalidated
// @Tags banners
// @Accept json
// @Produce json
// @Param id path string true "Banner ID"
// @Param banner body models.UpdateBannerRequest true "Fields to update"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/banners/{id} [patch]
func (h *BannersHandler) UpdateBanner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid banner ID", "id")
		return
	}
	var req models.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), "")
		return
	}

	banner, err := h.banners.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err, "Banner")
		return
	}

	if req.Title != nil {
		banner.Title = strings.TrimSpace(*req.Title)
	}
	if req.Subtitle != nil {
		banner.Subtitle = req.Subtitle
	}
	if req.Description != nil {
		banner.Description = req.Description
	}
	if req.ImageURL != nil {
		if !validHTTPURL(*req.ImageURL) {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "imageUrl must be a valid http(s) URL", "imageUrl")
			return
		}
		banner.ImageURL = *req.ImageURL
	}
	if req.LinkURL != nil {
		if *req.LinkURL != "" && !validHTTPURL(*req.LinkURL) {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "linkUrl must be a valid http(s) URL", "linkUrl")
			return
		}
		banner.LinkURL = req.LinkURL
	}
	if req.Position != nil {
		banner.Position = *req.Position
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}
	if req.StartDate != nil {
		banner.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		banner.EndDate = req.EndDate
	}
	if banner.StartDate != nil && banner.EndDate != nil && banner.EndDate.Before(*banner.StartDate) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "endDate must not precede startDate", "endDate")
		return
	}

	if err := h.banners.Update(c.Request.Context(), banner); err != nil {
		h.logger.WithError(err).Error("Failed to update banner")
		respondRepoError(c, err, "banner")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    banner,
		Message: stringPtr("Banner updated successfully"),
	})
}

// DeleteBanner removes a banner
// @Summary Delete banner
// @Description Delete a banner by ID
// @Tags banners
// @Produce json
// @Param id path string true "Banner ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/banners/{id} [delete]
func (h *BannersHandler) DeleteBanner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid banner ID", "id")
		return
	}
	if err := h.banners.Delete(c.Request.Context(), id); err != nil {
		h.logger.WithError(err).Error("Failed to delete banner")
		respondRepoError(c, err, "Banner")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Banner deleted successfully"),
	})
}
