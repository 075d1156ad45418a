package handlers

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog-service/internal/catalog"
	"catalog-service/internal/config"
	"catalog-service/internal/models"
)

// Service-level limits, overridable from config via Configure.
var (
	defaultPageSize    = 20
	maxPageSize        = 100
	defaultCurrency    = "USD"
	maxProductVariants = 100
)

// Configure applies the service config to the handlers package. Called
// once at startup before routes are registered.
func Configure(cfg *config.Config) {
	if cfg.DefaultPageSize > 0 {
		defaultPageSize = cfg.DefaultPageSize
	}
	if cfg.MaxPageSize > 0 {
		maxPageSize = cfg.MaxPageSize
	}
	if cfg.DefaultCurrency != "" {
		defaultCurrency = strings.ToUpper(strings.TrimSpace(cfg.DefaultCurrency))
	}
	if cfg.MaxProductVariants > 0 {
		maxProductVariants = cfg.MaxProductVariants
	}
}

func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return page, limit
}

// parseBoolQuery returns nil when the parameter is absent or malformed,
// so tri-state filters stay unfiltered by default.
func parseBoolQuery(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	switch strings.ToLower(raw) {
	case "true":
		return boolPtr(true)
	case "false":
		return boolPtr(false)
	}
	return nil
}

func parseFloatQuery(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return &v
	}
	return nil
}

func respondError(c *gin.Context, status int, code, message, field string) {
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    code,
			Message: message,
			Field:   field,
		},
	})
}

// respondRepoError maps the catalog error taxonomy to HTTP statuses:
// validation 400, not found 404, duplicate key 409, anything else 500.
func respondRepoError(c *gin.Context, err error, fallbackMessage string) {
	if ve, ok := catalog.AsValidationError(err); ok {
		respondError(c, http.StatusBadRequest, ve.Rule, ve.Message, ve.Field)
		return
	}
	if err == catalog.ErrNotFound {
		respondError(c, http.StatusNotFound, "NOT_FOUND", fallbackMessage+" not found", "")
		return
	}
	if de, ok := catalog.AsDuplicateKeyError(err); ok {
		respondError(c, http.StatusConflict, "DUPLICATE_KEY",
			"Duplicate value for: "+strings.Join(de.Fields, ", "), strings.Join(de.Fields, ","))
		return
	}
	respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process "+fallbackMessage, "")
}

var httpURLPattern = regexp.MustCompile(`(?i)^https?://[^\s/$.?#].[^\s]*$`)

func validHTTPURL(u string) bool {
	return httpURLPattern.MatchString(u)
}

func boolPtr(b bool) *bool       { return &b }
func stringPtr(s string) *string { return &s }
