package handlers

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// MockProductsStore is a mock implementation of repository.ProductsStore
type MockProductsStore struct {
	mock.Mock
}

var _ repository.ProductsStore = (*MockProductsStore)(nil)

func (m *MockProductsStore) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductsStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductsStore) GetByIDOrSlug(ctx context.Context, idOrSlug string, onlyActive bool) (*models.Product, error) {
	args := m.Called(ctx, idOrSlug, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductsStore) List(ctx context.Context, q models.ProductListQuery) ([]models.Product, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductsStore) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductsStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductsStore) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// MockAttributesStore is a mock implementation of repository.AttributesStore
type MockAttributesStore struct {
	mock.Mock
}

var _ repository.AttributesStore = (*MockAttributesStore)(nil)

func (m *MockAttributesStore) Create(ctx context.Context, attribute *models.Attribute) error {
	args := m.Called(ctx, attribute)
	return args.Error(0)
}

func (m *MockAttributesStore) GetByIDOrCode(ctx context.Context, idOrCode string) (*models.Attribute, error) {
	args := m.Called(ctx, idOrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attribute), args.Error(1)
}

func (m *MockAttributesStore) GetByIDs(ctx context.Context, ids []string) ([]models.Attribute, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attribute), args.Error(1)
}

func (m *MockAttributesStore) List(ctx context.Context, q models.AttributeListQuery) ([]models.Attribute, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Attribute), args.Get(1).(int64), args.Error(2)
}

func (m *MockAttributesStore) Update(ctx context.Context, attribute *models.Attribute) error {
	args := m.Called(ctx, attribute)
	return args.Error(0)
}

func (m *MockAttributesStore) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoriesStore is a mock implementation of repository.CategoriesStore
type MockCategoriesStore struct {
	mock.Mock
}

var _ repository.CategoriesStore = (*MockCategoriesStore)(nil)

func (m *MockCategoriesStore) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoriesStore) GetByIDOrSlug(ctx context.Context, idOrSlug string) (*models.Category, error) {
	args := m.Called(ctx, idOrSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoriesStore) List(ctx context.Context, q models.CategoryListQuery) ([]models.Category, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoriesStore) Update(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoriesStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBannersStore is a mock implementation of repository.BannersStore
type MockBannersStore struct {
	mock.Mock
}

var _ repository.BannersStore = (*MockBannersStore)(nil)

func (m *MockBannersStore) Create(ctx context.Context, banner *models.Banner) error {
	args := m.Called(ctx, banner)
	return args.Error(0)
}

func (m *MockBannersStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Banner), args.Error(1)
}

func (m *MockBannersStore) List(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Banner), args.Error(1)
}

func (m *MockBannersStore) Update(ctx context.Context, banner *models.Banner) error {
	args := m.Called(ctx, banner)
	return args.Error(0)
}

func (m *MockBannersStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Helper to setup test router
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// Helper to build a silent logger for handler tests
func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
