package catalog

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

type mockCatalogAPI struct {
	products      []storeapi.Product
	byCategory    map[string][]storeapi.Product
	categories    []storeapi.Category
	listErr       error
	byCategoryIDs []string

	productWriteErr  error
	categoryWriteErr error
	deletedProducts  []string
}

func (m *mockCatalogAPI) ListProducts(context.Context) ([]storeapi.Product, error) {
	return m.products, m.listErr
}

func (m *mockCatalogAPI) ListProductsByCategory(_ context.Context, categoryID string) ([]storeapi.Product, error) {
	m.byCategoryIDs = append(m.byCategoryIDs, categoryID)
	return m.byCategory[categoryID], m.listErr
}

func (m *mockCatalogAPI) ListCategories(context.Context) ([]storeapi.Category, error) {
	return m.categories, m.listErr
}

func (m *mockCatalogAPI) CreateProduct(_ context.Context, input storeapi.ProductInput) (*storeapi.Product, error) {
	if m.productWriteErr != nil {
		return nil, m.productWriteErr
	}
	return &storeapi.Product{ID: "p-new", Name: input.Name, Price: input.Price, Stock: input.Stock}, nil
}

func (m *mockCatalogAPI) UpdateProduct(_ context.Context, id string, input storeapi.ProductInput) (*storeapi.Product, error) {
	if m.productWriteErr != nil {
		return nil, m.productWriteErr
	}
	return &storeapi.Product{ID: id, Name: input.Name}, nil
}

func (m *mockCatalogAPI) DeleteProduct(_ context.Context, id string) error {
	m.deletedProducts = append(m.deletedProducts, id)
	return m.productWriteErr
}

func (m *mockCatalogAPI) CreateCategory(_ context.Context, input storeapi.CategoryInput) (*storeapi.Category, error) {
	if m.categoryWriteErr != nil {
		return nil, m.categoryWriteErr
	}
	return &storeapi.Category{ID: "c-new", Name: input.Name, Active: input.Active}, nil
}

func (m *mockCatalogAPI) UpdateCategory(_ context.Context, id string, input storeapi.CategoryInput) (*storeapi.Category, error) {
	if m.categoryWriteErr != nil {
		return nil, m.categoryWriteErr
	}
	return &storeapi.Category{ID: id, Name: input.Name, Active: input.Active}, nil
}

func (m *mockCatalogAPI) DeleteCategory(_ context.Context, id string) error {
	return m.categoryWriteErr
}

func newTestService(t *testing.T, api *mockCatalogAPI) *Service {
	t.Helper()
	svc, err := NewService(api, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	require.NoError(t, err)
	return svc
}

func TestProductsRoutesByCategory(t *testing.T) {
	api := &mockCatalogAPI{
		products:   []storeapi.Product{{ID: "p-1"}},
		byCategory: map[string][]storeapi.Product{"c-1": {{ID: "p-2"}}},
	}
	svc := newTestService(t, api)

	all, err := svc.Products(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "p-1", all[0].ID)

	filtered, err := svc.Products(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "p-2", filtered[0].ID)
	assert.Equal(t, []string{"c-1"}, api.byCategoryIDs)
}

func TestAvailableProductsDropsOutOfStock(t *testing.T) {
	api := &mockCatalogAPI{products: []storeapi.Product{
		{ID: "p-1", Stock: 3},
		{ID: "p-2", Stock: 0},
		{ID: "p-3", Stock: -1},
	}}
	svc := newTestService(t, api)

	available, err := svc.AvailableProducts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "p-1", available[0].ID)
}

func TestCategoriesFiltersInactive(t *testing.T) {
	api := &mockCatalogAPI{categories: []storeapi.Category{
		{ID: "c-1", Active: true},
		{ID: "c-2", Active: false},
	}}
	svc := newTestService(t, api)

	active, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "c-1", active[0].ID)

	all, err := svc.AllCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProductsUpstreamFailure(t *testing.T) {
	api := &mockCatalogAPI{listErr: fmt.Errorf("boom")}
	svc := newTestService(t, api)

	_, err := svc.Products(context.Background(), "")
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUpstream, appErr.Code())
}

func TestProductLookup(t *testing.T) {
	api := &mockCatalogAPI{products: []storeapi.Product{{ID: "p-1", Name: "Laptop"}}}
	svc := newTestService(t, api)

	found, err := svc.Product(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Laptop", found.Name)

	_, err = svc.Product(context.Background(), "missing")
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestCreateProductValidation(t *testing.T) {
	svc := newTestService(t, &mockCatalogAPI{})

	cases := []storeapi.ProductInput{
		{Name: " ", Price: 1},
		{Name: "x", Price: -1},
		{Name: "x", Stock: -1},
	}
	for _, input := range cases {
		_, err := svc.CreateProduct(context.Background(), input)
		require.Error(t, err)
		appErr := pkgerrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	}
}

func TestUpdateProductMapsNotFound(t *testing.T) {
	api := &mockCatalogAPI{productWriteErr: &storeapi.APIError{Status: 404}}
	svc := newTestService(t, api)

	_, err := svc.UpdateProduct(context.Background(), "p-9", storeapi.ProductInput{Name: "x"})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestCategoryWriteValidation(t *testing.T) {
	svc := newTestService(t, &mockCatalogAPI{})

	_, err := svc.CreateCategory(context.Background(), storeapi.CategoryInput{Name: " "})
	require.Error(t, err)

	_, err = svc.UpdateCategory(context.Background(), "", storeapi.CategoryInput{Name: "x"})
	require.Error(t, err)

	err = svc.DeleteCategory(context.Background(), " ")
	require.Error(t, err)
}
