package catalog

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/logger"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

type catalogAPI interface {
	ListProducts(ctx context.Context) ([]storeapi.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID string) ([]storeapi.Product, error)
	ListCategories(ctx context.Context) ([]storeapi.Category, error)
	CreateProduct(ctx context.Context, input storeapi.ProductInput) (*storeapi.Product, error)
	UpdateProduct(ctx context.Context, id string, input storeapi.ProductInput) (*storeapi.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	CreateCategory(ctx context.Context, input storeapi.CategoryInput) (*storeapi.Category, error)
	UpdateCategory(ctx context.Context, id string, input storeapi.CategoryInput) (*storeapi.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Service exposes the product catalog for the storefront and the catalog
// CRUD used by the admin screens.
type Service struct {
	api  catalogAPI
	logg *logger.Logger
}

func NewService(api catalogAPI, logg *logger.Logger) (*Service, error) {
	if api == nil || logg == nil {
		return nil, fmt.Errorf("catalog service dependencies are required")
	}
	return &Service{api: api, logg: logg}, nil
}

// Products lists the catalog, optionally restricted to one category.
func (s *Service) Products(ctx context.Context, categoryID string) ([]storeapi.Product, error) {
	var (
		records []storeapi.Product
		err     error
	)
	if strings.TrimSpace(categoryID) == "" {
		records, err = s.api.ListProducts(ctx)
	} else {
		records, err = s.api.ListProductsByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load products")
	}
	return records, nil
}

// AvailableProducts is the storefront view: only products that can actually
// be added to a cart, meaning positive stock.
func (s *Service) AvailableProducts(ctx context.Context, categoryID string) ([]storeapi.Product, error) {
	records, err := s.Products(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	available := records[:0]
	for _, p := range records {
		if p.Stock > 0 {
			available = append(available, p)
		}
	}
	return available, nil
}

// Categories lists the active categories for storefront filtering.
func (s *Service) Categories(ctx context.Context) ([]storeapi.Category, error) {
	records, err := s.api.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load categories")
	}
	active := records[:0]
	for _, c := range records {
		if c.Active {
			active = append(active, c)
		}
	}
	return active, nil
}

// AllCategories is the admin view, inactive categories included.
func (s *Service) AllCategories(ctx context.Context) ([]storeapi.Category, error) {
	records, err := s.api.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load categories")
	}
	return records, nil
}

func validateProduct(input storeapi.ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	return nil
}

// CreateProduct adds a catalog entry.
func (s *Service) CreateProduct(ctx context.Context, input storeapi.ProductInput) (*storeapi.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}
	created, err := s.api.CreateProduct(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "create product")
	}
	s.logg.Info(s.logg.WithField(ctx, "product_id", created.ID), "product created")
	return created, nil
}

// UpdateProduct replaces a catalog entry.
func (s *Service) UpdateProduct(ctx context.Context, id string, input storeapi.ProductInput) (*storeapi.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := validateProduct(input); err != nil {
		return nil, err
	}
	updated, err := s.api.UpdateProduct(ctx, id, input)
	if err != nil {
		if storeapi.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "update product")
	}
	return updated, nil
}

// DeleteProduct removes a catalog entry.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		if storeapi.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "delete product")
	}
	return nil
}

// CreateCategory adds a category.
func (s *Service) CreateCategory(ctx context.Context, input storeapi.CategoryInput) (*storeapi.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	created, err := s.api.CreateCategory(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "create category")
	}
	return created, nil
}

// UpdateCategory replaces a category.
func (s *Service) UpdateCategory(ctx context.Context, id string, input storeapi.CategoryInput) (*storeapi.Category, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	updated, err := s.api.UpdateCategory(ctx, id, input)
	if err != nil {
		if storeapi.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "update category")
	}
	return updated, nil
}

// DeleteCategory removes a category.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if err := s.api.DeleteCategory(ctx, id); err != nil {
		if storeapi.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "delete category")
	}
	return nil
}

// Product fetches one catalog entry by scanning the list endpoints; the
// upstream API has no single-product read.
func (s *Service) Product(ctx context.Context, id string) (*storeapi.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	records, err := s.Products(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}
