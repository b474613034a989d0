package inventory

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/avidalh/electrostore-gateway/pkg/errors"
	"github.com/avidalh/electrostore-gateway/pkg/storeapi"
)

type inventoryAPI interface {
	ListInventory(ctx context.Context) ([]storeapi.InventoryEntry, error)
	CreateInventory(ctx context.Context, input storeapi.InventoryInput) (*storeapi.InventoryEntry, error)
	UpdateInventory(ctx context.Context, id string, input storeapi.InventoryInput) (*storeapi.InventoryEntry, error)
	DeleteInventory(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]storeapi.Product, error)
}

// Line is an inventory entry joined with its product name for the admin
// overview. ProductName is empty when the product no longer exists.
type Line struct {
	storeapi.InventoryEntry
	ProductName string `json:"productName"`
}

// Service exposes the stock ledger for the admin screens.
type Service struct {
	api inventoryAPI
}

func NewService(api inventoryAPI) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("inventory api is required")
	}
	return &Service{api: api}, nil
}

// Overview lists every inventory entry with product names resolved.
func (s *Service) Overview(ctx context.Context) ([]Line, error) {
	entries, err := s.api.ListInventory(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load inventory")
	}
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "load products for inventory join")
	}

	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	lines := make([]Line, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, Line{InventoryEntry: entry, ProductName: names[entry.ProductID]})
	}
	return lines, nil
}

func validate(input storeapi.InventoryInput) error {
	if strings.TrimSpace(input.ProductID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	return nil
}

// Create records a new stock entry.
func (s *Service) Create(ctx context.Context, input storeapi.InventoryInput) (*storeapi.InventoryEntry, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	created, err := s.api.CreateInventory(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "create inventory entry")
	}
	return created, nil
}

// Update rewrites a stock entry.
func (s *Service) Update(ctx context.Context, id string, input storeapi.InventoryInput) (*storeapi.InventoryEntry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory id is required")
	}
	if err := validate(input); err != nil {
		return nil, err
	}
	updated, err := s.api.UpdateInventory(ctx, id, input)
	if err != nil {
		if storeapi.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "inventory entry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "update inventory entry")
	}
	return updated, nil
}

// Delete removes a stock entry.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "inventory id is required")
	}
	if err := s.api.DeleteInventory(ctx, id); err != nil {
		if storeapi.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "inventory entry not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "delete inventory entry")
	}
	return nil
}
