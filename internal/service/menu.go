package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/restaurant-dashboard/internal/model"
)

// MenuService edits the dish prices used to total incoming orders.
// Existing orders keep the total computed when they were created.
type MenuService struct {
	menu MenuStore
}

func NewMenuService(menu MenuStore) *MenuService { return &MenuService{menu: menu} }

func (s *MenuService) List(ctx context.Context, tenantID string) ([]model.MenuPrice, error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	return s.menu.List(ctx, tenantID)
}

// Set creates or updates the price of a dish.
func (s *MenuService) Set(ctx context.Context, tenantID, name string, price decimal.Decimal) (model.MenuPrice, error) {
	if tenantID == "" {
		return model.MenuPrice{}, ErrTenantRequired
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.MenuPrice{}, fmt.Errorf("%w: name is required", ErrInvalidPayload)
	}
	if price.IsNegative() {
		return model.MenuPrice{}, fmt.Errorf("%w: price must not be negative", ErrInvalidPayload)
	}
	return s.menu.Upsert(ctx, tenantID, name, price.Round(2))
}

func (s *MenuService) Delete(ctx context.Context, tenantID, id string) error {
	if tenantID == "" {
		return ErrTenantRequired
	}
	return s.menu.Delete(ctx, id, tenantID)
}
