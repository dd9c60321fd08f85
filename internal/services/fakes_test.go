package services

import (
	"context"

	"order-functions-api/internal/models"
	"order-functions-api/internal/repositories"
)

type fakeOrderRepo struct {
	details map[string]*models.OrderDetails
	orders  map[string]*models.Order
	err     error
	scopes  []repositories.AccessScope
}

func (f *fakeOrderRepo) GetOrderDetails(ctx context.Context, scope repositories.AccessScope, orderID string) (*models.OrderDetails, error) {
	f.scopes = append(f.scopes, scope)
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.details[orderID]
	if !ok {
		return nil, repositories.NotFoundError("order", orderID)
	}
	return d, nil
}

func (f *fakeOrderRepo) GetOrderWithItems(ctx context.Context, scope repositories.AccessScope, orderID string) (*models.Order, error) {
	f.scopes = append(f.scopes, scope)
	if f.err != nil {
		return nil, f.err
	}
	o, ok := f.orders[orderID]
	if !ok {
		return nil, repositories.NotFoundError("order", orderID)
	}
	return o, nil
}

type fakeProfileRepo struct {
	profiles map[string]*models.PurchaserProfile
	err      error
	calls    int
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, scope repositories.AccessScope, userID string) (*models.PurchaserProfile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repositories.NotFoundError("profile", userID)
	}
	return p, nil
}
