package service

import (
	"context"

	"github.com/ndewijer/import-cost-engine/internal/model"
	"github.com/ndewijer/import-cost-engine/internal/validation"
)

// DeliveryStore persists the singleton delivery configuration.
type DeliveryStore interface {
	GetOrCreate(ctx context.Context) (*model.DeliveryParameters, error)
	SaveDeliveryConfig(ctx context.Context, p model.DeliveryParameters) error
}

// DeliveryService reads and updates the delivery cost parameters.
type DeliveryService struct {
	store DeliveryStore
}

// NewDeliveryService creates a new DeliveryService.
func NewDeliveryService(store DeliveryStore) *DeliveryService {
	return &DeliveryService{store: store}
}

// GetParameters returns the current parameters, creating the defaults on first use.
func (s *DeliveryService) GetParameters(ctx context.Context) (*model.DeliveryParameters, error) {
	return s.store.GetOrCreate(ctx)
}

// UpdateParameters validates and stores new parameters.
func (s *DeliveryService) UpdateParameters(ctx context.Context, p model.DeliveryParameters) (*model.DeliveryParameters, error) {
	if err := validation.ValidateDeliveryParameters(p); err != nil {
		return nil, err
	}
	if err := s.store.SaveDeliveryConfig(ctx, p); err != nil {
		return nil, err
	}
	return s.store.GetOrCreate(ctx)
}
