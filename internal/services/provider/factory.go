package provider

import (
	"context"
	"fmt"

	"pass-platform/internal/services/provider/myameria"
	"pass-platform/internal/services/provider/vpos"
	"pass-platform/models"
)

// GatewayFactory implements Factory.
type GatewayFactory struct{}

// NewFactory creates a new gateway factory.
func NewFactory() *GatewayFactory {
	return &GatewayFactory{}
}

// CreateGateway creates a gateway instance based on provider tag and
// configuration.
func (f *GatewayFactory) CreateGateway(ctx context.Context, p models.PaymentProvider, config interface{}) (Gateway, error) {
	switch p {
	case models.ProviderVPOS:
		vposConfig, ok := config.(*vpos.Config)
		if !ok {
			return nil, fmt.Errorf("invalid VPOS config type, expected *vpos.Config")
		}
		return NewVPOSAdapter(ctx, vposConfig)

	case models.ProviderMyAmeria:
		maConfig, ok := config.(*myameria.Config)
		if !ok {
			return nil, fmt.Errorf("invalid MyAmeria config type, expected *myameria.Config")
		}
		return NewMyAmeriaAdapter(ctx, maConfig)

	case models.ProviderIdram, models.ProviderApplePay:
		return nil, fmt.Errorf("%s provider not implemented yet", p)

	default:
		return nil, fmt.Errorf("unsupported payment provider: %s", p)
	}
}

// GetSupportedProviders returns list of implemented providers.
func (f *GatewayFactory) GetSupportedProviders() []models.PaymentProvider {
	return []models.PaymentProvider{
		models.ProviderVPOS,
		models.ProviderMyAmeria,
	}
}

// Registry manages multiple gateway instances.
type Registry struct {
	gateways map[models.PaymentProvider]Gateway
	factory  Factory
	primary  models.PaymentProvider
}

// NewRegistry creates a new gateway registry.
func NewRegistry(factory Factory) *Registry {
	return &Registry{
		gateways: make(map[models.PaymentProvider]Gateway),
		factory:  factory,
	}
}

// Register creates and registers a gateway instance.
func (r *Registry) Register(ctx context.Context, p models.PaymentProvider, config interface{}) error {
	gw, err := r.factory.CreateGateway(ctx, p, config)
	if err != nil {
		return fmt.Errorf("failed to create %s gateway: %w", p, err)
	}

	r.gateways[p] = gw

	// Set first registered gateway as primary
	if r.primary == "" {
		r.primary = p
	}

	return nil
}

// Get returns a gateway instance by provider tag.
func (r *Registry) Get(p models.PaymentProvider) (Gateway, error) {
	gw, exists := r.gateways[p]
	if !exists {
		return nil, fmt.Errorf("payment provider %s not registered", p)
	}
	return gw, nil
}

// Available returns the registered provider tags.
func (r *Registry) Available() []models.PaymentProvider {
	providers := make([]models.PaymentProvider, 0, len(r.gateways))
	for p := range r.gateways {
		providers = append(providers, p)
	}
	return providers
}

// Close gracefully closes all gateway connections.
func (r *Registry) Close(ctx context.Context) error {
	for p, gw := range r.gateways {
		if err := gw.Close(ctx); err != nil {
			fmt.Printf("Error closing %s gateway: %v\n", p, err)
		}
	}
	return nil
}
