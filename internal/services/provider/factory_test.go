package provider

import (
	"context"
	"testing"

	"pass-platform/models"

	"github.com/stretchr/testify/assert"
)

func TestFactoryRejectsUnimplementedProviders(t *testing.T) {
	factory := NewFactory()

	_, err := factory.CreateGateway(context.Background(), models.ProviderIdram, nil)
	assert.ErrorContains(t, err, "not implemented")

	_, err = factory.CreateGateway(context.Background(), models.ProviderApplePay, nil)
	assert.ErrorContains(t, err, "not implemented")

	_, err = factory.CreateGateway(context.Background(), "STRIPE", nil)
	assert.ErrorContains(t, err, "unsupported")
}

func TestFactoryRejectsWrongConfigType(t *testing.T) {
	factory := NewFactory()

	_, err := factory.CreateGateway(context.Background(), models.ProviderVPOS, "not a config")
	assert.Error(t, err)
}

func TestFactorySupportedProviders(t *testing.T) {
	supported := NewFactory().GetSupportedProviders()
	assert.ElementsMatch(t, []models.PaymentProvider{models.ProviderVPOS, models.ProviderMyAmeria}, supported)
}

func TestRegistryGetUnregistered(t *testing.T) {
	registry := NewRegistry(NewFactory())

	_, err := registry.Get(models.ProviderVPOS)
	assert.ErrorContains(t, err, "not registered")
	assert.Empty(t, registry.Available())
}
