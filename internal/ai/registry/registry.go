package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/thomas-vilte/prtitle/internal/ai"
	"github.com/thomas-vilte/prtitle/internal/config"
	domainErrors "github.com/thomas-vilte/prtitle/internal/errors"
)

// GeneratorFactory creates text generators for one provider.
type GeneratorFactory interface {
	// CreateGenerator creates a generator from the run configuration
	CreateGenerator(ctx context.Context, cfg *config.Config) (ai.TextGenerator, error)

	// ValidateConfig validates the configuration for this provider
	ValidateConfig(cfg *config.Config) error

	// Name returns the provider name
	Name() string
}

// FactoryFunc adapts a constructor to GeneratorFactory.
type FactoryFunc struct {
	ProviderName string
	New          func(ctx context.Context, cfg *config.Config) (ai.TextGenerator, error)
}

func (f FactoryFunc) CreateGenerator(ctx context.Context, cfg *config.Config) (ai.TextGenerator, error) {
	if err := f.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return f.New(ctx, cfg)
}

func (f FactoryFunc) ValidateConfig(cfg *config.Config) error {
	if cfg == nil {
		return domainErrors.ErrInvalidConfig
	}
	if cfg.APIKey == "" {
		return domainErrors.ErrAPIKeyMissing.WithContext("provider", f.ProviderName)
	}
	return nil
}

func (f FactoryFunc) Name() string {
	return f.ProviderName
}

// Registry maps provider names to generator factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]GeneratorFactory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]GeneratorFactory),
	}
}

// Register adds a factory under name. Registering a name twice is an error.
func (r *Registry) Register(name string, factory GeneratorFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("AI provider '%s' is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *Registry) Get(name string) (GeneratorFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	if !exists {
		return nil, domainErrors.ErrProviderNotSupported.WithContext("provider", name)
	}

	return factory, nil
}

// List returns the registered provider names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]string, 0, len(r.factories))
	for name := range r.factories {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}

func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}

// CreateGenerator looks up the configured provider and builds its generator.
func (r *Registry) CreateGenerator(ctx context.Context, cfg *config.Config) (ai.TextGenerator, error) {
	factory, err := r.Get(string(cfg.AI()))
	if err != nil {
		return nil, domainErrors.ErrProviderNotSupported.
			WithContext("provider", cfg.Provider).
			WithContext("available", strings.Join(r.List(), ", "))
	}
	return factory.CreateGenerator(ctx, cfg)
}
