package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/config"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services/gemini"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services/llm"
)

// Provider completes a conversation.
type Provider interface {
	Name() string
	Model() string
	Complete(ctx context.Context, messages []llm.Message, opts llm.CompletionOptions) (string, error)
}

// Registry holds providers by name. The first registered provider is the default.
type Registry struct {
	order  []string
	byName map[string]Provider
}

// NewRegistry registers the given providers. Later duplicates are ignored.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{byName: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if p == nil {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(p.Name()))
		if name == "" {
			continue
		}
		if _, ok := r.byName[name]; ok {
			continue
		}
		r.byName[name] = p
		r.order = append(r.order, name)
	}
	return r
}

// NewRegistryFromConfig builds a provider for every configured credential,
// the configured default first. It fails when no provider is usable.
func NewRegistryFromConfig(cfg *config.Config) (*Registry, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "chat", "registry", "config is required", nil)
	}
	var providers []Provider
	for _, name := range cfg.ConfiguredProviders() {
		switch name {
		case config.ProviderOpenAI:
			providers = append(providers, llm.NewClient(llm.Config{
				APIKey:         cfg.LLM.APIKey,
				BaseURL:        cfg.LLM.BaseURL,
				Model:          cfg.LLM.Model,
				Referer:        cfg.LLM.Referer,
				Title:          cfg.LLM.Title,
				TimeoutSeconds: cfg.LLM.TimeoutSeconds,
				Temperature:    cfg.LLM.Temperature,
			}))
		case config.ProviderGemini:
			providers = append(providers, gemini.NewClient(gemini.Config{
				APIKey:      cfg.Gemini.APIKey,
				Model:       cfg.Gemini.Model,
				Temperature: cfg.LLM.Temperature,
			}))
		}
	}
	if len(providers) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "chat", "registry", "no provider configured", cfg.RequireProvider(""))
	}
	return NewRegistry(providers...), nil
}

// Get returns the named provider, or the default when name is empty.
func (r *Registry) Get(name string) (Provider, error) {
	if r == nil || len(r.order) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "chat", "provider", "no provider configured", nil)
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return r.byName[r.order[0]], nil
	}
	p, ok := r.byName[name]
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "chat", "provider", fmt.Sprintf("unknown provider %q (available: %s)", name, strings.Join(r.order, ", ")), nil)
	}
	return p, nil
}

// Names lists registered providers, default first.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}
