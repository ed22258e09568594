package chat

import (
	"context"
	"time"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services/llm"
)

// HealthChecker is implemented by providers with their own credential ping.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ProviderHealth is the outcome of pinging one provider.
type ProviderHealth struct {
	Name     string        `json:"name"`
	Model    string        `json:"model"`
	OK       bool          `json:"ok"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"-"`
}

// Check pings every registered provider, default first. Providers without a
// HealthCheck get the same JSON ping through Complete.
func (r *Registry) Check(ctx context.Context) []ProviderHealth {
	names := r.Names()
	results := make([]ProviderHealth, 0, len(names))
	for _, name := range names {
		p := r.byName[name]
		start := time.Now()
		err := ping(ctx, p)
		result := ProviderHealth{Name: name, Model: p.Model(), OK: err == nil, Duration: time.Since(start)}
		if err != nil {
			result.Error = services.Message(err)
		}
		results = append(results, result)
	}
	return results
}

// Healthy reports whether every result passed. An empty set is unhealthy.
func Healthy(results []ProviderHealth) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}

func ping(ctx context.Context, p Provider) error {
	if hc, ok := p.(HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	content, err := p.Complete(ctx, llm.HealthMessages(), llm.CompletionOptions{Temperature: llm.Temperature(0), JSON: true})
	if err != nil {
		return err
	}
	return llm.CheckHealthReply(content)
}
