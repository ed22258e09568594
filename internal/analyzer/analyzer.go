// Package analyzer asks a model for a structured explanation of a physics
// phenomenon and resolves the answer into renderable blocks and spans.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/chat"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/explain"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services"
)

// ToolName tags analyzer requests in logs.
const ToolName = "physics"

// EmptyAnswerFallback replaces an empty completion.
const EmptyAnswerFallback = "Sorry, I had trouble generating an explanation. Please try again!"

const promptTemplate = `As a physics expert, provide a comprehensive explanation of the following physics phenomenon:
"%s"

Your explanation should include:
1. A clear definition and description of the phenomenon
2. The fundamental physical principles involved
3. All relevant mathematical equations and formulas

For all equations and formulas:
- Enclose block equations with $$ on their own lines (e.g., $$E = mc^2$$)
- Enclose inline equations with single $ (e.g., $F = ma$)
- Use proper LaTeX notation for all mathematical symbols
- Keep equations simple and clean, using only necessary symbols
- Ensure each equation is properly labeled and referenced in the text
- Mention the name of the equation (e.g., "Newton's Second Law", "Einstein's Mass-Energy Equivalence")

4. Real-world applications and examples
5. Historical context and key scientists who contributed to our understanding

Format your response with clear sections using markdown headers:
# Introduction
# Physical Principles
# Mathematical Equations
# Applications
# Historical Context

Ensure all equations are properly explained and each section is separated by blank lines.
Use precise scientific language but make it accessible to a university student level.`

// BuildPrompt returns the expert prompt for phenomenon.
func BuildPrompt(phenomenon string) string {
	return fmt.Sprintf(promptTemplate, strings.TrimSpace(phenomenon))
}

// Completer is the subset of chat.Service the analyzer needs.
type Completer interface {
	Complete(ctx context.Context, req chat.Request) (chat.Response, error)
}

// Analysis is one analyzed phenomenon.
type Analysis struct {
	Phenomenon string           `json:"phenomenon"`
	Raw        string           `json:"raw"`
	Document   explain.Document `json:"document"`
	Provider   string           `json:"provider,omitempty"`
	Model      string           `json:"model,omitempty"`
	Duration   time.Duration    `json:"duration"`
}

// Analyzer turns phenomena into resolved explanations.
type Analyzer struct {
	completer Completer
	dict      *explain.Dictionary
	provider  string
	logger    *slog.Logger
}

// Option customizes the analyzer.
type Option func(*Analyzer)

// WithDictionary overrides the equation dictionary.
func WithDictionary(dict *explain.Dictionary) Option {
	return func(a *Analyzer) {
		if dict != nil {
			a.dict = dict
		}
	}
}

// WithProvider pins requests to a named provider.
func WithProvider(name string) Option {
	return func(a *Analyzer) { a.provider = strings.TrimSpace(name) }
}

// New constructs an analyzer.
func New(completer Completer, logger *slog.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		completer: completer,
		dict:      explain.Default(),
		logger:    logging.NewComponentLogger(logger, "analyzer"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze requests an explanation and segments it. Completion failures are
// returned as errors; the segmenter only runs on a received answer.
func (a *Analyzer) Analyze(ctx context.Context, phenomenon string) (Analysis, error) {
	phenomenon = strings.TrimSpace(phenomenon)
	if phenomenon == "" {
		return Analysis{}, services.Wrap(services.ErrValidation, "analyzer", "analyze", "phenomenon is required", nil)
	}
	if a.completer == nil {
		return Analysis{}, services.Wrap(services.ErrConfiguration, "analyzer", "analyze", "no completion service", nil)
	}
	ctx = services.WithTool(ctx, ToolName)
	logger := logging.WithContext(ctx, a.logger)

	off := false
	resp, err := a.completer.Complete(ctx, chat.Request{
		Prompt:   BuildPrompt(phenomenon),
		Stream:   &off,
		Provider: a.provider,
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("analyze %q: %w", phenomenon, err)
	}

	raw := resp.Content
	if strings.TrimSpace(raw) == "" {
		logging.WarnWithContext(logger, "empty explanation received", "analyzer_empty_answer",
			logging.String(logging.FieldImpact, "fallback message shown instead of an explanation"),
		)
		raw = EmptyAnswerFallback
	}

	doc := a.dict.Resolve(raw)
	logger.Info("explanation segmented",
		logging.String("phenomenon", phenomenon),
		logging.Int("blocks", len(doc.Blocks)),
		logging.Int("math_spans", len(doc.Math())),
	)
	return Analysis{
		Phenomenon: phenomenon,
		Raw:        raw,
		Document:   doc,
		Provider:   resp.Provider,
		Model:      resp.Model,
		Duration:   resp.Duration,
	}, nil
}
