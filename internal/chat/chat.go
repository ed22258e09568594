package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services/llm"
)

const (
	// DefaultSystemPrompt frames every prompt-only request.
	DefaultSystemPrompt = "You are a friendly and helpful AI study partner. You provide clear, constructive feedback and suggestions in a casual, encouraging tone."
	// DefaultTemperature is used when the service is built without an override.
	DefaultTemperature = 0.7

	// EmptyRequestMessage is the display text for a request with no content.
	EmptyRequestMessage = "Either messages or prompt is required"
	// UpstreamErrorMessage is the display text for provider failures.
	UpstreamErrorMessage = "Error communicating with the language model"
)

// ErrEmptyRequest is returned when a request has neither a prompt nor messages.
var ErrEmptyRequest = fmt.Errorf("%w: %s", services.ErrValidation, EmptyRequestMessage)

// Message aliases the provider message type so callers need only this package.
type Message = llm.Message

// Request is one completion request.
type Request struct {
	Prompt   string    `json:"prompt,omitempty"`
	Messages []Message `json:"messages,omitempty"`
	// Stream is accepted for compatibility; responses are always delivered whole.
	Stream   *bool  `json:"stream,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// Streaming reports the requested stream mode. Absent means true.
func (r Request) Streaming() bool {
	if r.Stream == nil {
		return true
	}
	return *r.Stream
}

// Conversation returns the messages sent upstream: the request's own messages
// when present, otherwise the default system prompt followed by the prompt.
func (r Request) Conversation() ([]Message, error) {
	if len(r.Messages) > 0 {
		out := make([]Message, len(r.Messages))
		copy(out, r.Messages)
		return out, nil
	}
	if strings.TrimSpace(r.Prompt) == "" {
		return nil, ErrEmptyRequest
	}
	return []Message{
		{Role: llm.RoleSystem, Content: DefaultSystemPrompt},
		{Role: llm.RoleUser, Content: r.Prompt},
	}, nil
}

// Response is a completed request.
type Response struct {
	Content  string        `json:"content"`
	Provider string        `json:"provider"`
	Model    string        `json:"model"`
	Duration time.Duration `json:"duration"`
}

// Service answers chat requests through a provider registry.
type Service struct {
	registry    *Registry
	temperature float64
	logger      *slog.Logger
	now         func() time.Time
}

// Option customizes the service.
type Option func(*Service)

// WithTemperature overrides the sampling temperature.
func WithTemperature(value float64) Option {
	return func(s *Service) { s.temperature = value }
}

// WithClock overrides the time source used for durations.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a chat service.
func NewService(registry *Registry, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		registry:    registry,
		temperature: DefaultTemperature,
		logger:      logging.NewComponentLogger(logger, "chat"),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry exposes the provider registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Complete sends the request to its provider and returns the full text.
func (s *Service) Complete(ctx context.Context, req Request) (Response, error) {
	messages, err := req.Conversation()
	if err != nil {
		return Response{}, err
	}
	provider, err := s.registry.Get(req.Provider)
	if err != nil {
		return Response{}, err
	}

	ctx = services.WithProvider(ctx, provider.Name())
	logger := logging.WithContext(ctx, s.logger)
	logger.Debug("completion requested",
		logging.String("model", provider.Model()),
		logging.Int("messages", len(messages)),
		logging.Bool("stream", req.Streaming()),
	)

	start := s.now()
	content, err := provider.Complete(ctx, messages, llm.CompletionOptions{Temperature: llm.Temperature(s.temperature)})
	elapsed := s.now().Sub(start)
	if err != nil {
		logging.WarnWithContext(logger, "completion failed", "chat_completion_failed",
			logging.Error(err),
			logging.Duration("duration", elapsed),
			logging.String(logging.FieldErrorHint, "check provider credentials and network access"),
		)
		return Response{}, fmt.Errorf("complete via %s: %w", provider.Name(), err)
	}

	logger.Info("completion finished", logging.Args(logging.CompletionAttrs(provider.Model(), len(content), elapsed)...)...)
	return Response{
		Content:  content,
		Provider: provider.Name(),
		Model:    provider.Model(),
		Duration: elapsed,
	}, nil
}

// Ask is a prompt-only Complete.
func (s *Service) Ask(ctx context.Context, providerName, prompt string) (Response, error) {
	return s.Complete(ctx, Request{Prompt: prompt, Provider: providerName, Stream: boolPtr(false)})
}

func boolPtr(v bool) *bool { return &v }
