package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services/llm"
)

const (
	// ProviderName identifies this client in the chat provider registry.
	ProviderName = "gemini"
	// DefaultModel is used when the configuration leaves the model blank.
	DefaultModel = "gemini-1.5-flash"

	defaultAttempts  = 3
	defaultRetryStep = 300 * time.Millisecond
)

// Config captures the Gemini settings.
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
}

// Client completes conversations through the Gemini API.
type Client struct {
	apiKey      string
	model       string
	temperature float64
	clientOpts  []option.ClientOption
	attempts    int
	retryStep   time.Duration
}

// Option customizes the client.
type Option func(*Client)

// WithClientOptions appends Google API client options (endpoint, HTTP
// client) used when dialing.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *Client) {
		c.clientOpts = append(c.clientOpts, opts...)
	}
}

// WithRetry overrides the attempt count and the linear retry step.
func WithRetry(attempts int, step time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.retryStep = step
	}
}

// NewClient constructs a Gemini client.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       strings.TrimSpace(cfg.Model),
		temperature: cfg.Temperature,
		attempts:    defaultAttempts,
		retryStep:   defaultRetryStep,
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.attempts <= 0 {
		c.attempts = 1
	}
	return c
}

func (c *Client) Name() string  { return ProviderName }
func (c *Client) Model() string { return c.model }

// Complete sends the conversation and returns the first text part of the
// answer. System messages become the system instruction; earlier turns are
// replayed as chat history.
func (c *Client) Complete(ctx context.Context, messages []llm.Message, opts llm.CompletionOptions) (string, error) {
	if c.apiKey == "" {
		return "", services.Wrap(services.ErrConfiguration, "gemini", "complete", "GEMINI_API_KEY is empty", nil)
	}
	system, history, last, err := buildConversation(messages)
	if err != nil {
		return "", err
	}

	cl, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(c.apiKey)}, c.clientOpts...)...)
	if err != nil {
		return "", services.Wrap(services.ErrUpstream, "gemini", "dial", "", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(c.model)
	if m == nil {
		return "", services.Wrap(services.ErrUpstream, "gemini", "complete", "model is nil", nil)
	}
	temperature := c.temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	m.GenerationConfig = genai.GenerationConfig{Temperature: ptrFloat32(float32(temperature))}
	if opts.MaxTokens > 0 {
		m.GenerationConfig.MaxOutputTokens = ptrInt32(int32(opts.MaxTokens))
	}
	if opts.JSON {
		m.GenerationConfig.ResponseMIMEType = "application/json"
	}
	m.SystemInstruction = system

	session := m.StartChat()

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		// SendMessage appends the user turn even when the call fails.
		session.History = append([]*genai.Content(nil), history...)
		resp, err := session.SendMessage(ctx, last...)
		if err != nil {
			lastErr = err
			if attempt < c.attempts {
				if err := sleep(ctx, time.Duration(attempt)*c.retryStep); err != nil {
					return "", services.Wrap(services.ErrTimeout, "gemini", "complete", "", err)
				}
			}
			continue
		}
		txt := strings.TrimSpace(firstText(resp))
		if txt == "" {
			return "", services.Wrap(services.ErrUpstream, "gemini", "complete", "empty response", nil)
		}
		return txt, nil
	}
	return "", services.Wrap(services.ErrUpstream, "gemini", "complete", fmt.Sprintf("failed after %d attempts", c.attempts), lastErr)
}

// HealthCheck sends the shared JSON ping with temperature 0.
func (c *Client) HealthCheck(ctx context.Context) error {
	content, err := c.Complete(ctx, llm.HealthMessages(), llm.CompletionOptions{Temperature: llm.Temperature(0), JSON: true})
	if err != nil {
		return err
	}
	return llm.CheckHealthReply(content)
}

// buildConversation splits chat messages into the system instruction, prior
// turns, and the parts of the final user turn.
func buildConversation(messages []llm.Message) (*genai.Content, []*genai.Content, []genai.Part, error) {
	var (
		system []genai.Part
		turns  []*genai.Content
	)
	for _, msg := range messages {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(msg.Role)) {
		case llm.RoleSystem:
			system = append(system, genai.Text(content))
		case llm.RoleAssistant, "model":
			turns = append(turns, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(content)}})
		default:
			turns = append(turns, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(content)}})
		}
	}
	if len(turns) == 0 || turns[len(turns)-1].Role != "user" {
		return nil, nil, nil, services.Wrap(services.ErrValidation, "gemini", "complete", "conversation must end with a user message", nil)
	}
	var instruction *genai.Content
	if len(system) > 0 {
		instruction = &genai.Content{Parts: system}
	}
	last := turns[len(turns)-1]
	return instruction, turns[:len(turns)-1], last.Parts, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }
