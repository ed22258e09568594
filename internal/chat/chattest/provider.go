// Package chattest provides a scripted chat provider for tests.
package chattest

import (
	"context"
	"sync"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services/llm"
)

// Provider answers every call with Reply (or Err) and records what it saw.
type Provider struct {
	ProviderName string
	ModelName    string
	Reply        string
	Err          error
	// Respond, when set, takes precedence over Reply and Err.
	Respond func(messages []llm.Message) (string, error)

	mu    sync.Mutex
	calls []Call
}

// Call is one recorded Complete invocation.
type Call struct {
	Messages []llm.Message
	Options  llm.CompletionOptions
}

func (p *Provider) Name() string {
	if p.ProviderName == "" {
		return "fake"
	}
	return p.ProviderName
}

func (p *Provider) Model() string {
	if p.ModelName == "" {
		return "fake-model"
	}
	return p.ModelName
}

func (p *Provider) Complete(ctx context.Context, messages []llm.Message, opts llm.CompletionOptions) (string, error) {
	p.mu.Lock()
	p.calls = append(p.calls, Call{Messages: append([]llm.Message(nil), messages...), Options: opts})
	p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.Respond != nil {
		return p.Respond(messages)
	}
	return p.Reply, p.Err
}

// Calls returns a copy of the recorded calls.
func (p *Provider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// LastPrompt returns the content of the final message of the most recent call.
func (p *Provider) LastPrompt() string {
	calls := p.Calls()
	if len(calls) == 0 || len(calls[len(calls)-1].Messages) == 0 {
		return ""
	}
	msgs := calls[len(calls)-1].Messages
	return msgs[len(msgs)-1].Content
}
