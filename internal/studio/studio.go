package studio

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/chat"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services"
)

// Tool names, used for routing and log tagging.
const (
	ToolFlashcards = "flashcards"
	ToolBooks      = "books"
	ToolPlaylist   = "playlist"
	ToolSongs      = "songs"
	ToolConvert    = "convert"
	ToolEssay      = "essay"
	ToolFeedback   = "feedback"

	ToolPresentation = "presentation"
	ToolStory        = "story"
)

var (
	arrayPattern  = regexp.MustCompile(`\[[\s\S]*\]`)
	objectPattern = regexp.MustCompile(`\{[\s\S]*\}`)
)

// Completer is the subset of chat.Service the tools need.
type Completer interface {
	Complete(ctx context.Context, req chat.Request) (chat.Response, error)
}

// Studio runs the study tools against one completion service.
type Studio struct {
	completer Completer
	provider  string
	logger    *slog.Logger
}

// Option customizes the studio.
type Option func(*Studio)

// WithProvider pins requests to a named provider.
func WithProvider(name string) Option {
	return func(s *Studio) { s.provider = strings.TrimSpace(name) }
}

// New constructs a studio.
func New(completer Completer, logger *slog.Logger, opts ...Option) *Studio {
	s := &Studio{
		completer: completer,
		logger:    logging.NewComponentLogger(logger, "studio"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ask sends prompt for tool and returns the raw reply.
func (s *Studio) ask(ctx context.Context, tool, prompt string) (string, *slog.Logger, error) {
	ctx = services.WithTool(ctx, tool)
	logger := logging.WithContext(ctx, s.logger)
	if s.completer == nil {
		return "", logger, services.Wrap(services.ErrConfiguration, "studio", tool, "no completion service", nil)
	}
	off := false
	resp, err := s.completer.Complete(ctx, chat.Request{Prompt: prompt, Stream: &off, Provider: s.provider})
	if err != nil {
		return "", logger, fmt.Errorf("%s: %w", tool, err)
	}
	return resp.Content, logger, nil
}

func required(tool, field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", services.Wrap(services.ErrValidation, "studio", tool, field+" is required", nil)
	}
	return value, nil
}

func parseFailure(tool, thing string, err error) error {
	return services.Wrap(services.ErrParse, "studio", tool, "failed to parse "+thing+" from response", err)
}

func invalidFormat(tool, thing string) error {
	return services.Wrap(services.ErrParse, "studio", tool, "invalid "+thing+" format received", nil)
}

// decodeArray decodes the span from the first '[' to the last ']' of reply.
func decodeArray(reply string, target any) (bool, error) {
	match := arrayPattern.FindString(reply)
	if match == "" {
		return false, nil
	}
	return true, json.Unmarshal([]byte(match), target)
}

// decodeObject decodes the span from the first '{' to the last '}' of reply.
func decodeObject(reply string, target any) (bool, error) {
	match := objectPattern.FindString(reply)
	if match == "" {
		return false, nil
	}
	return true, json.Unmarshal([]byte(match), target)
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexString(strconv.FormatBool(b))
		return nil
	}
	return fmt.Errorf("expected string or number, got %s", data)
}

// flexFloat accepts a JSON number or numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected number, got %s", data)
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "/5"))
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("expected number, got %q", s)
	}
	*f = flexFloat(n)
	return nil
}

// flexStrings accepts a JSON array of strings or a single comma separated string.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	var list []flexString
	if err := json.Unmarshal(data, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			if item != "" {
				out = append(out, string(item))
			}
		}
		*f = out
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected string list, got %s", data)
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*f = out
	return nil
}

func trimmed(value string) string {
	return strings.TrimSpace(value)
}
