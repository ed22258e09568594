package api

import (
	"time"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/explain"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/studio"
)

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// HealthResponse is the body of a deep health check.
type HealthResponse struct {
	Status    string           `json:"status"`
	Providers []ProviderStatus `json:"providers"`
}

// ProviderStatus reports one provider ping.
type ProviderStatus struct {
	Name       string `json:"name"`
	Model      string `json:"model"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"durationMs"`
}

// ExplainRequest asks for a physics explanation.
type ExplainRequest struct {
	Phenomenon string `json:"phenomenon"`
	Provider   string `json:"provider,omitempty"`
}

// ExplainResponse carries the raw answer and its resolved document.
type ExplainResponse struct {
	Phenomenon string                  `json:"phenomenon"`
	Raw        string                  `json:"raw"`
	Blocks     []explain.ResolvedBlock `json:"blocks"`
	Markdown   string                  `json:"markdown"`
	Provider   string                  `json:"provider,omitempty"`
	Model      string                  `json:"model,omitempty"`
	DurationMS int64                   `json:"durationMs"`
}

// SegmentRequest carries text to resolve locally.
type SegmentRequest struct {
	Text string `json:"text"`
}

// SegmentResponse is a resolved document.
type SegmentResponse struct {
	Blocks   []explain.ResolvedBlock `json:"blocks"`
	Markdown string                  `json:"markdown"`
}

// EquationsResponse lists the equation dictionary in declaration order.
type EquationsResponse struct {
	Count     int                `json:"count"`
	Equations []explain.Equation `json:"equations"`
}

// ProvidersResponse lists configured completion providers.
type ProvidersResponse struct {
	Default   string   `json:"default"`
	Providers []string `json:"providers"`
}

// FlashcardsRequest is the flash card tool input.
type FlashcardsRequest struct {
	Subject string `json:"subject"`
}

// FlashcardsResponse wraps generated cards.
type FlashcardsResponse struct {
	Subject string             `json:"subject"`
	Cards   []studio.FlashCard `json:"cards"`
}

// BooksRequest is the book finder input.
type BooksRequest struct {
	Subject string `json:"subject"`
	Level   string `json:"level,omitempty"`
}

// BooksResponse wraps book recommendations.
type BooksResponse struct {
	Subject string        `json:"subject"`
	Books   []studio.Book `json:"books"`
}

// PlaylistRequest is the playlist generator input.
type PlaylistRequest struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// SongsRequest is the song recommender input.
type SongsRequest struct {
	Song   string `json:"song"`
	Artist string `json:"artist,omitempty"`
}

// ConvertRequest is the code converter input.
type ConvertRequest struct {
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	Code           string `json:"code"`
}

// EssayRequest is the essay generator input.
type EssayRequest struct {
	Topic     string `json:"topic"`
	EssayType string `json:"essayType,omitempty"`
	WordCount int    `json:"wordCount,omitempty"`
}

// FeedbackRequest is the study partner input.
type FeedbackRequest struct {
	Subject     string `json:"subject"`
	Explanation string `json:"explanation"`
}

// PresentationRequest is the presentation generator input.
type PresentationRequest struct {
	Subject string `json:"subject"`
}

// StoryRequest is the book writer input.
type StoryRequest struct {
	Idea string `json:"idea"`
}

func durationMS(d time.Duration) int64 {
	return d.Milliseconds()
}
