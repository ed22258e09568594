package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/chat"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/studio"
)

const (
	// invalidBodyMessage answers undecodable JSON bodies.
	invalidBodyMessage = "invalid JSON body"
	// upstreamDisplayMessage hides provider details from clients.
	upstreamDisplayMessage = "Sorry, the study assistant is unavailable right now. Please try again."
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if deep, _ := strconv.ParseBool(r.URL.Query().Get("deep")); deep {
		s.writeDeepHealth(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

// writeDeepHealth pings every provider and answers 503 when any fails.
func (s *Server) writeDeepHealth(w http.ResponseWriter, r *http.Request) {
	results := s.chat.Registry().Check(r.Context())
	resp := HealthResponse{Status: "ok", Providers: make([]ProviderStatus, 0, len(results))}
	status := http.StatusOK
	if !chat.Healthy(results) {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	logger := logging.WithContext(r.Context(), s.logger)
	for _, res := range results {
		resp.Providers = append(resp.Providers, ProviderStatus{
			Name:       res.Name,
			Model:      res.Model,
			OK:         res.OK,
			Error:      res.Error,
			DurationMS: durationMS(res.Duration),
		})
		if !res.OK {
			logging.WarnWithContext(logger, "provider health check failed", "api_health_failed",
				logging.String("provider", res.Name),
				logging.String(logging.FieldErrorHint, res.Error),
			)
		}
	}
	s.writeJSON(w, status, resp)
}

// handleChat mirrors the plain-text chat contract: errors are text bodies.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req chat.Request
	if err := decodeBody(w, r, &req); err != nil {
		http.Error(w, invalidBodyMessage, http.StatusBadRequest)
		return
	}
	resp, err := s.chat.Complete(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyRequest):
			http.Error(w, chat.EmptyRequestMessage, http.StatusBadRequest)
		case services.IsClientError(err):
			http.Error(w, services.Message(err), http.StatusBadRequest)
		default:
			http.Error(w, chat.UpstreamErrorMessage, http.StatusInternalServerError)
		}
		return
	}
	if req.Streaming() {
		w.Header().Set("Cache-Control", "no-cache")
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Model", resp.Model)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, resp.Content)
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req ExplainRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	an := s.analyzer
	if p := strings.TrimSpace(req.Provider); p != "" {
		if _, err := s.chat.Registry().Get(p); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		an = s.analyzerFor(p)
	}
	analysis, err := an.Analyze(r.Context(), req.Phenomenon)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ExplainResponse{
		Phenomenon: analysis.Phenomenon,
		Raw:        analysis.Raw,
		Blocks:     analysis.Document.Blocks,
		Markdown:   analysis.Document.Markdown(),
		Provider:   analysis.Provider,
		Model:      analysis.Model,
		DurationMS: durationMS(analysis.Duration),
	})
}

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	var req SegmentRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	doc := s.dict.Resolve(req.Text)
	s.writeJSON(w, http.StatusOK, SegmentResponse{Blocks: doc.Blocks, Markdown: doc.Markdown()})
}

func (s *Server) handleEquations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	entries := s.dict.Entries()
	s.writeJSON(w, http.StatusOK, EquationsResponse{Count: len(entries), Equations: entries})
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	names := s.chat.Registry().Names()
	resp := ProvidersResponse{Providers: names}
	if len(names) > 0 {
		resp.Default = names[0]
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFlashcards(w http.ResponseWriter, r *http.Request) {
	var req FlashcardsRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	cards, err := s.studio.Flashcards(r.Context(), req.Subject)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, FlashcardsResponse{Subject: strings.TrimSpace(req.Subject), Cards: cards})
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	var req BooksRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	books, err := s.studio.Books(r.Context(), req.Subject, req.Level)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, BooksResponse{Subject: strings.TrimSpace(req.Subject), Books: books})
}

func (s *Server) handlePlaylist(w http.ResponseWriter, r *http.Request) {
	var req PlaylistRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	playlist, err := s.studio.Playlist(r.Context(), studio.PlaylistKind(req.Kind), req.Value)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, playlist)
}

func (s *Server) handleSongs(w http.ResponseWriter, r *http.Request) {
	var req SongsRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	recs, err := s.studio.SimilarSongs(r.Context(), req.Song, req.Artist)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	conv, err := s.studio.Convert(r.Context(), req.SourceLanguage, req.TargetLanguage, req.Code)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, conv)
}

func (s *Server) handleEssay(w http.ResponseWriter, r *http.Request) {
	var req EssayRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	essay, err := s.studio.Essay(r.Context(), req.Topic, req.EssayType, req.WordCount)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, essay)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	fb, err := s.studio.Feedback(r.Context(), req.Subject, req.Explanation)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, fb)
}

func (s *Server) handlePresentation(w http.ResponseWriter, r *http.Request) {
	var req PresentationRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	deck, err := s.studio.Presentation(r.Context(), req.Subject)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, deck)
}

func (s *Server) handleStory(w http.ResponseWriter, r *http.Request) {
	var req StoryRequest
	if !s.decodePost(w, r, &req) {
		return
	}
	story, err := s.studio.Story(r.Context(), req.Idea)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, story)
}

// decodePost enforces POST and decodes the JSON body, answering the error
// itself when either fails.
func (s *Server) decodePost(w http.ResponseWriter, r *http.Request, target any) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	if err := decodeBody(w, r, target); err != nil {
		s.writeError(w, r, http.StatusBadRequest, invalidBodyMessage)
		return false
	}
	return true
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()
	dec := json.NewDecoder(body)
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// writeServiceError maps a service error to its status. Client errors keep
// their message; everything else gets a generic display string and the detail
// goes to the log.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := services.HTTPStatus(err)
	if services.IsClientError(err) {
		s.writeError(w, r, status, services.Message(err))
		return
	}
	logging.ErrorWithContext(logging.WithContext(r.Context(), s.logger), "request failed", "api_service_error",
		logging.Error(err),
		logging.Int("status", status),
		logging.String(logging.FieldErrorHint, "see the preceding provider warning for the cause"),
	)
	s.writeError(w, r, status, upstreamDisplayMessage)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	id, _ := services.RequestIDFromContext(r.Context())
	s.writeJSON(w, status, ErrorResponse{Error: message, RequestID: id})
}
