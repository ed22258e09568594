package studio

import (
	"context"
	"fmt"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
)

// MaxSlideBullets caps the bullet points kept per slide.
const MaxSlideBullets = 5

// Slide is one presentation slide. IDs are renumbered from 1 in order.
type Slide struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	Content []string `json:"content"`
	Notes   string   `json:"notes,omitempty"`
}

// Presentation is a titled slide deck.
type Presentation struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
}

const presentationPrompt = `You are a presentation expert. Create a well-structured presentation about the given subject.
The presentation should include:
1. A title slide
2. An introduction
3. Main content slides (3-5 slides)
4. A conclusion slide
Each slide should have a clear title and 3-5 bullet points. Include speaker notes for each slide.
Format the response as a JSON object with a title and an array of slides.
Each slide should have: id, title, content (array of bullet points), and notes (speaker notes).

Create a presentation about: %s`

// PresentationPrompt builds the presentation prompt.
func PresentationPrompt(subject string) string {
	return fmt.Sprintf(presentationPrompt, subject)
}

// Presentation drafts a slide deck on subject.
func (s *Studio) Presentation(ctx context.Context, subject string) (Presentation, error) {
	subject, err := required(ToolPresentation, "subject", subject)
	if err != nil {
		return Presentation{}, err
	}
	reply, logger, err := s.ask(ctx, ToolPresentation, PresentationPrompt(subject))
	if err != nil {
		return Presentation{}, err
	}
	deck, err := ParsePresentation(reply)
	if err != nil {
		logging.WarnWithContext(logger, "presentation reply rejected", "studio_parse_failed", logging.RejectedReply(err, reply)...)
		return Presentation{}, err
	}
	if deck.Title == "" {
		deck.Title = subject
	}
	logger.Info("presentation generated", logging.String("subject", subject), logging.Int("slides", len(deck.Slides)))
	return deck, nil
}

// ParsePresentation extracts a slide deck from a model reply. Slides with
// neither a title nor bullets are dropped.
func ParsePresentation(reply string) (Presentation, error) {
	var raw struct {
		Title  flexString `json:"title"`
		Slides []struct {
			Title   flexString  `json:"title"`
			Content flexStrings `json:"content"`
			Notes   flexString  `json:"notes"`
		} `json:"slides"`
	}
	found, err := decodeObject(reply, &raw)
	if !found || err != nil {
		return Presentation{}, parseFailure(ToolPresentation, "presentation", err)
	}
	deck := Presentation{Title: string(raw.Title), Slides: make([]Slide, 0, len(raw.Slides))}
	for _, item := range raw.Slides {
		if item.Title == "" && len(item.Content) == 0 {
			continue
		}
		content := []string(item.Content)
		if len(content) > MaxSlideBullets {
			content = content[:MaxSlideBullets]
		}
		if content == nil {
			content = []string{}
		}
		deck.Slides = append(deck.Slides, Slide{
			ID:      len(deck.Slides) + 1,
			Title:   string(item.Title),
			Content: content,
			Notes:   string(item.Notes),
		})
	}
	if len(deck.Slides) == 0 {
		return Presentation{}, invalidFormat(ToolPresentation, "presentation")
	}
	return deck, nil
}
