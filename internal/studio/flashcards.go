package studio

import (
	"context"
	"fmt"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
)

// MaxFlashCards caps the cards kept from a reply.
const MaxFlashCards = 5

// FlashCard is one question and answer pair.
type FlashCard struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

const flashcardPrompt = `Generate 5 study flash cards for the subject: "%s".

For each flash card:
1. Create a clear, concise question that tests key knowledge about the subject
2. Provide a comprehensive but concise answer

Format your response as a JSON array with exactly 5 objects, each with 'question' and 'answer' properties.
Example format:
[
  {
    "question": "What is the capital of France?",
    "answer": "Paris"
  },
  {
    "question": "Second question here?",
    "answer": "Second answer here"
  }
]

Make the questions challenging but appropriate for a student studying this subject.
Ensure answers are factually correct and provide enough detail to be educational.`

// FlashcardPrompt builds the flash card prompt.
func FlashcardPrompt(subject string) string {
	return fmt.Sprintf(flashcardPrompt, subject)
}

// Flashcards generates up to MaxFlashCards cards for subject.
func (s *Studio) Flashcards(ctx context.Context, subject string) ([]FlashCard, error) {
	subject, err := required(ToolFlashcards, "subject", subject)
	if err != nil {
		return nil, err
	}
	reply, logger, err := s.ask(ctx, ToolFlashcards, FlashcardPrompt(subject))
	if err != nil {
		return nil, err
	}
	cards, err := ParseFlashcards(reply)
	if err != nil {
		logging.WarnWithContext(logger, "flash card reply rejected", "studio_parse_failed", logging.RejectedReply(err, reply)...)
		return nil, err
	}
	logger.Info("flash cards generated", logging.String("subject", subject), logging.Int("count", len(cards)))
	return cards, nil
}

// ParseFlashcards extracts and normalizes cards from a model reply.
func ParseFlashcards(reply string) ([]FlashCard, error) {
	var raw []struct {
		Question flexString `json:"question"`
		Answer   flexString `json:"answer"`
	}
	found, err := decodeArray(reply, &raw)
	if !found || err != nil {
		return nil, parseFailure(ToolFlashcards, "flash cards", err)
	}
	if len(raw) == 0 {
		return nil, invalidFormat(ToolFlashcards, "flash cards")
	}
	if len(raw) > MaxFlashCards {
		raw = raw[:MaxFlashCards]
	}
	cards := make([]FlashCard, 0, len(raw))
	for i, item := range raw {
		card := FlashCard{ID: i + 1, Question: string(item.Question), Answer: string(item.Answer)}
		if card.Question == "" {
			card.Question = fmt.Sprintf("Question %d", i+1)
		}
		if card.Answer == "" {
			card.Answer = "No answer provided"
		}
		cards = append(cards, card)
	}
	return cards, nil
}
