package studio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/explain"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/textutil"
)

// EssayTypes lists the accepted essay styles.
var EssayTypes = []string{"academic", "argumentative", "expository", "narrative", "descriptive", "compare-contrast"}

const (
	defaultEssayType  = "academic"
	defaultWordCount  = 1000
	maxEssayWordCount = 5000
)

// Essay is a generated essay and its structure.
type Essay struct {
	Topic     string          `json:"topic"`
	Type      string          `json:"essayType"`
	WordCount int             `json:"wordCount"`
	Text      string          `json:"text"`
	Blocks    []explain.Block `json:"blocks"`
}

// Filename suggests a markdown file name for saving the essay.
func (e Essay) Filename() string {
	return textutil.Slug(e.Topic, "essay", 60) + ".md"
}

const essayPrompt = `Generate a complete %d-word %s essay on the topic: "%s".

The essay should include:
1. A title page with the title, author (Student), date, and course information
2. An introduction with a clear thesis statement
3. Well-structured body paragraphs with topic sentences, evidence, and analysis
4. A conclusion that summarizes the main points and restates the thesis
5. Proper citations and references (in APA format)

Make the essay well-researched, logical, and academically sound.
Include at least 3-5 main sections in the body.
Format the essay as if it were a complete academic paper ready for submission.`

// EssayPrompt builds the essay prompt.
func EssayPrompt(topic, essayType string, wordCount int) string {
	return fmt.Sprintf(essayPrompt, wordCount, essayType, topic)
}

func normalizeEssayType(value string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return defaultEssayType, nil
	}
	for _, t := range EssayTypes {
		if t == value {
			return value, nil
		}
	}
	return "", services.Wrap(services.ErrValidation, "studio", ToolEssay, fmt.Sprintf("unsupported essay type %q", value), nil)
}

// Essay writes an essay. A zero word count means 1000.
func (s *Studio) Essay(ctx context.Context, topic, essayType string, wordCount int) (Essay, error) {
	topic, err := required(ToolEssay, "topic", topic)
	if err != nil {
		return Essay{}, err
	}
	if essayType, err = normalizeEssayType(essayType); err != nil {
		return Essay{}, err
	}
	if wordCount == 0 {
		wordCount = defaultWordCount
	}
	if wordCount < 0 || wordCount > maxEssayWordCount {
		return Essay{}, services.Wrap(services.ErrValidation, "studio", ToolEssay, fmt.Sprintf("word count must be between 1 and %d", maxEssayWordCount), nil)
	}

	start := time.Now()
	reply, logger, err := s.ask(ctx, ToolEssay, EssayPrompt(topic, essayType, wordCount))
	if err != nil {
		return Essay{}, err
	}
	essay := Essay{
		Topic:     topic,
		Type:      essayType,
		WordCount: wordCount,
		Text:      reply,
		Blocks:    explain.SegmentIntoBlocks(reply),
	}
	logger.Info("essay generated",
		logging.String("topic", topic),
		logging.Int("words", len(strings.Fields(reply))),
		logging.Int("blocks", len(essay.Blocks)),
		logging.Duration("duration", time.Since(start)),
	)
	return essay, nil
}
