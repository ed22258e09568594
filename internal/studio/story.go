package studio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/explain"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/textutil"
)

// Story is a markdown story or short book written from an idea.
type Story struct {
	Idea   string          `json:"idea"`
	Text   string          `json:"text"`
	Blocks []explain.Block `json:"blocks"`
}

// Filename suggests a markdown file name for saving the story.
func (s Story) Filename() string {
	return textutil.Slug(s.Idea, "story", 60) + ".md"
}

const storyPrompt = `Write a creative story or short book based on this topic or idea: "%s".

Format it in Markdown:
- Start with a "# " title
- Divide the work into chapters with "## " headings
- Write vivid, engaging prose suitable for young readers`

// StoryPrompt builds the book writer prompt.
func StoryPrompt(idea string) string {
	return fmt.Sprintf(storyPrompt, idea)
}

// Story writes a story from idea and splits it into chapters.
func (s *Studio) Story(ctx context.Context, idea string) (Story, error) {
	idea, err := required(ToolStory, "idea", idea)
	if err != nil {
		return Story{}, err
	}
	start := time.Now()
	reply, logger, err := s.ask(ctx, ToolStory, StoryPrompt(idea))
	if err != nil {
		return Story{}, err
	}
	story := Story{Idea: idea, Text: reply, Blocks: explain.SegmentIntoBlocks(reply)}
	logger.Info("story written",
		logging.String("idea", idea),
		logging.Int("words", len(strings.Fields(reply))),
		logging.Int("blocks", len(story.Blocks)),
		logging.Duration("duration", time.Since(start)),
	)
	return story, nil
}
