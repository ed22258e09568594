package studio

import (
	"context"
	"fmt"
	"strings"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/textutil"
)

// MaxBooks caps the books kept from a reply.
const MaxBooks = 7

// Reader levels accepted by Books. LevelAll applies no filter.
const (
	LevelAll          = "all"
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Book is one recommendation.
type Book struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Year        string   `json:"year,omitempty"`
	Description string   `json:"description,omitempty"`
	Rating      float64  `json:"rating"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

const bookPrompt = `Find the best books about "%s"%s.

Return a list of 5-7 highly recommended books on this subject. For each book, include:
1. Title
2. Author
3. Publication year
4. A brief description (2-3 sentences)
5. Rating (1-5 stars)
6. Difficulty level (Beginner, Intermediate, Advanced)
7. Tags (2-4 relevant keywords)

Format your response as a JSON array with the following structure:
[
  {
    "title": "Book Title",
    "author": "Author Name",
    "year": "Publication Year",
    "description": "Brief description of the book",
    "rating": 4.5,
    "difficulty": "Intermediate",
    "tags": ["keyword1", "keyword2"]
  },
  ...
]

Focus on books that are:
- Highly regarded in their field
- Well-written and accessible
- Provide comprehensive coverage of the subject
- Include both classic texts and recent publications

Ensure the books represent diverse perspectives and approaches to the subject.`

// BookPrompt builds the book finder prompt.
func BookPrompt(subject, level string) string {
	qualifier := ""
	if level != "" && level != LevelAll {
		qualifier = fmt.Sprintf(" for %s level readers", level)
	}
	return fmt.Sprintf(bookPrompt, subject, qualifier)
}

func normalizeLevel(level string) (string, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "":
		return LevelAll, nil
	case LevelAll, LevelBeginner, LevelIntermediate, LevelAdvanced:
		return level, nil
	}
	return "", services.Wrap(services.ErrValidation, "studio", ToolBooks, fmt.Sprintf("unsupported level %q", level), nil)
}

// Books recommends books on subject for the reader level.
func (s *Studio) Books(ctx context.Context, subject, level string) ([]Book, error) {
	subject, err := required(ToolBooks, "subject", subject)
	if err != nil {
		return nil, err
	}
	if level, err = normalizeLevel(level); err != nil {
		return nil, err
	}
	reply, logger, err := s.ask(ctx, ToolBooks, BookPrompt(subject, level))
	if err != nil {
		return nil, err
	}
	books, err := ParseBooks(reply)
	if err != nil {
		logging.WarnWithContext(logger, "book reply rejected", "studio_parse_failed", logging.RejectedReply(err, reply)...)
		return nil, err
	}
	logger.Info("books recommended", logging.String("subject", subject), logging.String("level", level), logging.Int("count", len(books)))
	return books, nil
}

// ParseBooks extracts and normalizes book recommendations from a model reply.
func ParseBooks(reply string) ([]Book, error) {
	var raw []struct {
		Title       flexString  `json:"title"`
		Author      flexString  `json:"author"`
		Year        flexString  `json:"year"`
		Description flexString  `json:"description"`
		Rating      flexFloat   `json:"rating"`
		Difficulty  flexString  `json:"difficulty"`
		Tags        flexStrings `json:"tags"`
	}
	found, err := decodeArray(reply, &raw)
	if !found || err != nil {
		return nil, parseFailure(ToolBooks, "book recommendations", err)
	}
	books := make([]Book, 0, len(raw))
	for _, item := range raw {
		if item.Title == "" {
			continue
		}
		books = append(books, Book{
			Title:       string(item.Title),
			Author:      string(item.Author),
			Year:        string(item.Year),
			Description: string(item.Description),
			Rating:      clampRating(float64(item.Rating)),
			Difficulty:  textutil.Title(string(item.Difficulty)),
			Tags:        item.Tags,
		})
		if len(books) == MaxBooks {
			break
		}
	}
	if len(books) == 0 {
		return nil, invalidFormat(ToolBooks, "book recommendations")
	}
	return books, nil
}

func clampRating(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 5:
		return 5
	}
	return v
}
