package studio_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/chat"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/chat/chattest"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/explain"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/studio"
)

func newStudio(reply string) (*studio.Studio, *chattest.Provider) {
	fake := &chattest.Provider{Reply: reply}
	return studio.New(chat.NewService(chat.NewRegistry(fake), nil), nil), fake
}

func TestFlashcardsNormalizesCards(t *testing.T) {
	reply := `Here you go!
[
  {"question": "What is ATP?", "answer": "The cell's energy currency"},
  {"question": "", "answer": "Mitochondria"},
  {"question": "What is osmosis?"},
  {"question": "Q4", "answer": "A4"},
  {"question": "Q5", "answer": "A5"},
  {"question": "Q6", "answer": "A6"}
]
Good luck studying.`
	s, fake := newStudio(reply)

	cards, err := s.Flashcards(context.Background(), "cell biology")
	if err != nil {
		t.Fatalf("Flashcards returned error: %v", err)
	}
	if len(cards) != studio.MaxFlashCards {
		t.Fatalf("expected %d cards, got %d", studio.MaxFlashCards, len(cards))
	}
	if cards[1].Question != "Question 2" || cards[1].ID != 2 {
		t.Fatalf("expected default question, got %+v", cards[1])
	}
	if cards[2].Answer != "No answer provided" {
		t.Fatalf("expected default answer, got %+v", cards[2])
	}
	if !strings.Contains(fake.LastPrompt(), `"cell biology"`) {
		t.Fatalf("prompt missing subject: %q", fake.LastPrompt())
	}
}

func TestFlashcardsParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{name: "no array", reply: "I cannot help with that.", want: "failed to parse flash cards from response"},
		{name: "broken json", reply: `[{"question": }]`, want: "failed to parse flash cards from response"},
		{name: "empty array", reply: "[]", want: "invalid flash cards format received"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := studio.ParseFlashcards(tt.reply)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q, got %v", tt.want, err)
			}
			if !errors.Is(err, services.ErrParse) {
				t.Fatalf("expected parse marker, got %v", err)
			}
		})
	}
}

func TestFlashcardsRequiresSubject(t *testing.T) {
	s, fake := newStudio("[]")
	if _, err := s.Flashcards(context.Background(), " "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(fake.Calls()) != 0 {
		t.Fatal("provider must not be called")
	}
}

func TestBooksClampsAndCaps(t *testing.T) {
	reply := `[
  {"title": "A", "author": "X", "year": 1999, "rating": 7, "difficulty": "beginner", "tags": ["physics", "intro"]},
  {"title": "B", "author": "Y", "year": "2001", "rating": "4.5", "tags": "waves, optics"},
  {"title": "", "author": "skip"},
  {"title": "C", "rating": -1},
  {"title": "D"}, {"title": "E"}, {"title": "F"}, {"title": "G"}, {"title": "H"}
]`
	s, fake := newStudio(reply)
	books, err := s.Books(context.Background(), "quantum mechanics", "Beginner")
	if err != nil {
		t.Fatalf("Books returned error: %v", err)
	}
	if len(books) != studio.MaxBooks {
		t.Fatalf("expected %d books, got %d", studio.MaxBooks, len(books))
	}
	if books[0].Rating != 5 || books[0].Year != "1999" || books[0].Difficulty != "Beginner" {
		t.Fatalf("unexpected first book %+v", books[0])
	}
	if books[1].Rating != 4.5 || len(books[1].Tags) != 2 || books[1].Tags[1] != "optics" {
		t.Fatalf("unexpected second book %+v", books[1])
	}
	if books[2].Title != "C" || books[2].Rating != 0 {
		t.Fatalf("expected untitled entry skipped and rating clamped, got %+v", books[2])
	}
	if !strings.Contains(fake.LastPrompt(), "for beginner level readers") {
		t.Fatalf("prompt missing level: %q", fake.LastPrompt())
	}
}

func TestBookPromptOmitsAllLevel(t *testing.T) {
	if strings.Contains(studio.BookPrompt("history", studio.LevelAll), "level readers") {
		t.Fatal("level 'all' should not qualify the prompt")
	}
}

func TestBooksRejectsUnknownLevel(t *testing.T) {
	s, _ := newStudio("[]")
	if _, err := s.Books(context.Background(), "math", "expert"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPlaylistNamesAndDurations(t *testing.T) {
	reply := `[{"title": "So What", "artist": "Miles Davis", "duration": "9.4", "genre": ["jazz"]},
{"title": "Blue in Green", "artist": "Miles Davis", "duration": "5:37"}]`
	tests := []struct {
		kind studio.PlaylistKind
		want string
		lead string
	}{
		{kind: studio.PlaylistGenre, want: "Jazz Playlist", lead: `for the genre: "Jazz"`},
		{kind: studio.PlaylistMood, want: "Jazz Mood Playlist", lead: `is feeling: "Jazz"`},
		{kind: studio.PlaylistActivity, want: "Jazz Activity Playlist", lead: `who is: "Jazz"`},
		{kind: "", want: "Jazz Playlist", lead: "genre"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			s, fake := newStudio(reply)
			pl, err := s.Playlist(context.Background(), tt.kind, "Jazz")
			if err != nil {
				t.Fatalf("Playlist returned error: %v", err)
			}
			if pl.Name != tt.want {
				t.Fatalf("unexpected name %q", pl.Name)
			}
			if len(pl.Songs) != 2 || pl.Songs[0].Duration != "9:24" || pl.Songs[1].Duration != "5:37" {
				t.Fatalf("unexpected songs %+v", pl.Songs)
			}
			if !strings.Contains(fake.LastPrompt(), tt.lead) {
				t.Fatalf("prompt missing %q", tt.lead)
			}
		})
	}
}

func TestPlaylistRejectsUnknownKind(t *testing.T) {
	s, _ := newStudio("[]")
	if _, err := s.Playlist(context.Background(), "decade", "80s"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[string]string{
		"":         "",
		"3:45":     "3:45",
		"4":        "4:00",
		"3.5":      "3:30",
		"2.999":    "3:00",
		"about 4m": "about 4m",
		"-2":       "-2",
	}
	for in, want := range tests {
		if got := studio.FormatDuration(in); got != want {
			t.Fatalf("FormatDuration(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSimilarSongs(t *testing.T) {
	reply := "```json\n" + `{
  "inputSong": {"title": "Clocks", "artist": "Coldplay", "year": 2002},
  "similarSongs": [
    {"title": "Speed of Sound", "artist": "Coldplay", "similarity": "Same piano drive"},
    {"title": "", "artist": "nobody"}
  ]
}` + "\n```"
	s, fake := newStudio(reply)
	recs, err := s.SimilarSongs(context.Background(), "Clocks", " Coldplay ")
	if err != nil {
		t.Fatalf("SimilarSongs returned error: %v", err)
	}
	if recs.InputSong.Title != "Clocks" || recs.InputSong.Year != "2002" {
		t.Fatalf("unexpected input song %+v", recs.InputSong)
	}
	if len(recs.SimilarSongs) != 1 || recs.SimilarSongs[0].Similarity != "Same piano drive" {
		t.Fatalf("unexpected similar songs %+v", recs.SimilarSongs)
	}
	if !strings.Contains(fake.LastPrompt(), `"Clocks" by Coldplay`) {
		t.Fatalf("prompt missing artist: %q", fake.LastPrompt())
	}
}

func TestSimilarSongsRequiresBothKeys(t *testing.T) {
	for _, reply := range []string{
		`{"inputSong": {"title": "x"}}`,
		`{"similarSongs": []}`,
	} {
		_, err := studio.ParseSongRecommendations(reply)
		if err == nil || !strings.Contains(err.Error(), "invalid song recommendations format received") {
			t.Fatalf("expected format error for %s, got %v", reply, err)
		}
	}
	if _, err := studio.ParseSongRecommendations("no json here"); err == nil || !strings.Contains(err.Error(), "failed to parse song recommendations from response") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestConvert(t *testing.T) {
	s, fake := newStudio(`{"convertedCode": "print('hi')", "explanation": "console.log becomes print"}`)
	conv, err := s.Convert(context.Background(), "", "", "console.log('hi')")
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if conv.ConvertedCode != "print('hi')" || conv.Explanation == "" {
		t.Fatalf("unexpected conversion %+v", conv)
	}
	if conv.SourceLanguage != "javascript" || conv.TargetLanguage != "python" {
		t.Fatalf("unexpected default languages %+v", conv)
	}
	if !strings.Contains(fake.LastPrompt(), "Convert the following javascript code to python") {
		t.Fatalf("unexpected prompt %q", fake.LastPrompt())
	}
}

func TestConvertFallsBackToRawReply(t *testing.T) {
	reply := "def main():\n    print('hi')"
	conv, structured := studio.ParseConversion(reply)
	if structured || conv.ConvertedCode != reply || conv.Explanation != "" {
		t.Fatalf("unexpected fallback %+v structured=%v", conv, structured)
	}
}

func TestConvertRequiresCode(t *testing.T) {
	s, _ := newStudio("")
	if _, err := s.Convert(context.Background(), "go", "rust", "\n\t"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestEssaySegmentsText(t *testing.T) {
	reply := "Title Page\n\n# Introduction\nThesis.\n\n# Conclusion\nDone."
	s, fake := newStudio(reply)
	essay, err := s.Essay(context.Background(), "Climate Change & Economies", "", 0)
	if err != nil {
		t.Fatalf("Essay returned error: %v", err)
	}
	if essay.Type != "academic" || essay.WordCount != 1000 {
		t.Fatalf("unexpected defaults %+v", essay)
	}
	if len(essay.Blocks) != 3 || essay.Blocks[0].Kind != explain.BlockParagraph || essay.Blocks[2].Header != "Conclusion" {
		t.Fatalf("unexpected blocks %+v", essay.Blocks)
	}
	if essay.Filename() != "climate-change-economies.md" {
		t.Fatalf("unexpected filename %q", essay.Filename())
	}
	if !strings.Contains(fake.LastPrompt(), "complete 1000-word academic essay") {
		t.Fatalf("unexpected prompt %q", fake.LastPrompt())
	}
}

func TestEssayValidation(t *testing.T) {
	s, _ := newStudio("x")
	if _, err := s.Essay(context.Background(), "topic", "poem", 500); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected essay type error, got %v", err)
	}
	if _, err := s.Essay(context.Background(), "topic", "narrative", 99999); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected word count error, got %v", err)
	}
}

func TestFeedback(t *testing.T) {
	s, fake := newStudio("Solid start. 7/10.")
	fb, err := s.Feedback(context.Background(), "entropy", "Entropy is disorder.")
	if err != nil {
		t.Fatalf("Feedback returned error: %v", err)
	}
	if fb.Feedback != "Solid start. 7/10." || fb.Subject != "entropy" {
		t.Fatalf("unexpected feedback %+v", fb)
	}
	if !strings.Contains(fake.LastPrompt(), `"Entropy is disorder."`) {
		t.Fatalf("prompt missing explanation")
	}

	empty, _ := newStudio("")
	fb, err = empty.Feedback(context.Background(), "entropy", "x")
	if err != nil || fb.Feedback != studio.FeedbackFallback {
		t.Fatalf("expected fallback, got %+v %v", fb, err)
	}
	if _, err := empty.Feedback(context.Background(), "entropy", ""); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestToolErrorsPropagate(t *testing.T) {
	fake := &chattest.Provider{Err: services.Wrap(services.ErrUpstream, "llm", "complete", "down", nil)}
	s := studio.New(chat.NewService(chat.NewRegistry(fake), nil), nil)
	if _, err := s.Flashcards(context.Background(), "x"); !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestPresentationRenumbersAndCapsBullets(t *testing.T) {
	reply := "```json\n" + `{
  "title": "Photosynthesis",
  "slides": [
    {"id": 1, "title": "Photosynthesis", "content": ["A plant story"], "notes": "Welcome"},
    {"id": "x", "title": "", "content": []},
    {"id": 7, "title": "Light Reactions", "content": ["a", "b", "c", "d", "e", "f"]},
    {"title": "Summary", "content": "sugar, oxygen", "notes": 3}
  ]
}` + "\n```"
	s, fake := newStudio(reply)
	deck, err := s.Presentation(context.Background(), "photosynthesis")
	if err != nil {
		t.Fatalf("Presentation returned error: %v", err)
	}
	if deck.Title != "Photosynthesis" || len(deck.Slides) != 3 {
		t.Fatalf("unexpected deck %+v", deck)
	}
	for i, slide := range deck.Slides {
		if slide.ID != i+1 {
			t.Fatalf("slide %d has id %d", i, slide.ID)
		}
	}
	if len(deck.Slides[1].Content) != studio.MaxSlideBullets {
		t.Fatalf("expected bullets capped at %d, got %v", studio.MaxSlideBullets, deck.Slides[1].Content)
	}
	if got := deck.Slides[2]; len(got.Content) != 2 || got.Content[1] != "oxygen" || got.Notes != "3" {
		t.Fatalf("unexpected summary slide %+v", got)
	}
	if !strings.Contains(fake.LastPrompt(), "Create a presentation about: photosynthesis") {
		t.Fatalf("prompt missing subject: %q", fake.LastPrompt())
	}
}

func TestPresentationDefaultsTitleToSubject(t *testing.T) {
	s, _ := newStudio(`{"slides": [{"title": "Intro", "content": ["hello"]}]}`)
	deck, err := s.Presentation(context.Background(), "volcanoes")
	if err != nil {
		t.Fatalf("Presentation returned error: %v", err)
	}
	if deck.Title != "volcanoes" {
		t.Fatalf("expected subject as title, got %q", deck.Title)
	}
}

func TestPresentationErrors(t *testing.T) {
	s, fake := newStudio("{}")
	if _, err := s.Presentation(context.Background(), ""); !errors.Is(err, services.ErrValidation) || services.Message(err) != "subject is required" {
		t.Fatalf("expected subject validation error, got %v", err)
	}
	if len(fake.Calls()) != 0 {
		t.Fatal("provider must not be called")
	}

	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{name: "no object", reply: "Sorry, no slides today.", want: "failed to parse presentation from response"},
		{name: "broken json", reply: `{"slides": [}`, want: "failed to parse presentation from response"},
		{name: "no slides", reply: `{"title": "Empty", "slides": []}`, want: "invalid presentation format received"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := studio.ParsePresentation(tt.reply)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q, got %v", tt.want, err)
			}
			if !errors.Is(err, services.ErrParse) {
				t.Fatalf("expected parse marker, got %v", err)
			}
		})
	}
}

func TestStorySplitsChapters(t *testing.T) {
	reply := "# The Lost Comet\n\n## Chapter 1\nMira looked up.\n\n## Chapter 2\nThe comet answered."
	s, fake := newStudio(reply)
	story, err := s.Story(context.Background(), "A girl befriends a comet")
	if err != nil {
		t.Fatalf("Story returned error: %v", err)
	}
	if story.Text != reply || len(story.Blocks) != 3 {
		t.Fatalf("unexpected story %+v", story)
	}
	if story.Blocks[1].Header != "Chapter 1" || story.Blocks[2].Body != "The comet answered." {
		t.Fatalf("unexpected blocks %+v", story.Blocks)
	}
	if story.Filename() != "a-girl-befriends-a-comet.md" {
		t.Fatalf("unexpected filename %q", story.Filename())
	}
	if !strings.Contains(fake.LastPrompt(), `"A girl befriends a comet"`) {
		t.Fatalf("prompt missing idea: %q", fake.LastPrompt())
	}
	if _, err := s.Story(context.Background(), "  "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
