package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/fileutil"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/studio"
)

func newToolCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newFlashcardsCommand(ctx),
		newBooksCommand(ctx),
		newPlaylistCommand(ctx),
		newSongsCommand(ctx),
		newConvertCommand(ctx),
		newEssayCommand(ctx),
		newFeedbackCommand(ctx),
		newPresentationCommand(ctx),
		newStoryCommand(ctx),
	}
}

func newFlashcardsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "flashcards <subject>",
		Short: "Generate study flash cards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.studio()
			if err != nil {
				return err
			}
			cards, err := s.Flashcards(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, cards)
			}
			rows := make([][]string, 0, len(cards))
			for _, card := range cards {
				rows = append(rows, []string{strconv.Itoa(card.ID), card.Question, card.Answer})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "Question", "Answer"}, rows, []columnAlignment{alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output cards as JSON")
	return cmd
}

func newBooksCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var level string

	cmd := &cobra.Command{
		Use:   "books <subject>",
		Short: "Recommend books for a subject",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.studio()
			if err != nil {
				return err
			}
			books, err := s.Books(cmd.Context(), strings.Join(args, " "), level)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, books)
			}
			rows := make([][]string, 0, len(books))
			for _, book := range books {
				rows = append(rows, []string{
					book.Title,
					book.Author,
					book.Year,
					book.Difficulty,
					strconv.FormatFloat(book.Rating, 'f', 1, 64),
				})
			}
			headers := []string{"Title", "Author", "Year", "Level", "Rating"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output books as JSON")
	cmd.Flags().StringVar(&level, "level", studio.LevelAll, "Reader level: all, beginner, intermediate, advanced")
	return cmd
}

func newPlaylistCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var kind string

	cmd := &cobra.Command{
		Use:   "playlist <value>",
		Short: "Generate a playlist for a genre, mood, or activity",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.studio()
			if err != nil {
				return err
			}
			playlist, err := s.Playlist(cmd.Context(), studio.PlaylistKind(kind), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, playlist)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styled(playlist.Name, ansiBold, shouldColorize(out)))
			fmt.Fprintln(out, renderSongs(playlist.Songs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the playlist as JSON")
	cmd.Flags().StringVar(&kind, "kind", string(studio.PlaylistGenre), "Playlist kind: genre, mood, activity")
	return cmd
}

func newSongsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var artist string

	cmd := &cobra.Command{
		Use:   "songs <song>",
		Short: "Recommend songs similar to a song",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.studio()
			if err != nil {
				return err
			}
			recs, err := s.SimilarSongs(cmd.Context(), strings.Join(args, " "), artist)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, recs)
			}
			out := cmd.OutOrStdout()
			label := recs.InputSong.Title
			if recs.InputSong.Artist != "" {
				label += " by " + recs.InputSong.Artist
			}
			fmt.Fprintln(out, styled("Similar to "+label, ansiBold, shouldColorize(out)))
			fmt.Fprintln(out, renderSongs(recs.SimilarSongs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output recommendations as JSON")
	cmd.Flags().StringVar(&artist, "artist", "", "Artist of the song")
	return cmd
}

func renderSongs(songs []studio.Song) string {
	rows := make([][]string, 0, len(songs))
	for i, song := range songs {
		rows = append(rows, []string{strconv.Itoa(i + 1), song.Title, song.Artist, song.Album, song.Duration})
	}
	return renderTable([]string{"#", "Title", "Artist", "Album", "Length"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight})
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert code between programming languages",
		Long:  "Convert code read from a file or stdin. Languages: " + strings.Join(studio.Languages, ", "),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			s, err := ctx.studio()
			if err != nil {
				return err
			}
			conv, err := s.Convert(cmd.Context(), from, to, code)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, conv)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.TrimRight(conv.ConvertedCode, "\n"))
			if conv.Explanation != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, styled(conv.Explanation, ansiDim, shouldColorize(out)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the conversion as JSON")
	cmd.Flags().StringVar(&from, "from", "javascript", "Source language")
	cmd.Flags().StringVar(&to, "to", "python", "Target language")
	return cmd
}

func newEssayCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var essayType string
	var words int
	var save string

	cmd := &cobra.Command{
		Use:   "essay <topic>",
		Short: "Write an essay on a topic",
		Long:  "Write an essay. Types: " + strings.Join(studio.EssayTypes, ", "),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.studio()
			if err != nil {
				return err
			}
			essay, err := s.Essay(cmd.Context(), strings.Join(args, " "), essayType, words)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("save") {
				if err := saveMarkdown(cmd, "essay", save, essay.Filename(), essay.Text); err != nil {
					return err
				}
			}
			if asJSON {
				return writeJSON(cmd, essay)
			}
			fmt.Fprintln(cmd.OutOrStdout(), essay.Text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the essay and its sections as JSON")
	cmd.Flags().StringVar(&essayType, "type", "academic", "Essay type")
	cmd.Flags().IntVar(&words, "words", 1000, "Target word count")
	cmd.Flags().StringVar(&save, "save", "", "Also write the essay to this file or directory")
	cmd.Flags().Lookup("save").NoOptDefVal = "."
	return cmd
}

func newFeedbackCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "feedback <subject> [file]",
		Short: "Get critical feedback on your explanation of a subject",
		Long:  "Get feedback on an explanation read from a file or stdin.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			explanation, err := readInput(cmd, args[1:])
			if err != nil {
				return err
			}
			s, err := ctx.studio()
			if err != nil {
				return err
			}
			fb, err := s.Feedback(cmd.Context(), args[0], explanation)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, fb)
			}
			fmt.Fprintln(cmd.OutOrStdout(), fb.Feedback)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output feedback as JSON")
	return cmd
}

func newPresentationCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "presentation <subject>",
		Short: "Draft presentation slides with speaker notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.studio()
			if err != nil {
				return err
			}
			deck, err := s.Presentation(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, deck)
			}
			out := cmd.OutOrStdout()
			color := shouldColorize(out)
			fmt.Fprintln(out, styled(deck.Title, ansiBold, color))
			for _, slide := range deck.Slides {
				fmt.Fprintln(out)
				fmt.Fprintln(out, styled(fmt.Sprintf("%d. %s", slide.ID, slide.Title), ansiCyan, color))
				for _, point := range slide.Content {
					fmt.Fprintf(out, "  - %s\n", point)
				}
				if slide.Notes != "" {
					fmt.Fprintln(out, styled("  Notes: "+slide.Notes, ansiDim, color))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the presentation as JSON")
	return cmd
}

func newStoryCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var save string

	cmd := &cobra.Command{
		Use:   "story <idea>",
		Short: "Write a story or short book from an idea",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.studio()
			if err != nil {
				return err
			}
			story, err := s.Story(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("save") {
				if err := saveMarkdown(cmd, "story", save, story.Filename(), story.Text); err != nil {
					return err
				}
			}
			if asJSON {
				return writeJSON(cmd, story)
			}
			fmt.Fprintln(cmd.OutOrStdout(), story.Text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the story and its chapters as JSON")
	cmd.Flags().StringVar(&save, "save", "", "Also write the story to this file or directory")
	cmd.Flags().Lookup("save").NoOptDefVal = "."
	return cmd
}

// saveMarkdown writes text to path, or to name inside path when path is a
// directory, and reports the destination on stderr.
func saveMarkdown(cmd *cobra.Command, what, path, name, text string) error {
	target := fileutil.ResolveTarget(path, name)
	if err := fileutil.WriteFile(target, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", what, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s to %s\n", what, target)
	return nil
}
