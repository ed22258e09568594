package studio

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services"
)

// PlaylistKind selects how the playlist value is read.
type PlaylistKind string

const (
	PlaylistGenre    PlaylistKind = "genre"
	PlaylistMood     PlaylistKind = "mood"
	PlaylistActivity PlaylistKind = "activity"
)

// ParsePlaylistKind validates a kind name. Empty means genre.
func ParsePlaylistKind(value string) (PlaylistKind, error) {
	switch kind := PlaylistKind(strings.ToLower(strings.TrimSpace(value))); kind {
	case "":
		return PlaylistGenre, nil
	case PlaylistGenre, PlaylistMood, PlaylistActivity:
		return kind, nil
	}
	return "", services.Wrap(services.ErrValidation, "studio", ToolPlaylist, fmt.Sprintf("unsupported playlist kind %q", value), nil)
}

// Song is a track in a playlist or a recommendation.
type Song struct {
	Title      string   `json:"title"`
	Artist     string   `json:"artist"`
	Album      string   `json:"album,omitempty"`
	Year       string   `json:"year,omitempty"`
	Duration   string   `json:"duration,omitempty"`
	Similarity string   `json:"similarity,omitempty"`
	Genre      []string `json:"genre,omitempty"`
	Mood       []string `json:"mood,omitempty"`
}

// Playlist is a named list of songs.
type Playlist struct {
	Name  string `json:"name"`
	Songs []Song `json:"songs"`
}

type rawSong struct {
	Title      flexString  `json:"title"`
	Artist     flexString  `json:"artist"`
	Album      flexString  `json:"album"`
	Year       flexString  `json:"year"`
	Duration   flexString  `json:"duration"`
	Similarity flexString  `json:"similarity"`
	Genre      flexStrings `json:"genre"`
	Mood       flexStrings `json:"mood"`
}

func (r rawSong) song() Song {
	return Song{
		Title:      string(r.Title),
		Artist:     string(r.Artist),
		Album:      string(r.Album),
		Year:       string(r.Year),
		Duration:   FormatDuration(string(r.Duration)),
		Similarity: string(r.Similarity),
		Genre:      r.Genre,
		Mood:       r.Mood,
	}
}

const playlistPromptBody = `

Return a list of 10-15 songs that would be perfect for this playlist. For each song, include:
1. Title
2. Artist
3. Album (if relevant)
4. Year (if relevant)
5. Duration (if relevant)
6. Genre tags (2-3 tags)
7. Mood tags (2-3 tags)

Format your response as a JSON array with the following structure:
[
  {
    "title": "Song Title",
    "artist": "Artist Name",
    "album": "Album Name",
    "year": "Release Year",
    "duration": "Duration in minutes:seconds",
    "genre": ["genre1", "genre2"],
    "mood": ["mood1", "mood2"]
  },
  ...
]

Focus on creating a cohesive playlist with:
- A good mix of popular and lesser-known tracks
- Songs that flow well together
- A variety of artists (unless requesting a single artist playlist)
- Songs that truly match the requested %s

Include both classic and contemporary songs when appropriate.`

// PlaylistPrompt builds the playlist prompt and the playlist's display name.
func PlaylistPrompt(kind PlaylistKind, value string) (prompt, name string) {
	var lead string
	switch kind {
	case PlaylistMood:
		lead = fmt.Sprintf("Create a music playlist for when someone is feeling: \"%s\".", value)
		name = value + " Mood Playlist"
	case PlaylistActivity:
		lead = fmt.Sprintf("Create a music playlist for someone who is: \"%s\".", value)
		name = value + " Activity Playlist"
	default:
		kind = PlaylistGenre
		lead = fmt.Sprintf("Create a music playlist for the genre: \"%s\".", value)
		name = value + " Playlist"
	}
	return lead + fmt.Sprintf(playlistPromptBody, kind), name
}

// Playlist generates a playlist for a genre, mood, or activity.
func (s *Studio) Playlist(ctx context.Context, kind PlaylistKind, value string) (Playlist, error) {
	value, err := required(ToolPlaylist, "value", value)
	if err != nil {
		return Playlist{}, err
	}
	if kind, err = ParsePlaylistKind(string(kind)); err != nil {
		return Playlist{}, err
	}
	prompt, name := PlaylistPrompt(kind, value)
	reply, logger, err := s.ask(ctx, ToolPlaylist, prompt)
	if err != nil {
		return Playlist{}, err
	}
	songs, err := ParsePlaylist(reply)
	if err != nil {
		logging.WarnWithContext(logger, "playlist reply rejected", "studio_parse_failed", logging.RejectedReply(err, reply)...)
		return Playlist{}, err
	}
	logger.Info("playlist generated", logging.String("name", name), logging.Int("songs", len(songs)))
	return Playlist{Name: name, Songs: songs}, nil
}

// ParsePlaylist extracts songs from a model reply.
func ParsePlaylist(reply string) ([]Song, error) {
	var raw []rawSong
	found, err := decodeArray(reply, &raw)
	if !found || err != nil {
		return nil, parseFailure(ToolPlaylist, "playlist", err)
	}
	songs := make([]Song, 0, len(raw))
	for _, item := range raw {
		if item.Title == "" {
			continue
		}
		songs = append(songs, item.song())
	}
	if len(songs) == 0 {
		return nil, invalidFormat(ToolPlaylist, "playlist")
	}
	return songs, nil
}

var clockDuration = regexp.MustCompile(`^\d+:\d+$`)

// FormatDuration renders a duration as m:ss. Values already in m:ss form are
// kept; a decimal number of minutes is converted; anything else is returned
// unchanged.
func FormatDuration(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || clockDuration.MatchString(value) {
		return value
	}
	minutes, err := strconv.ParseFloat(value, 64)
	if err != nil || minutes < 0 || math.IsInf(minutes, 0) || math.IsNaN(minutes) {
		return value
	}
	whole := math.Floor(minutes)
	seconds := math.Round((minutes - whole) * 60)
	if seconds >= 60 {
		whole++
		seconds -= 60
	}
	return fmt.Sprintf("%d:%02d", int(whole), int(seconds))
}
