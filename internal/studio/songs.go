package studio

import (
	"context"
	"fmt"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
)

// SongRecommendations pairs the identified input song with similar tracks.
type SongRecommendations struct {
	InputSong    Song   `json:"inputSong"`
	SimilarSongs []Song `json:"similarSongs"`
}

const songPrompt = `Find songs similar to "%s"%s.

First, identify the exact song the user is referring to and provide its details.
Then, recommend 8-10 similar songs that fans of this song might enjoy.

For the input song and each recommendation, include:
1. Title
2. Artist
3. Album (if relevant)
4. Year (if relevant)
5. Similarity reason (brief explanation of why this song is similar)
6. Genre tags (2-3 tags)

Format your response as a JSON object with the following structure:
{
  "inputSong": {
    "title": "Original Song Title",
    "artist": "Original Artist Name",
    "album": "Album Name",
    "year": "Release Year",
    "genre": ["genre1", "genre2"]
  },
  "similarSongs": [
    {
      "title": "Similar Song Title",
      "artist": "Artist Name",
      "album": "Album Name",
      "year": "Release Year",
      "similarity": "Brief explanation of similarity",
      "genre": ["genre1", "genre2"]
    },
    ...
  ]
}

Focus on finding songs that are similar in terms of:
- Musical style and sound
- Mood and atmosphere
- Lyrical themes (if applicable)
- Era or time period

Include a mix of well-known and lesser-known tracks that a fan of the original song would likely enjoy.`

// SongPrompt builds the similar-songs prompt. Artist is optional.
func SongPrompt(song, artist string) string {
	by := ""
	if artist != "" {
		by = " by " + artist
	}
	return fmt.Sprintf(songPrompt, song, by)
}

// SimilarSongs identifies song and recommends similar tracks.
func (s *Studio) SimilarSongs(ctx context.Context, song, artist string) (SongRecommendations, error) {
	song, err := required(ToolSongs, "song", song)
	if err != nil {
		return SongRecommendations{}, err
	}
	reply, logger, err := s.ask(ctx, ToolSongs, SongPrompt(song, trimmed(artist)))
	if err != nil {
		return SongRecommendations{}, err
	}
	recs, err := ParseSongRecommendations(reply)
	if err != nil {
		logging.WarnWithContext(logger, "song reply rejected", "studio_parse_failed", logging.RejectedReply(err, reply)...)
		return SongRecommendations{}, err
	}
	logger.Info("similar songs found", logging.String("song", song), logging.Int("count", len(recs.SimilarSongs)))
	return recs, nil
}

// ParseSongRecommendations extracts the input song and its matches from a
// model reply. Both keys must be present.
func ParseSongRecommendations(reply string) (SongRecommendations, error) {
	var raw struct {
		InputSong    *rawSong   `json:"inputSong"`
		SimilarSongs *[]rawSong `json:"similarSongs"`
	}
	found, err := decodeObject(reply, &raw)
	if !found || err != nil {
		return SongRecommendations{}, parseFailure(ToolSongs, "song recommendations", err)
	}
	if raw.InputSong == nil || raw.SimilarSongs == nil {
		return SongRecommendations{}, invalidFormat(ToolSongs, "song recommendations")
	}
	recs := SongRecommendations{
		InputSong:    raw.InputSong.song(),
		SimilarSongs: make([]Song, 0, len(*raw.SimilarSongs)),
	}
	for _, item := range *raw.SimilarSongs {
		if item.Title == "" {
			continue
		}
		recs.SimilarSongs = append(recs.SimilarSongs, item.song())
	}
	return recs, nil
}
