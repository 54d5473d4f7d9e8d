package media

import (
	"fmt"

	"github.com/addarr/addarr/internal/arrapi"
)

// SearchResult is the normalized view of a vendor lookup record. ID holds
// the vendor's remote identifier (tmdbId, tvdbId or foreignArtistId) as a
// string.
type SearchResult struct {
	ID       string
	Kind     Kind
	Title    string
	Year     int
	Overview string
	Poster   string
	Ratings  Ratings
	Genres   []string
	Studio   string
	Network  string
	Status   string
	Runtime  int

	// Seasons is populated for series results only
	Seasons []arrapi.Season
}

// Ratings aggregates whatever rating sources the vendor exposes; zero
// values mean the source was absent.
type Ratings struct {
	IMDB           float64
	RottenTomatoes float64
	TMDB           float64
	Votes          int
}

func movieResult(m arrapi.Movie) SearchResult {
	return SearchResult{
		ID:       fmt.Sprintf("%d", m.TmdbID),
		Kind:     KindMovie,
		Title:    titleWithYear(m.Title, m.Year),
		Year:     m.Year,
		Overview: overviewOrDefault(m.Overview),
		Poster:   posterURL(m.Images, m.RemotePoster, "https://image.tmdb.org/t/p/w500/"),
		Ratings: Ratings{
			IMDB:           m.Ratings.IMDB.Value,
			RottenTomatoes: m.Ratings.RottenTomatoes.Value,
			TMDB:           m.Ratings.Tmdb.Value,
			Votes:          m.Ratings.Tmdb.Votes,
		},
		Genres:  m.Genres,
		Studio:  m.Studio,
		Status:  m.Status,
		Runtime: m.Runtime,
	}
}

func seriesResult(s arrapi.Series) SearchResult {
	return SearchResult{
		ID:       fmt.Sprintf("%d", s.TvdbID),
		Kind:     KindSeries,
		Title:    titleWithYear(s.Title, s.Year),
		Year:     s.Year,
		Overview: overviewOrDefault(s.Overview),
		Poster:   posterURL(s.Images, s.RemotePoster, "https://artworks.thetvdb.com/banners/"),
		Ratings: Ratings{
			TMDB:  s.Ratings.Tmdb.Value,
			Votes: s.Ratings.Tmdb.Votes,
		},
		Genres:  s.Genres,
		Network: s.Network,
		Status:  s.Status,
		Runtime: s.Runtime,
		Seasons: s.Seasons,
	}
}

func artistResult(a arrapi.Artist) SearchResult {
	year := 0
	if a.Statistics != nil {
		year = a.Statistics.YearStart
	}
	poster := posterURL(a.Images, "", "")
	if poster == "" {
		// MusicBrainz cover art as fallback
		poster = "https://coverartarchive.org/release-group/" + a.ForeignArtistID + "/front"
	}
	return SearchResult{
		ID:       a.ForeignArtistID,
		Kind:     KindMusic,
		Title:    a.ArtistName,
		Year:     year,
		Overview: overviewOrDefault(a.Overview),
		Poster:   poster,
		Ratings:  Ratings{TMDB: a.Ratings.Value, Votes: a.Ratings.Votes},
		Genres:   a.Genres,
		Status:   a.Status,
	}
}

func titleWithYear(title string, year int) string {
	if year == 0 {
		return title
	}
	return fmt.Sprintf("%s (%d)", title, year)
}

func overviewOrDefault(overview string) string {
	if overview == "" {
		return "No overview available"
	}
	return overview
}

// posterURL prefers the vendor's poster image, falling back to the remote
// poster joined with the vendor's artwork base URL.
func posterURL(images []arrapi.Image, remotePoster, remoteBase string) string {
	for _, img := range images {
		if (img.CoverType == "poster" || img.CoverType == "cover") && img.RemoteURL != "" {
			return img.RemoteURL
		}
	}
	if remotePoster != "" && remoteBase != "" {
		return remoteBase + remotePoster
	}
	return ""
}
