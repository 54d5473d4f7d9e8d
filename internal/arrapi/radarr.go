package arrapi

import (
	"context"
	"fmt"
	"net/url"
)

// RadarrClient is a client for interacting with Radarr API
type RadarrClient struct {
	*Client
}

// NewRadarrClient creates a new Radarr API client
func NewRadarrClient(cfg ClientConfig) *RadarrClient {
	if cfg.Name == "" {
		cfg.Name = "radarr"
	}
	cfg.APIVersion = "v3"
	return &RadarrClient{
		Client: NewClient(cfg),
	}
}

// Movie represents a movie in Radarr, both lookup results and library entries
type Movie struct {
	ID           int          `json:"id,omitempty"`
	TmdbID       int64        `json:"tmdbId"`
	ImdbID       string       `json:"imdbId,omitempty"`
	Title        string       `json:"title"`
	Year         int          `json:"year"`
	Status       string       `json:"status"`
	Overview     string       `json:"overview"`
	Runtime      int          `json:"runtime"`
	Studio       string       `json:"studio"`
	Genres       []string     `json:"genres"`
	Images       []Image      `json:"images"`
	RemotePoster string       `json:"remotePoster"`
	Ratings      MovieRatings `json:"ratings"`
	Path         string       `json:"path,omitempty"`
	Monitored    bool         `json:"monitored"`
	HasFile      bool         `json:"hasFile"`
	SizeOnDisk   int64        `json:"sizeOnDisk"`
}

// MovieRatings holds the rating sources Radarr aggregates
type MovieRatings struct {
	IMDB           RatingValue `json:"imdb"`
	RottenTomatoes RatingValue `json:"rottenTomatoes"`
	Tmdb           RatingValue `json:"tmdb"`
}

// AddMovieRequest is the POST body for adding a movie
type AddMovieRequest struct {
	TmdbID           int64           `json:"tmdbId"`
	Title            string          `json:"title"`
	QualityProfileID int             `json:"qualityProfileId"`
	RootFolderPath   string          `json:"rootFolderPath"`
	Monitored        bool            `json:"monitored"`
	AddOptions       MovieAddOptions `json:"addOptions"`
}

// MovieAddOptions controls Radarr's behavior after the add
type MovieAddOptions struct {
	SearchForMovie bool `json:"searchForMovie"`
}

// Lookup searches the Radarr metadata index for movies matching term
func (c *RadarrClient) Lookup(ctx context.Context, term string) ([]Movie, error) {
	var movies []Movie
	endpoint := "movie/lookup?term=" + url.QueryEscape(term)
	if err := c.get(ctx, endpoint, &movies); err != nil {
		return nil, fmt.Errorf("movie lookup %q: %w", term, err)
	}

	c.logger.DebugContext(ctx, "movie lookup", "term", term, "results", len(movies))
	return movies, nil
}

// GetByTmdbID fetches a single movie by its TMDB id. The direct lookup
// endpoint is tried first; older Radarr versions without it fall back to a
// prefixed search.
func (c *RadarrClient) GetByTmdbID(ctx context.Context, tmdbID string) (*Movie, error) {
	var movie Movie
	if err := c.get(ctx, "movie/lookup/tmdb/"+url.PathEscape(tmdbID), &movie); err == nil && movie.TmdbID != 0 {
		return &movie, nil
	}

	var results []Movie
	if err := c.get(ctx, "movie/lookup?term="+url.QueryEscape("tmdb:"+tmdbID), &results); err != nil {
		return nil, fmt.Errorf("movie lookup tmdb %s: %w", tmdbID, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("movie tmdb %s: %w", tmdbID, ErrNotFound)
	}
	return &results[0], nil
}

// Add adds a movie to Radarr
func (c *RadarrClient) Add(ctx context.Context, req AddMovieRequest) error {
	if err := c.post(ctx, "movie", req, nil); err != nil {
		return c.classifyAddError(err, req.Title)
	}

	c.logger.InfoContext(ctx, "movie added", "title", req.Title, "tmdb_id", req.TmdbID)
	return nil
}

// Movies retrieves all movies in the library
func (c *RadarrClient) Movies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	if err := c.get(ctx, "movie", &movies); err != nil {
		return nil, fmt.Errorf("get all movies: %w", err)
	}
	return movies, nil
}

// Movie retrieves a library movie by its internal Radarr id
func (c *RadarrClient) Movie(ctx context.Context, id int) (*Movie, error) {
	var movie Movie
	if err := c.get(ctx, fmt.Sprintf("movie/%d", id), &movie); err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	return &movie, nil
}

// Delete removes a movie from Radarr
func (c *RadarrClient) Delete(ctx context.Context, id int, deleteFiles bool) error {
	endpoint := fmt.Sprintf("movie/%d?deleteFiles=%t", id, deleteFiles)
	if err := c.delete(ctx, endpoint); err != nil {
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	c.logger.InfoContext(ctx, "movie deleted", "id", id, "delete_files", deleteFiles)
	return nil
}
