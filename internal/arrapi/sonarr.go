package arrapi

import (
	"context"
	"fmt"
	"net/url"
)

// SonarrClient is a client for interacting with Sonarr API
type SonarrClient struct {
	*Client
}

// NewSonarrClient creates a new Sonarr API client
func NewSonarrClient(cfg ClientConfig) *SonarrClient {
	if cfg.Name == "" {
		cfg.Name = "sonarr"
	}
	cfg.APIVersion = "v3"
	return &SonarrClient{
		Client: NewClient(cfg),
	}
}

// Series represents a TV series in Sonarr, both lookup results and
// library entries
type Series struct {
	ID           int           `json:"id,omitempty"`
	TvdbID       int64         `json:"tvdbId"`
	Title        string        `json:"title"`
	Year         int           `json:"year"`
	Status       string        `json:"status"`
	Overview     string        `json:"overview"`
	Network      string        `json:"network"`
	Runtime      int           `json:"runtime"`
	Genres       []string      `json:"genres"`
	Images       []Image       `json:"images"`
	RemotePoster string        `json:"remotePoster"`
	Ratings      SeriesRatings `json:"ratings"`
	Seasons      []Season      `json:"seasons"`
	Path         string        `json:"path,omitempty"`
	Monitored    bool          `json:"monitored"`
	Statistics   SeriesStats   `json:"statistics"`
}

// SeriesRatings holds the rating sources Sonarr aggregates
type SeriesRatings struct {
	Tmdb RatingValue `json:"tmdb"`
}

// SeriesStats contains statistics for a series
type SeriesStats struct {
	EpisodeFileCount  int     `json:"episodeFileCount"`
	EpisodeCount      int     `json:"episodeCount"`
	TotalEpisodeCount int     `json:"totalEpisodeCount"`
	SizeOnDisk        int64   `json:"sizeOnDisk"`
	PercentOfEpisodes float64 `json:"percentOfEpisodes"`
}

// AddSeriesRequest is the POST body for adding a series
type AddSeriesRequest struct {
	TvdbID           int64            `json:"tvdbId"`
	Title            string           `json:"title"`
	QualityProfileID int              `json:"qualityProfileId"`
	RootFolderPath   string           `json:"rootFolderPath"`
	SeasonFolder     bool             `json:"seasonFolder"`
	Monitored        bool             `json:"monitored"`
	Seasons          []Season         `json:"seasons,omitempty"`
	AddOptions       SeriesAddOptions `json:"addOptions"`
}

// SeriesAddOptions controls Sonarr's behavior after the add
type SeriesAddOptions struct {
	SearchForMissingEpisodes bool `json:"searchForMissingEpisodes"`
}

// Lookup searches the Sonarr metadata index for series matching term
func (c *SonarrClient) Lookup(ctx context.Context, term string) ([]Series, error) {
	var series []Series
	endpoint := "series/lookup?term=" + url.QueryEscape(term)
	if err := c.get(ctx, endpoint, &series); err != nil {
		return nil, fmt.Errorf("series lookup %q: %w", term, err)
	}

	c.logger.DebugContext(ctx, "series lookup", "term", term, "results", len(series))
	return series, nil
}

// GetByTvdbID fetches a single series by its TVDB id. The direct lookup
// endpoint is tried first, falling back to a prefixed search.
func (c *SonarrClient) GetByTvdbID(ctx context.Context, tvdbID string) (*Series, error) {
	var series Series
	if err := c.get(ctx, "series/lookup/tvdb/"+url.PathEscape(tvdbID), &series); err == nil && series.TvdbID != 0 {
		return &series, nil
	}

	var results []Series
	if err := c.get(ctx, "series/lookup?term="+url.QueryEscape("tvdb:"+tvdbID), &results); err != nil {
		return nil, fmt.Errorf("series lookup tvdb %s: %w", tvdbID, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("series tvdb %s: %w", tvdbID, ErrNotFound)
	}
	return &results[0], nil
}

// Seasons returns the known seasons for a series identified by TVDB id
func (c *SonarrClient) Seasons(ctx context.Context, tvdbID string) ([]Season, error) {
	series, err := c.GetByTvdbID(ctx, tvdbID)
	if err != nil {
		return nil, err
	}
	return series.Seasons, nil
}

// Add adds a series to Sonarr. The request's season list controls which
// seasons start monitored; a FutureSeasonNumber entry marks unannounced
// seasons for monitoring.
func (c *SonarrClient) Add(ctx context.Context, req AddSeriesRequest) error {
	if err := c.post(ctx, "series", req, nil); err != nil {
		return c.classifyAddError(err, req.Title)
	}

	c.logger.InfoContext(ctx, "series added",
		"title", req.Title,
		"tvdb_id", req.TvdbID,
		"seasons", len(req.Seasons))
	return nil
}

// AllSeries retrieves all series in the library
func (c *SonarrClient) AllSeries(ctx context.Context) ([]Series, error) {
	var series []Series
	if err := c.get(ctx, "series", &series); err != nil {
		return nil, fmt.Errorf("get all series: %w", err)
	}
	return series, nil
}

// Series retrieves a library series by its internal Sonarr id
func (c *SonarrClient) Series(ctx context.Context, id int) (*Series, error) {
	var series Series
	if err := c.get(ctx, fmt.Sprintf("series/%d", id), &series); err != nil {
		return nil, fmt.Errorf("get series %d: %w", id, err)
	}
	return &series, nil
}

// Delete removes a series from Sonarr
func (c *SonarrClient) Delete(ctx context.Context, id int, deleteFiles bool) error {
	endpoint := fmt.Sprintf("series/%d?deleteFiles=%t", id, deleteFiles)
	if err := c.delete(ctx, endpoint); err != nil {
		return fmt.Errorf("delete series %d: %w", id, err)
	}

	c.logger.InfoContext(ctx, "series deleted", "id", id, "delete_files", deleteFiles)
	return nil
}
