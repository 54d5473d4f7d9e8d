package arrapi

import (
	"context"
	"fmt"
	"net/url"
)

// LidarrClient provides API access to Lidarr
type LidarrClient struct {
	*Client
}

// NewLidarrClient creates a new Lidarr API client
func NewLidarrClient(cfg ClientConfig) *LidarrClient {
	if cfg.Name == "" {
		cfg.Name = "lidarr"
	}
	cfg.APIVersion = "v1"
	return &LidarrClient{
		Client: NewClient(cfg),
	}
}

// Artist represents a Lidarr artist, both lookup results and library entries
type Artist struct {
	ID              int          `json:"id,omitempty"`
	ForeignArtistID string       `json:"foreignArtistId"`
	ArtistName      string       `json:"artistName"`
	ArtistType      string       `json:"artistType"`
	Status          string       `json:"status"`
	Overview        string       `json:"overview"`
	Genres          []string     `json:"genres"`
	Images          []Image      `json:"images"`
	RemotePoster    string       `json:"remotePoster"`
	Ratings         RatingValue  `json:"ratings"`
	Path            string       `json:"path,omitempty"`
	Monitored       bool         `json:"monitored"`
	Statistics      *ArtistStats `json:"statistics,omitempty"`
}

// ArtistStats contains statistics for an artist
type ArtistStats struct {
	AlbumCount      int   `json:"albumCount"`
	TrackFileCount  int   `json:"trackFileCount"`
	TrackCount      int   `json:"trackCount"`
	TotalTrackCount int   `json:"totalTrackCount"`
	SizeOnDisk      int64 `json:"sizeOnDisk"`
	YearStart       int   `json:"yearStart"`
}

// AddArtistRequest is the POST body for adding an artist
type AddArtistRequest struct {
	ForeignArtistID   string           `json:"foreignArtistId"`
	ArtistName        string           `json:"artistName"`
	QualityProfileID  int              `json:"qualityProfileId"`
	MetadataProfileID int              `json:"metadataProfileId"`
	RootFolderPath    string           `json:"rootFolderPath"`
	Monitored         bool             `json:"monitored"`
	AddOptions        ArtistAddOptions `json:"addOptions"`
}

// ArtistAddOptions controls Lidarr's behavior after the add
type ArtistAddOptions struct {
	SearchForMissingAlbums bool `json:"searchForMissingAlbums"`
}

// Lookup searches the Lidarr metadata index for artists matching term
func (c *LidarrClient) Lookup(ctx context.Context, term string) ([]Artist, error) {
	var artists []Artist
	endpoint := "artist/lookup?term=" + url.QueryEscape(term)
	if err := c.get(ctx, endpoint, &artists); err != nil {
		return nil, fmt.Errorf("artist lookup %q: %w", term, err)
	}

	c.logger.DebugContext(ctx, "artist lookup", "term", term, "results", len(artists))
	return artists, nil
}

// GetByForeignID fetches a single artist by its MusicBrainz id. The
// lidarr: prefixed lookup is tried first, then a bare term search; an
// exact foreignArtistId match wins over the first result.
func (c *LidarrClient) GetByForeignID(ctx context.Context, foreignID string) (*Artist, error) {
	results, err := c.Lookup(ctx, "lidarr:"+foreignID)
	if err != nil || len(results) == 0 {
		results, err = c.Lookup(ctx, foreignID)
		if err != nil {
			return nil, fmt.Errorf("artist lookup %s: %w", foreignID, err)
		}
	}

	for i := range results {
		if results[i].ForeignArtistID == foreignID {
			return &results[i], nil
		}
	}
	if len(results) > 0 {
		return &results[0], nil
	}
	return nil, fmt.Errorf("artist %s: %w", foreignID, ErrNotFound)
}

// Add adds an artist to Lidarr
func (c *LidarrClient) Add(ctx context.Context, req AddArtistRequest) error {
	if req.MetadataProfileID == 0 {
		req.MetadataProfileID = 1
	}
	if err := c.post(ctx, "artist", req, nil); err != nil {
		return c.classifyAddError(err, req.ArtistName)
	}

	c.logger.InfoContext(ctx, "artist added",
		"artist", req.ArtistName,
		"foreign_id", req.ForeignArtistID)
	return nil
}

// Artists retrieves all artists in the library
func (c *LidarrClient) Artists(ctx context.Context) ([]Artist, error) {
	var artists []Artist
	if err := c.get(ctx, "artist", &artists); err != nil {
		return nil, fmt.Errorf("get all artists: %w", err)
	}
	return artists, nil
}

// Delete removes an artist from Lidarr
func (c *LidarrClient) Delete(ctx context.Context, id int, deleteFiles bool) error {
	endpoint := fmt.Sprintf("artist/%d?deleteFiles=%t", id, deleteFiles)
	if err := c.delete(ctx, endpoint); err != nil {
		return fmt.Errorf("delete artist %d: %w", id, err)
	}

	c.logger.InfoContext(ctx, "artist deleted", "id", id, "delete_files", deleteFiles)
	return nil
}
