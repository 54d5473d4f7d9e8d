package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/addarr/addarr/internal/arrapi"
	"github.com/addarr/addarr/internal/downloadclient"
)

// ErrServiceUnavailable indicates the backing service is not enabled or
// failed to initialize
var ErrServiceUnavailable = errors.New("service is not enabled or configured")

// AddResult is the outcome of starting an add flow. Exactly one of the
// three concrete types is returned: NeedsProfileSelection when user input
// is required to continue, Added on a completed add, Failed otherwise.
type AddResult interface {
	addResult()
}

// NeedsProfileSelection asks the caller to pick a quality profile (and,
// for series, seasons) before the add can be committed
type NeedsProfileSelection struct {
	Profiles   []arrapi.QualityProfile
	RootFolder string
	Item       SearchResult
	Seasons    []arrapi.Season
}

// Added reports a completed add
type Added struct {
	Message string
}

// Failed reports an add that cannot proceed
type Failed struct {
	Message string
}

func (NeedsProfileSelection) addResult() {}
func (Added) addResult()                 {}
func (Failed) addResult()                {}

// Deps holds the clients a Service aggregates. Nil clients mean the
// corresponding service is disabled.
type Deps struct {
	Radarr       *arrapi.RadarrClient
	Sonarr       *arrapi.SonarrClient
	Lidarr       *arrapi.LidarrClient
	Transmission *downloadclient.TransmissionClient
	Sabnzbd      *downloadclient.SABnzbdClient
	SeasonFolder bool
	Logger       *slog.Logger
}

// Service aggregates the three *arr clients and normalizes their payloads
// into a common shape for the bot
type Service struct {
	radarr       *arrapi.RadarrClient
	sonarr       *arrapi.SonarrClient
	lidarr       *arrapi.LidarrClient
	transmission *downloadclient.TransmissionClient
	sabnzbd      *downloadclient.SABnzbdClient
	seasonFolder bool
	logger       *slog.Logger
}

// NewService creates a media service over the given clients
func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		radarr:       deps.Radarr,
		sonarr:       deps.Sonarr,
		lidarr:       deps.Lidarr,
		transmission: deps.Transmission,
		sabnzbd:      deps.Sabnzbd,
		seasonFolder: deps.SeasonFolder,
		logger:       logger.With("component", "media"),
	}
}

// Transmission returns the transmission client, or nil when disabled
func (s *Service) Transmission() *downloadclient.TransmissionClient {
	return s.transmission
}

// Sabnzbd returns the SABnzbd client, or nil when disabled
func (s *Service) Sabnzbd() *downloadclient.SABnzbdClient {
	return s.sabnzbd
}

// Enabled reports whether the service backing a kind is configured
func (s *Service) Enabled(kind Kind) bool {
	switch kind {
	case KindMovie:
		return s.radarr != nil
	case KindSeries:
		return s.sonarr != nil
	case KindMusic:
		return s.lidarr != nil
	default:
		return false
	}
}

func (s *Service) unavailable(kind Kind) error {
	return fmt.Errorf("%s: %w", kind.ServiceName(), ErrServiceUnavailable)
}

// Search looks up media matching query and returns normalized results.
// Records missing the vendor's remote id are skipped.
func (s *Service) Search(ctx context.Context, kind Kind, query string) ([]SearchResult, error) {
	if !s.Enabled(kind) {
		return nil, s.unavailable(kind)
	}

	switch kind {
	case KindMovie:
		movies, err := s.radarr.Lookup(ctx, query)
		if err != nil {
			return nil, err
		}
		results := make([]SearchResult, 0, len(movies))
		for _, m := range movies {
			if m.TmdbID == 0 {
				continue
			}
			results = append(results, movieResult(m))
		}
		return results, nil

	case KindSeries:
		series, err := s.sonarr.Lookup(ctx, query)
		if err != nil {
			return nil, err
		}
		results := make([]SearchResult, 0, len(series))
		for _, sr := range series {
			if sr.TvdbID == 0 {
				continue
			}
			results = append(results, seriesResult(sr))
		}
		return results, nil

	case KindMusic:
		artists, err := s.lidarr.Lookup(ctx, query)
		if err != nil {
			return nil, err
		}
		results := make([]SearchResult, 0, len(artists))
		for _, a := range artists {
			if a.ForeignArtistID == "" {
				continue
			}
			results = append(results, artistResult(a))
		}
		return results, nil
	}

	return nil, s.unavailable(kind)
}

// StartAdd begins the two-phase add flow: it verifies root folders and
// quality profiles exist, looks the item up, and returns
// NeedsProfileSelection so the caller can gather the remaining input.
func (s *Service) StartAdd(ctx context.Context, kind Kind, id string) AddResult {
	if !s.Enabled(kind) {
		return Failed{Message: s.unavailable(kind).Error()}
	}

	var client interface {
		RootFolders(context.Context) ([]string, error)
		QualityProfiles(context.Context) ([]arrapi.QualityProfile, error)
	}
	switch kind {
	case KindMovie:
		client = s.radarr
	case KindSeries:
		client = s.sonarr
	case KindMusic:
		client = s.lidarr
	}

	rootFolders, err := client.RootFolders(ctx)
	if err != nil || len(rootFolders) == 0 {
		return Failed{Message: fmt.Sprintf("No root folders configured in %s", kind.ServiceName())}
	}

	profiles, err := client.QualityProfiles(ctx)
	if err != nil || len(profiles) == 0 {
		return Failed{Message: fmt.Sprintf("No quality profiles configured in %s", kind.ServiceName())}
	}

	item, err := s.lookupByID(ctx, kind, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "lookup for add failed", "kind", kind.String(), "id", id, "error", err)
		return Failed{Message: notFoundMessage(kind)}
	}

	sel := NeedsProfileSelection{
		Profiles:   profiles,
		RootFolder: rootFolders[0],
		Item:       *item,
	}
	if kind == KindSeries {
		if len(item.Seasons) == 0 {
			return Failed{Message: "No seasons found for series"}
		}
		sel.Seasons = item.Seasons
	}
	return sel
}

// CompleteAdd commits an add with the chosen quality profile and root
// folder. The returned message is suitable for direct display; an
// arrapi.AlreadyExistsError carries its own user-facing message.
func (s *Service) CompleteAdd(ctx context.Context, kind Kind, id string, profileID int, rootFolder string, seasons []arrapi.Season) (string, error) {
	if !s.Enabled(kind) {
		return "", s.unavailable(kind)
	}

	item, err := s.lookupByID(ctx, kind, id)
	if err != nil {
		return "", errors.New(notFoundMessage(kind))
	}

	switch kind {
	case KindMovie:
		tmdbID, _ := strconv.ParseInt(id, 10, 64)
		err = s.radarr.Add(ctx, arrapi.AddMovieRequest{
			TmdbID:           tmdbID,
			Title:            rawTitle(item),
			QualityProfileID: profileID,
			RootFolderPath:   rootFolder,
			Monitored:        true,
			AddOptions:       arrapi.MovieAddOptions{SearchForMovie: true},
		})
	case KindSeries:
		tvdbID, _ := strconv.ParseInt(id, 10, 64)
		err = s.sonarr.Add(ctx, arrapi.AddSeriesRequest{
			TvdbID:           tvdbID,
			Title:            rawTitle(item),
			QualityProfileID: profileID,
			RootFolderPath:   rootFolder,
			SeasonFolder:     s.seasonFolder,
			Monitored:        true,
			Seasons:          seasons,
			AddOptions:       arrapi.SeriesAddOptions{SearchForMissingEpisodes: true},
		})
	case KindMusic:
		err = s.lidarr.Add(ctx, arrapi.AddArtistRequest{
			ForeignArtistID:  id,
			ArtistName:       rawTitle(item),
			QualityProfileID: profileID,
			RootFolderPath:   rootFolder,
			Monitored:        true,
			AddOptions:       arrapi.ArtistAddOptions{SearchForMissingAlbums: true},
		})
	}

	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully added %s", rawTitle(item)), nil
}

// lookupByID resolves a vendor remote id to a normalized result
func (s *Service) lookupByID(ctx context.Context, kind Kind, id string) (*SearchResult, error) {
	switch kind {
	case KindMovie:
		movie, err := s.radarr.GetByTmdbID(ctx, id)
		if err != nil {
			return nil, err
		}
		r := movieResult(*movie)
		return &r, nil
	case KindSeries:
		series, err := s.sonarr.GetByTvdbID(ctx, id)
		if err != nil {
			return nil, err
		}
		r := seriesResult(*series)
		return &r, nil
	case KindMusic:
		artist, err := s.lidarr.GetByForeignID(ctx, id)
		if err != nil {
			return nil, err
		}
		r := artistResult(*artist)
		return &r, nil
	}
	return nil, s.unavailable(kind)
}

func notFoundMessage(kind Kind) string {
	switch kind {
	case KindMovie:
		return "Movie not found"
	case KindSeries:
		return "Series not found"
	case KindMusic:
		return "Artist not found"
	default:
		return "Not found"
	}
}

// rawTitle strips the "(Year)" suffix the normalizer appends; the vendor
// add endpoints want the bare title.
func rawTitle(item *SearchResult) string {
	if item.Year == 0 {
		return item.Title
	}
	suffix := fmt.Sprintf(" (%d)", item.Year)
	if len(item.Title) > len(suffix) && item.Title[len(item.Title)-len(suffix):] == suffix {
		return item.Title[:len(item.Title)-len(suffix)]
	}
	return item.Title
}

// LibraryItem is one entry of a library listing
type LibraryItem struct {
	ID        int
	Title     string
	Year      int
	OnDisk    bool
	Monitored bool
}

// Library lists everything the backing service manages
func (s *Service) Library(ctx context.Context, kind Kind) ([]LibraryItem, error) {
	if !s.Enabled(kind) {
		return nil, s.unavailable(kind)
	}

	switch kind {
	case KindMovie:
		movies, err := s.radarr.Movies(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]LibraryItem, 0, len(movies))
		for _, m := range movies {
			items = append(items, LibraryItem{ID: m.ID, Title: m.Title, Year: m.Year, OnDisk: m.HasFile, Monitored: m.Monitored})
		}
		return items, nil
	case KindSeries:
		series, err := s.sonarr.AllSeries(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]LibraryItem, 0, len(series))
		for _, sr := range series {
			items = append(items, LibraryItem{ID: sr.ID, Title: sr.Title, Year: sr.Year, OnDisk: sr.Statistics.EpisodeFileCount > 0, Monitored: sr.Monitored})
		}
		return items, nil
	case KindMusic:
		artists, err := s.lidarr.Artists(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]LibraryItem, 0, len(artists))
		for _, a := range artists {
			onDisk := a.Statistics != nil && a.Statistics.TrackFileCount > 0
			items = append(items, LibraryItem{ID: a.ID, Title: a.ArtistName, OnDisk: onDisk, Monitored: a.Monitored})
		}
		return items, nil
	}
	return nil, s.unavailable(kind)
}

// Delete removes a library item, including its files
func (s *Service) Delete(ctx context.Context, kind Kind, id int) error {
	if !s.Enabled(kind) {
		return s.unavailable(kind)
	}

	switch kind {
	case KindMovie:
		return s.radarr.Delete(ctx, id, true)
	case KindSeries:
		return s.sonarr.Delete(ctx, id, true)
	case KindMusic:
		return s.lidarr.Delete(ctx, id, true)
	}
	return s.unavailable(kind)
}

// Status reports whether the service backing a kind responds; a disabled
// service is reported as false, never as an error
func (s *Service) Status(ctx context.Context, kind Kind) bool {
	switch kind {
	case KindMovie:
		return s.radarr != nil && s.radarr.CheckStatus(ctx)
	case KindSeries:
		return s.sonarr != nil && s.sonarr.CheckStatus(ctx)
	case KindMusic:
		return s.lidarr != nil && s.lidarr.CheckStatus(ctx)
	default:
		return false
	}
}

// TransmissionStatus reports whether Transmission responds
func (s *Service) TransmissionStatus(ctx context.Context) bool {
	return s.transmission != nil && s.transmission.CheckStatus(ctx)
}

// SabnzbdStatus reports whether SABnzbd responds
func (s *Service) SabnzbdStatus(ctx context.Context) bool {
	return s.sabnzbd != nil && s.sabnzbd.CheckStatus(ctx)
}
