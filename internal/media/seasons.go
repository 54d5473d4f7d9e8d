package media

import "github.com/addarr/addarr/internal/arrapi"

// FutureMode selects how unaired content is monitored
type FutureMode int

const (
	FutureNone FutureMode = iota
	FutureAll
	FutureSeasons
	FutureEpisodes
)

// SeasonSelection tracks the per-conversation season picking state for a
// series add. It is not safe for concurrent use; the bot processes one
// update at a time per chat.
type SeasonSelection struct {
	seasons    []arrapi.Season
	selected   map[int]bool
	future     FutureMode
	monitorAll bool
}

// NewSeasonSelection creates an empty selection over the known seasons
func NewSeasonSelection(seasons []arrapi.Season) *SeasonSelection {
	return &SeasonSelection{
		seasons:  seasons,
		selected: make(map[int]bool),
	}
}

// Seasons returns the known seasons in vendor order
func (s *SeasonSelection) Seasons() []arrapi.Season {
	return s.seasons
}

// IsSelected reports whether a season number is currently selected
func (s *SeasonSelection) IsSelected(n int) bool {
	return s.selected[n] || s.future == FutureAll
}

// MonitorAll reports whether monitor-all mode is on
func (s *SeasonSelection) MonitorAll() bool {
	return s.monitorAll
}

// Future returns the current future-monitoring mode
func (s *SeasonSelection) Future() FutureMode {
	return s.future
}

// ToggleMonitorAll flips monitor-all mode. Turning it on selects every
// season, switches future mode to FutureSeasons and reports true, meaning
// the selection should be confirmed immediately without further input.
// Turning it off clears the selection entirely.
func (s *SeasonSelection) ToggleMonitorAll() (autoConfirm bool) {
	s.monitorAll = !s.monitorAll
	if s.monitorAll {
		for _, season := range s.seasons {
			s.selected[season.SeasonNumber] = true
		}
		s.future = FutureSeasons
		return true
	}
	s.selected = make(map[int]bool)
	s.future = FutureNone
	return false
}

// ToggleAll selects every season with FutureAll mode, or clears the
// selection when every season is already selected.
func (s *SeasonSelection) ToggleAll() {
	if s.allSelected() {
		s.selected = make(map[int]bool)
		s.future = FutureNone
		return
	}
	s.selected = make(map[int]bool)
	for _, season := range s.seasons {
		s.selected[season.SeasonNumber] = true
	}
	s.future = FutureAll
}

// ToggleFutureSeasons flips FutureSeasons mode, overwriting any other
// future mode
func (s *SeasonSelection) ToggleFutureSeasons() {
	if s.future == FutureSeasons {
		s.future = FutureNone
	} else {
		s.future = FutureSeasons
	}
}

// ToggleFutureEpisodes flips FutureEpisodes mode, overwriting any other
// future mode
func (s *SeasonSelection) ToggleFutureEpisodes() {
	if s.future == FutureEpisodes {
		s.future = FutureNone
	} else {
		s.future = FutureEpisodes
	}
}

// ToggleSeason flips an individual season's membership
func (s *SeasonSelection) ToggleSeason(n int) {
	if s.selected[n] {
		delete(s.selected, n)
	} else {
		s.selected[n] = true
	}
}

func (s *SeasonSelection) allSelected() bool {
	if len(s.seasons) == 0 {
		return false
	}
	for _, season := range s.seasons {
		if !s.selected[season.SeasonNumber] {
			return false
		}
	}
	return true
}

// Payload builds the season list for the Sonarr add request. Priority
// order, first match wins:
//
//  1. monitor-all: every season monitored, plus the future-seasons sentinel
//  2. FutureAll: every season monitored
//  3. FutureEpisodes: every existing season unmonitored, plus the sentinel
//     (monitor only episodes that have not aired yet)
//  4. otherwise: membership in the selection, plus the sentinel when
//     FutureSeasons is set
//
// The sentinel is arrapi.FutureSeasonNumber with monitored=true and is
// always appended last.
func (s *SeasonSelection) Payload() []arrapi.Season {
	switch {
	case s.monitorAll:
		payload := s.allMonitored(true)
		return append(payload, futureSentinel())
	case s.future == FutureAll:
		return s.allMonitored(true)
	case s.future == FutureEpisodes:
		payload := s.allMonitored(false)
		return append(payload, futureSentinel())
	default:
		payload := make([]arrapi.Season, 0, len(s.seasons)+1)
		for _, season := range s.seasons {
			payload = append(payload, arrapi.Season{
				SeasonNumber: season.SeasonNumber,
				Monitored:    s.selected[season.SeasonNumber],
			})
		}
		if s.future == FutureSeasons {
			payload = append(payload, futureSentinel())
		}
		return payload
	}
}

func (s *SeasonSelection) allMonitored(monitored bool) []arrapi.Season {
	payload := make([]arrapi.Season, 0, len(s.seasons)+1)
	for _, season := range s.seasons {
		payload = append(payload, arrapi.Season{
			SeasonNumber: season.SeasonNumber,
			Monitored:    monitored,
		})
	}
	return payload
}

func futureSentinel() arrapi.Season {
	return arrapi.Season{SeasonNumber: arrapi.FutureSeasonNumber, Monitored: true}
}
