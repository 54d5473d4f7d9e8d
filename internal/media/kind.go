package media

// Kind identifies which backend a request targets
type Kind int

const (
	KindMovie Kind = iota
	KindSeries
	KindMusic
)

// String returns the lowercase kind name used in callback data
func (k Kind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindSeries:
		return "series"
	case KindMusic:
		return "music"
	default:
		return "unknown"
	}
}

// ServiceName returns the backing service's display name
func (k Kind) ServiceName() string {
	switch k {
	case KindMovie:
		return "Radarr"
	case KindSeries:
		return "Sonarr"
	case KindMusic:
		return "Lidarr"
	default:
		return "unknown"
	}
}

// ParseKind maps a callback data token back to a Kind
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "movie":
		return KindMovie, true
	case "series":
		return KindSeries, true
	case "music":
		return KindMusic, true
	default:
		return 0, false
	}
}
