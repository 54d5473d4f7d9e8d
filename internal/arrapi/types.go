package arrapi

// SystemStatus represents the *arr application status
type SystemStatus struct {
	AppName      string `json:"appName"`
	InstanceName string `json:"instanceName"`
	Version      string `json:"version"`
	BuildTime    string `json:"buildTime"`
	Branch       string `json:"branch"`
	UrlBase      string `json:"urlBase"`
	StartTime    string `json:"startTime"`
}

// RootFolder represents a configured storage location
type RootFolder struct {
	ID         int    `json:"id"`
	Path       string `json:"path"`
	FreeSpace  int64  `json:"freeSpace"`
	Accessible bool   `json:"accessible"`
}

// QualityProfile represents a quality profile available for new items
type QualityProfile struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	UpgradeAllowed bool   `json:"upgradeAllowed"`
}

// Image is one artwork entry on a lookup result
type Image struct {
	CoverType string `json:"coverType"`
	URL       string `json:"url"`
	RemoteURL string `json:"remoteUrl"`
}

// RatingValue is a single vendor rating
type RatingValue struct {
	Value float64 `json:"value"`
	Votes int     `json:"votes"`
}

// Season is one season entry on a series
type Season struct {
	SeasonNumber int  `json:"seasonNumber"`
	Monitored    bool `json:"monitored"`
}

// FutureSeasonNumber is the Sonarr convention for "seasons not yet
// announced": a season entry with this number and monitored=true. It never
// collides with a real season number.
const FutureSeasonNumber = -1
