package bot

import (
	"github.com/addarr/addarr/internal/arrapi"
	"github.com/addarr/addarr/internal/media"
)

// State identifies where a chat is in a multi-step flow. All flows share
// this one enum; a conversation is in exactly one state at a time.
type State int

const (
	StateIdle State = iota
	StateAwaitingPassword
	StateAwaitingSearch
	StateSelectingResult
	StateSelectingQuality
	StateSelectingSeasons
	StateDeleteSelecting
	StateDeleteConfirm
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingPassword:
		return "awaiting_password"
	case StateAwaitingSearch:
		return "awaiting_search"
	case StateSelectingResult:
		return "selecting_result"
	case StateSelectingQuality:
		return "selecting_quality"
	case StateSelectingSeasons:
		return "selecting_seasons"
	case StateDeleteSelecting:
		return "delete_selecting"
	case StateDeleteConfirm:
		return "delete_confirm"
	default:
		return "unknown"
	}
}

// Conversation is the per-chat flow state. A chat has at most one active
// conversation; starting a new command resets it.
type Conversation struct {
	State State
	Kind  media.Kind

	// search flow
	Results    []media.SearchResult
	Index      int
	MessageID  int
	Profiles   []arrapi.QualityProfile
	RootFolder string
	ProfileID  int
	Seasons    *media.SeasonSelection

	// delete and library flows
	Items    []media.LibraryItem
	Page     int
	DeleteID int
}

func (c *Conversation) current() *media.SearchResult {
	if c.Index < 0 || c.Index >= len(c.Results) {
		return nil
	}
	return &c.Results[c.Index]
}
