package models

// Season is one week or group of a league schedule and the events in it
type Season struct {
	Label    string `json:"label"`
	ID       string `json:"id"`
	GUID     string `json:"guid"`
	EventIDs []int  `json:"event_ids"`
}

// Schedule is returned by GET /{sport}/schedule
type Schedule struct {
	CurrentSeason []Season `json:"current_season"`
	CurrentGroup  Season   `json:"current_group"`
}

// ConferenceGroup is one entry of GET /{sport}/events/conferences
type ConferenceGroup struct {
	Name        string   `json:"name"`
	Conferences []string `json:"conferences"`
}

// Standing is the record embedded in a team payload
type Standing struct {
	Wins                  int    `json:"wins"`
	Losses                int    `json:"losses"`
	Ties                  *int   `json:"ties,omitempty"`
	ShortRecord           string `json:"short_record"`
	ShortConferenceRecord string `json:"short_conference_record,omitempty"`
	Conference            string `json:"conference,omitempty"`
	Division              string `json:"division,omitempty"`
	Streak                string `json:"streak,omitempty"`
	Place                 int    `json:"place,omitempty"`
}

// StandingRow is one entry of GET /{sport}/standings
type StandingRow struct {
	ShortRecord      string `json:"short_record"`
	Conference       string `json:"conference"`
	Division         string `json:"division"`
	ConferenceWins   *int   `json:"conference_wins"`
	ConferenceLosses *int   `json:"conference_losses"`
}

// LiveLeague is one entry of GET /meta/leagues/live
type LiveLeague struct {
	League               string `json:"league"`
	InProgressEventCount int    `json:"in_progress_event_count"`
}

// FavoriteTeam is a team the user follows
type FavoriteTeam struct {
	ID           int    `json:"id"`
	Sport        Sport  `json:"sport"`
	Name         string `json:"name,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
}
