package thescore_client

const (
	// Base URL
	BaseURL = "https://api.thescore.com"

	// API Endpoints
	EventsEndpoint           = "/%s/events/%d"
	EventsByIDEndpoint       = "/%s/events?id.in=%s"
	MultisportEventsEndpoint = "/multisport/events?leagues=%s&game_date.in=%s,%s"
	ScheduleEndpoint         = "/%s/schedule?utc_offset=%d&conference=%s"
	ConferencesEndpoint      = "/%s/events/conferences"
	TeamsEndpoint            = "/%s/teams"
	TeamEndpoint             = "/%s/teams/%d"
	TeamFullScheduleEndpoint = "/%s/teams/%d/events/full_schedule"
	StandingsByTeamEndpoint  = "/%s/standings?team_id=%d"
	LiveLeaguesEndpoint      = "/meta/leagues/live"

	// Headers
	AcceptHeader    = "Accept"
	JsonContentType = "application/json"
)
