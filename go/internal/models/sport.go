package models

import (
	"fmt"
	"strings"
)

// Sport is a league code understood by the sports API
type Sport string

const (
	SportNFL   Sport = "nfl"
	SportNCAAF Sport = "ncaaf"
	SportNCAAB Sport = "ncaab"
)

// Sports lists every supported league in display order
var Sports = []Sport{SportNFL, SportNCAAF, SportNCAAB}

func (s Sport) String() string {
	return string(s)
}

// IsFootball reports whether the league plays football
func (s Sport) IsFootball() bool {
	return s == SportNFL || s == SportNCAAF
}

// ParseSport validates a league code
func ParseSport(raw string) (Sport, error) {
	s := Sport(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Sports {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown sport %q", raw)
}

// SportFromAPIURI derives the league from an event's api_uri.
// Anything that is neither nfl nor ncaaf is treated as ncaab.
func SportFromAPIURI(apiURI string) Sport {
	switch {
	case strings.Contains(apiURI, "nfl"):
		return SportNFL
	case strings.Contains(apiURI, "ncaaf"):
		return SportNCAAF
	default:
		return SportNCAAB
	}
}
