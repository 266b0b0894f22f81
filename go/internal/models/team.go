package models

// Logos holds the logo URLs the sports API publishes for a team
type Logos struct {
	Large   string `json:"large"`
	Small   string `json:"small"`
	W72xH72 string `json:"w72xh72"`
	Tiny    string `json:"tiny"`
}

// Team represents a team as embedded in an event payload
type Team struct {
	ID           int       `json:"id"`
	Abbreviation string    `json:"abbreviation"`
	FullName     string    `json:"full_name"`
	MediumName   string    `json:"medium_name"`
	Name         string    `json:"name"`
	ShortName    string    `json:"short_name"`
	Location     string    `json:"location"`
	Conference   string    `json:"conference"`
	Division     string    `json:"division"`
	Logos        Logos     `json:"logos"`
	Standing     *Standing `json:"standing,omitempty"`
}
