package models

// PublicEntry is one record of the public API directory. Field names follow the upstream JSON.
type PublicEntry struct {
	API         string `json:"API"`
	Description string `json:"Description"`
	Auth        string `json:"Auth"`
	HTTPS       bool   `json:"HTTPS"`
	Cors        string `json:"Cors"`
	Link        string `json:"Link"`
	Category    string `json:"Category"`
}
