// Package civic defines the canonical record shapes every provider
// adapter normalizes into, along with the domain rules shared between
// providers.
package civic

import "time"

type Chamber string

const (
	ChamberHouse   Chamber = "house"
	ChamberSenate  Chamber = "senate"
	ChamberUnknown Chamber = "unknown"
)

// Legislator is one member of congress as reported by the roster
// provider. District is only set for house members.
type Legislator struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Party     string    `json:"party"`
	State     string    `json:"state"`
	Chamber   Chamber   `json:"chamber"`
	District  *int      `json:"district,omitempty"`
	InOffice  bool      `json:"inOffice"`
	Contact   *string   `json:"contact,omitempty"`
	Refreshed time.Time `json:"refreshed"`
}

// LegislatorDetail comes from a different provider than Legislator and
// is never merged with it here. Callers that want one unified profile
// match the two lists by name themselves.
type LegislatorDetail struct {
	Legislator

	Twitter      *string `json:"twitter,omitempty"`
	NextElection *string `json:"nextElection,omitempty"`
	Phone        *string `json:"phone,omitempty"`
}

type LobbyingFiling struct {
	Client     string    `json:"client"`
	Registrant string    `json:"registrant"`
	Amount     int64     `json:"amount"`
	Year       int       `json:"year"`
	ReportType string    `json:"reportType"`
	Issue      *string   `json:"issue,omitempty"`
	Refreshed  time.Time `json:"refreshed"`
}

type SpendingAward struct {
	Agency      string  `json:"agency"`
	Recipient   string  `json:"recipient"`
	Amount      float64 `json:"amount"`
	AwardType   string  `json:"awardType"`
	Description string  `json:"description"`
	SignedDate  string  `json:"signedDate"`
	FiscalYear  int     `json:"fiscalYear"`
}

type BillStatus string

const (
	BillStatusEnacted    BillStatus = "Enacted"
	BillStatusInProgress BillStatus = "In Progress"
)

// Bill is one piece of legislation. SponsorID links to Legislator.ID by
// value when the provider reports a sponsor.
type Bill struct {
	ID               string     `json:"id"`
	Congress         int        `json:"congress"`
	Type             string     `json:"type"`
	Number           string     `json:"number"`
	Title            string     `json:"title"`
	Introduced       string     `json:"introduced"`
	LatestActionText *string    `json:"latestActionText,omitempty"`
	LatestActionDate *string    `json:"latestActionDate,omitempty"`
	SponsorID        *string    `json:"sponsorId,omitempty"`
	Status           BillStatus `json:"status"`
}
