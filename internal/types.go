package internal

import "time"

// MeltCell is one scraped table cell in long format: the staged output of the
// snapshot collector, one row per (page, table, row, column label, value).
type MeltCell struct {
	MetaID   string
	TabID    string
	Index    int
	Variable string
	Value    string
}

// ElectionMeta is the per-page metadata row accompanying a result snapshot.
type ElectionMeta struct {
	MetaID        string
	HeldDate      time.Time
	IsIndividual  bool
	IsSecondRound bool
	RegionName    string
	MainName      string
	Loc           string
	LocID         string
	Info          string
}

type Election struct {
	EID          string
	IsIndividual bool
	StartDate    time.Time
}

type GeographicalUnit struct {
	GID       string
	Name      string
	LevelInfo string
}

// DistrictHierarchy is a parent/child adjacency edge between two
// geographical units. Many-to-many is allowed.
type DistrictHierarchy struct {
	ParentGID string
	ChildGID  string
}

// NominatingOrganization is a raw, possibly hyphen-joined slate identifier.
type NominatingOrganization struct {
	NID string
}

type Party struct {
	PID string
}

// Affiliation links a member party to the nominating organization it ran
// under. One org decomposes into one or more parties.
type Affiliation struct {
	PartyPID string
	OrgNID   string
}

type Candidate struct {
	CID string
}

type ElectionPrecinct struct {
	PID            string
	Name           string
	GeoInfo        string
	EligibleVoters float64
	ExternalVotes  bool
	GeoParentGID   string
	ElectionEID    string
}

// VoteRecord is one tally for one slate/candidate in one precinct.
type VoteRecord struct {
	VID           string
	VoteCount     int
	OrgNID        string
	PrecinctPID   string
	CandidateName string
}

// Run links a vote record to the candidate who received it. Individual
// races only; party-list tallies have no run edge.
type Run struct {
	VoteVID      string
	CandidateCID string
}
