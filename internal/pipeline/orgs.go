package pipeline

import (
	"strings"

	"github.com/sscu-budapest/electiondata/internal"
)

// Derived holds the dimension tables decomposed out of the vote records.
type Derived struct {
	Orgs         []internal.NominatingOrganization
	Parties      []internal.Party
	Affiliations []internal.Affiliation
	Candidates   []internal.Candidate
	Runs         []internal.Run
}

// DeriveRunners decomposes organization identifiers into party affiliation
// edges and links individual-race tallies to their candidates.
//
// Splitting on "-" assumes slate ids are hyphen-joined member-party tokens.
// That is an assumption, not a grammar: a malformed id degrades to spurious
// party tokens rather than failing the run.
func DeriveRunners(records []internal.VoteRecord) Derived {
	d := Derived{}

	seenOrg := map[string]bool{}
	seenParty := map[string]bool{}
	for _, rec := range records {
		if rec.OrgNID == "" || seenOrg[rec.OrgNID] {
			continue
		}
		seenOrg[rec.OrgNID] = true
		d.Orgs = append(d.Orgs, internal.NominatingOrganization{NID: rec.OrgNID})

		for _, token := range strings.Split(rec.OrgNID, "-") {
			if token == "" {
				continue
			}
			if !seenParty[token] {
				seenParty[token] = true
				d.Parties = append(d.Parties, internal.Party{PID: token})
			}
			d.Affiliations = append(d.Affiliations, internal.Affiliation{PartyPID: token, OrgNID: rec.OrgNID})
		}
	}

	seenCand := map[string]bool{}
	for _, rec := range records {
		if rec.CandidateName == "" {
			continue
		}
		if !seenCand[rec.CandidateName] {
			seenCand[rec.CandidateName] = true
			d.Candidates = append(d.Candidates, internal.Candidate{CID: rec.CandidateName})
		}
		d.Runs = append(d.Runs, internal.Run{VoteVID: rec.VID, CandidateCID: rec.CandidateName})
	}

	return d
}
