package pipeline

import (
	"fmt"

	"github.com/sscu-budapest/electiondata/internal"
)

// ElectionID derives the election dimension key. Two elections get distinct
// ids iff one voter could cast ballots in both, which year, the
// individual/party split and the round fully determine.
func ElectionID(m internal.ElectionMeta) string {
	kind := "party"
	if m.IsIndividual {
		kind = "indiv"
	}
	round := 1
	if m.IsSecondRound {
		round = 2
	}
	return fmt.Sprintf("hun-%d-%s-%d", m.HeldDate.Year(), kind, round)
}

// BuildElections derives the deduplicated election dimension table.
func BuildElections(metas []internal.ElectionMeta) []internal.Election {
	seen := map[string]bool{}
	out := make([]internal.Election, 0)
	for _, m := range metas {
		eid := ElectionID(m)
		if seen[eid] {
			continue
		}
		seen[eid] = true
		out = append(out, internal.Election{
			EID:          eid,
			IsIndividual: m.IsIndividual,
			StartDate:    m.HeldDate,
		})
	}
	return out
}

// BuildPrecincts assembles the precinct table: geo parent id, external-vote
// flag, the reconciled eligible-voter count and a composite display name.
// An absent count defaults to zero; defaulted counts report how many pages
// lacked any usable registry column.
func BuildPrecincts(metas []internal.ElectionMeta, eligible map[string]float64) (precincts []internal.ElectionPrecinct, defaulted int) {
	precincts = make([]internal.ElectionPrecinct, 0, len(metas))
	for _, m := range metas {
		voters, ok := eligible[m.MetaID]
		if !ok {
			defaulted++
		}
		precincts = append(precincts, internal.ElectionPrecinct{
			PID:            m.MetaID,
			Name:           m.MainName + "-" + m.LocID,
			GeoInfo:        m.Loc,
			EligibleVoters: voters,
			ExternalVotes:  ExternalVotes(m.Info),
			GeoParentGID:   GeoID(m.MainName, mainKey),
			ElectionEID:    ElectionID(m),
		})
	}
	return precincts, defaulted
}
