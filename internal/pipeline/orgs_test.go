package pipeline

import (
	"testing"

	"github.com/sscu-budapest/electiondata/internal"
)

func TestDeriveRunnersPartySplit(t *testing.T) {
	records := []internal.VoteRecord{
		{VID: "vi-0000000000", OrgNID: "FIDESZ-MDF", PrecinctPID: "m1"},
		{VID: "vi-0000000001", OrgNID: "FIDESZ", PrecinctPID: "m2"},
	}

	d := DeriveRunners(records)

	if len(d.Orgs) != 2 {
		t.Fatalf("orgs: %+v", d.Orgs)
	}
	if len(d.Parties) != 2 {
		t.Fatalf("parties: %+v", d.Parties)
	}

	wantAff := []internal.Affiliation{
		{PartyPID: "FIDESZ", OrgNID: "FIDESZ-MDF"},
		{PartyPID: "MDF", OrgNID: "FIDESZ-MDF"},
		{PartyPID: "FIDESZ", OrgNID: "FIDESZ"},
	}
	if len(d.Affiliations) != len(wantAff) {
		t.Fatalf("affiliations: %+v", d.Affiliations)
	}
	for i, want := range wantAff {
		if d.Affiliations[i] != want {
			t.Fatalf("affiliation %d = %+v, want %+v", i, d.Affiliations[i], want)
		}
	}
}

func TestDeriveRunnersCandidates(t *testing.T) {
	records := []internal.VoteRecord{
		{VID: "vi-0000000000", OrgNID: "MSZP", CandidateName: "KISS JÁNOS"},
		{VID: "vi-0000000001", OrgNID: "MDF", CandidateName: "NAGY ÉVA"},
		{VID: "vi-0000000002", OrgNID: "FIDESZ"},
		{VID: "vi-0000000003", OrgNID: "MSZP", CandidateName: "KISS JÁNOS"},
	}

	d := DeriveRunners(records)

	if len(d.Candidates) != 2 {
		t.Fatalf("candidates: %+v", d.Candidates)
	}
	// one run edge per individual-race tally, including the same
	// candidate in another precinct
	if len(d.Runs) != 3 {
		t.Fatalf("runs: %+v", d.Runs)
	}
	if d.Runs[0].VoteVID != "vi-0000000000" || d.Runs[0].CandidateCID != "KISS JÁNOS" {
		t.Fatalf("run: %+v", d.Runs[0])
	}
}
