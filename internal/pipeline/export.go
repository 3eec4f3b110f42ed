package pipeline

import (
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sscu-budapest/electiondata/internal/storage"
)

// ExportTablesToXLSX writes every entity table to one workbook, one sheet
// per table, for manual inspection of a finished load.
func ExportTablesToXLSX(db *storage.DB, outputPath string) error {
	f := excelize.NewFile()
	first := f.GetSheetName(0)

	elections, err := db.ListElections()
	if err != nil {
		return err
	}
	rows := [][]any{}
	for _, e := range elections {
		rows = append(rows, []any{e.EID, e.IsIndividual, e.StartDate.UTC().Format(time.RFC3339)})
	}
	if err := writeSheet(f, "elections", []string{"eid", "is_individual", "start_date"}, rows); err != nil {
		return err
	}

	units, err := db.ListGeoUnits()
	if err != nil {
		return err
	}
	rows = rows[:0]
	for _, u := range units {
		rows = append(rows, []any{u.GID, u.Name, u.LevelInfo})
	}
	if err := writeSheet(f, "geographical_units", []string{"gid", "name", "level_info"}, rows); err != nil {
		return err
	}

	edges, err := db.ListHierarchy()
	if err != nil {
		return err
	}
	rows = rows[:0]
	for _, e := range edges {
		rows = append(rows, []any{e.ParentGID, e.ChildGID})
	}
	if err := writeSheet(f, "district_hierarchy", []string{"parent_gid", "child_gid"}, rows); err != nil {
		return err
	}

	orgs, err := db.ListOrgs()
	if err != nil {
		return err
	}
	rows = rows[:0]
	for _, o := range orgs {
		rows = append(rows, []any{o.NID})
	}
	if err := writeSheet(f, "nominating_organizations", []string{"nid"}, rows); err != nil {
		return err
	}

	parties, err := db.ListParties()
	if err != nil {
		return err
	}
	rows = rows[:0]
	for _, p := range parties {
		rows = append(rows, []any{p.PID})
	}
	if err := writeSheet(f, "parties", []string{"pid"}, rows); err != nil {
		return err
	}

	affiliations, err := db.ListAffiliations()
	if err != nil {
		return err
	}
	rows = rows[:0]
	for _, a := range affiliations {
		rows = append(rows, []any{a.PartyPID, a.OrgNID})
	}
	if err := writeSheet(f, "affiliations", []string{"party_pid", "org_nid"}, rows); err != nil {
		return err
	}

	candidates, err := db.ListCandidates()
	if err != nil {
		return err
	}
	rows = rows[:0]
	for _, c := range candidates {
		rows = append(rows, []any{c.CID})
	}
	if err := writeSheet(f, "candidates", []string{"cid"}, rows); err != nil {
		return err
	}

	precincts, err := db.ListPrecincts()
	if err != nil {
		return err
	}
	rows = rows[:0]
	for _, p := range precincts {
		rows = append(rows, []any{p.PID, p.Name, p.GeoInfo, p.EligibleVoters, p.ExternalVotes, p.GeoParentGID, p.ElectionEID})
	}
	if err := writeSheet(f, "precincts",
		[]string{"pid", "name", "geo_info", "eligible_voters", "external_votes", "geo_parent_gid", "election_eid"}, rows); err != nil {
		return err
	}

	records, err := db.ListVoteRecords()
	if err != nil {
		return err
	}
	rows = rows[:0]
	for _, r := range records {
		rows = append(rows, []any{r.VID, r.VoteCount, r.OrgNID, r.PrecinctPID})
	}
	if err := writeSheet(f, "vote_records", []string{"vid", "vote_count", "org_nid", "precinct_pid"}, rows); err != nil {
		return err
	}

	runs, err := db.ListRuns()
	if err != nil {
		return err
	}
	rows = rows[:0]
	for _, r := range runs {
		rows = append(rows, []any{r.VoteVID, r.CandidateCID})
	}
	if err := writeSheet(f, "runs", []string{"vote_vid", "candidate_cid"}, rows); err != nil {
		return err
	}

	if err := f.DeleteSheet(first); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func writeSheet(f *excelize.File, name string, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(name, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
