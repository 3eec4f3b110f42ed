package pipeline

import (
	"strings"
	"testing"

	"github.com/sscu-budapest/electiondata/internal"
)

func cell(meta, tab string, index int, variable, value string) internal.MeltCell {
	return internal.MeltCell{MetaID: meta, TabID: tab, Index: index, Variable: variable, Value: value}
}

func TestReshapeVoteRow(t *testing.T) {
	cells := []internal.MeltCell{
		cell("m1", "t1", 0, "Jelölő szervezet(ek)", "FIDESZ"),
		cell("m1", "t1", 0, "Szavazat", "120"),
	}

	res, err := Reshape(cells)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.VoteRows) != 1 || len(res.MetaRows) != 0 {
		t.Fatalf("got %d vote rows, %d meta rows", len(res.VoteRows), len(res.MetaRows))
	}

	row := res.VoteRows[0]
	if row.Variable != "Szavazat" || row.Value != "120" {
		t.Fatalf("unexpected surviving row: %+v", row)
	}
	if row.Indicators["Jelölő szervezet(ek)"] != "FIDESZ" {
		t.Fatalf("indicator not carried: %+v", row.Indicators)
	}
}

func TestReshapeMetaRow(t *testing.T) {
	cells := []internal.MeltCell{
		cell("m1", "t0", 0, "A névjegyzékben lévő választópolgárok száma", "500"),
	}

	res, err := Reshape(cells)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.MetaRows) != 1 {
		t.Fatalf("got %d meta rows", len(res.MetaRows))
	}

	row := res.MetaRows[0]
	if row.Rel != "info" {
		t.Fatalf("rel = %q", row.Rel)
	}
	// variable cleanup must canonicalize the legacy label
	if row.Variable != "A névjegyzékben szereplők száma összesen" {
		t.Fatalf("variable = %q", row.Variable)
	}
}

func TestReshapePartyListRel(t *testing.T) {
	cells := []internal.MeltCell{
		cell("m1", "t2", 3, "Sorszám", "Pártlista"),
		cell("m1", "t2", 3, "Szavazóként megjelentek száma összesen", "210"),
	}

	res, err := Reshape(cells)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.MetaRows) != 1 {
		t.Fatalf("got %d meta rows", len(res.MetaRows))
	}
	if res.MetaRows[0].Rel != "Pártlista" {
		t.Fatalf("rel = %q", res.MetaRows[0].Rel)
	}
}

func TestReshapeIndicatorCardinality(t *testing.T) {
	cells := []internal.MeltCell{
		cell("m1", "t1", 0, "Jelölt neve", "KISS JÁNOS"),
		cell("m1", "t1", 0, "Jelölt neve", "NAGY ÉVA"),
		cell("m1", "t1", 0, "Szavazat", "12"),
	}

	_, err := Reshape(cells)
	if err == nil {
		t.Fatal("want cardinality error")
	}
	if !strings.Contains(err.Error(), "cardinality") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReshapeRejectsTallylessVoteRow(t *testing.T) {
	// A row announcing a candidate but carrying no tally cell means the
	// scrape lost data; it must not vanish silently.
	cells := []internal.MeltCell{
		cell("m1", "t1", 0, "Jelölt neve", "KISS JÁNOS"),
		cell("m1", "t1", 0, "Jelölő szervezet(ek)", "MDF"),
	}

	_, err := Reshape(cells)
	if err == nil {
		t.Fatal("want missing-tally error")
	}
	if !strings.Contains(err.Error(), "no tally cell") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPromoteShortHeaders(t *testing.T) {
	cells := []internal.MeltCell{
		cell("m1", "t1", 0, "B", "Kapott érvényes szavazat"),
		cell("m1", "t1", 1, "B", "77"),
		cell("m1", "t1", 2, "B", "Kapott érvényes szavazat"),
	}

	out := promoteShortHeaders(cells)
	if len(out) != 1 {
		t.Fatalf("got %d cells, want 1: %+v", len(out), out)
	}
	if out[0].Variable != "Kapott érvényes szavazat" || out[0].Value != "77" {
		t.Fatalf("unexpected cell: %+v", out[0])
	}
}

func TestReshapeDropsIndicatorReannouncement(t *testing.T) {
	cells := []internal.MeltCell{
		cell("m1", "t1", 4, "Sorszám", "5"),
		cell("m1", "t1", 4, "Jelölt neve", "KISS JÁNOS"),
		cell("m1", "t1", 4, "Jelölő szervezet(ek)", "MDF"),
		cell("m1", "t1", 4, "Szavazat", "42"),
	}

	res, err := Reshape(cells)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.VoteRows) != 1 {
		t.Fatalf("got %d vote rows: %+v", len(res.VoteRows), res.VoteRows)
	}
	row := res.VoteRows[0]
	if row.Indicators["index"] != "5" || row.Indicators["Jelölt neve"] != "KISS JÁNOS" {
		t.Fatalf("indicators: %+v", row.Indicators)
	}
}
