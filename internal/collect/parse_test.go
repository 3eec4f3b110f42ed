package collect

import (
	"strings"
	"testing"

	"github.com/sscu-budapest/electiondata/internal"
)

const votePage = `<html><body>
<table>
<tr><td>A névjegyzékben szereplők száma összesen</td><td>500</td></tr>
<tr><td>Szavazóként megjelentek száma összesen</td><td>210</td></tr>
<tr><td></td><td>ignored</td></tr>
</table>
<table>
<tr><th>Sorszám</th><th>Jelölt neve</th><th>Jelölő szervezet(ek)</th><th>Szavazat</th></tr>
<tr><td>1.</td><td>KISS JÁNOS</td><td>FIDESZ</td><td>120</td></tr>
<tr><td>2.</td><td>NAGY ÉVA</td><td>MDF</td><td></td></tr>
</table>
</body></html>`

func TestParseResultSnapshot(t *testing.T) {
	cells, err := ParseResultSnapshot("m1", strings.NewReader(votePage))
	if err != nil {
		t.Fatal(err)
	}

	want := []internal.MeltCell{
		{MetaID: "m1", TabID: "t0", Index: 0, Variable: "A névjegyzékben szereplők száma összesen", Value: "500"},
		{MetaID: "m1", TabID: "t0", Index: 1, Variable: "Szavazóként megjelentek száma összesen", Value: "210"},
		{MetaID: "m1", TabID: "t1", Index: 0, Variable: "Sorszám", Value: "1."},
		{MetaID: "m1", TabID: "t1", Index: 0, Variable: "Jelölt neve", Value: "KISS JÁNOS"},
		{MetaID: "m1", TabID: "t1", Index: 0, Variable: "Jelölő szervezet(ek)", Value: "FIDESZ"},
		{MetaID: "m1", TabID: "t1", Index: 0, Variable: "Szavazat", Value: "120"},
		{MetaID: "m1", TabID: "t1", Index: 1, Variable: "Sorszám", Value: "2."},
		{MetaID: "m1", TabID: "t1", Index: 1, Variable: "Jelölt neve", Value: "NAGY ÉVA"},
		{MetaID: "m1", TabID: "t1", Index: 1, Variable: "Jelölő szervezet(ek)", Value: "MDF"},
	}
	if len(cells) != len(want) {
		t.Fatalf("got %d cells: %+v", len(cells), cells)
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cell %d: got %+v want %+v", i, cells[i], want[i])
		}
	}
}

func TestParseLabelValueMultiColumn(t *testing.T) {
	page := `<table>
<tr><td>Urnában lévő szavazólapok száma</td><td>200</td><td>10</td></tr>
</table>`
	cells, err := ParseResultSnapshot("m1", strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 2 {
		t.Fatalf("got %+v", cells)
	}
	if cells[0].Variable != "Urnában lévő szavazólapok száma" || cells[0].Value != "200" {
		t.Fatalf("got %+v", cells[0])
	}
	if cells[1].Variable != "Urnában lévő szavazólapok száma/1" || cells[1].Value != "10" {
		t.Fatalf("got %+v", cells[1])
	}
}

func TestParseNormalizesWhitespace(t *testing.T) {
	page := `<table>
<tr><td>A   névjegyzékben
szereplők száma</td><td>1&nbsp;080</td></tr>
</table>`
	cells, err := ParseResultSnapshot("m1", strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 1 {
		t.Fatalf("got %+v", cells)
	}
	if cells[0].Variable != "A névjegyzékben szereplők száma" {
		t.Fatalf("variable %q", cells[0].Variable)
	}
}
