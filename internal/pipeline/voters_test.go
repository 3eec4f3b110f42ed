package pipeline

import (
	"testing"

	"github.com/sscu-budapest/electiondata/internal"
	"github.com/sscu-budapest/electiondata/internal/config"
)

func metaRow(meta, variable, value string) MetaRow {
	return MetaRow{MetaID: meta, TabID: "t0", Rel: "info", Variable: variable, RawVariable: variable, Value: value}
}

func TestReconcileEligibleVotersMax(t *testing.T) {
	rows := []MetaRow{
		metaRow("m1", "A névjegyzékben szereplők száma összesen", "500"),
		metaRow("m1", "Szavazóként megjelentek száma összesen", "210"),
	}

	counts, strategy := ReconcileEligibleVoters(rows, config.EligibleAuto)
	if strategy != config.EligibleMax {
		t.Fatalf("strategy = %q", strategy)
	}
	if got := counts["m1"]; got != 500.0 {
		t.Fatalf("m1 = %v, want 500", got)
	}
}

func TestReconcileEligibleVotersMaxNotSum(t *testing.T) {
	// Overlapping variants describe the same quantity; take the max,
	// never the sum.
	rows := []MetaRow{
		metaRow("m1", "A névjegyzékben szereplők száma összesen", "500"),
		metaRow("m1", "A választópolgárok száma összesen", "480"),
	}

	counts, _ := ReconcileEligibleVoters(rows, config.EligibleMax)
	if got := counts["m1"]; got != 500.0 {
		t.Fatalf("m1 = %v, want 500", got)
	}
}

func TestReconcileEligibleVotersLegacySum(t *testing.T) {
	rows := []MetaRow{
		metaRow("m1", "A névjegyzékben maradt választópolgárok száma", "300"),
		metaRow("m1", "Átjelentkezett választópolgárok száma", "20"),
	}

	counts, strategy := ReconcileEligibleVoters(rows, config.EligibleAuto)
	if strategy != config.EligibleSum {
		t.Fatalf("strategy = %q", strategy)
	}
	if got := counts["m1"]; got != 320.0 {
		t.Fatalf("m1 = %v, want 320", got)
	}
}

func TestReconcileEligibleVotersLegacyThroughReshape(t *testing.T) {
	// The legacy column "A választó polgárok száma összesen" is rewritten
	// into a modern registry name by the variable cleanup. Routed through
	// the reshaper, it must still be matched on its raw label: counted by
	// the sum path and never flipping detection to the max generation.
	cells := []internal.MeltCell{
		cell("m1", "t0", 0, "A névjegyzékben maradt választópolgárok száma", "300"),
		cell("m1", "t0", 1, "A választó polgárok száma összesen", "20"),
	}

	res, err := Reshape(cells)
	if err != nil {
		t.Fatal(err)
	}

	counts, strategy := ReconcileEligibleVoters(res.MetaRows, config.EligibleAuto)
	if strategy != config.EligibleSum {
		t.Fatalf("strategy = %q", strategy)
	}
	if got := counts["m1"]; got != 320.0 {
		t.Fatalf("m1 = %v, want 320", got)
	}

	counts, _ = ReconcileEligibleVoters(res.MetaRows, config.EligibleSum)
	if got := counts["m1"]; got != 320.0 {
		t.Fatalf("forced sum: m1 = %v, want 320", got)
	}
}

func TestReconcileEligibleVotersAbsent(t *testing.T) {
	rows := []MetaRow{
		metaRow("m1", "Szavazóként megjelentek száma összesen", "210"),
	}

	counts, _ := ReconcileEligibleVoters(rows, config.EligibleMax)
	if _, ok := counts["m1"]; ok {
		t.Fatalf("expected m1 absent, got %v", counts["m1"])
	}
}

func TestReconcileSkipsNonQuantities(t *testing.T) {
	rows := []MetaRow{
		{MetaID: "m1", TabID: "t0", Rel: "Egyéni", Variable: "A névjegyzékben szereplők száma összesen", Value: "999"},
		metaRow("m1", "Eltérés a szavazóként megjelentek számától (többlet: + / hiányzó: -)", "4"),
		metaRow("m1", "A névjegyzékben szereplők száma összesen", "500"),
	}

	counts, _ := ReconcileEligibleVoters(rows, config.EligibleMax)
	if got := counts["m1"]; got != 500.0 {
		t.Fatalf("m1 = %v, want 500", got)
	}
}
