package pipeline

import (
	"strings"

	"github.com/sscu-budapest/electiondata/internal/config"
	"github.com/sscu-budapest/electiondata/internal/util"
)

// metaPivot is the wide form of the page-level metadata rows: one map of
// variable name to numeric value per page, keyed both by the canonical and
// the raw scraped label. First occurrence wins. Legacy registry columns are
// held out of the canonical map: their rewritten names collide with modern
// registry columns and would flip generation detection.
type metaPivot struct {
	order  []string
	byMeta map[string]*pageVars
}

type pageVars struct {
	clean map[string]float64
	raw   map[string]float64
}

// ReconcileEligibleVoters merges the mutually-exclusive column-name variants
// of "eligible voters registered at this precinct" into one count per page.
//
// Two scrape generations exist and disagree: newer forms repeat the same
// quantity under variant names, so variants combine via max (never sum, to
// avoid double counting); older forms split the quantity across disjoint
// registry columns, which are summed. strategy selects the path, "auto"
// detects it from which labels occur in the snapshot. The chosen strategy is
// returned for the run log.
func ReconcileEligibleVoters(metaRows []MetaRow, strategy string) (map[string]float64, string) {
	pivot := buildMetaPivot(metaRows)

	if strategy == config.EligibleAuto {
		strategy = config.EligibleSum
		if pivot.hasAny(eligibleCols) {
			strategy = config.EligibleMax
		}
	}

	counts := map[string]float64{}
	for _, metaID := range pivot.order {
		vars := pivot.byMeta[metaID]
		if strategy == config.EligibleMax {
			if v, ok := maxOf(vars.clean, eligibleCols); ok {
				counts[metaID] = v
			}
			continue
		}
		if v, ok := sumRegistryCols(vars.raw); ok {
			counts[metaID] = v
		}
	}
	return counts, strategy
}

func buildMetaPivot(metaRows []MetaRow) *metaPivot {
	p := &metaPivot{byMeta: map[string]*pageVars{}}
	for _, row := range metaRows {
		if row.Rel != "info" && row.Rel != "Pártlista" {
			continue
		}
		// Difference columns carry signed +/- annotations, and anything
		// without a digit is a label, not a quantity.
		if !util.HasDigit(row.Value) || strings.Contains(row.Variable, "Eltér") {
			continue
		}
		n, err := util.ParseCount(row.Value)
		if err != nil {
			continue
		}
		vars, ok := p.byMeta[row.MetaID]
		if !ok {
			vars = &pageVars{clean: map[string]float64{}, raw: map[string]float64{}}
			p.byMeta[row.MetaID] = vars
			p.order = append(p.order, row.MetaID)
		}
		if _, seen := vars.raw[row.RawVariable]; !seen {
			vars.raw[row.RawVariable] = float64(n)
		}
		if isLegacyExact(row.RawVariable) {
			continue
		}
		if _, seen := vars.clean[row.Variable]; !seen {
			vars.clean[row.Variable] = float64(n)
		}
	}
	return p
}

func (p *metaPivot) hasAny(cols []string) bool {
	for _, vars := range p.byMeta {
		for _, c := range cols {
			if _, ok := vars.clean[c]; ok {
				return true
			}
		}
	}
	return false
}

func maxOf(vars map[string]float64, cols []string) (float64, bool) {
	best, found := 0.0, false
	for _, c := range cols {
		v, ok := vars[c]
		if !ok {
			continue
		}
		if !found || v > best {
			best = v
		}
		found = true
	}
	return best, found
}

// sumRegistryCols adds up every registry-prefix column plus the two exact
// legacy variants, matched on raw scraped labels since the rewrite table
// folds the legacy names into modern ones. The columns are disjoint in this
// generation, so summing is safe.
func sumRegistryCols(vars map[string]float64) (float64, bool) {
	total, found := 0.0, false
	for name, v := range vars {
		if strings.Contains(name, "névjegy") || isLegacyExact(name) {
			total += v
			found = true
		}
	}
	return total, found
}

func isLegacyExact(name string) bool {
	for _, c := range legacyEligibleExact {
		if name == c {
			return true
		}
	}
	return false
}
