package pipeline

import (
	"fmt"
	"strings"

	"github.com/sscu-budapest/electiondata/internal"
	"github.com/sscu-budapest/electiondata/internal/util"
)

// LabeledRow is a melt cell after indicator resolution: the surviving value
// cell plus the indicator values announced in its row scope.
type LabeledRow struct {
	MetaID     string
	TabID      string
	Index      int
	Variable   string
	Value      string
	Indicators map[string]string
}

// MetaRow is a page-level metadata cell: a labeled row that carried no
// candidate/list identity. Variable is canonicalized; RawVariable keeps the
// scraped label, which the legacy eligible-voter columns are matched on
// (their rewritten forms collide with modern registry column names).
type MetaRow struct {
	MetaID      string
	TabID       string
	Index       int
	Rel         string
	Variable    string
	RawVariable string
	Value       string
}

// Reshaped splits one melt snapshot into page-level metadata rows and
// per-candidate/per-list vote rows.
type Reshaped struct {
	MetaRows []MetaRow
	VoteRows []LabeledRow
}

// Reshape runs the full reshaping pass: short-label header promotion, then
// the indicator join, then meta/vote classification.
func Reshape(cells []internal.MeltCell) (*Reshaped, error) {
	labeled, err := indicatorJoin(promoteShortHeaders(cells))
	if err != nil {
		return nil, err
	}

	res := &Reshaped{}
	for _, row := range labeled {
		if isVoteRow(row) {
			res.VoteRows = append(res.VoteRows, row)
			continue
		}
		rel := row.Indicators["index"]
		if rel == "" {
			rel = "info"
		}
		res.MetaRows = append(res.MetaRows, MetaRow{
			MetaID:      row.MetaID,
			TabID:       row.TabID,
			Index:       row.Index,
			Rel:         rel,
			Variable:    util.Rewrite(row.Variable, VarRules),
			RawVariable: row.Variable,
			Value:       row.Value,
		})
	}
	return res, nil
}

// promoteShortHeaders resolves repeated sub-tables whose real column header
// is announced as the first data row under a short marker label (length <= 3
// after the Sorszám rename). The announced value becomes the variable name
// for the column's remaining rows; re-announcements of it are dropped.
func promoteShortHeaders(cells []internal.MeltCell) []internal.MeltCell {
	type key struct{ meta, tab, variable string }

	promos := map[key]string{}
	for _, c := range cells {
		v := strings.ReplaceAll(c.Variable, "Sorszám", "index")
		if c.Index == 0 && len([]rune(v)) <= 3 && strings.TrimSpace(c.Value) != "" {
			k := key{c.MetaID, c.TabID, v}
			if _, seen := promos[k]; !seen {
				promos[k] = c.Value
			}
		}
	}

	out := make([]internal.MeltCell, 0, len(cells))
	for _, c := range cells {
		c.Variable = strings.ReplaceAll(c.Variable, "Sorszám", "index")
		if header, ok := promos[key{c.MetaID, c.TabID, c.Variable}]; ok {
			if c.Value == header {
				continue
			}
			c.Variable = header
		}
		out = append(out, c)
	}
	return out
}

// indicatorJoin merges the table against its own projection onto each
// designated indicator variable, per (meta, tab, row) scope. The indicator's
// value becomes a join key on every other cell of the scope; cells whose
// value re-announces an indicator are dropped so the indicator row is never
// counted as data.
//
// An indicator occurring more than once in a scope means an unhandled page
// layout and fails the run: silent misattribution is worse than a retry
// after adding a normalization rule.
func indicatorJoin(cells []internal.MeltCell) ([]LabeledRow, error) {
	type key struct {
		meta, tab string
		index     int
	}

	order := make([]key, 0)
	groups := map[key][]internal.MeltCell{}
	for _, c := range cells {
		k := key{c.MetaID, c.TabID, c.Index}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], c)
	}

	out := make([]LabeledRow, 0, len(cells))
	for _, k := range order {
		group := groups[k]

		indicators := map[string]string{}
		for _, ind := range indicatorCols {
			for _, c := range group {
				if c.Variable != ind || strings.TrimSpace(c.Value) == "" {
					continue
				}
				if prev, ok := indicators[ind]; ok && prev != c.Value {
					return nil, fmt.Errorf(
						"indicator %q has cardinality > 1 in meta=%s tab=%s row=%d (%q vs %q): unhandled page layout, add a normalization rule",
						ind, k.meta, k.tab, k.index, prev, c.Value)
				}
				indicators[ind] = c.Value
			}
		}

		survived := 0
		for _, c := range group {
			if reannouncesIndicator(c.Value, indicators) {
				continue
			}
			survived++
			out = append(out, LabeledRow{
				MetaID:     c.MetaID,
				TabID:      c.TabID,
				Index:      c.Index,
				Variable:   c.Variable,
				Value:      c.Value,
				Indicators: indicators,
			})
		}

		// A candidate/list row must carry a tally cell beyond its own
		// identity announcements.
		if survived == 0 && hasIdentity(indicators) {
			return nil, fmt.Errorf(
				"vote row meta=%s tab=%s row=%d has no tally cell, only identity announcements",
				k.meta, k.tab, k.index)
		}
	}
	return out, nil
}

func hasIdentity(indicators map[string]string) bool {
	for _, col := range idCols {
		if indicators[col] != "" {
			return true
		}
	}
	return false
}

func reannouncesIndicator(value string, indicators map[string]string) bool {
	for _, v := range indicators {
		if value == v {
			return true
		}
	}
	return false
}

func isVoteRow(row LabeledRow) bool {
	return hasIdentity(row.Indicators)
}
