package pipeline

import (
	"fmt"
	"strings"

	"github.com/sscu-budapest/electiondata/internal"
	"github.com/sscu-budapest/electiondata/internal/util"
)

// ExtractVoteRecords turns the vote rows of a reshaped snapshot into typed
// vote records. Per row, exactly one count column and exactly one identity
// column must be populated; violations abort the run because they signal a
// form layout the rewrite tables have not seen yet.
//
// vids are zero-padded ordinals assigned in row order, so output is
// deterministic for a stable input ordering. No deduplication happens here:
// repeated scrapes of one page are a collection problem, not a parsing one.
func ExtractVoteRecords(voteRows []LabeledRow) ([]internal.VoteRecord, error) {
	if err := checkSingleVoteTab(voteRows); err != nil {
		return nil, err
	}

	type scope struct {
		meta, tab string
		index     int
	}
	counted := map[scope]bool{}

	records := make([]internal.VoteRecord, 0, len(voteRows))
	for _, row := range voteRows {
		// Promoted headers arrive uncanonicalized ("Kapott érvényes
		// szavazat" with spaces), so clean before the invariant check.
		if !isCountCol(util.Rewrite(row.Variable, VarRules)) {
			return nil, fmt.Errorf(
				"vote row meta=%s tab=%s row=%d has variable %q, want exactly one of %v",
				row.MetaID, row.TabID, row.Index, row.Variable, voteCountCols)
		}
		k := scope{row.MetaID, row.TabID, row.Index}
		if counted[k] {
			return nil, fmt.Errorf(
				"vote row meta=%s tab=%s row=%d has more than one populated count column, want exactly 1 of %v",
				row.MetaID, row.TabID, row.Index, voteCountCols)
		}
		counted[k] = true

		identity, err := voteIdentity(row)
		if err != nil {
			return nil, err
		}

		count, err := util.ParseCount(row.Value)
		if err != nil {
			return nil, fmt.Errorf("vote count meta=%s tab=%s row=%d: %w", row.MetaID, row.TabID, row.Index, err)
		}

		records = append(records, internal.VoteRecord{
			VID:           fmt.Sprintf("vi-%010d", len(records)),
			VoteCount:     count,
			OrgNID:        CleanOrgName(identity),
			PrecinctPID:   row.MetaID,
			CandidateName: row.Indicators[candidateCol],
		})
	}
	return records, nil
}

// CleanOrgName canonicalizes a slate identifier: uppercase, then the ordered
// organization rewrite table. Unrecognized names pass through unchanged and
// become their own entity.
func CleanOrgName(raw string) string {
	return util.Rewrite(strings.ToUpper(raw), OrgRules)
}

// checkSingleVoteTab enforces that all vote rows of one page come from a
// single tab. Two vote tabs on one page is an unexpected layout.
func checkSingleVoteTab(voteRows []LabeledRow) error {
	tabs := map[string]string{}
	for _, row := range voteRows {
		if prev, ok := tabs[row.MetaID]; ok && prev != row.TabID {
			return fmt.Errorf("meta=%s has vote rows in multiple tabs (%s, %s): unhandled page layout", row.MetaID, prev, row.TabID)
		}
		tabs[row.MetaID] = row.TabID
	}
	return nil
}

func isCountCol(variable string) bool {
	for _, c := range voteCountCols {
		if variable == c {
			return true
		}
	}
	return false
}

func voteIdentity(row LabeledRow) (string, error) {
	populated := make([]string, 0, 1)
	value := ""
	for _, col := range voteIDCols {
		if v := row.Indicators[col]; v != "" {
			populated = append(populated, col)
			value = v
		}
	}
	if len(populated) != 1 {
		return "", fmt.Errorf(
			"vote row meta=%s tab=%s row=%d has %d populated identity columns %v, want exactly 1",
			row.MetaID, row.TabID, row.Index, len(populated), populated)
	}
	return value, nil
}
