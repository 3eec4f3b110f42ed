package collect

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sscu-budapest/electiondata/internal"
)

// ParseMetaCSV reads the per-page metadata table accompanying a snapshot
// directory. Expected header: meta_id, held_date, is_individual,
// is_second_round, region_name, main_name, loc, loc_id, info.
func ParseMetaCSV(r io.Reader) ([]internal.ElectionMeta, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty metadata file")
	}

	idx := map[string]int{}
	for i, name := range records[0] {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"meta_id", "held_date", "is_individual", "is_second_round", "region_name", "main_name"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("metadata file missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]internal.ElectionMeta, 0, len(records)-1)
	for n, row := range records[1:] {
		held, err := parseDate(field(row, "held_date"))
		if err != nil {
			return nil, fmt.Errorf("metadata row %d: %w", n+2, err)
		}
		out = append(out, internal.ElectionMeta{
			MetaID:        field(row, "meta_id"),
			HeldDate:      held,
			IsIndividual:  parseBool(field(row, "is_individual")),
			IsSecondRound: parseBool(field(row, "is_second_round")),
			RegionName:    field(row, "region_name"),
			MainName:      field(row, "main_name"),
			Loc:           field(row, "loc"),
			LocID:         field(row, "loc_id"),
			Info:          field(row, "info"),
		})
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes":
		return true
	}
	return false
}
