package collect

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sscu-budapest/electiondata/internal"
	"github.com/sscu-budapest/electiondata/internal/util"
)

// ParseResultSnapshot melts every table of one saved result page into long
// format: one cell per (tab, row, column label, value). Tables with a
// header row melt column-wise under the header labels; bare label/value
// tables melt row-wise with the first cell as the label.
func ParseResultSnapshot(metaID string, r io.Reader) ([]internal.MeltCell, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	out := []internal.MeltCell{}
	doc.Find("table").Each(func(t int, table *goquery.Selection) {
		tabID := fmt.Sprintf("t%d", t)
		rows := table.Find("tr")
		if rows.Length() == 0 {
			return
		}

		if rows.First().Find("th").Length() > 0 {
			out = append(out, meltHeadered(metaID, tabID, rows)...)
			return
		}
		out = append(out, meltLabelValue(metaID, tabID, rows)...)
	})
	return out, nil
}

func meltHeadered(metaID, tabID string, rows *goquery.Selection) []internal.MeltCell {
	headers := []string{}
	rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, util.NormalizeSpaces(cell.Text()))
	})

	out := []internal.MeltCell{}
	rows.Slice(1, rows.Length()).Each(func(i int, row *goquery.Selection) {
		row.Find("th,td").Each(func(c int, cell *goquery.Selection) {
			value := util.NormalizeSpaces(cell.Text())
			if value == "" {
				return
			}
			variable := fmt.Sprintf("c%d", c)
			if c < len(headers) && headers[c] != "" {
				variable = headers[c]
			}
			out = append(out, internal.MeltCell{
				MetaID:   metaID,
				TabID:    tabID,
				Index:    i,
				Variable: variable,
				Value:    value,
			})
		})
	})
	return out
}

func meltLabelValue(metaID, tabID string, rows *goquery.Selection) []internal.MeltCell {
	out := []internal.MeltCell{}
	rows.Each(func(i int, row *goquery.Selection) {
		cells := []string{}
		row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, util.NormalizeSpaces(cell.Text()))
		})
		if len(cells) < 2 || strings.TrimSpace(cells[0]) == "" {
			return
		}
		for c, value := range cells[1:] {
			if value == "" {
				continue
			}
			variable := cells[0]
			if c > 0 {
				variable = fmt.Sprintf("%s/%d", cells[0], c)
			}
			out = append(out, internal.MeltCell{
				MetaID:   metaID,
				TabID:    tabID,
				Index:    i,
				Variable: variable,
				Value:    value,
			})
		}
	})
	return out
}
