package collect

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sscu-budapest/electiondata/internal"
	"github.com/sscu-budapest/electiondata/internal/storage"
)

// IngestResult summarizes one staging pass.
type IngestResult struct {
	Pages int
	Cells int
	Metas int
}

// IngestDir stages a snapshot directory: every *.html file is melted (the
// filename without extension is the page's meta_id) and the metadata CSV is
// loaded alongside. Both staging tables are replaced wholesale, so
// re-ingesting the same directory is idempotent.
func IngestDir(db *storage.DB, dir, metaPath string) (IngestResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return IngestResult{}, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".html") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	cells := []internal.MeltCell{}
	for _, name := range names {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return IngestResult{}, err
		}
		metaID := strings.TrimSuffix(name, filepath.Ext(name))
		parsed, err := ParseResultSnapshot(metaID, f)
		_ = f.Close()
		if err != nil {
			return IngestResult{}, fmt.Errorf("parse snapshot %s: %w", name, err)
		}
		cells = append(cells, parsed...)
	}

	metaFile, err := os.Open(metaPath)
	if err != nil {
		return IngestResult{}, err
	}
	defer metaFile.Close()
	metas, err := ParseMetaCSV(metaFile)
	if err != nil {
		return IngestResult{}, fmt.Errorf("parse metadata %s: %w", metaPath, err)
	}

	if err := db.ReplaceMeltCells(cells); err != nil {
		return IngestResult{}, err
	}
	if err := db.ReplaceElectionMeta(metas); err != nil {
		return IngestResult{}, err
	}
	if err := db.SetMetadata("snapshot_dir", dir); err != nil {
		return IngestResult{}, err
	}

	return IngestResult{Pages: len(names), Cells: len(cells), Metas: len(metas)}, nil
}
