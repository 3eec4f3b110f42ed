package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sscu-budapest/electiondata/internal/collect"
	"github.com/sscu-budapest/electiondata/internal/config"
	"github.com/sscu-budapest/electiondata/internal/pipeline"
	"github.com/sscu-budapest/electiondata/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "snapshot:parse":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", cfg.SnapshotDir, "snapshot directory")
		meta := fs.String("meta", "", "metadata csv path (default <dir>/meta.csv)")
		_ = fs.Parse(os.Args[2:])
		res, err := ingest(db, *dir, *meta)
		must(err)
		fmt.Printf("snapshots staged pages=%d cells=%d metas=%d\n", res.Pages, res.Cells, res.Metas)
	case "load":
		svc := pipeline.NewLoadService(db, cfg, log)
		res, err := svc.Load()
		must(err)
		fmt.Printf("load complete trace=%s precincts=%d votes=%d\n", res.TraceID, res.Counts["precincts"], res.Counts["vote_records"])
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", filepath.Join(cfg.OutputDir, "tables.xlsx"), "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		must(pipeline.ExportTablesToXLSX(db, *out))
		fmt.Printf("exported tables to %s\n", *out)
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", cfg.SnapshotDir, "snapshot directory")
		meta := fs.String("meta", "", "metadata csv path (default <dir>/meta.csv)")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		res, err := ingest(db, *dir, *meta)
		must(err)
		svc := pipeline.NewLoadService(db, cfg, log)
		loadRes, err := svc.Load()
		must(err)
		if strings.TrimSpace(*out) != "" {
			must(pipeline.ExportTablesToXLSX(db, *out))
		}
		fmt.Printf("run done pages=%d trace=%s precincts=%d votes=%d\n",
			res.Pages, loadRes.TraceID, loadRes.Counts["precincts"], loadRes.Counts["vote_records"])
	default:
		usage()
		os.Exit(1)
	}
}

func ingest(db *storage.DB, dir, meta string) (collect.IngestResult, error) {
	if strings.TrimSpace(meta) == "" {
		meta = filepath.Join(dir, "meta.csv")
	}
	return collect.IngestDir(db, dir, meta)
}

func usage() {
	fmt.Println("usage: electiondata <command>")
	fmt.Println("commands:")
	fmt.Println("  snapshot:parse --dir=./data/snapshots [--meta=./data/snapshots/meta.csv]")
	fmt.Println("  load")
	fmt.Println("  export:xlsx [--out=./out/tables.xlsx]")
	fmt.Println("  run --dir=... [--meta=...] [--out=...xlsx]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
