package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sscu-budapest/electiondata/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS melt_cells (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  metaId TEXT NOT NULL,
  tabId TEXT NOT NULL,
  rowIndex INTEGER NOT NULL,
  variable TEXT NOT NULL,
  value TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_melt_meta ON melt_cells(metaId, tabId);

CREATE TABLE IF NOT EXISTS election_meta (
  metaId TEXT PRIMARY KEY,
  heldDate TEXT NOT NULL,
  isIndividual INTEGER NOT NULL,
  isSecondRound INTEGER NOT NULL,
  regionName TEXT NOT NULL,
  mainName TEXT NOT NULL,
  loc TEXT,
  locId TEXT,
  info TEXT
);

CREATE TABLE IF NOT EXISTS elections (
  eid TEXT PRIMARY KEY,
  isIndividual INTEGER NOT NULL,
  startDate TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS geo_units (
  gid TEXT PRIMARY KEY,
  name TEXT,
  levelInfo TEXT
);

CREATE TABLE IF NOT EXISTS geo_hierarchy (
  parentGid TEXT NOT NULL,
  childGid TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS orgs (
  nid TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS parties (
  pid TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS affiliations (
  partyPid TEXT NOT NULL,
  orgNid TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS candidates (
  cid TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS precincts (
  pid TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  geoInfo TEXT,
  eligibleVoters REAL NOT NULL,
  externalVotes INTEGER NOT NULL,
  geoParentGid TEXT NOT NULL,
  electionEid TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS vote_records (
  vid TEXT PRIMARY KEY,
  voteCount INTEGER NOT NULL,
  orgNid TEXT NOT NULL,
  precinctPid TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_votes_precinct ON vote_records(precinctPid);

CREATE TABLE IF NOT EXISTS runs (
  voteVid TEXT NOT NULL,
  candidateCid TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS loads (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  totalMs REAL NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// replaceAll swaps a table's full contents in one transaction.
func (d *DB) replaceAll(table, insertSQL string, rows [][]any) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
		return err
	}

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(row...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ReplaceMeltCells(cells []internal.MeltCell) error {
	rows := make([][]any, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, []any{c.MetaID, c.TabID, c.Index, c.Variable, c.Value})
	}
	return d.replaceAll("melt_cells",
		`INSERT INTO melt_cells (metaId, tabId, rowIndex, variable, value) VALUES (?, ?, ?, ?, ?)`, rows)
}

func (d *DB) ListMeltCells() ([]internal.MeltCell, error) {
	rows, err := d.conn.Query(`SELECT metaId, tabId, rowIndex, variable, value FROM melt_cells ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.MeltCell
	for rows.Next() {
		var c internal.MeltCell
		if err := rows.Scan(&c.MetaID, &c.TabID, &c.Index, &c.Variable, &c.Value); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (d *DB) ReplaceElectionMeta(metas []internal.ElectionMeta) error {
	rows := make([][]any, 0, len(metas))
	for _, m := range metas {
		rows = append(rows, []any{
			m.MetaID, m.HeldDate.UTC().Format(time.RFC3339), boolInt(m.IsIndividual), boolInt(m.IsSecondRound),
			m.RegionName, m.MainName, m.Loc, m.LocID, m.Info,
		})
	}
	return d.replaceAll("election_meta",
		`INSERT INTO election_meta (metaId, heldDate, isIndividual, isSecondRound, regionName, mainName, loc, locId, info)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, rows)
}

func (d *DB) ListElectionMeta() ([]internal.ElectionMeta, error) {
	rows, err := d.conn.Query(`
SELECT metaId, heldDate, isIndividual, isSecondRound, regionName, mainName, loc, locId, info
FROM election_meta ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ElectionMeta
	for rows.Next() {
		var m internal.ElectionMeta
		var held string
		var indiv, second int
		if err := rows.Scan(&m.MetaID, &held, &indiv, &second, &m.RegionName, &m.MainName, &m.Loc, &m.LocID, &m.Info); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, held)
		if err != nil {
			return nil, err
		}
		m.HeldDate = t
		m.IsIndividual = indiv != 0
		m.IsSecondRound = second != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

func (d *DB) ReplaceElections(elections []internal.Election) error {
	rows := make([][]any, 0, len(elections))
	for _, e := range elections {
		rows = append(rows, []any{e.EID, boolInt(e.IsIndividual), e.StartDate.UTC().Format(time.RFC3339)})
	}
	return d.replaceAll("elections",
		`INSERT INTO elections (eid, isIndividual, startDate) VALUES (?, ?, ?)`, rows)
}

func (d *DB) ListElections() ([]internal.Election, error) {
	rows, err := d.conn.Query(`SELECT eid, isIndividual, startDate FROM elections ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Election
	for rows.Next() {
		var e internal.Election
		var indiv int
		var start string
		if err := rows.Scan(&e.EID, &indiv, &start); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return nil, err
		}
		e.IsIndividual = indiv != 0
		e.StartDate = t
		out = append(out, e)
	}
	return out, rows.Err()
}

// PurgeGeoUnits empties the geographical unit table. The table is rebuilt
// incrementally across hierarchy levels, so it gets purge+extend instead of
// replace-all.
func (d *DB) PurgeGeoUnits() error {
	_, err := d.conn.Exec(`DELETE FROM geo_units`)
	return err
}

func (d *DB) ExtendGeoUnits(units []internal.GeographicalUnit) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO geo_units (gid, name, levelInfo) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, u := range units {
		if _, err := stmt.Exec(u.GID, u.Name, u.LevelInfo); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (d *DB) ListGeoUnits() ([]internal.GeographicalUnit, error) {
	rows, err := d.conn.Query(`SELECT gid, name, levelInfo FROM geo_units ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.GeographicalUnit
	for rows.Next() {
		var u internal.GeographicalUnit
		if err := rows.Scan(&u.GID, &u.Name, &u.LevelInfo); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (d *DB) ReplaceHierarchy(edges []internal.DistrictHierarchy) error {
	rows := make([][]any, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, []any{e.ParentGID, e.ChildGID})
	}
	return d.replaceAll("geo_hierarchy",
		`INSERT INTO geo_hierarchy (parentGid, childGid) VALUES (?, ?)`, rows)
}

func (d *DB) ListHierarchy() ([]internal.DistrictHierarchy, error) {
	rows, err := d.conn.Query(`SELECT parentGid, childGid FROM geo_hierarchy ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.DistrictHierarchy
	for rows.Next() {
		var e internal.DistrictHierarchy
		if err := rows.Scan(&e.ParentGID, &e.ChildGID); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (d *DB) ReplaceOrgs(orgs []internal.NominatingOrganization) error {
	rows := make([][]any, 0, len(orgs))
	for _, o := range orgs {
		rows = append(rows, []any{o.NID})
	}
	return d.replaceAll("orgs", `INSERT INTO orgs (nid) VALUES (?)`, rows)
}

func (d *DB) ListOrgs() ([]internal.NominatingOrganization, error) {
	return listIDs(d, `SELECT nid FROM orgs ORDER BY rowid`, func(id string) internal.NominatingOrganization {
		return internal.NominatingOrganization{NID: id}
	})
}

func (d *DB) ReplaceParties(parties []internal.Party) error {
	rows := make([][]any, 0, len(parties))
	for _, p := range parties {
		rows = append(rows, []any{p.PID})
	}
	return d.replaceAll("parties", `INSERT INTO parties (pid) VALUES (?)`, rows)
}

func (d *DB) ListParties() ([]internal.Party, error) {
	return listIDs(d, `SELECT pid FROM parties ORDER BY rowid`, func(id string) internal.Party {
		return internal.Party{PID: id}
	})
}

func (d *DB) ReplaceAffiliations(affiliations []internal.Affiliation) error {
	rows := make([][]any, 0, len(affiliations))
	for _, a := range affiliations {
		rows = append(rows, []any{a.PartyPID, a.OrgNID})
	}
	return d.replaceAll("affiliations",
		`INSERT INTO affiliations (partyPid, orgNid) VALUES (?, ?)`, rows)
}

func (d *DB) ListAffiliations() ([]internal.Affiliation, error) {
	rows, err := d.conn.Query(`SELECT partyPid, orgNid FROM affiliations ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Affiliation
	for rows.Next() {
		var a internal.Affiliation
		if err := rows.Scan(&a.PartyPID, &a.OrgNID); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (d *DB) ReplaceCandidates(candidates []internal.Candidate) error {
	rows := make([][]any, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, []any{c.CID})
	}
	return d.replaceAll("candidates", `INSERT INTO candidates (cid) VALUES (?)`, rows)
}

func (d *DB) ListCandidates() ([]internal.Candidate, error) {
	return listIDs(d, `SELECT cid FROM candidates ORDER BY rowid`, func(id string) internal.Candidate {
		return internal.Candidate{CID: id}
	})
}

func (d *DB) ReplacePrecincts(precincts []internal.ElectionPrecinct) error {
	rows := make([][]any, 0, len(precincts))
	for _, p := range precincts {
		rows = append(rows, []any{p.PID, p.Name, p.GeoInfo, p.EligibleVoters, boolInt(p.ExternalVotes), p.GeoParentGID, p.ElectionEID})
	}
	return d.replaceAll("precincts",
		`INSERT INTO precincts (pid, name, geoInfo, eligibleVoters, externalVotes, geoParentGid, electionEid)
VALUES (?, ?, ?, ?, ?, ?, ?)`, rows)
}

func (d *DB) ListPrecincts() ([]internal.ElectionPrecinct, error) {
	rows, err := d.conn.Query(`
SELECT pid, name, geoInfo, eligibleVoters, externalVotes, geoParentGid, electionEid
FROM precincts ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ElectionPrecinct
	for rows.Next() {
		var p internal.ElectionPrecinct
		var ext int
		if err := rows.Scan(&p.PID, &p.Name, &p.GeoInfo, &p.EligibleVoters, &ext, &p.GeoParentGID, &p.ElectionEID); err != nil {
			return nil, err
		}
		p.ExternalVotes = ext != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

func (d *DB) ReplaceVoteRecords(records []internal.VoteRecord) error {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{r.VID, r.VoteCount, r.OrgNID, r.PrecinctPID})
	}
	return d.replaceAll("vote_records",
		`INSERT INTO vote_records (vid, voteCount, orgNid, precinctPid) VALUES (?, ?, ?, ?)`, rows)
}

func (d *DB) ListVoteRecords() ([]internal.VoteRecord, error) {
	rows, err := d.conn.Query(`SELECT vid, voteCount, orgNid, precinctPid FROM vote_records ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.VoteRecord
	for rows.Next() {
		var r internal.VoteRecord
		if err := rows.Scan(&r.VID, &r.VoteCount, &r.OrgNID, &r.PrecinctPID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) ReplaceRuns(runs []internal.Run) error {
	rows := make([][]any, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []any{r.VoteVID, r.CandidateCID})
	}
	return d.replaceAll("runs", `INSERT INTO runs (voteVid, candidateCid) VALUES (?, ?)`, rows)
}

func (d *DB) ListRuns() ([]internal.Run, error) {
	rows, err := d.conn.Query(`SELECT voteVid, candidateCid FROM runs ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Run
	for rows.Next() {
		var r internal.Run
		if err := rows.Scan(&r.VoteVID, &r.CandidateCID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) InsertLoad(traceID string, counts map[string]int, totalMs float64) error {
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO loads (traceId, countsJson, totalMs) VALUES (?, ?, ?)`,
		traceID, string(countsJSON), totalMs)
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func listIDs[T any](d *DB, query string, wrap func(string) T) ([]T, error) {
	rows, err := d.conn.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, wrap(id))
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
