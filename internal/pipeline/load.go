package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sscu-budapest/electiondata/internal/config"
	"github.com/sscu-budapest/electiondata/internal/storage"
)

// LoadService runs one full reprocessing pass over the staged snapshot
// tables. Every entity table is swapped wholesale per step; there is no
// cross-step transaction, so a failure leaves earlier steps replaced and
// later ones stale until the operator fixes the rewrite tables and reruns.
type LoadService struct {
	db  *storage.DB
	cfg config.Config
	log *logrus.Logger
}

func NewLoadService(db *storage.DB, cfg config.Config, log *logrus.Logger) *LoadService {
	return &LoadService{db: db, cfg: cfg, log: log}
}

// LoadResult summarizes one pipeline run.
type LoadResult struct {
	TraceID string
	Counts  map[string]int
}

// Load sequences the full pipeline: hierarchy, locations, elections,
// melt processing, vote records, runners, eligible voters, precincts.
func (s *LoadService) Load() (LoadResult, error) {
	start := time.Now()
	trace := uuid.NewString()
	log := s.log.WithField("trace", trace)
	counts := map[string]int{}

	metas, err := s.db.ListElectionMeta()
	if err != nil {
		return LoadResult{}, fmt.Errorf("list election meta: %w", err)
	}
	cells, err := s.db.ListMeltCells()
	if err != nil {
		return LoadResult{}, fmt.Errorf("list melt cells: %w", err)
	}
	log.WithFields(logrus.Fields{"pages": len(metas), "cells": len(cells)}).Info("load started")

	edges := BuildHierarchy(metas)
	if err := s.db.ReplaceHierarchy(edges); err != nil {
		return LoadResult{}, fmt.Errorf("replace hierarchy: %w", err)
	}
	counts["hierarchy"] = len(edges)

	if err := s.db.PurgeGeoUnits(); err != nil {
		return LoadResult{}, fmt.Errorf("purge geo units: %w", err)
	}
	for _, nsKey := range []string{regionKey, mainKey} {
		units := BuildGeoUnits(metas, nsKey)
		if err := s.db.ExtendGeoUnits(units); err != nil {
			return LoadResult{}, fmt.Errorf("extend geo units %s: %w", nsKey, err)
		}
		counts["geo_units"] += len(units)
	}
	log.WithFields(logrus.Fields{"edges": counts["hierarchy"], "units": counts["geo_units"]}).Info("geography rebuilt")

	elections := BuildElections(metas)
	if err := s.db.ReplaceElections(elections); err != nil {
		return LoadResult{}, fmt.Errorf("replace elections: %w", err)
	}
	counts["elections"] = len(elections)

	reshaped, err := Reshape(cells)
	if err != nil {
		return LoadResult{}, fmt.Errorf("reshape melt: %w", err)
	}
	counts["meta_rows"] = len(reshaped.MetaRows)
	counts["vote_rows"] = len(reshaped.VoteRows)

	records, err := ExtractVoteRecords(reshaped.VoteRows)
	if err != nil {
		return LoadResult{}, fmt.Errorf("extract vote records: %w", err)
	}
	if err := s.db.ReplaceVoteRecords(records); err != nil {
		return LoadResult{}, fmt.Errorf("replace vote records: %w", err)
	}
	counts["vote_records"] = len(records)
	log.WithField("records", len(records)).Info("vote records replaced")

	derived := DeriveRunners(records)
	if err := s.db.ReplaceOrgs(derived.Orgs); err != nil {
		return LoadResult{}, fmt.Errorf("replace orgs: %w", err)
	}
	if err := s.db.ReplaceParties(derived.Parties); err != nil {
		return LoadResult{}, fmt.Errorf("replace parties: %w", err)
	}
	if err := s.db.ReplaceAffiliations(derived.Affiliations); err != nil {
		return LoadResult{}, fmt.Errorf("replace affiliations: %w", err)
	}
	if err := s.db.ReplaceCandidates(derived.Candidates); err != nil {
		return LoadResult{}, fmt.Errorf("replace candidates: %w", err)
	}
	if err := s.db.ReplaceRuns(derived.Runs); err != nil {
		return LoadResult{}, fmt.Errorf("replace runs: %w", err)
	}
	counts["orgs"] = len(derived.Orgs)
	counts["parties"] = len(derived.Parties)
	counts["affiliations"] = len(derived.Affiliations)
	counts["candidates"] = len(derived.Candidates)
	counts["runs"] = len(derived.Runs)

	eligible, strategy := ReconcileEligibleVoters(reshaped.MetaRows, s.cfg.EligibleStrategy)
	if err := s.db.SetMetadata("eligible_strategy", strategy); err != nil {
		return LoadResult{}, fmt.Errorf("record eligible strategy: %w", err)
	}
	log.WithFields(logrus.Fields{"strategy": strategy, "pages": len(eligible)}).Info("eligible voters reconciled")

	precincts, defaulted := BuildPrecincts(metas, eligible)
	if err := s.db.ReplacePrecincts(precincts); err != nil {
		return LoadResult{}, fmt.Errorf("replace precincts: %w", err)
	}
	counts["precincts"] = len(precincts)
	counts["eligible_defaulted"] = defaulted
	if defaulted > 0 {
		log.WithField("precincts", defaulted).Warn("no eligible-voter column found, defaulted to zero")
	}

	totalMs := float64(time.Since(start).Milliseconds())
	if err := s.db.InsertLoad(trace, counts, totalMs); err != nil {
		return LoadResult{}, fmt.Errorf("record load: %w", err)
	}
	log.WithField("ms", totalMs).Info("load finished")

	return LoadResult{TraceID: trace, Counts: counts}, nil
}
