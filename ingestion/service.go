// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ingestion

import (
	"context"
	"log/slog"
	"time"

	"github.com/l3montree-dev/sbomingest/config"
	"github.com/l3montree-dev/sbomingest/dtos"
	"github.com/l3montree-dev/sbomingest/monitoring"
	"github.com/l3montree-dev/sbomingest/shared"
	"github.com/l3montree-dev/sbomingest/utils"
	"github.com/pkg/errors"
)

type pipelineStage struct {
	stage
	record func(result *dtos.IngestionResult, maps []*OccurrenceMap, written int)
}

// ProgressFunc is called after every batch with the number of processed and total components
type ProgressFunc func(processed, total int)

type IngestionService struct {
	stages    []pipelineStage
	batchSize int
}

func NewIngestionService(
	cfg config.IngestionConfig,
	sourceRepository shared.SourceRepository,
	componentRepository shared.ComponentRepository,
	componentVersionRepository shared.ComponentVersionRepository,
	sourcePackageRepository shared.SourcePackageRepository,
	occurrenceRepository shared.OccurrenceRepository,
	occurrenceVulnerabilityRepository shared.OccurrenceVulnerabilityRepository,
	licenseResolver shared.LicenseResolver,
	vulnerabilityCorrelator shared.VulnerabilityCorrelator,
	searchIndexSynchronizer shared.SearchIndexSynchronizer,
) (*IngestionService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sourceTask, err := NewSourceIngestionTask(sourceRepository, cfg.BatchSize)
	if err != nil {
		return nil, err
	}
	componentTask, err := NewComponentIngestionTask(componentRepository, cfg.BatchSize)
	if err != nil {
		return nil, err
	}
	componentVersionTask, err := NewComponentVersionIngestionTask(componentVersionRepository, cfg.BatchSize)
	if err != nil {
		return nil, err
	}
	sourcePackageTask, err := NewSourcePackageIngestionTask(sourcePackageRepository, cfg.BatchSize)
	if err != nil {
		return nil, err
	}
	occurrenceTask, err := NewOccurrenceIngestionTask(occurrenceRepository, licenseResolver, vulnerabilityCorrelator, cfg.BatchSize)
	if err != nil {
		return nil, err
	}
	linkTask, err := NewOccurrenceVulnerabilityLinkTask(occurrenceVulnerabilityRepository, searchIndexSynchronizer, cfg.BatchSize)
	if err != nil {
		return nil, err
	}

	// the order is fixed, every stage reads the ids the previous stages wrote
	return &IngestionService{
		batchSize: cfg.BatchSize,
		stages: []pipelineStage{
			{stage: monitorStage(sourceTask), record: func(r *dtos.IngestionResult, _ []*OccurrenceMap, written int) { r.Sources += written }},
			{stage: monitorStage(componentTask), record: func(r *dtos.IngestionResult, _ []*OccurrenceMap, written int) { r.Components += written }},
			{stage: monitorStage(componentVersionTask), record: func(r *dtos.IngestionResult, _ []*OccurrenceMap, written int) { r.ComponentVersions += written }},
			{stage: monitorStage(sourcePackageTask), record: func(r *dtos.IngestionResult, _ []*OccurrenceMap, written int) { r.SourcePackages += written }},
			{stage: monitorStage(occurrenceTask), record: func(r *dtos.IngestionResult, maps []*OccurrenceMap, written int) {
				r.Occurrences += written
				r.OccurrencesSkipped += len(maps) - written
			}},
			{stage: monitorStage(linkTask), record: func(r *dtos.IngestionResult, _ []*OccurrenceMap, written int) { r.VulnerabilityLinks += written }},
		},
	}, nil
}

func (s *IngestionService) Ingest(ctx context.Context, pipeline shared.PipelineContext, report dtos.Report) (dtos.IngestionResult, error) {
	return s.IngestWithProgress(ctx, pipeline, report, nil)
}

// IngestWithProgress slices the report into batches and runs all stages for every batch.
// Batches which were ingested before a failing batch stay persisted.
func (s *IngestionService) IngestWithProgress(ctx context.Context, pipeline shared.PipelineContext, report dtos.Report, progress ProgressFunc) (dtos.IngestionResult, error) {
	maps := NewOccurrenceMaps(report)
	var result dtos.IngestionResult
	processed := 0
	for i, batch := range utils.Chunk(maps, s.batchSize) {
		batchResult, err := s.IngestBatch(ctx, pipeline, batch)
		if err != nil {
			return result, errors.Wrapf(err, "could not ingest batch %d", i)
		}
		result.Add(batchResult)
		processed += len(batch)
		if progress != nil {
			progress(processed, len(maps))
		}
	}

	slog.Info("sbom ingested",
		"project", pipeline.ProjectID(),
		"pipeline", pipeline.PipelineID,
		"components", len(maps),
		"occurrences", result.Occurrences,
		"unchanged", result.OccurrencesSkipped,
		"vulnerabilityLinks", result.VulnerabilityLinks,
	)
	return result, nil
}

// IngestBatch runs every stage once. A failing stage aborts the remaining stages.
func (s *IngestionService) IngestBatch(ctx context.Context, pipeline shared.PipelineContext, maps []*OccurrenceMap) (dtos.IngestionResult, error) {
	start := time.Now()
	defer func() {
		monitoring.IngestionBatchDuration.Observe(time.Since(start).Seconds())
	}()

	var result dtos.IngestionResult
	for _, st := range s.stages {
		var written int
		var err error
		maps, written, err = st.run(ctx, pipeline, maps)
		if err != nil {
			return result, errors.Wrapf(err, "%s stage failed", st.Name())
		}
		st.record(&result, maps, written)
	}
	return result, nil
}
