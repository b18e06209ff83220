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
	"slices"

	"github.com/google/uuid"
	"github.com/l3montree-dev/sbomingest/database"
	"github.com/l3montree-dev/sbomingest/database/models"
	"github.com/l3montree-dev/sbomingest/dtos"
	"github.com/l3montree-dev/sbomingest/monitoring"
	"github.com/l3montree-dev/sbomingest/shared"
	"github.com/l3montree-dev/sbomingest/utils"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
)

var occurrenceUniqueBy = []string{"uuid"}

var occurrenceUses = []string{
	"uuid",
	"project_id",
	"component_id",
	"component_version_id",
	"source_id",
	"source_package_id",
	"pipeline_id",
	"commit_sha",
	"component_name",
	"package_manager",
	"input_file_path",
	"licenses",
	"highest_severity",
	"vulnerability_count",
	"traversal_ids",
	"archived",
	"ancestors",
	"reachability",
}

type OccurrenceIngestionTask struct {
	occurrenceRepository    shared.OccurrenceRepository
	licenseResolver         shared.LicenseResolver
	vulnerabilityCorrelator shared.VulnerabilityCorrelator
	batchSize               int
}

func NewOccurrenceIngestionTask(occurrenceRepository shared.OccurrenceRepository, licenseResolver shared.LicenseResolver, vulnerabilityCorrelator shared.VulnerabilityCorrelator, batchSize int) (*OccurrenceIngestionTask, error) {
	if err := validateColumns(occurrenceUniqueBy, occurrenceUses); err != nil {
		return nil, errors.Wrap(err, "occurrence task")
	}
	return &OccurrenceIngestionTask{
		occurrenceRepository:    occurrenceRepository,
		licenseResolver:         licenseResolver,
		vulnerabilityCorrelator: vulnerabilityCorrelator,
		batchSize:               batchSize,
	}, nil
}

func (t *OccurrenceIngestionTask) Name() string {
	return "occurrence"
}

// Execute returns the maps which made it into an occurrence. Maps without a component, maps
// with an unresolved version, source or source package and maps sharing the identity of an
// earlier map are not part of the result.
func (t *OccurrenceIngestionTask) Execute(ctx context.Context, pipeline shared.PipelineContext, maps []*OccurrenceMap) ([]*OccurrenceMap, error) {
	maps, _, err := t.run(ctx, pipeline, maps)
	return maps, err
}

func (t *OccurrenceIngestionTask) run(ctx context.Context, pipeline shared.PipelineContext, maps []*OccurrenceMap) ([]*OccurrenceMap, int, error) {
	withComponent := utils.Filter(maps, func(m *OccurrenceMap) bool {
		return m.ComponentID != nil
	})
	if dropped := len(maps) - len(withComponent); dropped > 0 {
		slog.Debug("dropping maps without component", "task", t.Name(), "maps", dropped)
		monitoring.IngestionMapsDropped.WithLabelValues(t.Name(), "missing_component").Add(float64(dropped))
	}

	resolved := utils.Filter(withComponent, (*OccurrenceMap).identityResolved)
	if unresolved := len(withComponent) - len(resolved); unresolved > 0 {
		slog.Debug("dropping maps with unresolved parent ids", "task", t.Name(), "maps", unresolved)
		monitoring.IngestionMapsDropped.WithLabelValues(t.Name(), "unresolved").Add(float64(unresolved))
	}

	unique := utils.UniqBy(resolved, func(m *OccurrenceMap) uuid.UUID {
		return OccurrenceUUID(pipeline.ProjectID(), *m.ComponentID, m.ComponentVersionID, m.SourceID)
	})
	if duplicates := len(resolved) - len(unique); duplicates > 0 {
		slog.Debug("dropping maps with duplicate identity", "task", t.Name(), "maps", duplicates)
		monitoring.IngestionMapsDropped.WithLabelValues(t.Name(), "duplicate").Add(float64(duplicates))
	}
	if len(unique) == 0 {
		return unique, 0, nil
	}

	uuids := make([]uuid.UUID, 0, len(unique))
	for _, m := range unique {
		id := OccurrenceUUID(pipeline.ProjectID(), *m.ComponentID, m.ComponentVersionID, m.SourceID)
		m.UUID = &id
		uuids = append(uuids, id)
	}

	existing, err := t.occurrenceRepository.FindByUUIDs(ctx, pipeline.ProjectID(), uuids)
	if err != nil {
		return nil, 0, errors.Wrap(err, "could not find existing occurrences")
	}
	existingByUUID := make(map[uuid.UUID]models.Occurrence, len(existing))
	for _, occurrence := range existing {
		existingByUUID[occurrence.UUID] = occurrence
	}

	licenses, err := t.licenseResolver.Resolve(ctx, utils.Map(unique, (*OccurrenceMap).licenseQuery))
	if err != nil {
		return nil, 0, errors.Wrap(err, "could not resolve licenses")
	}
	if len(licenses) != len(unique) {
		return nil, 0, errors.Errorf("license resolver returned %d results for %d components", len(licenses), len(unique))
	}

	vulnerabilities, err := t.vulnerabilityCorrelator.Correlate(ctx, pipeline, utils.Map(unique, func(m *OccurrenceMap) dtos.ReportComponent {
		return m.ReportComponent
	}))
	if err != nil {
		return nil, 0, errors.Wrap(err, "could not correlate vulnerabilities")
	}
	if len(vulnerabilities) != len(unique) {
		return nil, 0, errors.Errorf("vulnerability correlator returned %d results for %d components", len(vulnerabilities), len(unique))
	}

	ids := make(map[uuid.UUID]int64, len(unique))
	rows := make([]models.Occurrence, 0, len(unique))
	for i, m := range unique {
		m.VulnerabilityIDs = vulnerabilities[i].VulnerabilityIDs

		row := buildOccurrence(pipeline, m, consolidateLicenses(licenses[i]), vulnerabilities[i])
		if persisted, ok := existingByUUID[row.UUID]; ok {
			ids[row.UUID] = persisted.ID
			if !occurrenceChanged(persisted, row) {
				continue
			}
		}
		rows = append(rows, row)
	}
	skipped := len(unique) - len(rows)
	if skipped > 0 {
		monitoring.IngestionRowsExisting.WithLabelValues(t.Name()).Add(float64(skipped))
	}

	written := 0
	for _, chunk := range utils.Chunk(rows, t.batchSize) {
		upserted, err := t.occurrenceRepository.BulkUpsert(ctx, occurrenceUniqueBy, occurrenceUses, chunk)
		refetched := false
		if database.IsDuplicateKeyError(err) {
			slog.Debug("duplicate key on occurrence upsert, re-fetching", "rows", len(chunk))
			monitoring.IngestionDuplicateKeyRetries.WithLabelValues(t.Name()).Inc()
			upserted, err = t.occurrenceRepository.FindByUUIDs(ctx, pipeline.ProjectID(), utils.Map(chunk, func(o models.Occurrence) uuid.UUID {
				return o.UUID
			}))
			refetched = true
		}
		if err != nil {
			return nil, 0, errors.Wrap(err, "could not upsert occurrences")
		}
		for _, occurrence := range upserted {
			ids[occurrence.UUID] = occurrence.ID
		}
		if !refetched {
			written += len(upserted)
		}
	}

	for _, m := range unique {
		if id, ok := ids[*m.UUID]; ok {
			m.OccurrenceID = utils.Ptr(id)
		}
	}

	monitoring.IngestionRowsWritten.WithLabelValues(t.Name()).Add(float64(written))
	slog.Debug("task finished", "task", t.Name(), "occurrences", len(unique), "existing", len(existing), "written", written, "unchanged", skipped)
	return unique, written, nil
}

func buildOccurrence(pipeline shared.PipelineContext, m *OccurrenceMap, licenses []dtos.License, vulnerabilities dtos.VulnerabilityInfo) models.Occurrence {
	var traversalIDs pq.Int64Array
	if pipeline.Project.TraversalIDs != nil {
		traversalIDs = slices.Clone(pipeline.Project.TraversalIDs)
	}
	ancestors := m.ReportComponent.Ancestors
	if ancestors == nil {
		ancestors = []dtos.Ancestor{}
	}

	return models.Occurrence{
		UUID:               *m.UUID,
		ProjectID:          pipeline.ProjectID(),
		ComponentID:        *m.ComponentID,
		ComponentVersionID: m.ComponentVersionID,
		SourceID:           m.SourceID,
		SourcePackageID:    m.SourcePackageID,
		PipelineID:         pipeline.PipelineID,
		CommitSha:          pipeline.CommitSha,
		ComponentName:      m.Name(),
		PackageManager:     m.PackageManager(),
		InputFilePath:      m.InputFilePath(),
		Licenses:           datatypes.NewJSONSlice(licenses),
		HighestSeverity:    vulnerabilities.HighestSeverity,
		VulnerabilityCount: vulnerabilities.Count(),
		TraversalIDs:       traversalIDs,
		Archived:           pipeline.Project.Archived,
		Ancestors:          datatypes.NewJSONSlice(ancestors),
		Reachability:       m.ReportComponent.GetReachability(),
	}
}

// occurrenceChanged compares everything except the columns which change on every
// pipeline run (pipeline id and commit sha) and the bookkeeping columns.
func occurrenceChanged(persisted, candidate models.Occurrence) bool {
	return persisted.ProjectID != candidate.ProjectID ||
		persisted.ComponentID != candidate.ComponentID ||
		!utils.PtrEqual(persisted.ComponentVersionID, candidate.ComponentVersionID) ||
		!utils.PtrEqual(persisted.SourceID, candidate.SourceID) ||
		!utils.PtrEqual(persisted.SourcePackageID, candidate.SourcePackageID) ||
		persisted.ComponentName != candidate.ComponentName ||
		persisted.PackageManager != candidate.PackageManager ||
		persisted.InputFilePath != candidate.InputFilePath ||
		!slices.Equal(persisted.Licenses, candidate.Licenses) ||
		!utils.PtrEqual(persisted.HighestSeverity, candidate.HighestSeverity) ||
		persisted.VulnerabilityCount != candidate.VulnerabilityCount ||
		!slices.Equal(persisted.TraversalIDs, candidate.TraversalIDs) ||
		persisted.Archived != candidate.Archived ||
		!slices.Equal(persisted.Ancestors, candidate.Ancestors) ||
		persisted.Reachability != candidate.Reachability
}
