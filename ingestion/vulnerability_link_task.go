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

	"github.com/l3montree-dev/sbomingest/database/models"
	"github.com/l3montree-dev/sbomingest/monitoring"
	"github.com/l3montree-dev/sbomingest/shared"
	"github.com/l3montree-dev/sbomingest/utils"
	"github.com/pkg/errors"
)

type OccurrenceVulnerabilityLinkTask struct {
	linkRepository          shared.OccurrenceVulnerabilityRepository
	searchIndexSynchronizer shared.SearchIndexSynchronizer
	batchSize               int
}

func NewOccurrenceVulnerabilityLinkTask(linkRepository shared.OccurrenceVulnerabilityRepository, searchIndexSynchronizer shared.SearchIndexSynchronizer, batchSize int) (*OccurrenceVulnerabilityLinkTask, error) {
	if err := validateColumns([]string{"sbom_occurrence_id", "vulnerability_id"}, []string{"sbom_occurrence_id", "vulnerability_id"}); err != nil {
		return nil, errors.Wrap(err, "occurrence vulnerability link task")
	}
	return &OccurrenceVulnerabilityLinkTask{
		linkRepository:          linkRepository,
		searchIndexSynchronizer: searchIndexSynchronizer,
		batchSize:               batchSize,
	}, nil
}

func (t *OccurrenceVulnerabilityLinkTask) Name() string {
	return "occurrence_vulnerability"
}

func (t *OccurrenceVulnerabilityLinkTask) Execute(ctx context.Context, pipeline shared.PipelineContext, maps []*OccurrenceMap) ([]*OccurrenceMap, error) {
	maps, _, err := t.run(ctx, pipeline, maps)
	return maps, err
}

func (t *OccurrenceVulnerabilityLinkTask) run(ctx context.Context, _ shared.PipelineContext, maps []*OccurrenceMap) ([]*OccurrenceMap, int, error) {
	seen := make(map[models.OccurrenceVulnerabilityIdentity]struct{})
	var links []models.OccurrenceVulnerability
	var vulnerabilityIDs []int64
	for _, m := range maps {
		if m.OccurrenceID == nil {
			continue
		}
		for _, vulnerabilityID := range m.VulnerabilityIDs {
			link := models.OccurrenceVulnerability{OccurrenceID: *m.OccurrenceID, VulnerabilityID: vulnerabilityID}
			if _, ok := seen[link.Identity()]; ok {
				continue
			}
			seen[link.Identity()] = struct{}{}
			links = append(links, link)
			vulnerabilityIDs = append(vulnerabilityIDs, vulnerabilityID)
		}
	}

	if len(links) == 0 {
		return maps, 0, nil
	}

	var created int64
	for _, chunk := range utils.Chunk(links, t.batchSize) {
		n, err := t.linkRepository.CreateBatchIgnoringConflicts(ctx, chunk)
		if err != nil {
			return nil, 0, errors.Wrap(err, "could not create occurrence vulnerability links")
		}
		created += n
	}

	slices.Sort(vulnerabilityIDs)
	vulnerabilityIDs = slices.Compact(vulnerabilityIDs)
	t.searchIndexSynchronizer.SyncVulnerabilities(ctx, vulnerabilityIDs)

	monitoring.IngestionRowsWritten.WithLabelValues(t.Name()).Add(float64(created))
	slog.Debug("task finished", "task", t.Name(), "links", len(links), "created", created, "vulnerabilities", len(vulnerabilityIDs))
	return maps, int(created), nil
}
