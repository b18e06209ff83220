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
	"time"

	"github.com/l3montree-dev/sbomingest/database"
	"github.com/l3montree-dev/sbomingest/monitoring"
	"github.com/l3montree-dev/sbomingest/shared"
	"github.com/l3montree-dev/sbomingest/utils"
	"github.com/pkg/errors"
)

var ErrConfiguration = errors.New("invalid ingestion task configuration")

// stage is one step of the pipeline. It returns the maps the next stage works on
// and the number of rows it wrote.
type stage interface {
	Name() string
	run(ctx context.Context, pipeline shared.PipelineContext, maps []*OccurrenceMap) ([]*OccurrenceMap, int, error)
}

func validateColumns(uniqueBy, uses []string) error {
	if len(uniqueBy) == 0 {
		return errors.Wrap(ErrConfiguration, "no identity attributes declared")
	}
	for _, column := range uniqueBy {
		if !slices.Contains(uses, column) {
			return errors.Wrapf(ErrConfiguration, "identity attribute %q is not an output column", column)
		}
	}
	return nil
}

// entityDefinition describes how one entity kind is derived from occurrence maps.
type entityDefinition[K comparable, T any] interface {
	Name() string
	IdentityAttributes() []string
	OutputColumns() []string
	Relevant(m *OccurrenceMap) bool
	Identity(pipeline shared.PipelineContext, m *OccurrenceMap) K
	// Row builds a new row from the identity and the first map of the identity group
	Row(key K, m *OccurrenceMap) T
	AssignID(m *OccurrenceMap, id int64)
}

// entityTask resolves the rows of one entity kind: existing rows are looked up
// with a single query, the missing ones are inserted and the ids are written back
// into every map of the identity group.
type entityTask[K utils.IdentityKey, T utils.Identifiable[K]] struct {
	definition entityDefinition[K, T]
	repository shared.IdentityRepository[K, T]
	batchSize  int
	uniqueBy   []string
	uses       []string
}

func newEntityTask[K utils.IdentityKey, T utils.Identifiable[K]](definition entityDefinition[K, T], repository shared.IdentityRepository[K, T], batchSize int) (*entityTask[K, T], error) {
	uniqueBy := definition.IdentityAttributes()
	uses := definition.OutputColumns()
	if err := validateColumns(uniqueBy, uses); err != nil {
		return nil, errors.Wrapf(err, "%s task", definition.Name())
	}
	return &entityTask[K, T]{
		definition: definition,
		repository: repository,
		batchSize:  batchSize,
		uniqueBy:   uniqueBy,
		uses:       uses,
	}, nil
}

func (t *entityTask[K, T]) Name() string {
	return t.definition.Name()
}

// Execute resolves the ids and returns all maps, including the ones this task did not touch.
func (t *entityTask[K, T]) Execute(ctx context.Context, pipeline shared.PipelineContext, maps []*OccurrenceMap) ([]*OccurrenceMap, error) {
	maps, _, err := t.run(ctx, pipeline, maps)
	return maps, err
}

func (t *entityTask[K, T]) run(ctx context.Context, pipeline shared.PipelineContext, maps []*OccurrenceMap) ([]*OccurrenceMap, int, error) {
	name := t.Name()
	relevant := utils.Filter(maps, t.definition.Relevant)
	if len(relevant) == 0 {
		return maps, 0, nil
	}

	keys, groups := utils.GroupBy(relevant, func(m *OccurrenceMap) K {
		return t.definition.Identity(pipeline, m)
	})

	existing, err := t.repository.FindByIdentities(ctx, t.uniqueBy, keys)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "could not find existing %s rows", name)
	}
	ids := make(map[K]int64, len(keys))
	for _, row := range existing {
		ids[row.Identity()] = row.GetID()
	}

	missing := utils.Filter(keys, func(key K) bool {
		_, ok := ids[key]
		return !ok
	})

	written := 0
	for _, chunk := range utils.Chunk(missing, t.batchSize) {
		rows := utils.Map(chunk, func(key K) T {
			return t.definition.Row(key, groups[key][0])
		})
		inserted, err := t.repository.BulkUpsert(ctx, t.uniqueBy, t.uses, rows)
		refetched := false
		if database.IsDuplicateKeyError(err) {
			// a concurrent ingestion created some of the rows first
			slog.Debug("duplicate key on insert, re-fetching", "task", name, "rows", len(rows))
			monitoring.IngestionDuplicateKeyRetries.WithLabelValues(name).Inc()
			inserted, err = t.repository.FindByIdentities(ctx, t.uniqueBy, chunk)
			refetched = true
		}
		if err != nil {
			return nil, 0, errors.Wrapf(err, "could not insert %s rows", name)
		}
		for _, row := range inserted {
			ids[row.Identity()] = row.GetID()
		}
		if !refetched {
			written += len(inserted)
		}
	}

	for _, key := range keys {
		id, ok := ids[key]
		if !ok {
			// the occurrence stage drops these maps and counts them
			slog.Debug("no id resolved for identity, maps stay without id", "task", name, "maps", len(groups[key]))
			continue
		}
		for _, m := range groups[key] {
			t.definition.AssignID(m, id)
		}
	}

	monitoring.IngestionRowsExisting.WithLabelValues(name).Add(float64(len(existing)))
	monitoring.IngestionRowsWritten.WithLabelValues(name).Add(float64(written))
	slog.Debug("task finished", "task", name, "identities", len(keys), "existing", len(existing), "inserted", written)
	return maps, written, nil
}

// monitorStage records the duration of every stage run.
func monitorStage(s stage) stage {
	return monitoredStage{stage: s}
}

type monitoredStage struct {
	stage
}

func (m monitoredStage) run(ctx context.Context, pipeline shared.PipelineContext, maps []*OccurrenceMap) ([]*OccurrenceMap, int, error) {
	start := time.Now()
	defer func() {
		monitoring.IngestionStageDuration.WithLabelValues(m.Name()).Observe(time.Since(start).Seconds())
	}()
	return m.stage.run(ctx, pipeline, maps)
}
