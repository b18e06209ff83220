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
	"slices"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/l3montree-dev/sbomingest/config"
	"github.com/l3montree-dev/sbomingest/database/models"
	"github.com/l3montree-dev/sbomingest/dtos"
	"github.com/l3montree-dev/sbomingest/shared"
	"github.com/stretchr/testify/require"
)

// fakeTable keeps rows by identity and hands out ids like a sequence
type fakeTable[K comparable, T any] struct {
	mu       sync.Mutex
	rows     map[K]T
	nextID   int64
	identity func(T) K
	getID    func(T) int64
	setID    func(T, int64) T

	findCalls   int
	upsertCalls int
	// runs before every upsert, a returned error aborts the upsert
	beforeUpsert func(table *fakeTable[K, T], rows []T) error
}

func newFakeTable[K comparable, T any](identity func(T) K, getID func(T) int64, setID func(T, int64) T) *fakeTable[K, T] {
	return &fakeTable[K, T]{
		rows:     make(map[K]T),
		identity: identity,
		getID:    getID,
		setID:    setID,
	}
}

func (f *fakeTable[K, T]) FindByIdentities(_ context.Context, _ []string, keys []K) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	result := make([]T, 0, len(keys))
	for _, key := range keys {
		if row, ok := f.rows[key]; ok {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeTable[K, T]) BulkUpsert(_ context.Context, _ []string, _ []string, rows []T) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls++
	if f.beforeUpsert != nil {
		if err := f.beforeUpsert(f, rows); err != nil {
			return nil, err
		}
	}
	result := make([]T, 0, len(rows))
	for _, row := range rows {
		result = append(result, f.put(row))
	}
	return result, nil
}

// put inserts or replaces the row, the caller holds the lock
func (f *fakeTable[K, T]) put(row T) T {
	key := f.identity(row)
	if existing, ok := f.rows[key]; ok {
		row = f.setID(row, f.getID(existing))
	} else {
		f.nextID++
		row = f.setID(row, f.nextID)
	}
	f.rows[key] = row
	return row
}

func (f *fakeTable[K, T]) all() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]T, 0, len(f.rows))
	for _, row := range f.rows {
		result = append(result, row)
	}
	slices.SortFunc(result, func(a, b T) int {
		return int(f.getID(a) - f.getID(b))
	})
	return result
}

type fakeOccurrenceTable struct {
	*fakeTable[models.OccurrenceIdentity, models.Occurrence]
}

func (f fakeOccurrenceTable) FindByUUIDs(_ context.Context, projectID uuid.UUID, uuids []uuid.UUID) ([]models.Occurrence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	result := make([]models.Occurrence, 0, len(uuids))
	for _, id := range uuids {
		if row, ok := f.rows[models.OccurrenceIdentity{UUID: id}]; ok && row.ProjectID == projectID {
			result = append(result, row)
		}
	}
	return result, nil
}

type fakeLinkTable struct {
	mu    sync.Mutex
	links map[models.OccurrenceVulnerabilityIdentity]models.OccurrenceVulnerability
	err   error
}

func (f *fakeLinkTable) CreateBatchIgnoringConflicts(_ context.Context, links []models.OccurrenceVulnerability) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	var created int64
	for _, link := range links {
		if _, ok := f.links[link.Identity()]; ok {
			continue
		}
		f.links[link.Identity()] = link
		created++
	}
	return created, nil
}

type fakeStore struct {
	sources        *fakeTable[models.SourceIdentity, models.Source]
	components     *fakeTable[models.ComponentIdentity, models.Component]
	versions       *fakeTable[models.ComponentVersionIdentity, models.ComponentVersion]
	sourcePackages *fakeTable[models.SourcePackageIdentity, models.SourcePackage]
	occurrences    fakeOccurrenceTable
	links          *fakeLinkTable
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sources: newFakeTable(models.Source.Identity, models.Source.GetID, func(s models.Source, id int64) models.Source {
			s.ID = id
			return s
		}),
		components: newFakeTable(models.Component.Identity, models.Component.GetID, func(c models.Component, id int64) models.Component {
			c.ID = id
			return c
		}),
		versions: newFakeTable(models.ComponentVersion.Identity, models.ComponentVersion.GetID, func(v models.ComponentVersion, id int64) models.ComponentVersion {
			v.ID = id
			return v
		}),
		sourcePackages: newFakeTable(models.SourcePackage.Identity, models.SourcePackage.GetID, func(s models.SourcePackage, id int64) models.SourcePackage {
			s.ID = id
			return s
		}),
		occurrences: fakeOccurrenceTable{newFakeTable(models.Occurrence.Identity, models.Occurrence.GetID, func(o models.Occurrence, id int64) models.Occurrence {
			o.ID = id
			return o
		})},
		links: &fakeLinkTable{links: make(map[models.OccurrenceVulnerabilityIdentity]models.OccurrenceVulnerability)},
	}
}

// fakeLicenseResolver returns the licenses registered for a component name, nothing otherwise
type fakeLicenseResolver struct {
	byName map[string][]dtos.License
	err    error
	calls  int
}

func (f *fakeLicenseResolver) Resolve(_ context.Context, queries []dtos.LicenseQuery) ([][]dtos.License, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	result := make([][]dtos.License, len(queries))
	for i, q := range queries {
		result[i] = append([]dtos.License{}, f.byName[q.Name]...)
	}
	return result, nil
}

// fakeCorrelator returns the vulnerabilities registered for "name@version"
type fakeCorrelator struct {
	byPackage map[string]dtos.VulnerabilityInfo
	err       error
}

func (f *fakeCorrelator) Correlate(_ context.Context, _ shared.PipelineContext, components []dtos.ReportComponent) ([]dtos.VulnerabilityInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]dtos.VulnerabilityInfo, len(components))
	for i, c := range components {
		result[i] = f.byPackage[c.Name+"@"+c.Version]
	}
	return result, nil
}

type fakeSynchronizer struct {
	calls [][]int64
}

func (f *fakeSynchronizer) SyncVulnerabilities(_ context.Context, ids []int64) {
	f.calls = append(f.calls, ids)
}

type testEnv struct {
	store        *fakeStore
	licenses     *fakeLicenseResolver
	correlator   *fakeCorrelator
	synchronizer *fakeSynchronizer
	service      *IngestionService
}

func newTestEnv(t *testing.T, batchSize int) *testEnv {
	t.Helper()
	env := &testEnv{
		store:        newFakeStore(),
		licenses:     &fakeLicenseResolver{byName: map[string][]dtos.License{}},
		correlator:   &fakeCorrelator{byPackage: map[string]dtos.VulnerabilityInfo{}},
		synchronizer: &fakeSynchronizer{},
	}
	cfg := config.DefaultIngestionConfig()
	cfg.BatchSize = batchSize

	service, err := NewIngestionService(
		cfg,
		env.store.sources,
		env.store.components,
		env.store.versions,
		env.store.sourcePackages,
		env.store.occurrences,
		env.store.links,
		env.licenses,
		env.correlator,
		env.synchronizer,
	)
	require.NoError(t, err)
	env.service = service
	return env
}

func testPipeline() shared.PipelineContext {
	return shared.PipelineContext{
		Project: dtos.ProjectDTO{
			ID:             uuid.New(),
			OrganizationID: uuid.New(),
			TraversalIDs:   []int64{1, 42},
		},
		PipelineID: 100,
		CommitSha:  "9f2c1e",
	}
}

func lockfileSource() dtos.ReportSource {
	return dtos.ReportSource{
		Type:           dtos.SourceTypeDependencyScanning,
		InputFilePath:  "package-lock.json",
		PackageManager: "npm",
	}
}

func duplicateKeyError() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}
