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
	"testing"

	"github.com/l3montree-dev/sbomingest/config"
	"github.com/l3montree-dev/sbomingest/database/models"
	"github.com/l3montree-dev/sbomingest/dtos"
	"github.com/l3montree-dev/sbomingest/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func libfooReport() dtos.Report {
	return dtos.Report{
		Source: lockfileSource(),
		Components: []dtos.ReportComponent{
			{Name: "libfoo", Version: "1.0.0", Purl: "pkg:npm/libfoo@1.0.0", ComponentType: dtos.ComponentTypeLibrary},
			{Name: "libfoo", Version: "1.0.0", Purl: "pkg:npm/libfoo@1.0.0", ComponentType: dtos.ComponentTypeLibrary},
			{Name: "libbar", Version: "2.0.0", Purl: "pkg:npm/libbar@2.0.0", ComponentType: dtos.ComponentTypeLibrary},
		},
	}
}

func TestIngest(t *testing.T) {
	t.Run("should deduplicate components inside a batch", func(t *testing.T) {
		env := newTestEnv(t, 1000)
		pipeline := testPipeline()

		result, err := env.service.Ingest(context.Background(), pipeline, libfooReport())

		require.NoError(t, err)
		assert.Equal(t, dtos.IngestionResult{
			Sources:           1,
			Components:        2,
			ComponentVersions: 2,
			Occurrences:       2,
		}, result)

		assert.Len(t, env.store.sources.all(), 1)
		assert.Len(t, env.store.components.all(), 2)
		assert.Len(t, env.store.versions.all(), 2)
		assert.Empty(t, env.store.sourcePackages.all())

		occurrences := env.store.occurrences.all()
		require.Len(t, occurrences, 2)
		assert.Equal(t, "libfoo", occurrences[0].ComponentName)
		assert.Equal(t, "libbar", occurrences[1].ComponentName)
		for _, o := range occurrences {
			assert.Equal(t, pipeline.ProjectID(), o.ProjectID)
			assert.NotNil(t, o.ComponentVersionID)
			assert.NotNil(t, o.SourceID)
			assert.Equal(t, int64(100), o.PipelineID)
			assert.Equal(t, "9f2c1e", o.CommitSha)
			assert.Equal(t, "npm", o.PackageManager)
			assert.Equal(t, "package-lock.json", o.InputFilePath)
			assert.Equal(t, []int64{1, 42}, []int64(o.TraversalIDs))
			assert.Equal(t, dtos.ReachabilityUnknown, o.Reachability)
			assert.Equal(t, OccurrenceUUID(pipeline.ProjectID(), o.ComponentID, o.ComponentVersionID, o.SourceID), o.UUID)
		}
	})

	t.Run("should insert the parents before the children", func(t *testing.T) {
		env := newTestEnv(t, 1000)

		_, err := env.service.Ingest(context.Background(), testPipeline(), libfooReport())
		require.NoError(t, err)

		components := make(map[int64]models.Component)
		for _, c := range env.store.components.all() {
			components[c.ID] = c
		}
		versions := make(map[int64]models.ComponentVersion)
		for _, v := range env.store.versions.all() {
			_, ok := components[v.ComponentID]
			assert.True(t, ok, "version references a missing component")
			versions[v.ID] = v
		}
		for _, o := range env.store.occurrences.all() {
			assert.Contains(t, components, o.ComponentID)
			assert.Contains(t, versions, *o.ComponentVersionID)
			assert.Equal(t, o.ComponentID, versions[*o.ComponentVersionID].ComponentID)
		}
	})

	t.Run("should not write anything on a second identical run", func(t *testing.T) {
		env := newTestEnv(t, 1000)
		pipeline := testPipeline()

		_, err := env.service.Ingest(context.Background(), pipeline, libfooReport())
		require.NoError(t, err)
		before := env.store.occurrences.all()

		// the next pipeline run of the same project
		pipeline.PipelineID = 101
		pipeline.CommitSha = "a1b2c3"
		result, err := env.service.Ingest(context.Background(), pipeline, libfooReport())
		require.NoError(t, err)

		assert.Equal(t, dtos.IngestionResult{OccurrencesSkipped: 2}, result)
		assert.Equal(t, 1, env.store.occurrences.upsertCalls)
		assert.Equal(t, 1, env.store.components.upsertCalls)
		assert.Equal(t, before, env.store.occurrences.all())
	})

	t.Run("should rewrite occurrences whose vulnerabilities changed", func(t *testing.T) {
		env := newTestEnv(t, 1000)
		pipeline := testPipeline()

		_, err := env.service.Ingest(context.Background(), pipeline, libfooReport())
		require.NoError(t, err)

		env.correlator.byPackage["libbar@2.0.0"] = dtos.VulnerabilityInfo{
			VulnerabilityIDs: []int64{5},
			HighestSeverity:  utils.Ptr(dtos.SeverityHigh),
		}
		result, err := env.service.Ingest(context.Background(), pipeline, libfooReport())
		require.NoError(t, err)

		assert.Equal(t, 1, result.Occurrences)
		assert.Equal(t, 1, result.OccurrencesSkipped)
		assert.Equal(t, 1, result.VulnerabilityLinks)

		occurrences := env.store.occurrences.all()
		require.Len(t, occurrences, 2)
		assert.Equal(t, 1, occurrences[1].VulnerabilityCount)
		assert.Equal(t, utils.Ptr(dtos.SeverityHigh), occurrences[1].HighestSeverity)
	})

	t.Run("should link vulnerabilities and sync the search index exactly once", func(t *testing.T) {
		env := newTestEnv(t, 1000)
		env.correlator.byPackage["libfoo@1.0.0"] = dtos.VulnerabilityInfo{VulnerabilityIDs: []int64{1, 2}, HighestSeverity: utils.Ptr(dtos.SeverityCritical)}
		env.correlator.byPackage["libbar@2.0.0"] = dtos.VulnerabilityInfo{VulnerabilityIDs: []int64{2}, HighestSeverity: utils.Ptr(dtos.SeverityLow)}

		pipeline := testPipeline()
		result, err := env.service.Ingest(context.Background(), pipeline, libfooReport())
		require.NoError(t, err)

		assert.Equal(t, 3, result.VulnerabilityLinks)
		assert.Len(t, env.store.links.links, 3)
		assert.Equal(t, [][]int64{{1, 2}}, env.synchronizer.calls)

		// already existing links are not counted again
		result, err = env.service.Ingest(context.Background(), pipeline, libfooReport())
		require.NoError(t, err)
		assert.Equal(t, 0, result.VulnerabilityLinks)
	})

	t.Run("should not sync the search index without vulnerabilities", func(t *testing.T) {
		env := newTestEnv(t, 1000)

		_, err := env.service.Ingest(context.Background(), testPipeline(), libfooReport())
		require.NoError(t, err)

		assert.Empty(t, env.synchronizer.calls)
	})

	t.Run("should consolidate unknown licenses", func(t *testing.T) {
		env := newTestEnv(t, 1000)
		mit := dtos.License{Name: "MIT License", SpdxIdentifier: "MIT"}
		apache := dtos.License{Name: "Apache License 2.0", SpdxIdentifier: "Apache-2.0"}
		env.licenses.byName["libfoo"] = []dtos.License{
			dtos.UnknownLicense(),
			mit,
			dtos.UnknownLicense(),
			apache,
			{Name: "whatever", SpdxIdentifier: "UNKNOWN"},
		}

		_, err := env.service.Ingest(context.Background(), testPipeline(), dtos.Report{
			Source:     lockfileSource(),
			Components: []dtos.ReportComponent{{Name: "libfoo", Version: "1.0.0", Purl: "pkg:npm/libfoo@1.0.0"}},
		})
		require.NoError(t, err)

		occurrences := env.store.occurrences.all()
		require.Len(t, occurrences, 1)
		assert.Equal(t, []dtos.License{
			mit,
			apache,
			{Name: "3 unknown licenses", SpdxIdentifier: "unknown"},
		}, []dtos.License(occurrences[0].Licenses))
	})

	t.Run("should use the image reference as input file path for container scans", func(t *testing.T) {
		env := newTestEnv(t, 1000)

		_, err := env.service.Ingest(context.Background(), testPipeline(), dtos.Report{
			Source: dtos.ReportSource{
				Type:                dtos.SourceTypeContainerScanning,
				ImageName:           "registry.example.com/app",
				ImageTag:            "3.19",
				OperatingSystemName: "alpine",
			},
			Components: []dtos.ReportComponent{{
				Name:              "musl",
				Version:           "1.2.4-r2",
				Purl:              "pkg:apk/alpine/musl@1.2.4-r2",
				SourcePackageName: "musl",
				Properties:        dtos.ComponentProperties{Packager: "apk"},
			}},
		})
		require.NoError(t, err)

		occurrences := env.store.occurrences.all()
		require.Len(t, occurrences, 1)
		assert.Equal(t, "container-image:registry.example.com/app:3.19", occurrences[0].InputFilePath)
		assert.Equal(t, "apk", occurrences[0].PackageManager)
		assert.NotNil(t, occurrences[0].SourcePackageID)
		assert.Len(t, env.store.sourcePackages.all(), 1)
	})

	t.Run("should create occurrences without version and without source", func(t *testing.T) {
		env := newTestEnv(t, 1000)
		pipeline := testPipeline()

		result, err := env.service.Ingest(context.Background(), pipeline, dtos.Report{
			Components: []dtos.ReportComponent{{Name: "vendored-lib"}},
		})
		require.NoError(t, err)

		assert.Equal(t, 0, result.Sources)
		assert.Equal(t, 0, result.ComponentVersions)
		occurrences := env.store.occurrences.all()
		require.Len(t, occurrences, 1)
		assert.Nil(t, occurrences[0].ComponentVersionID)
		assert.Nil(t, occurrences[0].SourceID)
		assert.Equal(t, OccurrenceUUID(pipeline.ProjectID(), occurrences[0].ComponentID, nil, nil), occurrences[0].UUID)

		components := env.store.components.all()
		require.Len(t, components, 1)
		assert.Equal(t, dtos.ComponentTypeLibrary, components[0].ComponentType)
		assert.Equal(t, "", components[0].PurlType)
	})

	t.Run("should drop components without name", func(t *testing.T) {
		env := newTestEnv(t, 1000)

		result, err := env.service.Ingest(context.Background(), testPipeline(), dtos.Report{
			Source:     lockfileSource(),
			Components: []dtos.ReportComponent{{Name: "  ", Version: "1.0.0"}, {Name: "libfoo", Version: "1.0.0"}},
		})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Occurrences)
		assert.Len(t, env.store.occurrences.all(), 1)
	})

	t.Run("should process the report in batches and report the progress", func(t *testing.T) {
		env := newTestEnv(t, 2)
		report := dtos.Report{Source: lockfileSource()}
		for _, name := range []string{"a", "b", "c", "d", "e"} {
			report.Components = append(report.Components, dtos.ReportComponent{Name: name, Version: "1.0.0", Purl: "pkg:npm/" + name + "@1.0.0"})
		}

		var progress [][2]int
		result, err := env.service.IngestWithProgress(context.Background(), testPipeline(), report, func(processed, total int) {
			progress = append(progress, [2]int{processed, total})
		})
		require.NoError(t, err)

		assert.Equal(t, [][2]int{{2, 5}, {4, 5}, {5, 5}}, progress)
		assert.Equal(t, 5, result.Occurrences)
		assert.Equal(t, 5, result.Components)
		// the source is shared by all batches and only created once
		assert.Equal(t, 1, result.Sources)
		assert.Len(t, env.store.occurrences.all(), 5)
	})

	t.Run("should keep the earlier batches if a later batch fails", func(t *testing.T) {
		env := newTestEnv(t, 1)
		env.store.components.beforeUpsert = func(table *fakeTable[models.ComponentIdentity, models.Component], rows []models.Component) error {
			if rows[0].Name == "libbar" {
				return assert.AnError
			}
			return nil
		}

		_, err := env.service.Ingest(context.Background(), testPipeline(), libfooReport())

		assert.ErrorIs(t, err, assert.AnError)
		occurrences := env.store.occurrences.all()
		require.Len(t, occurrences, 1)
		assert.Equal(t, "libfoo", occurrences[0].ComponentName)
	})
}

func TestIngestConcurrentInsert(t *testing.T) {
	t.Run("should re-fetch the rows if a concurrent ingestion inserted them first", func(t *testing.T) {
		env := newTestEnv(t, 1000)
		env.store.components.beforeUpsert = func(table *fakeTable[models.ComponentIdentity, models.Component], rows []models.Component) error {
			table.beforeUpsert = nil
			for _, row := range rows {
				table.put(row)
			}
			return duplicateKeyError()
		}

		result, err := env.service.Ingest(context.Background(), testPipeline(), libfooReport())
		require.NoError(t, err)

		// the rows were written by someone else
		assert.Equal(t, 0, result.Components)
		assert.Equal(t, 2, result.Occurrences)
		assert.Len(t, env.store.components.all(), 2)
		for _, o := range env.store.occurrences.all() {
			assert.NotZero(t, o.ComponentID)
		}
	})
}

func TestIngestUnresolvedParents(t *testing.T) {
	t.Run("should not write occurrences whose version could not be resolved", func(t *testing.T) {
		env := newTestEnv(t, 1000)
		// the insert conflicts but the re-fetch does not find the rows either
		env.store.versions.beforeUpsert = func(table *fakeTable[models.ComponentVersionIdentity, models.ComponentVersion], rows []models.ComponentVersion) error {
			return duplicateKeyError()
		}
		pipeline := testPipeline()

		result, err := env.service.Ingest(context.Background(), pipeline, libfooReport())

		require.NoError(t, err)
		assert.Equal(t, 0, result.ComponentVersions)
		assert.Equal(t, 0, result.Occurrences)
		assert.Empty(t, env.store.occurrences.all())

		// a later healthy run creates exactly one occurrence per dependency
		env.store.versions.beforeUpsert = nil
		result, err = env.service.Ingest(context.Background(), pipeline, libfooReport())

		require.NoError(t, err)
		assert.Equal(t, 2, result.Occurrences)
		occurrences := env.store.occurrences.all()
		require.Len(t, occurrences, 2)
		for _, o := range occurrences {
			assert.NotNil(t, o.ComponentVersionID)
		}
	})
}

func TestIngestCollaboratorErrors(t *testing.T) {
	t.Run("should abort if the license resolver fails", func(t *testing.T) {
		env := newTestEnv(t, 1000)
		env.licenses.err = assert.AnError

		_, err := env.service.Ingest(context.Background(), testPipeline(), libfooReport())

		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, env.store.occurrences.all())
		// the stages before the occurrence stage already ran
		assert.Len(t, env.store.components.all(), 2)
	})

	t.Run("should abort if the vulnerability correlator fails", func(t *testing.T) {
		env := newTestEnv(t, 1000)
		env.correlator.err = assert.AnError

		_, err := env.service.Ingest(context.Background(), testPipeline(), libfooReport())

		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, env.store.occurrences.all())
		assert.Empty(t, env.synchronizer.calls)
	})

	t.Run("should abort if the links can not be written", func(t *testing.T) {
		env := newTestEnv(t, 1000)
		env.correlator.byPackage["libfoo@1.0.0"] = dtos.VulnerabilityInfo{VulnerabilityIDs: []int64{1}}
		env.store.links.err = assert.AnError

		_, err := env.service.Ingest(context.Background(), testPipeline(), libfooReport())

		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, env.synchronizer.calls)
	})
}

func TestNewIngestionService(t *testing.T) {
	t.Run("should reject an invalid batch size", func(t *testing.T) {
		store := newFakeStore()
		cfg := config.DefaultIngestionConfig()
		cfg.BatchSize = 0

		_, err := NewIngestionService(cfg, store.sources, store.components, store.versions, store.sourcePackages, store.occurrences, store.links, &fakeLicenseResolver{}, &fakeCorrelator{}, &fakeSynchronizer{})

		assert.Error(t, err)
	})
}
