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

package repositories_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/sbomingest/config"
	"github.com/l3montree-dev/sbomingest/database/models"
	"github.com/l3montree-dev/sbomingest/database/repositories"
	"github.com/l3montree-dev/sbomingest/dtos"
	"github.com/l3montree-dev/sbomingest/ingestion"
	"github.com/l3montree-dev/sbomingest/integrationtestutil"
	"github.com/l3montree-dev/sbomingest/services"
	"github.com/l3montree-dev/sbomingest/shared"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var componentUniqueBy = []string{"name", "purl_type", "component_type", "organization_id"}
var componentUses = []string{"name", "purl_type", "component_type", "organization_id"}

func TestRepositoriesIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container based test in short mode")
	}

	db, _, terminate := integrationtestutil.InitDatabaseContainer()
	defer terminate()

	ctx := context.Background()
	organizationID := uuid.New()

	t.Run("should insert rows and read the ids back", func(t *testing.T) {
		repo := repositories.NewComponentRepository(db)

		rows, err := repo.BulkUpsert(ctx, componentUniqueBy, componentUses, []models.Component{
			{Name: "libfoo", PurlType: "npm", ComponentType: dtos.ComponentTypeLibrary, OrganizationID: organizationID},
			{Name: "libbar", PurlType: "npm", ComponentType: dtos.ComponentTypeLibrary, OrganizationID: organizationID},
		})

		require.NoError(t, err)
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.NotZero(t, row.ID)
			assert.Equal(t, organizationID, row.OrganizationID)
		}

		found, err := repo.FindByIdentities(ctx, componentUniqueBy, []models.ComponentIdentity{
			rows[0].Identity(),
			rows[1].Identity(),
			{Name: "missing", PurlType: "npm", ComponentType: dtos.ComponentTypeLibrary, OrganizationID: organizationID},
		})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("should keep the id if the identity already exists", func(t *testing.T) {
		repo := repositories.NewComponentRepository(db)
		row := models.Component{Name: "libbaz", PurlType: "pypi", ComponentType: dtos.ComponentTypeLibrary, OrganizationID: organizationID}

		first, err := repo.BulkUpsert(ctx, componentUniqueBy, componentUses, []models.Component{row})
		require.NoError(t, err)
		second, err := repo.BulkUpsert(ctx, componentUniqueBy, componentUses, []models.Component{row})
		require.NoError(t, err)

		assert.Equal(t, first[0].ID, second[0].ID)
	})

	t.Run("should find occurrences only inside the project", func(t *testing.T) {
		componentRepository := repositories.NewComponentRepository(db)
		occurrenceRepository := repositories.NewOccurrenceRepository(db)

		components, err := componentRepository.BulkUpsert(ctx, componentUniqueBy, componentUses, []models.Component{
			{Name: "libqux", ComponentType: dtos.ComponentTypeLibrary, OrganizationID: organizationID},
		})
		require.NoError(t, err)

		projectID := uuid.New()
		occurrenceUUID := ingestion.OccurrenceUUID(projectID, components[0].ID, nil, nil)
		_, err = occurrenceRepository.BulkUpsert(ctx, []string{"uuid"}, []string{"uuid", "project_id", "component_id", "licenses", "ancestors", "traversal_ids"}, []models.Occurrence{{
			UUID:         occurrenceUUID,
			ProjectID:    projectID,
			ComponentID:  components[0].ID,
			Licenses:     datatypes.NewJSONSlice([]dtos.License{{Name: "MIT License", SpdxIdentifier: "MIT"}}),
			Ancestors:    datatypes.NewJSONSlice([]dtos.Ancestor{}),
			TraversalIDs: pq.Int64Array{1, 2},
		}})
		require.NoError(t, err)

		found, err := occurrenceRepository.FindByUUIDs(ctx, projectID, []uuid.UUID{occurrenceUUID})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "MIT", found[0].Licenses[0].SpdxIdentifier)
		assert.Equal(t, pq.Int64Array{1, 2}, found[0].TraversalIDs)

		found, err = occurrenceRepository.FindByUUIDs(ctx, uuid.New(), []uuid.UUID{occurrenceUUID})
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("should ignore existing vulnerability links", func(t *testing.T) {
		componentRepository := repositories.NewComponentRepository(db)
		occurrenceRepository := repositories.NewOccurrenceRepository(db)
		linkRepository := repositories.NewOccurrenceVulnerabilityRepository(db)

		components, err := componentRepository.BulkUpsert(ctx, componentUniqueBy, componentUses, []models.Component{
			{Name: "liblink", ComponentType: dtos.ComponentTypeLibrary, OrganizationID: organizationID},
		})
		require.NoError(t, err)
		projectID := uuid.New()
		occurrences, err := occurrenceRepository.BulkUpsert(ctx, []string{"uuid"}, []string{"uuid", "project_id", "component_id"}, []models.Occurrence{{
			UUID:        ingestion.OccurrenceUUID(projectID, components[0].ID, nil, nil),
			ProjectID:   projectID,
			ComponentID: components[0].ID,
		}})
		require.NoError(t, err)

		links := []models.OccurrenceVulnerability{
			{OccurrenceID: occurrences[0].ID, VulnerabilityID: 1},
			{OccurrenceID: occurrences[0].ID, VulnerabilityID: 2},
		}
		created, err := linkRepository.CreateBatchIgnoringConflicts(ctx, links)
		require.NoError(t, err)
		assert.Equal(t, int64(2), created)

		created, err = linkRepository.CreateBatchIgnoringConflicts(ctx, append(links, models.OccurrenceVulnerability{OccurrenceID: occurrences[0].ID, VulnerabilityID: 3}))
		require.NoError(t, err)
		assert.Equal(t, int64(1), created)
	})

	t.Run("should read package licenses and vulnerability findings", func(t *testing.T) {
		licenseRepository := repositories.NewPackageLicenseRepository(db)
		findingRepository := repositories.NewVulnerabilityFindingRepository(db)

		_, err := licenseRepository.BulkUpsert(ctx, []string{"purl_type", "name"}, []string{"purl_type", "name", "default_license_names", "other_licenses"}, []models.PackageLicense{{
			PurlType:            "npm",
			Name:                "left-pad",
			DefaultLicenseNames: pq.StringArray{"MIT"},
			OtherLicenses:       datatypes.NewJSONSlice([]models.VersionLicenses{{LicenseNames: []string{"WTFPL"}, Versions: []string{"0.0.1"}}}),
		}})
		require.NoError(t, err)

		projectID := uuid.New()
		require.NoError(t, findingRepository.Create(ctx, []models.VulnerabilityFinding{
			{ProjectID: projectID, VulnerabilityID: 7, PackageName: "left-pad", PackageVersion: "1.3.0", PurlType: "npm", Severity: dtos.SeverityHigh},
			{ProjectID: uuid.New(), VulnerabilityID: 8, PackageName: "left-pad", PackageVersion: "1.3.0", PurlType: "npm", Severity: dtos.SeverityHigh},
		}))

		found, err := findingRepository.FindByProjectAndPackageNames(ctx, projectID, []string{"left-pad"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, int64(7), found[0].VulnerabilityID)

		resolver := services.NewLicenseService(licenseRepository, config.DefaultIngestionConfig())
		resolved, err := resolver.Resolve(ctx, []dtos.LicenseQuery{
			{Name: "left-pad", PurlType: "npm", Version: "1.3.0"},
			{Name: "left-pad", PurlType: "npm", Version: "0.0.1"},
		})
		require.NoError(t, err)
		assert.Equal(t, "MIT", resolved[0][0].SpdxIdentifier)
		assert.Equal(t, "WTFPL", resolved[1][0].SpdxIdentifier)
	})

	t.Run("should ingest a report end to end", func(t *testing.T) {
		cfg := config.DefaultIngestionConfig()
		service, err := ingestion.NewIngestionService(
			cfg,
			repositories.NewSourceRepository(db),
			repositories.NewComponentRepository(db),
			repositories.NewComponentVersionRepository(db),
			repositories.NewSourcePackageRepository(db),
			repositories.NewOccurrenceRepository(db),
			repositories.NewOccurrenceVulnerabilityRepository(db),
			services.NewLicenseService(repositories.NewPackageLicenseRepository(db), cfg),
			services.NewVulnerabilityCorrelator(repositories.NewVulnerabilityFindingRepository(db)),
			noopSynchronizer{},
		)
		require.NoError(t, err)

		pipeline := shared.PipelineContext{
			Project:    dtos.ProjectDTO{ID: uuid.New(), OrganizationID: organizationID, TraversalIDs: []int64{1}},
			PipelineID: 1,
			CommitSha:  "abc",
		}
		report := dtos.Report{
			Source: dtos.ReportSource{Type: dtos.SourceTypeDependencyScanning, InputFilePath: "go.sum", PackageManager: "go"},
			Components: []dtos.ReportComponent{
				{Name: "github.com/pkg/errors", Version: "v0.9.1", Purl: "pkg:golang/github.com/pkg/errors@v0.9.1"},
				{Name: "github.com/pkg/errors", Version: "v0.9.1", Purl: "pkg:golang/github.com/pkg/errors@v0.9.1"},
				{Name: "gorm.io/gorm", Version: "v1.31.1", Purl: "pkg:golang/gorm.io/gorm@v1.31.1"},
			},
		}

		result, err := service.Ingest(ctx, pipeline, report)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Occurrences)

		result, err = service.Ingest(ctx, pipeline, report)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Occurrences)
		assert.Equal(t, 2, result.OccurrencesSkipped)

		var count int64
		require.NoError(t, db.Model(&models.Occurrence{}).Where("project_id = ?", pipeline.ProjectID()).Count(&count).Error)
		assert.Equal(t, int64(2), count)

		var occurrence models.Occurrence
		require.NoError(t, db.Where("project_id = ?", pipeline.ProjectID()).First(&occurrence).Error)
		assert.NotNil(t, occurrence.ComponentVersionID)
		assert.Equal(t, "go.sum", occurrence.InputFilePath)
	})
}

type noopSynchronizer struct{}

func (noopSynchronizer) SyncVulnerabilities(context.Context, []int64) {}
