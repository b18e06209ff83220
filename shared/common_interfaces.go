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

package shared

import (
	"context"

	"github.com/google/uuid"
	"github.com/l3montree-dev/sbomingest/database/models"
	"github.com/l3montree-dev/sbomingest/dtos"
)

// IdentityRepository finds and writes rows by their identity tuple.
// uniqueBy names the identity columns, uses the columns written on insert.
type IdentityRepository[K comparable, T any] interface {
	FindByIdentities(ctx context.Context, uniqueBy []string, keys []K) ([]T, error)
	// BulkUpsert returns the written rows with their ids. The returned rows carry the
	// identity columns read back from the database, their order is not significant.
	BulkUpsert(ctx context.Context, uniqueBy []string, uses []string, rows []T) ([]T, error)
}

type ComponentRepository interface {
	IdentityRepository[models.ComponentIdentity, models.Component]
}

type ComponentVersionRepository interface {
	IdentityRepository[models.ComponentVersionIdentity, models.ComponentVersion]
}

type SourcePackageRepository interface {
	IdentityRepository[models.SourcePackageIdentity, models.SourcePackage]
}

type SourceRepository interface {
	IdentityRepository[models.SourceIdentity, models.Source]
}

type OccurrenceRepository interface {
	IdentityRepository[models.OccurrenceIdentity, models.Occurrence]
	FindByUUIDs(ctx context.Context, projectID uuid.UUID, uuids []uuid.UUID) ([]models.Occurrence, error)
}

type OccurrenceVulnerabilityRepository interface {
	// CreateBatchIgnoringConflicts returns the number of links which did not exist before
	CreateBatchIgnoringConflicts(ctx context.Context, links []models.OccurrenceVulnerability) (int64, error)
}

type PackageLicenseRepository interface {
	IdentityRepository[models.PackageLicenseIdentity, models.PackageLicense]
}

type VulnerabilityFindingRepository interface {
	FindByProjectAndPackageNames(ctx context.Context, projectID uuid.UUID, packageNames []string) ([]models.VulnerabilityFinding, error)
	Create(ctx context.Context, findings []models.VulnerabilityFinding) error
}

// LicenseResolver returns one license list per query, in query order.
type LicenseResolver interface {
	Resolve(ctx context.Context, queries []dtos.LicenseQuery) ([][]dtos.License, error)
}

// VulnerabilityCorrelator returns one entry per component, in input order.
type VulnerabilityCorrelator interface {
	Correlate(ctx context.Context, pipeline PipelineContext, components []dtos.ReportComponent) ([]dtos.VulnerabilityInfo, error)
}

type SearchIndexSynchronizer interface {
	SyncVulnerabilities(ctx context.Context, vulnerabilityIDs []int64)
}

type FireAndForgetSynchronizer interface {
	FireAndForget(fn func())
}
