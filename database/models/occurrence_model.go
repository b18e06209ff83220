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

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/l3montree-dev/sbomingest/dtos"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Occurrence states that a component (at a version, found through a source) is present in a project.
// The UUID is derived from those identity fields and is the only deduplication key.
type Occurrence struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`

	UUID      uuid.UUID `json:"uuid" gorm:"column:uuid;type:uuid;not null"`
	ProjectID uuid.UUID `json:"projectId" gorm:"column:project_id;type:uuid;not null"`

	ComponentID        int64  `json:"componentId" gorm:"column:component_id;not null"`
	ComponentVersionID *int64 `json:"componentVersionId" gorm:"column:component_version_id"`
	SourceID           *int64 `json:"sourceId" gorm:"column:source_id"`
	SourcePackageID    *int64 `json:"sourcePackageId" gorm:"column:source_package_id"`

	// changes on every pipeline run
	PipelineID int64  `json:"pipelineId" gorm:"column:pipeline_id"`
	CommitSha  string `json:"commitSha" gorm:"column:commit_sha;type:text"`

	ComponentName      string                             `json:"componentName" gorm:"column:component_name;type:text"`
	PackageManager     string                             `json:"packageManager" gorm:"column:package_manager;type:text"`
	InputFilePath      string                             `json:"inputFilePath" gorm:"column:input_file_path;type:text"`
	Licenses           datatypes.JSONSlice[dtos.License]  `json:"licenses" gorm:"column:licenses;type:jsonb;not null;default:'[]'"`
	HighestSeverity    *dtos.Severity                     `json:"highestSeverity" gorm:"column:highest_severity;type:text"`
	VulnerabilityCount int                                `json:"vulnerabilityCount" gorm:"column:vulnerability_count;not null;default:0"`
	TraversalIDs       pq.Int64Array                      `json:"traversalIds" gorm:"column:traversal_ids;type:bigint[]"`
	Archived           bool                               `json:"archived" gorm:"column:archived;not null;default:false"`
	Ancestors          datatypes.JSONSlice[dtos.Ancestor] `json:"ancestors" gorm:"column:ancestors;type:jsonb;not null;default:'[]'"`
	Reachability       dtos.Reachability                  `json:"reachability" gorm:"column:reachability;type:text;not null;default:'unknown'"`
}

func (o Occurrence) TableName() string {
	return "sbom_occurrences"
}

func (o Occurrence) GetID() int64 {
	return o.ID
}

type OccurrenceIdentity struct {
	UUID uuid.UUID
}

func (o Occurrence) Identity() OccurrenceIdentity {
	return OccurrenceIdentity{UUID: o.UUID}
}

func (k OccurrenceIdentity) Values() []any {
	return []any{k.UUID}
}

type OccurrenceVulnerability struct {
	OccurrenceID    int64     `json:"occurrenceId" gorm:"primaryKey;autoIncrement:false;column:sbom_occurrence_id"`
	VulnerabilityID int64     `json:"vulnerabilityId" gorm:"primaryKey;autoIncrement:false;column:vulnerability_id"`
	CreatedAt       time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (o OccurrenceVulnerability) TableName() string {
	return "sbom_occurrences_vulnerabilities"
}

type OccurrenceVulnerabilityIdentity struct {
	OccurrenceID    int64
	VulnerabilityID int64
}

func (o OccurrenceVulnerability) Identity() OccurrenceVulnerabilityIdentity {
	return OccurrenceVulnerabilityIdentity{OccurrenceID: o.OccurrenceID, VulnerabilityID: o.VulnerabilityID}
}

func (k OccurrenceVulnerabilityIdentity) Values() []any {
	return []any{k.OccurrenceID, k.VulnerabilityID}
}
