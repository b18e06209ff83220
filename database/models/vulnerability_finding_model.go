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
)

// VulnerabilityFinding is written by the vulnerability matching subsystem.
// The ingestion only reads it to correlate occurrences with vulnerabilities.
type VulnerabilityFinding struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`

	ProjectID       uuid.UUID     `json:"projectId" gorm:"column:project_id;type:uuid;not null"`
	VulnerabilityID int64         `json:"vulnerabilityId" gorm:"column:vulnerability_id;not null"`
	PackageName     string        `json:"packageName" gorm:"column:package_name;type:text;not null"`
	PackageVersion  string        `json:"packageVersion" gorm:"column:package_version;type:text;not null;default:''"`
	PurlType        string        `json:"purlType" gorm:"column:purl_type;type:text;not null;default:''"`
	Severity        dtos.Severity `json:"severity" gorm:"column:severity;type:text;not null"`
}

func (v VulnerabilityFinding) TableName() string {
	return "vulnerability_findings"
}
