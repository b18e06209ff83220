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
	"gorm.io/datatypes"
)

// Source is the report source a set of occurrences was found in, like a lockfile or a container image.
type Source struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`

	SourceType     dtos.SourceType   `json:"sourceType" gorm:"column:source_type;type:text;not null"`
	Fingerprint    string            `json:"fingerprint" gorm:"column:fingerprint;type:text;not null"`
	Source         datatypes.JSONMap `json:"source" gorm:"column:source;type:jsonb;not null"`
	OrganizationID uuid.UUID         `json:"organizationId" gorm:"column:organization_id;type:uuid;not null"`
}

func (s Source) TableName() string {
	return "sbom_sources"
}

func (s Source) GetID() int64 {
	return s.ID
}

type SourceIdentity struct {
	SourceType     dtos.SourceType
	Fingerprint    string
	OrganizationID uuid.UUID
}

func (s Source) Identity() SourceIdentity {
	return SourceIdentity{SourceType: s.SourceType, Fingerprint: s.Fingerprint, OrganizationID: s.OrganizationID}
}

func (k SourceIdentity) Values() []any {
	return []any{string(k.SourceType), k.Fingerprint, k.OrganizationID}
}
