// Copyright (C) 2024 Tim Bastin, l3montree GmbH
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

// Component is shared by every project of an organization using the same dependency.
type Component struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`

	Name           string             `json:"name" gorm:"column:name;type:text;not null"`
	PurlType       string             `json:"purlType" gorm:"column:purl_type;type:text;not null;default:''"`
	ComponentType  dtos.ComponentType `json:"componentType" gorm:"column:component_type;type:text;not null"`
	OrganizationID uuid.UUID          `json:"organizationId" gorm:"column:organization_id;type:uuid;not null"`
}

func (c Component) TableName() string {
	return "sbom_components"
}

func (c Component) GetID() int64 {
	return c.ID
}

type ComponentIdentity struct {
	Name           string
	PurlType       string
	ComponentType  dtos.ComponentType
	OrganizationID uuid.UUID
}

func (c Component) Identity() ComponentIdentity {
	return ComponentIdentity{Name: c.Name, PurlType: c.PurlType, ComponentType: c.ComponentType, OrganizationID: c.OrganizationID}
}

func (k ComponentIdentity) Values() []any {
	return []any{k.Name, k.PurlType, string(k.ComponentType), k.OrganizationID}
}

type ComponentVersion struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`

	ComponentID int64  `json:"componentId" gorm:"column:component_id;not null"`
	Version     string `json:"version" gorm:"column:version;type:text;not null"`
}

func (c ComponentVersion) TableName() string {
	return "sbom_component_versions"
}

func (c ComponentVersion) GetID() int64 {
	return c.ID
}

type ComponentVersionIdentity struct {
	ComponentID int64
	Version     string
}

func (c ComponentVersion) Identity() ComponentVersionIdentity {
	return ComponentVersionIdentity{ComponentID: c.ComponentID, Version: c.Version}
}

func (k ComponentVersionIdentity) Values() []any {
	return []any{k.ComponentID, k.Version}
}

// SourcePackage is the origin package of vendored or sub-packaged dependencies (e.g. a debian source package).
type SourcePackage struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`

	Name           string    `json:"name" gorm:"column:name;type:text;not null"`
	PurlType       string    `json:"purlType" gorm:"column:purl_type;type:text;not null;default:''"`
	OrganizationID uuid.UUID `json:"organizationId" gorm:"column:organization_id;type:uuid;not null"`
}

func (s SourcePackage) TableName() string {
	return "sbom_source_packages"
}

func (s SourcePackage) GetID() int64 {
	return s.ID
}

type SourcePackageIdentity struct {
	Name           string
	PurlType       string
	OrganizationID uuid.UUID
}

func (s SourcePackage) Identity() SourcePackageIdentity {
	return SourcePackageIdentity{Name: s.Name, PurlType: s.PurlType, OrganizationID: s.OrganizationID}
}

func (k SourcePackageIdentity) Values() []any {
	return []any{k.Name, k.PurlType, k.OrganizationID}
}
