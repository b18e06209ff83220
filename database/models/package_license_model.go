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
	"slices"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type VersionLicenses struct {
	LicenseNames []string `json:"license_names"`
	Versions     []string `json:"versions"`
}

// PackageLicense is the license database entry of a package across all of its versions.
type PackageLicense struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`

	PurlType            string                               `json:"purlType" gorm:"column:purl_type;type:text;not null"`
	Name                string                               `json:"name" gorm:"column:name;type:text;not null"`
	DefaultLicenseNames pq.StringArray                       `json:"defaultLicenseNames" gorm:"column:default_license_names;type:text[]"`
	OtherLicenses       datatypes.JSONSlice[VersionLicenses] `json:"otherLicenses" gorm:"column:other_licenses;type:jsonb;not null;default:'[]'"`
}

func (p PackageLicense) TableName() string {
	return "package_licenses"
}

func (p PackageLicense) GetID() int64 {
	return p.ID
}

type PackageLicenseIdentity struct {
	PurlType string
	Name     string
}

func (p PackageLicense) Identity() PackageLicenseIdentity {
	return PackageLicenseIdentity{PurlType: p.PurlType, Name: p.Name}
}

func (k PackageLicenseIdentity) Values() []any {
	return []any{k.PurlType, k.Name}
}

// LicenseNamesFor returns the spdx ids for a specific version.
// Version specific entries win over the package defaults.
func (p PackageLicense) LicenseNamesFor(version string) []string {
	for _, other := range p.OtherLicenses {
		if slices.Contains(other.Versions, version) {
			return other.LicenseNames
		}
	}
	return p.DefaultLicenseNames
}
