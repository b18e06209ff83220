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

package dtos

import "strings"

const UnknownLicenseIdentifier = "unknown"

type License struct {
	Name           string `json:"name"`
	SpdxIdentifier string `json:"spdx_identifier"`
	URL            string `json:"url,omitempty"`
}

func (l License) IsUnknown() bool {
	return strings.EqualFold(strings.TrimSpace(l.SpdxIdentifier), UnknownLicenseIdentifier)
}

func (l License) HasSpdxIdentifier() bool {
	return strings.TrimSpace(l.SpdxIdentifier) != ""
}

func UnknownLicense() License {
	return License{Name: UnknownLicenseIdentifier, SpdxIdentifier: UnknownLicenseIdentifier}
}

// LicenseQuery is one lookup handed to the license resolver.
type LicenseQuery struct {
	Name     string
	PurlType string
	Version  string
	Path     string
	// licenses declared by the report itself, they take precedence over the license database
	Declared []License
	// false when the report did not declare licenses at all
	HasDeclared bool
}
