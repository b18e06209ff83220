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

package licenses

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/l3montree-dev/sbomingest/dtos"
)

//go:embed spdx-licenses.json
var licensesFile []byte

type license struct {
	Reference             string `json:"reference"`
	IsDeprecatedLicenseID bool   `json:"isDeprecatedLicenseId"`
	Name                  string `json:"name"`
	LicenseID             string `json:"licenseId"`
	IsOsiApproved         bool   `json:"isOsiApproved"`
}

type licenseJSONFile struct {
	LicenseListVersion string    `json:"licenseListVersion"`
	Licenses           []license `json:"licenses"`
}

// lower case spdx id -> license
var licenseMap map[string]license

func init() {
	var licenses licenseJSONFile
	if err := json.Unmarshal(licensesFile, &licenses); err != nil {
		panic(err)
	}
	licenseMap = make(map[string]license, len(licenses.Licenses))
	for _, l := range licenses.Licenses {
		licenseMap[strings.ToLower(l.LicenseID)] = l
	}
}

func URL(spdxID string) string {
	return "https://spdx.org/licenses/" + spdxID + ".html"
}

// Lookup matches the spdx id case-insensitively and returns the catalogue entry.
func Lookup(spdxID string) (dtos.License, bool) {
	l, ok := licenseMap[strings.ToLower(strings.TrimSpace(spdxID))]
	if !ok {
		return dtos.License{}, false
	}
	return dtos.License{
		Name:           l.Name,
		SpdxIdentifier: l.LicenseID,
		URL:            URL(l.LicenseID),
	}, true
}

// FromSpdxID builds the license record for an spdx id coming from the package license database.
// Ids missing in the catalogue keep the id as name and get no url.
func FromSpdxID(spdxID string) dtos.License {
	spdxID = strings.TrimSpace(spdxID)
	if spdxID == "" || strings.EqualFold(spdxID, dtos.UnknownLicenseIdentifier) {
		return dtos.UnknownLicense()
	}
	if l, ok := Lookup(spdxID); ok {
		return l
	}
	return dtos.License{Name: spdxID, SpdxIdentifier: spdxID}
}
