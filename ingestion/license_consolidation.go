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
	"fmt"

	"github.com/l3montree-dev/sbomingest/dtos"
)

// consolidateLicenses replaces all licenses with an unknown spdx identifier by a single
// entry counting them. The known licenses keep their order.
func consolidateLicenses(licenses []dtos.License) []dtos.License {
	consolidated := make([]dtos.License, 0, len(licenses))
	unknown := 0
	for _, l := range licenses {
		if l.IsUnknown() {
			unknown++
			continue
		}
		consolidated = append(consolidated, l)
	}
	if unknown == 0 {
		return consolidated
	}
	return append(consolidated, dtos.License{
		Name:           unknownLicensesName(unknown),
		SpdxIdentifier: dtos.UnknownLicenseIdentifier,
	})
}

func unknownLicensesName(count int) string {
	if count == 1 {
		return "1 unknown license"
	}
	return fmt.Sprintf("%d unknown licenses", count)
}
