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
	"testing"

	"github.com/l3montree-dev/sbomingest/dtos"
	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	t.Run("should match spdx ids case-insensitively", func(t *testing.T) {
		l, ok := Lookup("apache-2.0")
		assert.True(t, ok)
		assert.Equal(t, dtos.License{
			Name:           "Apache License 2.0",
			SpdxIdentifier: "Apache-2.0",
			URL:            "https://spdx.org/licenses/Apache-2.0.html",
		}, l)
	})

	t.Run("should not know made up ids", func(t *testing.T) {
		_, ok := Lookup("not-a-license")
		assert.False(t, ok)
	})
}

func TestFromSpdxID(t *testing.T) {
	t.Run("should return the unknown license for empty ids", func(t *testing.T) {
		assert.Equal(t, dtos.UnknownLicense(), FromSpdxID("  "))
	})

	t.Run("should return the unknown license for the unknown id", func(t *testing.T) {
		assert.True(t, FromSpdxID("UNKNOWN").IsUnknown())
	})

	t.Run("should keep ids which are missing in the catalogue", func(t *testing.T) {
		assert.Equal(t, dtos.License{Name: "LicenseRef-custom", SpdxIdentifier: "LicenseRef-custom"}, FromSpdxID("LicenseRef-custom"))
	})

	t.Run("should use the catalogue name", func(t *testing.T) {
		assert.Equal(t, "MIT License", FromSpdxID("MIT").Name)
	})
}
