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
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// never change it, every persisted occurrence uuid depends on it
var occurrenceNamespace = uuid.MustParse("5b5f3c1e-1f7b-4d0c-9a59-6f1c2b7e8a41")

// OccurrenceUUID is a version 5 uuid over the occurrence identity.
// Missing version or source ids are encoded as empty segments.
func OccurrenceUUID(projectID uuid.UUID, componentID int64, componentVersionID, sourceID *int64) uuid.UUID {
	name := strings.Join([]string{
		strconv.FormatInt(componentID, 10),
		formatOptionalID(componentVersionID),
		formatOptionalID(sourceID),
		projectID.String(),
	}, "-")
	return uuid.NewSHA1(occurrenceNamespace, []byte(name))
}

func formatOptionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
