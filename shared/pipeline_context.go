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

package shared

import (
	"github.com/google/uuid"
	"github.com/l3montree-dev/sbomingest/dtos"
)

// PipelineContext describes the pipeline run a report was produced by. It is read-only for the ingestion.
type PipelineContext struct {
	Project    dtos.ProjectDTO
	PipelineID int64
	CommitSha  string
}

func (p PipelineContext) ProjectID() uuid.UUID {
	return p.Project.ID
}

func (p PipelineContext) OrganizationID() uuid.UUID {
	return p.Project.OrganizationID
}
