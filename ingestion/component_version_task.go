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
	"github.com/l3montree-dev/sbomingest/database/models"
	"github.com/l3montree-dev/sbomingest/shared"
	"github.com/l3montree-dev/sbomingest/utils"
)

type componentVersionDefinition struct{}

func (componentVersionDefinition) Name() string { return "component_version" }

func (componentVersionDefinition) IdentityAttributes() []string {
	return []string{"component_id", "version"}
}

func (componentVersionDefinition) OutputColumns() []string {
	return []string{"component_id", "version"}
}

// components without a version only get an occurrence without version
func (componentVersionDefinition) Relevant(m *OccurrenceMap) bool {
	return m.ComponentID != nil && m.Version() != ""
}

func (componentVersionDefinition) Identity(_ shared.PipelineContext, m *OccurrenceMap) models.ComponentVersionIdentity {
	return models.ComponentVersionIdentity{
		ComponentID: *m.ComponentID,
		Version:     m.Version(),
	}
}

func (componentVersionDefinition) Row(key models.ComponentVersionIdentity, _ *OccurrenceMap) models.ComponentVersion {
	return models.ComponentVersion{
		ComponentID: key.ComponentID,
		Version:     key.Version,
	}
}

func (componentVersionDefinition) AssignID(m *OccurrenceMap, id int64) {
	m.ComponentVersionID = utils.Ptr(id)
}

type ComponentVersionIngestionTask struct {
	*entityTask[models.ComponentVersionIdentity, models.ComponentVersion]
}

func NewComponentVersionIngestionTask(repository shared.ComponentVersionRepository, batchSize int) (*ComponentVersionIngestionTask, error) {
	task, err := newEntityTask[models.ComponentVersionIdentity, models.ComponentVersion](componentVersionDefinition{}, repository, batchSize)
	if err != nil {
		return nil, err
	}
	return &ComponentVersionIngestionTask{entityTask: task}, nil
}
