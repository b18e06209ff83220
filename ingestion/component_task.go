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

type componentDefinition struct{}

func (componentDefinition) Name() string { return "component" }

func (componentDefinition) IdentityAttributes() []string {
	return []string{"name", "purl_type", "component_type", "organization_id"}
}

func (componentDefinition) OutputColumns() []string {
	return []string{"name", "purl_type", "component_type", "organization_id"}
}

func (componentDefinition) Relevant(m *OccurrenceMap) bool {
	return m.Name() != ""
}

func (componentDefinition) Identity(pipeline shared.PipelineContext, m *OccurrenceMap) models.ComponentIdentity {
	return models.ComponentIdentity{
		Name:           m.Name(),
		PurlType:       m.PurlType(),
		ComponentType:  m.ComponentType(),
		OrganizationID: pipeline.OrganizationID(),
	}
}

func (componentDefinition) Row(key models.ComponentIdentity, _ *OccurrenceMap) models.Component {
	return models.Component{
		Name:           key.Name,
		PurlType:       key.PurlType,
		ComponentType:  key.ComponentType,
		OrganizationID: key.OrganizationID,
	}
}

func (componentDefinition) AssignID(m *OccurrenceMap, id int64) {
	m.ComponentID = utils.Ptr(id)
}

type ComponentIngestionTask struct {
	*entityTask[models.ComponentIdentity, models.Component]
}

func NewComponentIngestionTask(repository shared.ComponentRepository, batchSize int) (*ComponentIngestionTask, error) {
	task, err := newEntityTask[models.ComponentIdentity, models.Component](componentDefinition{}, repository, batchSize)
	if err != nil {
		return nil, err
	}
	return &ComponentIngestionTask{entityTask: task}, nil
}
