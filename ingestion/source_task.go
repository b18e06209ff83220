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
	"gorm.io/datatypes"
)

// sourceDefinition resolves the report source. Its id is part of the occurrence identity,
// so the same component found in two lockfiles results in two occurrences.
type sourceDefinition struct{}

func (sourceDefinition) Name() string { return "source" }

func (sourceDefinition) IdentityAttributes() []string {
	return []string{"source_type", "fingerprint", "organization_id"}
}

func (sourceDefinition) OutputColumns() []string {
	return []string{"source_type", "fingerprint", "source", "organization_id"}
}

func (sourceDefinition) Relevant(m *OccurrenceMap) bool {
	return m.ReportSource != nil
}

func (sourceDefinition) Identity(pipeline shared.PipelineContext, m *OccurrenceMap) models.SourceIdentity {
	return models.SourceIdentity{
		SourceType:     m.ReportSource.Type,
		Fingerprint:    m.ReportSource.Fingerprint(),
		OrganizationID: pipeline.OrganizationID(),
	}
}

func (sourceDefinition) Row(key models.SourceIdentity, m *OccurrenceMap) models.Source {
	return models.Source{
		SourceType:     key.SourceType,
		Fingerprint:    key.Fingerprint,
		Source:         datatypes.JSONMap(m.ReportSource.Data()),
		OrganizationID: key.OrganizationID,
	}
}

func (sourceDefinition) AssignID(m *OccurrenceMap, id int64) {
	m.SourceID = utils.Ptr(id)
}

type SourceIngestionTask struct {
	*entityTask[models.SourceIdentity, models.Source]
}

func NewSourceIngestionTask(repository shared.SourceRepository, batchSize int) (*SourceIngestionTask, error) {
	task, err := newEntityTask[models.SourceIdentity, models.Source](sourceDefinition{}, repository, batchSize)
	if err != nil {
		return nil, err
	}
	return &SourceIngestionTask{entityTask: task}, nil
}
