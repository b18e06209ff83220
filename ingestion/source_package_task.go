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

type sourcePackageDefinition struct{}

func (sourcePackageDefinition) Name() string { return "source_package" }

func (sourcePackageDefinition) IdentityAttributes() []string {
	return []string{"name", "purl_type", "organization_id"}
}

func (sourcePackageDefinition) OutputColumns() []string {
	return []string{"name", "purl_type", "organization_id"}
}

func (sourcePackageDefinition) Relevant(m *OccurrenceMap) bool {
	return m.SourcePackageName() != ""
}

func (sourcePackageDefinition) Identity(pipeline shared.PipelineContext, m *OccurrenceMap) models.SourcePackageIdentity {
	return models.SourcePackageIdentity{
		Name:           m.SourcePackageName(),
		PurlType:       m.PurlType(),
		OrganizationID: pipeline.OrganizationID(),
	}
}

func (sourcePackageDefinition) Row(key models.SourcePackageIdentity, _ *OccurrenceMap) models.SourcePackage {
	return models.SourcePackage{
		Name:           key.Name,
		PurlType:       key.PurlType,
		OrganizationID: key.OrganizationID,
	}
}

func (sourcePackageDefinition) AssignID(m *OccurrenceMap, id int64) {
	m.SourcePackageID = utils.Ptr(id)
}

type SourcePackageIngestionTask struct {
	*entityTask[models.SourcePackageIdentity, models.SourcePackage]
}

func NewSourcePackageIngestionTask(repository shared.SourcePackageRepository, batchSize int) (*SourcePackageIngestionTask, error) {
	task, err := newEntityTask[models.SourcePackageIdentity, models.SourcePackage](sourcePackageDefinition{}, repository, batchSize)
	if err != nil {
		return nil, err
	}
	return &SourcePackageIngestionTask{entityTask: task}, nil
}
