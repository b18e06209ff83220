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

package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/l3montree-dev/sbomingest/database/models"
	"github.com/l3montree-dev/sbomingest/shared"
	"gorm.io/gorm/clause"
)

type occurrenceRepository struct {
	*GormRepository[models.OccurrenceIdentity, models.Occurrence]
}

func NewOccurrenceRepository(db shared.DB) *occurrenceRepository {
	return &occurrenceRepository{
		GormRepository: newGormRepository[models.OccurrenceIdentity, models.Occurrence](db),
	}
}

func (r *occurrenceRepository) FindByUUIDs(ctx context.Context, projectID uuid.UUID, uuids []uuid.UUID) ([]models.Occurrence, error) {
	if len(uuids) == 0 {
		return nil, nil
	}
	var occurrences []models.Occurrence
	err := r.GetDB(ctx).Where("project_id = ? AND uuid IN ?", projectID, uuids).Find(&occurrences).Error
	return occurrences, err
}

type occurrenceVulnerabilityRepository struct {
	db shared.DB
}

func NewOccurrenceVulnerabilityRepository(db shared.DB) *occurrenceVulnerabilityRepository {
	return &occurrenceVulnerabilityRepository{db: db}
}

func (r *occurrenceVulnerabilityRepository) CreateBatchIgnoringConflicts(ctx context.Context, links []models.OccurrenceVulnerability) (int64, error) {
	if len(links) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sbom_occurrence_id"}, {Name: "vulnerability_id"}},
			DoNothing: true,
		}).
		Create(&links)
	return result.RowsAffected, result.Error
}
