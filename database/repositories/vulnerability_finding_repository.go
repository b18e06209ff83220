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
)

type vulnerabilityFindingRepository struct {
	db shared.DB
}

func NewVulnerabilityFindingRepository(db shared.DB) *vulnerabilityFindingRepository {
	return &vulnerabilityFindingRepository{db: db}
}

func (r *vulnerabilityFindingRepository) FindByProjectAndPackageNames(ctx context.Context, projectID uuid.UUID, packageNames []string) ([]models.VulnerabilityFinding, error) {
	if len(packageNames) == 0 {
		return nil, nil
	}
	var findings []models.VulnerabilityFinding
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND package_name IN ?", projectID, packageNames).
		Order("id").
		Find(&findings).Error
	return findings, err
}

func (r *vulnerabilityFindingRepository) Create(ctx context.Context, findings []models.VulnerabilityFinding) error {
	if len(findings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&findings).Error
}
