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
	"github.com/l3montree-dev/sbomingest/database/models"
	"github.com/l3montree-dev/sbomingest/shared"
)

type componentRepository struct {
	*GormRepository[models.ComponentIdentity, models.Component]
}

func NewComponentRepository(db shared.DB) *componentRepository {
	return &componentRepository{
		GormRepository: newGormRepository[models.ComponentIdentity, models.Component](db),
	}
}

type componentVersionRepository struct {
	*GormRepository[models.ComponentVersionIdentity, models.ComponentVersion]
}

func NewComponentVersionRepository(db shared.DB) *componentVersionRepository {
	return &componentVersionRepository{
		GormRepository: newGormRepository[models.ComponentVersionIdentity, models.ComponentVersion](db),
	}
}

type sourcePackageRepository struct {
	*GormRepository[models.SourcePackageIdentity, models.SourcePackage]
}

func NewSourcePackageRepository(db shared.DB) *sourcePackageRepository {
	return &sourcePackageRepository{
		GormRepository: newGormRepository[models.SourcePackageIdentity, models.SourcePackage](db),
	}
}
