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
	"github.com/l3montree-dev/sbomingest/shared"
	"go.uber.org/fx"
)

// Module provides all repository constructors as their interfaces
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewComponentRepository, fx.As(new(shared.ComponentRepository)))),
	fx.Provide(fx.Annotate(NewComponentVersionRepository, fx.As(new(shared.ComponentVersionRepository)))),
	fx.Provide(fx.Annotate(NewSourcePackageRepository, fx.As(new(shared.SourcePackageRepository)))),
	fx.Provide(fx.Annotate(NewSourceRepository, fx.As(new(shared.SourceRepository)))),
	fx.Provide(fx.Annotate(NewOccurrenceRepository, fx.As(new(shared.OccurrenceRepository)))),
	fx.Provide(fx.Annotate(NewOccurrenceVulnerabilityRepository, fx.As(new(shared.OccurrenceVulnerabilityRepository)))),
	fx.Provide(fx.Annotate(NewPackageLicenseRepository, fx.As(new(shared.PackageLicenseRepository)))),
	fx.Provide(fx.Annotate(NewVulnerabilityFindingRepository, fx.As(new(shared.VulnerabilityFindingRepository)))),
)
