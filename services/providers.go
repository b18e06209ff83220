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

package services

import (
	"github.com/l3montree-dev/sbomingest/database"
	"github.com/l3montree-dev/sbomingest/shared"
	"github.com/l3montree-dev/sbomingest/utils"
	"go.uber.org/fx"
)

// Module provides the collaborators of the ingestion pipeline
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewLicenseService, fx.As(new(shared.LicenseResolver)))),
	fx.Provide(fx.Annotate(NewVulnerabilityCorrelator, fx.As(new(shared.VulnerabilityCorrelator)))),
	fx.Provide(fx.Annotate(NewSearchIndexSyncService, fx.As(new(shared.SearchIndexSynchronizer)))),
	fx.Provide(fx.Annotate(database.NewPostgreSQLBroker, fx.As(new(shared.PubSubBroker)))),
	// the concrete type is kept so the caller can wait for pending notifications on shutdown
	fx.Provide(fx.Annotate(utils.NewFireAndForgetSynchronizer, fx.As(fx.Self()), fx.As(new(shared.FireAndForgetSynchronizer)))),
)
