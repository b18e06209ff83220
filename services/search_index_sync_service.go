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
	"context"
	"log/slog"
	"slices"

	"github.com/l3montree-dev/sbomingest/monitoring"
	"github.com/l3montree-dev/sbomingest/shared"
	"github.com/l3montree-dev/sbomingest/utils"
)

// an id takes at most 20 bytes in the json payload, this keeps a message well below the notify limit
const vulnerabilityIDsPerMessage = 300

// SearchIndexSyncService asks the search indexer to refresh vulnerabilities.
// Failures are reported but never returned: the ingestion does not depend on the index.
type SearchIndexSyncService struct {
	broker       shared.PubSubBroker
	synchronizer shared.FireAndForgetSynchronizer
}

var _ shared.SearchIndexSynchronizer = (*SearchIndexSyncService)(nil)

func NewSearchIndexSyncService(broker shared.PubSubBroker, synchronizer shared.FireAndForgetSynchronizer) *SearchIndexSyncService {
	return &SearchIndexSyncService{
		broker:       broker,
		synchronizer: synchronizer,
	}
}

func (s *SearchIndexSyncService) SyncVulnerabilities(ctx context.Context, vulnerabilityIDs []int64) {
	if len(vulnerabilityIDs) == 0 {
		return
	}
	ids := slices.Clone(vulnerabilityIDs)
	// the caller returns before the notification is sent
	ctx = context.WithoutCancel(ctx)

	s.synchronizer.FireAndForget(func() {
		defer monitoring.RecoverAndAlert("panic while syncing the vulnerability search index")

		for _, chunk := range utils.Chunk(ids, vulnerabilityIDsPerMessage) {
			err := s.broker.Publish(ctx, shared.VulnerabilitySearchSyncMessage{VulnerabilityIDs: chunk})
			if err != nil {
				monitoring.SearchIndexSyncFailures.Inc()
				monitoring.Alert("could not publish vulnerability search sync message", err)
			}
		}
		slog.Debug("requested vulnerability search index sync", "vulnerabilities", len(ids))
	})
}
