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

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// labelled by task name, e.g. "component" or "occurrence"
var IngestionStageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "sbomingest_stage_duration_seconds",
	Help:    "Duration of a single ingestion stage for one batch in seconds",
	Buckets: prometheus.DefBuckets,
}, []string{"task"})

var IngestionBatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "sbomingest_batch_duration_seconds",
	Help:    "Duration of all ingestion stages for one batch in seconds",
	Buckets: prometheus.DefBuckets,
})

var IngestionRowsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sbomingest_rows_written_total",
	Help: "The total number of rows inserted or updated",
}, []string{"task"})

var IngestionRowsExisting = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sbomingest_rows_existing_total",
	Help: "The total number of identities which already existed and were not written",
}, []string{"task"})

var IngestionMapsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sbomingest_maps_dropped_total",
	Help: "The total number of occurrence maps a stage filtered out",
}, []string{"task", "reason"})

var IngestionDuplicateKeyRetries = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sbomingest_duplicate_key_retries_total",
	Help: "The total number of inserts which collided with a concurrent ingestion and were re-fetched",
}, []string{"task"})

var SearchIndexSyncFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "sbomingest_search_index_sync_failures_total",
	Help: "The total number of failed search index synchronizations",
})

var LicenseCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sbomingest_license_cache_lookups_total",
	Help: "The total number of license cache lookups",
}, []string{"result"})
