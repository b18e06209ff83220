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

package utils

import "sync"

type FireAndForgetSynchronizer struct {
	wg sync.WaitGroup
}

func NewFireAndForgetSynchronizer() *FireAndForgetSynchronizer {
	return &FireAndForgetSynchronizer{}
}

func (f *FireAndForgetSynchronizer) FireAndForget(fn func()) {
	f.wg.Go(fn)
}

// Wait blocks until every function handed to FireAndForget returned.
// Used on shutdown so queued notifications are not lost.
func (f *FireAndForgetSynchronizer) Wait() {
	f.wg.Wait()
}

type SyncFireAndForgetSynchronizer struct{}

// NewSyncFireAndForgetSynchronizer runs every function inline. Useful in tests.
func NewSyncFireAndForgetSynchronizer() SyncFireAndForgetSynchronizer {
	return SyncFireAndForgetSynchronizer{}
}

func (SyncFireAndForgetSynchronizer) FireAndForget(fn func()) {
	fn()
}
