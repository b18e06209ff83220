// Copyright (C) 2025 l3montree GmbH
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

package dtos

// Report holds the already extracted components of one scanner run.
type Report struct {
	Source     ReportSource      `json:"source"`
	Components []ReportComponent `json:"components"`
}

type IngestionResult struct {
	Sources            int `json:"sources"`
	Components         int `json:"components"`
	ComponentVersions  int `json:"componentVersions"`
	SourcePackages     int `json:"sourcePackages"`
	Occurrences        int `json:"occurrences"`
	OccurrencesSkipped int `json:"occurrencesSkipped"`
	VulnerabilityLinks int `json:"vulnerabilityLinks"`
}

func (r *IngestionResult) Add(other IngestionResult) {
	r.Sources += other.Sources
	r.Components += other.Components
	r.ComponentVersions += other.ComponentVersions
	r.SourcePackages += other.SourcePackages
	r.Occurrences += other.Occurrences
	r.OccurrencesSkipped += other.OccurrencesSkipped
	r.VulnerabilityLinks += other.VulnerabilityLinks
}
