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

package dtos

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityUnknown  Severity = "unknown"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityInfo:     1,
	SeverityUnknown:  2,
	SeverityLow:      3,
	SeverityMedium:   4,
	SeverityHigh:     5,
	SeverityCritical: 6,
}

func (s Severity) Rank() int {
	return severityRank[s]
}

// VulnerabilityInfo is the already computed vulnerability summary for one occurrence.
type VulnerabilityInfo struct {
	VulnerabilityIDs []int64
	HighestSeverity  *Severity
}

func (v VulnerabilityInfo) Count() int {
	return len(v.VulnerabilityIDs)
}
