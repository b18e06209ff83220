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
	"slices"
	"strings"

	"github.com/l3montree-dev/sbomingest/database/models"
	"github.com/l3montree-dev/sbomingest/dtos"
	"github.com/l3montree-dev/sbomingest/shared"
	"github.com/l3montree-dev/sbomingest/utils"
	"github.com/pkg/errors"
)

type VulnerabilityCorrelator struct {
	vulnerabilityFindingRepository shared.VulnerabilityFindingRepository
}

var _ shared.VulnerabilityCorrelator = (*VulnerabilityCorrelator)(nil)

func NewVulnerabilityCorrelator(vulnerabilityFindingRepository shared.VulnerabilityFindingRepository) *VulnerabilityCorrelator {
	return &VulnerabilityCorrelator{
		vulnerabilityFindingRepository: vulnerabilityFindingRepository,
	}
}

type findingKey struct {
	name    string
	version string
}

// Correlate matches the findings of the project against the components by package name and version.
// A finding without purl type matches every ecosystem.
func (c *VulnerabilityCorrelator) Correlate(ctx context.Context, pipeline shared.PipelineContext, components []dtos.ReportComponent) ([]dtos.VulnerabilityInfo, error) {
	result := make([]dtos.VulnerabilityInfo, len(components))
	if len(components) == 0 {
		return result, nil
	}

	names := utils.UniqBy(utils.Filter(utils.Map(components, func(c dtos.ReportComponent) string {
		return strings.TrimSpace(c.Name)
	}), func(name string) bool {
		return name != ""
	}), func(name string) string {
		return name
	})
	if len(names) == 0 {
		return result, nil
	}

	findings, err := c.vulnerabilityFindingRepository.FindByProjectAndPackageNames(ctx, pipeline.ProjectID(), names)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch vulnerability findings")
	}

	_, byPackage := utils.GroupBy(findings, func(f models.VulnerabilityFinding) findingKey {
		return findingKey{name: f.PackageName, version: strings.TrimSpace(f.PackageVersion)}
	})

	for i, component := range components {
		candidates := byPackage[findingKey{name: strings.TrimSpace(component.Name), version: strings.TrimSpace(component.Version)}]
		purlType := component.PurlType()

		ids := make([]int64, 0, len(candidates))
		var highest *dtos.Severity
		for _, f := range candidates {
			if f.PurlType != "" && purlType != "" && !strings.EqualFold(f.PurlType, purlType) {
				continue
			}
			ids = append(ids, f.VulnerabilityID)
			if highest == nil || f.Severity.Rank() > highest.Rank() {
				highest = utils.Ptr(f.Severity)
			}
		}
		slices.Sort(ids)
		result[i] = dtos.VulnerabilityInfo{
			VulnerabilityIDs: slices.Compact(ids),
			HighestSeverity:  highest,
		}
	}
	return result, nil
}
