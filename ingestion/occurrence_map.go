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

package ingestion

import (
	"strings"

	"github.com/google/uuid"
	"github.com/l3montree-dev/sbomingest/dtos"
)

// OccurrenceMap binds one report component to the ids the pipeline stages resolve for it.
// Every stage writes the ids it resolved back into the map, later stages read them.
type OccurrenceMap struct {
	ReportComponent dtos.ReportComponent
	ReportSource    *dtos.ReportSource

	ComponentID        *int64
	ComponentVersionID *int64
	SourceID           *int64
	SourcePackageID    *int64
	OccurrenceID       *int64
	UUID               *uuid.UUID
	VulnerabilityIDs   []int64

	purlType string
}

func NewOccurrenceMap(component dtos.ReportComponent, source *dtos.ReportSource) *OccurrenceMap {
	return &OccurrenceMap{
		ReportComponent: component,
		ReportSource:    source,
		purlType:        component.PurlType(),
	}
}

// NewOccurrenceMaps creates one map per report component. All maps share the report source.
func NewOccurrenceMaps(report dtos.Report) []*OccurrenceMap {
	var source *dtos.ReportSource
	if report.Source.Type != "" {
		s := report.Source
		source = &s
	}
	maps := make([]*OccurrenceMap, 0, len(report.Components))
	for _, component := range report.Components {
		maps = append(maps, NewOccurrenceMap(component, source))
	}
	return maps
}

// identityResolved is false if a stage the map was relevant to could not resolve its id.
// Writing such a map would persist it under a different occurrence identity.
func (m *OccurrenceMap) identityResolved() bool {
	if m.Version() != "" && m.ComponentVersionID == nil {
		return false
	}
	if m.ReportSource != nil && m.SourceID == nil {
		return false
	}
	return m.SourcePackageName() == "" || m.SourcePackageID != nil
}

func (m *OccurrenceMap) Name() string {
	return strings.TrimSpace(m.ReportComponent.Name)
}

func (m *OccurrenceMap) Version() string {
	return strings.TrimSpace(m.ReportComponent.Version)
}

func (m *OccurrenceMap) PurlType() string {
	return m.purlType
}

func (m *OccurrenceMap) ComponentType() dtos.ComponentType {
	if m.ReportComponent.ComponentType == "" {
		return dtos.ComponentTypeLibrary
	}
	return m.ReportComponent.ComponentType
}

func (m *OccurrenceMap) SourcePackageName() string {
	return strings.TrimSpace(m.ReportComponent.SourcePackageName)
}

func (m *OccurrenceMap) PackageManager() string {
	if m.ReportComponent.Properties.Packager != "" {
		return m.ReportComponent.Properties.Packager
	}
	if m.ReportSource != nil {
		return m.ReportSource.PackageManager
	}
	return ""
}

func (m *OccurrenceMap) InputFilePath() string {
	if m.ReportSource == nil {
		return ""
	}
	return m.ReportSource.OccurrenceInputFilePath()
}

func (m *OccurrenceMap) licenseQuery() dtos.LicenseQuery {
	return dtos.LicenseQuery{
		Name:        m.Name(),
		PurlType:    m.PurlType(),
		Version:     m.Version(),
		Path:        m.InputFilePath(),
		Declared:    m.ReportComponent.Licenses,
		HasDeclared: len(m.ReportComponent.Licenses) > 0,
	}
}
