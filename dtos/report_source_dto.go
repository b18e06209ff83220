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

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

type SourceType string

const (
	SourceTypeDependencyScanning SourceType = "dependency_scanning"
	SourceTypeContainerScanning  SourceType = "container_scanning"
)

// ReportSource describes where the components of a report were found.
type ReportSource struct {
	Type                   SourceType `json:"type" validate:"required,oneof=dependency_scanning container_scanning"`
	InputFilePath          string     `json:"inputFilePath,omitempty"`
	PackageManager         string     `json:"packageManager,omitempty"`
	ImageName              string     `json:"imageName,omitempty" validate:"required_if=Type container_scanning"`
	ImageTag               string     `json:"imageTag,omitempty"`
	OperatingSystemName    string     `json:"operatingSystemName,omitempty"`
	OperatingSystemVersion string     `json:"operatingSystemVersion,omitempty"`
}

// Data is the descriptor persisted with the source row.
func (s ReportSource) Data() map[string]any {
	data := map[string]any{}
	add := func(key, value string) {
		if value != "" {
			data[key] = value
		}
	}
	add("input_file_path", s.InputFilePath)
	add("package_manager", s.PackageManager)
	add("image_name", s.ImageName)
	add("image_tag", s.ImageTag)
	add("operating_system_name", s.OperatingSystemName)
	add("operating_system_version", s.OperatingSystemVersion)
	return data
}

// Fingerprint is stable for equal descriptors. encoding/json sorts map keys.
func (s ReportSource) Fingerprint() string {
	b, _ := json.Marshal(s.Data()) // a map[string]any of strings cannot fail to marshal
	sum := sha256.Sum256(append([]byte(string(s.Type)+":"), b...))
	return hex.EncodeToString(sum[:])
}

// OccurrenceInputFilePath is the path recorded on an occurrence.
// Container images do not have a file, so the image reference is used instead.
func (s ReportSource) OccurrenceInputFilePath() string {
	if s.Type == SourceTypeContainerScanning {
		ref := s.ImageName
		if s.ImageTag != "" {
			ref += ":" + s.ImageTag
		}
		return "container-image:" + ref
	}
	return s.InputFilePath
}
