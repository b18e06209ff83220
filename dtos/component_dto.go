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
	"strings"

	"github.com/package-url/packageurl-go"
)

type ComponentType string

const (
	ComponentTypeApplication          ComponentType = "application"
	ComponentTypeContainer            ComponentType = "container"
	ComponentTypeData                 ComponentType = "data"
	ComponentTypeDevice               ComponentType = "device"
	ComponentTypeDeviceDriver         ComponentType = "device-driver"
	ComponentTypeFile                 ComponentType = "file"
	ComponentTypeFirmware             ComponentType = "firmware"
	ComponentTypeFramework            ComponentType = "framework"
	ComponentTypeLibrary              ComponentType = "library"
	ComponentTypeMachineLearningModel ComponentType = "machine-learning-model"
	ComponentTypeOS                   ComponentType = "operating-system"
	ComponentTypePlatform             ComponentType = "platform"
)

type Reachability string

const (
	ReachabilityUnknown  Reachability = "unknown"
	ReachabilityInUse    Reachability = "in_use"
	ReachabilityNotFound Reachability = "not_found"
)

type Ancestor struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ComponentProperties struct {
	// the os package manager reported by container scanners (apk, dpkg, rpm)
	Packager string `json:"packager,omitempty"`
}

// ReportComponent is one dependency fact extracted from a scanner report.
// It is never modified by the ingestion pipeline.
type ReportComponent struct {
	Name              string              `json:"name"`
	Purl              string              `json:"purl,omitempty"`
	ComponentType     ComponentType       `json:"componentType"`
	Version           string              `json:"version,omitempty"`
	Licenses          []License           `json:"licenses,omitempty"`
	SourcePackageName string              `json:"sourcePackageName,omitempty"`
	Properties        ComponentProperties `json:"properties"`
	Ancestors         []Ancestor          `json:"ancestors,omitempty"`
	Reachability      Reachability        `json:"reachability,omitempty"`
}

// PackageURL returns the parsed purl or nil if the component has none or it is malformed.
func (c ReportComponent) PackageURL() *packageurl.PackageURL {
	if c.Purl == "" {
		return nil
	}
	p, err := packageurl.FromString(c.Purl)
	if err != nil {
		return nil
	}
	return &p
}

func (c ReportComponent) PurlType() string {
	p := c.PackageURL()
	if p == nil {
		return ""
	}
	return strings.ToLower(p.Type)
}

func (c ReportComponent) HasVersion() bool {
	return strings.TrimSpace(c.Version) != ""
}

func (c ReportComponent) HasSourcePackage() bool {
	return strings.TrimSpace(c.SourcePackageName) != ""
}

func (c ReportComponent) GetReachability() Reachability {
	if c.Reachability == "" {
		return ReachabilityUnknown
	}
	return c.Reachability
}
