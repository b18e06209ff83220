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
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/l3montree-dev/sbomingest/config"
	"github.com/l3montree-dev/sbomingest/database/models"
	"github.com/l3montree-dev/sbomingest/dtos"
	"github.com/l3montree-dev/sbomingest/licenses"
	"github.com/l3montree-dev/sbomingest/monitoring"
	"github.com/l3montree-dev/sbomingest/shared"
	"github.com/l3montree-dev/sbomingest/utils"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

var packageLicenseUniqueBy = []string{"purl_type", "name"}

// keeps the IN clause of a single lookup query small
const packageLicenseLookupBatchSize = 500

// packageLicenseEntry is cached for misses as well, found tells them apart
type packageLicenseEntry struct {
	license models.PackageLicense
	found   bool
}

type LicenseService struct {
	packageLicenseRepository shared.PackageLicenseRepository

	// nil if caching is disabled
	cache *expirable.LRU[models.PackageLicenseIdentity, packageLicenseEntry]
	group singleflight.Group
}

var _ shared.LicenseResolver = (*LicenseService)(nil)

func NewLicenseService(packageLicenseRepository shared.PackageLicenseRepository, cfg config.IngestionConfig) *LicenseService {
	s := &LicenseService{
		packageLicenseRepository: packageLicenseRepository,
	}
	if cfg.LicenseCacheSize > 0 {
		s.cache = expirable.NewLRU[models.PackageLicenseIdentity, packageLicenseEntry](cfg.LicenseCacheSize, nil, cfg.LicenseCacheTTL)
	}
	return s
}

// Resolve returns the licenses of every query.
// Declared licenses are used as reported. Everything else is looked up in the license database
// using a single batched query for all distinct packages.
func (s *LicenseService) Resolve(ctx context.Context, queries []dtos.LicenseQuery) ([][]dtos.License, error) {
	result := make([][]dtos.License, len(queries))

	lookups := make([]models.PackageLicenseIdentity, 0)
	seen := make(map[models.PackageLicenseIdentity]struct{})
	for i, q := range queries {
		switch {
		case q.PurlType == "":
			// nothing to look up without a package ecosystem
			result[i] = []dtos.License{}
		case q.HasDeclared:
			result[i] = declaredLicenses(q.Declared)
		default:
			key := packageLicenseKey(q)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			lookups = append(lookups, key)
		}
	}

	if len(lookups) == 0 {
		return result, nil
	}

	entries, err := s.packageLicenses(ctx, lookups)
	if err != nil {
		return nil, err
	}

	for i, q := range queries {
		if result[i] != nil {
			continue
		}
		result[i] = licensesFromEntry(entries[packageLicenseKey(q)], q.Version)
	}
	return result, nil
}

func (s *LicenseService) packageLicenses(ctx context.Context, keys []models.PackageLicenseIdentity) (map[models.PackageLicenseIdentity]packageLicenseEntry, error) {
	entries := make(map[models.PackageLicenseIdentity]packageLicenseEntry, len(keys))
	missing := make([]models.PackageLicenseIdentity, 0, len(keys))
	for _, key := range keys {
		if s.cache != nil {
			if entry, ok := s.cache.Get(key); ok {
				monitoring.LicenseCacheLookups.WithLabelValues("hit").Inc()
				entries[key] = entry
				continue
			}
		}
		monitoring.LicenseCacheLookups.WithLabelValues("miss").Inc()
		missing = append(missing, key)
	}

	if len(missing) == 0 {
		return entries, nil
	}

	slices.SortFunc(missing, func(a, b models.PackageLicenseIdentity) int {
		return cmp.Or(cmp.Compare(a.PurlType, b.PurlType), cmp.Compare(a.Name, b.Name))
	})

	// concurrent pipelines of the same project ask for the exact same packages. The lookup is
	// shared, so it must not fail because the caller which started it went away.
	flightCtx := context.WithoutCancel(ctx)
	flight := s.group.DoChan(flightKey(missing), func() (any, error) {
		fetched := make(map[models.PackageLicenseIdentity]packageLicenseEntry, len(missing))
		for _, chunk := range utils.Chunk(missing, packageLicenseLookupBatchSize) {
			rows, err := s.packageLicenseRepository.FindByIdentities(flightCtx, packageLicenseUniqueBy, chunk)
			if err != nil {
				return nil, errors.Wrap(err, "could not fetch package licenses")
			}
			for _, row := range rows {
				fetched[row.Identity()] = packageLicenseEntry{license: row, found: true}
			}
		}
		if s.cache != nil {
			for _, key := range missing {
				s.cache.Add(key, fetched[key])
			}
		}
		return fetched, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "could not fetch package licenses")
	case res = <-flight:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	v := res.Val

	// the fetched map may be shared with other callers, copy instead of returning it
	for _, key := range missing {
		entries[key] = v.(map[models.PackageLicenseIdentity]packageLicenseEntry)[key]
	}
	return entries, nil
}

func flightKey(keys []models.PackageLicenseIdentity) string {
	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key.PurlType)
		b.WriteByte('/')
		b.WriteString(key.Name)
		b.WriteByte('\n')
	}
	return b.String()
}

func packageLicenseKey(q dtos.LicenseQuery) models.PackageLicenseIdentity {
	return models.PackageLicenseIdentity{PurlType: q.PurlType, Name: q.Name}
}

func licensesFromEntry(entry packageLicenseEntry, version string) []dtos.License {
	if !entry.found {
		return []dtos.License{dtos.UnknownLicense()}
	}
	names := entry.license.LicenseNamesFor(version)
	if len(names) == 0 {
		return []dtos.License{dtos.UnknownLicense()}
	}
	return utils.Map(names, licenses.FromSpdxID)
}

// declaredLicenses drops entries without an spdx identifier and completes the rest from the catalogue
func declaredLicenses(declared []dtos.License) []dtos.License {
	result := make([]dtos.License, 0, len(declared))
	for _, d := range declared {
		if !d.HasSpdxIdentifier() {
			continue
		}
		l := dtos.License{
			Name:           d.Name,
			SpdxIdentifier: strings.TrimSpace(d.SpdxIdentifier),
			URL:            d.URL,
		}
		if known, ok := licenses.Lookup(l.SpdxIdentifier); ok {
			if l.Name == "" {
				l.Name = known.Name
			}
			if l.URL == "" {
				l.URL = known.URL
			}
		}
		if l.Name == "" {
			l.Name = l.SpdxIdentifier
		}
		result = append(result, l)
	}
	return result
}
