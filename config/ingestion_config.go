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

package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	BatchSizeKey        = "ingestion_batch_size"
	LicenseCacheSizeKey = "license_cache_size"
	LicenseCacheTTLKey  = "license_cache_ttl"
)

type IngestionConfig struct {
	// maximum number of occurrence maps per pipeline batch and rows per insert statement
	BatchSize        int           `json:"batchSize" mapstructure:"ingestion_batch_size"`
	LicenseCacheSize int           `json:"licenseCacheSize" mapstructure:"license_cache_size"`
	LicenseCacheTTL  time.Duration `json:"licenseCacheTTL" mapstructure:"license_cache_ttl"`
}

func DefaultIngestionConfig() IngestionConfig {
	return IngestionConfig{
		BatchSize:        1000,
		LicenseCacheSize: 10_000,
		LicenseCacheTTL:  time.Hour,
	}
}

func (c IngestionConfig) Validate() error {
	if c.BatchSize <= 0 {
		return errors.Errorf("%s must be positive, got %d", BatchSizeKey, c.BatchSize)
	}
	if c.LicenseCacheSize < 0 {
		return errors.Errorf("%s must not be negative, got %d", LicenseCacheSizeKey, c.LicenseCacheSize)
	}
	if c.LicenseCacheTTL < 0 {
		return errors.Errorf("%s must not be negative, got %s", LicenseCacheTTLKey, c.LicenseCacheTTL)
	}
	return nil
}

// SetDefaults registers the defaults on v, which also makes the keys visible to AutomaticEnv
func SetDefaults(v *viper.Viper) {
	defaults := DefaultIngestionConfig()
	v.SetDefault(BatchSizeKey, defaults.BatchSize)
	v.SetDefault(LicenseCacheSizeKey, defaults.LicenseCacheSize)
	v.SetDefault(LicenseCacheTTLKey, defaults.LicenseCacheTTL)
}

func ParseIngestionConfig(v *viper.Viper) (IngestionConfig, error) {
	var cfg IngestionConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "could not parse ingestion config")
	}
	return cfg, cfg.Validate()
}
