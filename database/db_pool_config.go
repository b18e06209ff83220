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

package database

import (
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"
)

const applicationName = "sbom-ingest"

// PoolConfig is shared by the pgx pool and the gorm connection built on top of it
type PoolConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string

	MaxOpenConns    int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Host:            "localhost",
		Port:            "5432",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MinConns:        1,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// DSN escapes the credentials, passwords from secrets regularly contain reserved characters
func (c PoolConfig) DSN() string {
	query := url.Values{}
	if c.SSLMode != "" {
		query.Set("sslmode", c.SSLMode)
	}
	query.Set("application_name", applicationName)

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: query.Encode(),
	}
	return dsn.String()
}

// GetPoolConfigFromEnv reads the connection from POSTGRES_* and the pool sizing from DB_*.
// Unparsable sizing values are logged and the default is kept.
func GetPoolConfigFromEnv() PoolConfig {
	cfg := DefaultPoolConfig()

	stringFromEnv(&cfg.User, "POSTGRES_USER")
	stringFromEnv(&cfg.Password, "POSTGRES_PASSWORD")
	stringFromEnv(&cfg.Host, "POSTGRES_HOST")
	stringFromEnv(&cfg.Port, "POSTGRES_PORT")
	stringFromEnv(&cfg.DBName, "POSTGRES_DB")
	stringFromEnv(&cfg.SSLMode, "POSTGRES_SSLMODE")

	int32FromEnv(&cfg.MaxOpenConns, "DB_MAX_OPEN_CONNS", 1)
	int32FromEnv(&cfg.MinConns, "DB_MIN_CONNS", 0)
	durationFromEnv(&cfg.ConnMaxLifetime, "DB_CONN_MAX_LIFETIME")
	durationFromEnv(&cfg.ConnMaxIdleTime, "DB_CONN_MAX_IDLE_TIME")

	return cfg
}

func stringFromEnv(target *string, key string) {
	if val := os.Getenv(key); val != "" {
		*target = val
	}
}

func int32FromEnv(target *int32, key string, minimum int32) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	val, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || int32(val) < minimum {
		slog.Warn("ignoring invalid pool setting", "key", key, "value", raw)
		return
	}
	*target = int32(val)
}

func durationFromEnv(target *time.Duration, key string) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("ignoring invalid pool setting", "key", key, "value", raw)
		return
	}
	*target = val
}
