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

package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/l3montree-dev/sbomingest/config"
	"github.com/l3montree-dev/sbomingest/shared"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	defaultConfigFilename = ".sbomingest"
	envPrefix             = "SBOMINGEST"
)

var RootCmd = &cobra.Command{
	SilenceUsage:      true,
	Use:               "sbom-ingest",
	Short:             "Ingest scanner reports into the occurrence store",
	Version:           version,
	DisableAutoGenTag: true,
	Long: `Ingest scanner reports into the occurrence store

sbom-ingest persists the components of already parsed dependency and container
scanning reports as components, component versions, source packages and
occurrences, and links the occurrences to known vulnerabilities. Configuration
can be provided via a ./.sbomingest config file or environment variables
(prefix SBOMINGEST_). The database connection is read from POSTGRES_*.`,
	Example: `  # Create or update the database schema
  sbom-ingest migrate

  # Ingest a report of a pipeline run
  sbom-ingest ingest --project 0b8e6a55-3c43-4c8e-9f73-2a2c4f1d6e10 \
    --organization 5d0c7a3e-6e55-4f0a-a1c4-0e9e7c1b2d33 --pipeline 42 --sha 9f2c1e -f report.json`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := cmd.Flags().GetString("logLevel")
		if err != nil {
			return err
		}
		shared.InitLogger(level)

		return initializeConfig(cmd)
	},
}

func Version() string {
	return version
}

func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sbom-ingest\n")
			fmt.Printf("Version:    %s\n", version)
			fmt.Printf("Commit:     %s\n", commit)
			fmt.Printf("Built:      %s\n", date)
		},
	}

	RootCmd.AddCommand(
		versionCmd,
		NewMigrateCommand(),
		NewIngestCommand(),
	)

	RootCmd.PersistentFlags().StringP("logLevel", "l", "info", "Set the log level. Options: debug, info, warn, error")
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.sbomingest)")

	config.SetDefaults(viper.GetViper())
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(defaultConfigFilename)
	}

	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/sbomingest/")
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if there isn't a config file
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		slog.Debug("no config file found")
	}

	viper.SetEnvPrefix(envPrefix)
	// flags use dashes, environment variables can not
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	bindFlags(cmd, viper.GetViper())
	return nil
}

// Bind each cobra flag to its associated viper configuration (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		configName := f.Name

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(configName) {
			val := v.Get(configName)
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)) // nolint: errcheck
		}

		if err := v.BindPFlag(configName, f); err != nil {
			slog.Error("could not bind flag to viper", "err", err)
		}
	})
}
