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
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/l3montree-dev/sbomingest/config"
	"github.com/l3montree-dev/sbomingest/database/repositories"
	"github.com/l3montree-dev/sbomingest/dtos"
	"github.com/l3montree-dev/sbomingest/ingestion"
	"github.com/l3montree-dev/sbomingest/services"
	"github.com/l3montree-dev/sbomingest/shared"
	"github.com/l3montree-dev/sbomingest/utils"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

func NewIngestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest the components of a report",
		Long: `Reads a report of already extracted components and persists them as occurrences of the project.
The report is a JSON document with a "source" and a "components" field. Use "-" as file to read from stdin.`,
		Args: cobra.NoArgs,
		RunE: runIngest,
	}

	cmd.Flags().String("project", "", "id of the project the report belongs to")
	cmd.Flags().String("organization", "", "id of the organization owning the project")
	cmd.Flags().String("traversal-ids", "", "comma separated namespace traversal ids of the project, e.g. 1,42")
	cmd.Flags().Bool("archived", false, "the project is archived")
	cmd.Flags().Int64("pipeline", 0, "id of the pipeline run which produced the report")
	cmd.Flags().String("sha", "", "commit sha the report was produced for")
	cmd.Flags().StringP("file", "f", "", "path to the report")
	cmd.Flags().Bool("progress", true, "show a progress bar")

	cmd.MarkFlagRequired("project")      // nolint: errcheck
	cmd.MarkFlagRequired("organization") // nolint: errcheck
	cmd.MarkFlagRequired("file")         // nolint: errcheck
	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	pipeline, err := parsePipeline(
		viper.GetString("project"),
		viper.GetString("organization"),
		viper.GetString("traversal-ids"),
		viper.GetBool("archived"),
		viper.GetInt64("pipeline"),
		viper.GetString("sha"),
	)
	if err != nil {
		return err
	}

	report, err := readReport(viper.GetString("file"), cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, err := config.ParseIngestionConfig(viper.GetViper())
	if err != nil {
		return err
	}

	pool, db, err := openDatabase()
	if err != nil {
		return err
	}
	defer pool.Close()

	var service *ingestion.IngestionService
	var synchronizer *utils.FireAndForgetSynchronizer
	app := fx.New(
		fx.NopLogger,
		fx.Supply(db, pool, cfg),
		repositories.Module,
		services.Module,
		ingestion.Module,
		fx.Populate(&service, &synchronizer),
	)
	if err := app.Err(); err != nil {
		return errors.Wrap(err, "could not wire the ingestion")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var bar *progressbar.ProgressBar
	var progress ingestion.ProgressFunc
	if viper.GetBool("progress") {
		progress = func(processed, total int) {
			if bar == nil {
				bar = progressbar.Default(int64(total), "ingesting")
			}
			bar.Set(processed) // nolint: errcheck
		}
	}

	result, err := service.IngestWithProgress(ctx, pipeline, report, progress)
	// the search index sync runs detached from the request, let it finish before the pool is closed
	synchronizer.Wait()
	if err != nil {
		return err
	}

	return printResult(cmd.OutOrStdout(), result)
}

func parsePipeline(project, organization, traversalIDs string, archived bool, pipelineID int64, sha string) (shared.PipelineContext, error) {
	projectID, err := uuid.Parse(project)
	if err != nil {
		return shared.PipelineContext{}, errors.Wrap(err, "invalid project id")
	}
	organizationID, err := uuid.Parse(organization)
	if err != nil {
		return shared.PipelineContext{}, errors.Wrap(err, "invalid organization id")
	}

	ids := make([]int64, 0)
	for part := range strings.SplitSeq(traversalIDs, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return shared.PipelineContext{}, errors.Wrapf(err, "invalid traversal id %q", part)
		}
		ids = append(ids, id)
	}

	return shared.PipelineContext{
		Project: dtos.ProjectDTO{
			ID:             projectID,
			OrganizationID: organizationID,
			TraversalIDs:   ids,
			Archived:       archived,
		},
		PipelineID: pipelineID,
		CommitSha:  sha,
	}, nil
}

func readReport(path string, stdin io.Reader) (dtos.Report, error) {
	var report dtos.Report

	var reader io.Reader
	if path == "-" {
		reader = stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return report, errors.Wrap(err, "could not open report")
		}
		defer file.Close()
		reader = file
	}

	if err := json.NewDecoder(reader).Decode(&report); err != nil {
		return report, errors.Wrap(err, "could not decode report")
	}
	if err := shared.V.Struct(report); err != nil {
		return report, errors.Wrap(err, "invalid report")
	}
	slog.Debug("read report", "source", report.Source.Type, "components", len(report.Components))
	return report, nil
}

func printResult(out io.Writer, result dtos.IngestionResult) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
