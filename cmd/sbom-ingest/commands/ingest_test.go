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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/l3montree-dev/sbomingest/dtos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePipeline(t *testing.T) {
	projectID := uuid.New()
	organizationID := uuid.New()

	t.Run("should parse all values", func(t *testing.T) {
		pipeline, err := parsePipeline(projectID.String(), organizationID.String(), "1, 42,", true, 100, "9f2c1e")
		require.NoError(t, err)

		assert.Equal(t, projectID, pipeline.ProjectID())
		assert.Equal(t, organizationID, pipeline.OrganizationID())
		assert.Equal(t, []int64{1, 42}, pipeline.Project.TraversalIDs)
		assert.True(t, pipeline.Project.Archived)
		assert.Equal(t, int64(100), pipeline.PipelineID)
		assert.Equal(t, "9f2c1e", pipeline.CommitSha)
	})

	t.Run("should allow an empty traversal path", func(t *testing.T) {
		pipeline, err := parsePipeline(projectID.String(), organizationID.String(), "", false, 0, "")
		require.NoError(t, err)
		assert.Empty(t, pipeline.Project.TraversalIDs)
	})

	t.Run("should reject invalid ids", func(t *testing.T) {
		_, err := parsePipeline("not-a-uuid", organizationID.String(), "", false, 0, "")
		assert.ErrorContains(t, err, "invalid project id")

		_, err = parsePipeline(projectID.String(), "", "", false, 0, "")
		assert.ErrorContains(t, err, "invalid organization id")

		_, err = parsePipeline(projectID.String(), organizationID.String(), "1,x", false, 0, "")
		assert.ErrorContains(t, err, `invalid traversal id "x"`)
	})
}

func TestReadReport(t *testing.T) {
	content := `{
		"source": {"type": "dependency_scanning", "inputFilePath": "go.sum", "packageManager": "go"},
		"components": [{"name": "github.com/pkg/errors", "version": "v0.9.1", "purl": "pkg:golang/github.com/pkg/errors@v0.9.1"}]
	}`

	t.Run("should read the report from a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		report, err := readReport(path, nil)
		require.NoError(t, err)
		assert.Equal(t, dtos.SourceTypeDependencyScanning, report.Source.Type)
		require.Len(t, report.Components, 1)
		assert.Equal(t, "v0.9.1", report.Components[0].Version)
	})

	t.Run("should read the report from stdin", func(t *testing.T) {
		report, err := readReport("-", strings.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, "go.sum", report.Source.InputFilePath)
	})

	t.Run("should reject a report without source type", func(t *testing.T) {
		_, err := readReport("-", strings.NewReader(`{"components": []}`))
		assert.ErrorContains(t, err, "invalid report")
	})

	t.Run("should reject an unknown source type", func(t *testing.T) {
		_, err := readReport("-", strings.NewReader(`{"source": {"type": "sast"}, "components": []}`))
		assert.ErrorContains(t, err, "invalid report")
	})

	t.Run("should require the image name of container scanning reports", func(t *testing.T) {
		_, err := readReport("-", strings.NewReader(`{"source": {"type": "container_scanning"}, "components": []}`))
		assert.ErrorContains(t, err, "ImageName")

		report, err := readReport("-", strings.NewReader(`{"source": {"type": "container_scanning", "imageName": "alpine", "imageTag": "3.20"}}`))
		require.NoError(t, err)
		assert.Equal(t, "alpine", report.Source.ImageName)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		_, err := readReport(filepath.Join(t.TempDir(), "missing.json"), nil)
		assert.ErrorContains(t, err, "could not open report")
	})
}

func TestPrintResult(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printResult(&out, dtos.IngestionResult{Occurrences: 2, OccurrencesSkipped: 1}))

	assert.Contains(t, out.String(), `"occurrences": 2`)
	assert.Contains(t, out.String(), `"occurrencesSkipped": 1`)
}
