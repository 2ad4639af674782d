package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sectrack/internal/core/domain"
)

func decodeRecord(t *testing.T, out string) domain.Record {
	t.Helper()
	var rec domain.Record
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &rec))
	return rec
}

func TestExtractCmd_TitleAndBody(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, nil, "extract",
		"--title", "openssl: 3.0.1 -> 3.0.2",
		"--body", "Fixes cve-2024-0001 and CVE-2024-0002, see CVE-2024-0001.",
		"--format", "json")

	require.NoError(t, err)
	rec := decodeRecord(t, out)
	assert.Equal(t, []string{"CVE-2024-0001", "CVE-2024-0002"}, rec.CVEs)
	assert.Equal(t, "openssl", rec.Package)
	assert.Equal(t, []string{"3.0.1"}, rec.AffectedVersions)
	assert.Equal(t, "3.0.2", rec.FixedVersion)
	assert.False(t, rec.ExtractedAt.IsZero())
}

func TestExtractCmd_BodyFromStdin(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, strings.NewReader("Backport of CVE-2023-4863\n"),
		"extract", "--body-file", "-", "-f", "json")

	require.NoError(t, err)
	rec := decodeRecord(t, out)
	assert.Equal(t, []string{"CVE-2023-4863"}, rec.CVEs)
	assert.Empty(t, rec.Package)
	assert.Empty(t, rec.AffectedVersions)
}

func TestExtractCmd_BodyFromFile(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "body.md")
	require.NoError(t, os.WriteFile(path, []byte("Fixes CVE-2022-1234"), 0o600))

	out, _, err := execute(t, nil, "extract", "--title", "libwebp: 1.3.1 -> 1.3.2", "--body-file", path, "-f", "text")

	require.NoError(t, err)
	assert.Contains(t, out, "cves:     CVE-2022-1234")
	assert.Contains(t, out, "package:  libwebp")
	assert.Contains(t, out, "fixed:    1.3.2")
}

func TestExtractCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"nothing to extract", []string{"extract"}, "nothing to extract"},
		{"unknown format", []string{"extract", "--title", "x", "--format", "yaml"}, "unknown output format"},
		{"missing body file", []string{"extract", "--body-file", "/nonexistent/body.md"}, "reading body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)

			_, _, err := execute(t, nil, tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
