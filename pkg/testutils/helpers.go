// Package testutils holds shared filesystem fixtures for tests.
package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTestFilesWithContent creates files with specific content under dir,
// making parent directories as needed. Relative names may carry path
// separators, so whole release trees can be laid down in one call.
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// WriteMissingLog writes a log file under logsDir carrying one qualifying
// missing-item line per item, surrounded by noise lines that a scan must
// ignore.
func WriteMissingLog(t *testing.T, logsDir, name string, items ...string) {
	t.Helper()

	var b strings.Builder
	b.WriteString("starting run\n")
	for _, item := range items {
		fmt.Fprintf(&b, "Torrent missing for %s\n", item)
	}
	b.WriteString("all done\n")

	require.NoError(t, os.MkdirAll(logsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(logsDir, name), []byte(b.String()), 0o644))
}
