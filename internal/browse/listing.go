package browse

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"uaman/internal/config"
	"uaman/internal/errors"
	"uaman/internal/log"
	"uaman/pkg/types"

	"github.com/gobwas/glob"
)

// Tokens a log line must carry (case-insensitively, in any order) to count
// as a missing item.
const (
	missingToken = "missing"
	torrentToken = "torrent"
)

// Engine produces the filtered, ordered entry set for a directory and the
// active filter. The logs location and filename pattern come from the
// injected store on every call, so settings changes apply to the next
// refresh without rebuilding anything.
type Engine struct {
	store config.Store
}

// NewEngine creates a listing engine reading its settings from store.
func NewEngine(store config.Store) *Engine {
	return &Engine{store: store}
}

// List returns the entries to display. With MissingOnly unset this is the
// direct contents of dir, sorted by name; a directory that does not exist
// yields an empty listing and no error. With MissingOnly set, dir is
// ignored and the logs directory is scanned instead; an absent logs
// directory is reported as a recoverable not-found error alongside the
// empty listing.
func (e *Engine) List(dir string, filter types.Filter) ([]types.Entry, error) {
	if filter.MissingOnly {
		return e.listMissing()
	}
	return e.listDirectory(dir), nil
}

func (e *Engine) listDirectory(dir string) []types.Entry {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsPermission(err) {
			log.With(log.F("path", dir)).Warn("cannot read directory")
		} else if !os.IsNotExist(err) {
			log.With(log.F("path", dir), log.F("error", err.Error())).Warn("listing failed")
		}
		return []types.Entry{}
	}

	listing := make([]types.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entry := types.Entry{
			Label: de.Name(),
			Path:  filepath.Join(dir, de.Name()),
			Kind:  types.EntryReal,
			IsDir: de.IsDir(),
		}
		if info, err := de.Info(); err == nil && !de.IsDir() {
			entry.Size = info.Size()
		}
		listing = append(listing, entry)
	}

	sort.Slice(listing, func(i, j int) bool {
		return listing[i].Label < listing[j].Label
	})

	return listing
}

// listMissing scans every file in the logs directory whose name matches the
// configured pattern and surfaces each qualifying line as one entry, in
// file-then-line order. A single unreadable log file is skipped, not fatal.
func (e *Engine) listMissing() ([]types.Entry, error) {
	logsDir := e.store.Get(config.SectionPaths, config.KeyLogsDir, "")
	if logsDir == "" {
		return []types.Entry{}, errors.NewConfigError("no logs directory configured", config.KeyLogsDir, errors.ConfigNotSet, nil)
	}

	dirEntries, err := os.ReadDir(logsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.Entry{}, errors.NewFileError("logs directory not found", logsDir, errors.NotFound, nil)
		}
		if os.IsPermission(err) {
			return []types.Entry{}, errors.NewFileError("logs directory not readable", logsDir, errors.PermissionDenied, err)
		}
		return []types.Entry{}, errors.NewFileError("cannot scan logs directory", logsDir, errors.OperationFailed, err)
	}

	matcher := e.logMatcher()

	// ReadDir returns names sorted, which fixes the file visit order.
	listing := make([]types.Entry, 0, 16)
	for _, de := range dirEntries {
		if de.IsDir() || !matcher.Match(de.Name()) {
			continue
		}
		path := filepath.Join(logsDir, de.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.With(log.F("path", path), log.F("error", err.Error())).Debug("skipping unreadable log file")
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			lower := strings.ToLower(line)
			if !strings.Contains(lower, missingToken) || !strings.Contains(lower, torrentToken) {
				continue
			}
			trimmed := strings.TrimSpace(line)
			listing = append(listing, types.Entry{
				Label: types.MissingPrefix + trimmed,
				Path:  trimmed,
				Kind:  types.EntryMissing,
			})
		}
	}

	return listing, nil
}

// logMatcher compiles the configured filename pattern, falling back to
// *.log when the pattern does not compile.
func (e *Engine) logMatcher() glob.Glob {
	pattern := e.store.Get(config.SectionPaths, config.KeyLogPattern, "*.log")
	g, err := glob.Compile(pattern)
	if err != nil {
		log.With(log.F("pattern", pattern)).Warn("bad log pattern, using *.log")
		return glob.MustCompile("*.log")
	}
	return g
}
