package browse

import (
	"os"
	"path/filepath"
	"strings"

	"uaman/internal/errors"
	"uaman/internal/log"
	"uaman/pkg/types"
)

// Resolver maps a listing index to an entry and gates the operations each
// entry kind supports. Missing entries are display-only: they carry log
// text, not a filesystem path.
type Resolver struct{}

// Resolve returns the entry at index, or nil when index is out of range or
// the listing is empty.
func (Resolver) Resolve(listing []types.Entry, index int) *types.Entry {
	if index < 0 || index >= len(listing) {
		return nil
	}
	return &listing[index]
}

// Launchable returns nil when the entry can be dispatched to the external
// tool, and an unsupported-operation error otherwise.
func (Resolver) Launchable(entry *types.Entry) error {
	if entry == nil {
		return errors.New("nothing selected")
	}
	if !entry.Navigable() {
		return errors.NewUnsupportedError("launch")
	}
	return nil
}

// Rename renames a real entry within its directory and returns the new
// path. newName must be a bare name; the entry keeps its parent. The target
// must not already exist.
func (Resolver) Rename(entry *types.Entry, newName string) (string, error) {
	if entry == nil {
		return "", errors.New("nothing selected")
	}
	if !entry.Navigable() {
		return "", errors.NewUnsupportedError("rename")
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return "", errors.NewFileError("new name is empty", entry.Path, errors.InvalidPath, nil)
	}
	if strings.ContainsAny(newName, `/\`) {
		return "", errors.NewFileError("new name must not contain path separators", newName, errors.InvalidPath, nil)
	}

	newPath := filepath.Join(filepath.Dir(entry.Path), newName)
	if newPath == entry.Path {
		return newPath, nil
	}
	if _, err := os.Lstat(newPath); err == nil {
		return "", errors.NewFileError("target already exists", newPath, errors.OperationFailed, nil)
	}

	if err := os.Rename(entry.Path, newPath); err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewFileError("cannot rename", entry.Path, errors.NotFound, err)
		}
		if os.IsPermission(err) {
			return "", errors.NewFileError("cannot rename", entry.Path, errors.PermissionDenied, err)
		}
		return "", errors.NewFileError("cannot rename", entry.Path, errors.OperationFailed, err)
	}

	log.With(log.F("from", entry.Path), log.F("to", newPath)).Info("renamed")
	return newPath, nil
}
