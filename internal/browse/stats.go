package browse

import (
	"fmt"
	"io/fs"
	"os"
	"sync/atomic"

	"uaman/internal/errors"

	"github.com/charlievieth/fastwalk"
	"github.com/dustin/go-humanize"
)

// Stats summarizes a directory subtree.
type Stats struct {
	Files int
	Dirs  int
	Bytes int64
}

// Describe renders the stats as a short status line.
func (s Stats) Describe() string {
	return fmt.Sprintf("%d files, %d dirs, %s", s.Files, s.Dirs, humanize.IBytes(uint64(s.Bytes)))
}

// Measure walks the subtree under dir and totals files, directories, and
// bytes. Unreadable portions are skipped. The walk callbacks run
// concurrently, hence the atomic counters.
func Measure(dir string) (Stats, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return Stats{}, errors.NewFileError("cannot measure directory", dir, errors.NotFound, err)
	}
	if !info.IsDir() {
		return Stats{Files: 1, Bytes: info.Size()}, nil
	}

	var files, dirs, bytes atomic.Int64

	conf := &fastwalk.Config{
		Follow: false,
	}

	err = fastwalk.Walk(conf, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if path == dir {
			return nil
		}
		if d.IsDir() {
			dirs.Add(1)
			return nil
		}
		files.Add(1)
		if info, err := d.Info(); err == nil {
			bytes.Add(info.Size())
		}
		return nil
	})
	if err != nil {
		return Stats{}, errors.NewFileError("cannot measure directory", dir, errors.OperationFailed, err)
	}

	return Stats{
		Files: int(files.Load()),
		Dirs:  int(dirs.Load()),
		Bytes: bytes.Load(),
	}, nil
}
