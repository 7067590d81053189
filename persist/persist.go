// Package persist stores sorted datasets and rendered reports as
// timestamped text files.
package persist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/exascience/sortbench/bench"
	"github.com/exascience/sortbench/record"
)

// TimestampLayout is the time format embedded in file names.
const TimestampLayout = "20060102_150405"

// Dir persists into a directory, which is created on first use.
//
// Sorted datasets are named "<sample>_<algorithm>_sorted_<timestamp>.txt"
// and reports "<name>_<timestamp>.txt".
type Dir struct {
	Path string

	// Now returns the time used for file names. It defaults to time.Now.
	Now func() time.Time
}

var (
	_ bench.Sink        = (*Dir)(nil)
	_ bench.ReportStore = (*Dir)(nil)
)

// NewDir returns a Dir for path.
func NewDir(path string) *Dir {
	return &Dir{Path: path}
}

func (d *Dir) stamp() string {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	return now().Format(TimestampLayout)
}

func (d *Dir) create(name string) (*os.File, string, error) {
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return nil, "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(d.Path, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

// Save writes data, one record per line, and returns the file path.
func (d *Dir) Save(sample, algorithm string, data record.Dataset) (path string, err error) {
	f, path, err := d.create(fmt.Sprintf("%s_%s_sorted_%s.txt", sample, algorithm, d.stamp()))
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err = record.Write(f, data); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// SaveReport renders report into a file and returns its path.
func (d *Dir) SaveReport(name string, report io.WriterTo) (path string, err error) {
	f, path, err := d.create(fmt.Sprintf("%s_%s.txt", name, d.stamp()))
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if _, err = report.WriteTo(f); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
