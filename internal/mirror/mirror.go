// Package mirror reads the local directory of mirrored PEP documents.
package mirror

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNotFound is returned when the mirror has no document by that name.
	ErrNotFound = errors.New("document not found")
)

// Dir is a flat directory holding one text file per PEP document.
// Ingestion reads from it and never writes to it; something else keeps
// the files current.
type Dir struct {
	path string
}

func NewDir(path string) *Dir {
	return &Dir{path: path}
}

func (d *Dir) Path() string {
	return d.path
}

// Read returns the full text of one document. A missing file comes back
// as ErrNotFound, any other failure as the underlying error, both
// wrapped with the document name.
func (d *Dir) Read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(d.path, name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	return string(data), nil
}

// Report tallies one verification pass over the mirror.
type Report struct {
	Succeeded int
	Failed    int
	Total     int
	Missing   []string
}

// Verify tries to read every named document and tallies the outcomes.
// It checks the mirror against the upstream index without touching the
// database; the serving path never calls it.
func (d *Dir) Verify(names []string) Report {
	var report Report
	for _, name := range names {
		report.Total++
		if _, err := d.Read(name); err != nil {
			logrus.Warnf("mirror: %v", err)
			report.Failed++
			report.Missing = append(report.Missing, name)
			continue
		}
		report.Succeeded++
	}

	return report
}
