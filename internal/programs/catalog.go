// Package programs serves the downloadable training program PDFs.
package programs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrProgramNotFound = errors.New("training program not found")

// Catalog is a directory of training program PDFs, one file per program.
// The program name is the file name without the .pdf extension, e.g.
// "muscle_building" for muscle_building.pdf.
type Catalog struct {
	rootDir string
}

func NewCatalog(rootDir string) (*Catalog, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("training programs dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("training programs path %s is not a directory", rootDir)
	}
	return &Catalog{rootDir: rootDir}, nil
}

// Available lists the program names, sorted.
func (c *Catalog) Available() ([]string, error) {
	entries, err := os.ReadDir(c.rootDir)
	if err != nil {
		return nil, fmt.Errorf("read training programs dir: %w", err)
	}

	programs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".pdf") {
			continue
		}
		programs = append(programs, strings.TrimSuffix(name, ".pdf"))
	}
	sort.Strings(programs)
	return programs, nil
}

// Open returns the open PDF file for the program. The name is validated
// against path traversal before touching the filesystem.
func (c *Catalog) Open(name string) (*os.File, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return nil, ErrProgramNotFound
	}

	file, err := os.Open(filepath.Join(c.rootDir, name+".pdf"))
	if os.IsNotExist(err) {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open training program %s: %w", name, err)
	}
	return file, nil
}
