package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvandessel/lasercircuit/internal/constants"
)

// Result file names.
const (
	EmitPhotonsFile     = constants.EmitPhotonsFile
	ActivationTimesFile = constants.ActivationTimesFile
	TotalEnergyFile     = constants.TotalEnergyFile
)

// FileSink writes result files into a directory.
type FileSink struct {
	Dir string
}

// NewFileSink creates the output directory if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &FileSink{Dir: dir}, nil
}

// Write replaces name with lines, one per line, each newline-terminated.
func (s *FileSink) Write(name string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	path := filepath.Join(s.Dir, name)

	// Write atomically via temp file + rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing %s temp file: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", name, err)
	}
	return nil
}

// Path returns the full path of a result file.
func (s *FileSink) Path(name string) string {
	return filepath.Join(s.Dir, name)
}
