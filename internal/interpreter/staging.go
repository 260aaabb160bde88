package interpreter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"loxharness/pkg/logging"
)

// SourceExtension marks staged files as Lox sources.
const SourceExtension = ".lox"

const stagePattern = "loxharness-*" + SourceExtension

// SourceUnit is source text materialized on disk for a single invocation.
type SourceUnit struct {
	Source string
	Path   string
}

// Stage writes source to a fresh, uniquely named file in the default
// temporary directory.
func Stage(source string) (*SourceUnit, error) {
	return StageIn("", source)
}

// StageIn writes source to a fresh, uniquely named file in dir. An empty
// dir means os.TempDir. The caller owns the file and must Remove it.
func StageIn(dir, source string) (*SourceUnit, error) {
	f, err := os.CreateTemp(dir, stagePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create staged source file: %w", err)
	}

	unit := &SourceUnit{Source: source, Path: f.Name()}

	if _, err := f.WriteString(source); err != nil {
		f.Close()
		_ = unit.Remove()
		return nil, fmt.Errorf("failed to write staged source %s: %w", unit.Path, err)
	}
	if err := f.Close(); err != nil {
		_ = unit.Remove()
		return nil, fmt.Errorf("failed to close staged source %s: %w", unit.Path, err)
	}

	logging.Debug("Staging", "Staged %d bytes at %s", len(source), unit.Path)
	return unit, nil
}

// Remove deletes the staged file. Removing an already removed file is not
// an error.
func (u *SourceUnit) Remove() error {
	if err := os.Remove(u.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove staged source %s: %w", u.Path, err)
	}
	return nil
}

// WithStagedSource stages source in dir, calls fn with its path and removes
// the file afterwards. Removal also runs when fn panics.
func WithStagedSource(dir, source string, fn func(path string) error) (err error) {
	unit, err := StageIn(dir, source)
	if err != nil {
		return err
	}

	defer func() {
		if rmErr := unit.Remove(); rmErr != nil {
			logging.Error("Staging", rmErr, "Staged source was not cleaned up")
			if err == nil {
				err = rmErr
			}
		}
	}()

	return fn(unit.Path)
}
