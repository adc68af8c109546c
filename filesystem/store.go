package filesystem

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const directoryMode = 0755

type Config struct {
	RawDir       string
	IndicatorDir string
}

// Store keeps raw series in one directory and enriched series in another.
// Both programs agree on file names only.
type Store struct {
	rawDir       string
	indicatorDir string
}

func NewStore(config *Config) *Store {
	return &Store{
		rawDir:       config.RawDir,
		indicatorDir: config.IndicatorDir,
	}
}

func (s *Store) rawPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(s.rawDir, name)
}

// writeAtomically renders the records into a temporary file next to the
// target and renames it into place, so readers never see partial output.
func writeAtomically(path string, write func(writer *csv.Writer) error) error {
	directory := filepath.Dir(path)

	if err := os.MkdirAll(directory, directoryMode); err != nil {
		return fmt.Errorf("could not create directory [%v]: [%v]", directory, err)
	}

	file, err := os.CreateTemp(directory, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temporary file: [%v]", err)
	}

	temporaryPath := file.Name()
	committed := false

	defer func() {
		if !committed {
			_ = file.Close()
			_ = os.Remove(temporaryPath)
		}
	}()

	if err := writeRecords(file, write); err != nil {
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("could not close [%v]: [%v]", temporaryPath, err)
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("could not move file into [%v]: [%v]", path, err)
	}

	committed = true

	return nil
}

func writeRecords(output io.Writer, write func(writer *csv.Writer) error) error {
	writer := csv.NewWriter(output)

	if err := write(writer); err != nil {
		return err
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("could not flush records: [%v]", err)
	}

	return nil
}
