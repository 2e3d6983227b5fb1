// Package loader reads scenario and sector-boundary documents from YAML
// files. Decoding stops here; all validation belongs to the model.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yegors/airscen/internal/scenario"
	"github.com/yegors/airscen/pkg/logger"
)

// sectorsFile is the on-disk shape of a boundary extract.
type sectorsFile struct {
	Sectors []scenario.SectorRecord `yaml:"sectors"`
}

// Loader reads YAML documents from disk.
type Loader struct {
	log *logger.Logger
}

func New(log *logger.Logger) *Loader {
	return &Loader{log: log.Named("loader")}
}

// ReadDocument reads one scenario document.
func (l *Loader) ReadDocument(path string) (*scenario.Document, error) {
	doc, err := readYAML[scenario.Document](path)
	if err != nil {
		return nil, err
	}

	l.log.Info("Read scenario document",
		logger.String("path", path),
		logger.String("name", doc.Name),
		logger.Int("flights", len(doc.Flights)))

	return doc, nil
}

// ReadSectorRecords reads a boundary extract file with a top-level
// "sectors" list.
func (l *Loader) ReadSectorRecords(path string) ([]scenario.SectorRecord, error) {
	file, err := readYAML[sectorsFile](path)
	if err != nil {
		return nil, err
	}

	l.log.Info("Read sector records",
		logger.String("path", path),
		logger.Int("sectors", len(file.Sectors)))

	return file.Sectors, nil
}

func readYAML[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	out := new(T)
	if err := yaml.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return out, nil
}
