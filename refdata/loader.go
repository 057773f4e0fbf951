package refdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ManolyaGambira/prescriptions-api/logging"
	"github.com/ManolyaGambira/prescriptions-api/refdata/entities"
)

//go:embed assets/*.json
var assets embed.FS

// Loader builds catalogs from the embedded tables, with optional per-file
// overrides from a data directory. An empty dir means embedded data only.
type Loader struct {
	dir string
}

// NewLoader creates a loader. dir may be empty.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// readTable returns the bytes for one table file, preferring an override in
// the data directory over the embedded default.
func (l *Loader) readTable(name string) ([]byte, error) {
	if l.dir != "" {
		path := filepath.Join(l.dir, name)
		if data, err := os.ReadFile(path); err == nil {
			logging.Info("Using reference data override", "file", path)
			return data, nil
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read override %s: %w", path, err)
		}
	}
	data, err := assets.ReadFile("assets/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded table %s: %w", name, err)
	}
	return data, nil
}

func readInto[T any](l *Loader, name string, out *[]T) error {
	data, err := l.readTable(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// Load reads all five tables and builds a validated catalog.
func (l *Loader) Load() (*Catalog, error) {
	var (
		drugs        []entities.DrugRecord
		interactions []entities.Interaction
		alternatives []entities.AlternativeSet
		conditions   []entities.ConditionRule
		dosages      []entities.DosageGuideline
	)

	if err := readInto(l, "drugs.json", &drugs); err != nil {
		return nil, err
	}
	if err := readInto(l, "interactions.json", &interactions); err != nil {
		return nil, err
	}
	if err := readInto(l, "alternatives.json", &alternatives); err != nil {
		return nil, err
	}
	if err := readInto(l, "conditions.json", &conditions); err != nil {
		return nil, err
	}
	if err := readInto(l, "dosages.json", &dosages); err != nil {
		return nil, err
	}

	catalog, err := buildCatalog(drugs, interactions, alternatives, conditions, dosages)
	if err != nil {
		return nil, fmt.Errorf("reference data validation failed: %w", err)
	}

	report := catalog.Report()
	if len(report.HazardLabels) > 0 {
		logging.Info("Reference data names external hazard labels",
			"count", len(report.HazardLabels),
			"labels", report.HazardLabels,
		)
	}
	if len(report.AlternativeOnlyNames) > 0 {
		logging.Warn("Alternatives reference names without a drug record",
			"names", report.AlternativeOnlyNames,
		)
	}
	if report.DrugsWithoutDosage > 0 {
		logging.Warn("Drugs without dosage guidance",
			"count", report.DrugsWithoutDosage,
			"drugs", report.DrugsWithoutDosageList,
		)
	}

	return catalog, nil
}
