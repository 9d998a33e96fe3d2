package factors

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/carbondesk/carbondesk/internal/ghg"
	"github.com/carbondesk/carbondesk/internal/logging"
)

// datasetSchemaConstraint is the range of dataset schema versions this
// build can read. Datasets outside the range are skipped with a warning
// rather than half-parsed.
const datasetSchemaConstraint = ">= 1.0.0, < 2.0.0"

// datasetFile is the on-disk YAML form of a factor dataset.
type datasetFile struct {
	SchemaVersion string `yaml:"schema_version"`
	Source        string `yaml:"source"`
	Vintage       int    `yaml:"vintage"`
	Factors       []struct {
		Key           string  `yaml:"key"`
		Region        string  `yaml:"region"`
		Unit          string  `yaml:"unit"`
		KgCO2ePerUnit float64 `yaml:"kg_co2e_per_unit"`
		Market        bool    `yaml:"market"`
	} `yaml:"factors"`
}

// Registry is a Provider that layers YAML dataset files over the built-in
// factor table. Dataset factors shadow built-ins with the same key, region,
// and unit, so organizations can pin supplier or regulator-issued factors.
type Registry struct {
	factors []ghg.EmissionFactor
}

// NewRegistry loads every *.yaml dataset in dir and returns a Registry over
// the merged table. A missing directory yields a registry with only the
// built-in factors. Individual malformed or version-incompatible files are
// skipped and logged, not fatal: one bad dataset must not take down factor
// resolution for everything else.
func NewRegistry(ctx context.Context, dir string) (*Registry, error) {
	log := logging.FromContext(ctx)
	merged := append([]ghg.EmissionFactor(nil), builtinFactors...)

	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading factor dataset directory: %w", err)
		}
		constraint, err := semver.NewConstraint(datasetSchemaConstraint)
		if err != nil {
			return nil, fmt.Errorf("parsing dataset schema constraint: %w", err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			loaded, loadErr := loadDataset(path, constraint)
			if loadErr != nil {
				log.Warn().
					Str("component", "factors").
					Str("dataset", path).
					Err(loadErr).
					Msg("skipping factor dataset")
				continue
			}
			merged = overlay(merged, loaded)
			log.Debug().
				Str("component", "factors").
				Str("dataset", path).
				Int("factor_count", len(loaded)).
				Msg("loaded factor dataset")
		}
	}

	return &Registry{factors: merged}, nil
}

// loadDataset parses one dataset file and validates its schema version.
func loadDataset(path string, constraint *semver.Constraints) ([]ghg.EmissionFactor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var ds datasetFile
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	version, err := semver.NewVersion(ds.SchemaVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrDatasetVersion, ds.SchemaVersion)
	}
	if !constraint.Check(version) {
		return nil, fmt.Errorf("%w: %s not in %s", ErrDatasetVersion, ds.SchemaVersion, datasetSchemaConstraint)
	}

	out := make([]ghg.EmissionFactor, 0, len(ds.Factors))
	for _, f := range ds.Factors {
		out = append(out, ghg.EmissionFactor{
			Key:           f.Key,
			Region:        f.Region,
			Unit:          f.Unit,
			KgCO2ePerUnit: f.KgCO2ePerUnit,
			Source:        ds.Source,
			Vintage:       ds.Vintage,
			Market:        f.Market,
		})
	}
	return out, nil
}

// overlay replaces base factors shadowed by incoming ones (same key,
// region, unit, and market flag) and appends the rest.
func overlay(base, incoming []ghg.EmissionFactor) []ghg.EmissionFactor {
	type factorKey struct {
		key, region, unit string
		market            bool
	}
	index := make(map[factorKey]int, len(base))
	for i, f := range base {
		index[factorKey{strings.ToLower(f.Key), strings.ToLower(f.Region), ghg.NormalizeUnit(f.Unit), f.Market}] = i
	}
	for _, f := range incoming {
		k := factorKey{strings.ToLower(f.Key), strings.ToLower(f.Region), ghg.NormalizeUnit(f.Unit), f.Market}
		if i, ok := index[k]; ok {
			base[i] = f
			continue
		}
		index[k] = len(base)
		base = append(base, f)
	}
	return base
}

// EmissionFactors returns merged factors matching params.
func (r *Registry) EmissionFactors(_ context.Context, params LookupParams) ([]ghg.EmissionFactor, error) {
	var out []ghg.EmissionFactor
	for _, f := range r.factors {
		if matches(f, params) {
			out = append(out, f)
		}
	}
	return out, nil
}
