package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/digipath/abi"
	"github.com/katalvlaran/digipath/core"
)

// evolutionRecord is one entry of evolutions.yaml.
type evolutionRecord struct {
	To           string         `yaml:"to"`
	Level        int            `yaml:"level"`
	Requirements map[string]any `yaml:"requirements"`
}

// Load reads the dataset in dir.
func Load(dir string) (*Dataset, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads the dataset from the root of fsys.
//
// Steps:
//  1. digimon.yaml → core.Graph nodes (registration order = file order).
//  2. evolutions.yaml → forward edges, sources in registration order so the
//     graph is identical across runs.
//  3. moves.yaml and exp_tables.yaml if present.
func LoadFS(fsys fs.FS) (*Dataset, error) {
	ds := &Dataset{
		Graph: core.NewGraph(core.WithDanglingEvolutions()),
		Moves: make(map[string]Move),
		Exp:   make(abi.ExpTable),
	}

	// 1) Nodes
	var digimon []core.Digimon
	if err := readYAML(fsys, DigimonFile, true, &digimon); err != nil {
		return nil, err
	}
	for i, d := range digimon {
		if err := ds.Graph.AddDigimon(d); err != nil {
			return nil, fmt.Errorf("%w: %s entry %d: %v", ErrInvalidRecord, DigimonFile, i, err)
		}
	}

	// 2) Edges
	var evolutions map[string][]evolutionRecord
	if err := readYAML(fsys, EvolutionsFile, true, &evolutions); err != nil {
		return nil, err
	}
	if err := ds.addEvolutions(evolutions); err != nil {
		return nil, err
	}

	// 3) Optional display data
	var moves []Move
	if err := readYAML(fsys, MovesFile, false, &moves); err != nil {
		return nil, err
	}
	for _, m := range moves {
		if m.ID == "" {
			return nil, fmt.Errorf("%w: %s: move without id", ErrInvalidRecord, MovesFile)
		}
		ds.Moves[m.ID] = m
	}

	var exp map[int]map[string]abi.ExpEntry
	if err := readYAML(fsys, ExpTablesFile, false, &exp); err != nil {
		return nil, err
	}
	for level, row := range exp {
		out := make(map[core.Stage]abi.ExpEntry, len(row))
		for name, entry := range row {
			stage, err := core.ParseStage(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %s level %d: %v", ErrInvalidRecord, ExpTablesFile, level, err)
			}
			out[stage] = entry
		}
		ds.Exp[level] = out
	}

	return ds, nil
}

// addEvolutions registers every forward edge. Sources are visited in
// registration order; sources that are not known digimon are an error.
func (ds *Dataset) addEvolutions(evolutions map[string][]evolutionRecord) error {
	for from := range evolutions {
		if !ds.Graph.HasDigimon(from) {
			return fmt.Errorf("%w: %s: unknown source digimon %q", ErrInvalidRecord, EvolutionsFile, from)
		}
	}

	for _, from := range ds.Graph.IDs() {
		for _, rec := range evolutions[from] {
			req, unused, err := decodeRequirements(rec.Requirements)
			if err != nil {
				return fmt.Errorf("%w: %s %s→%s: %v", ErrDecode, EvolutionsFile, from, rec.To, err)
			}
			for _, key := range unused {
				ds.unknownKeys = append(ds.unknownKeys, fmt.Sprintf("%s→%s: %s", from, rec.To, key))
			}
			if err = ds.Graph.AddEvolution(from, rec.To, rec.Level, req); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidRecord, EvolutionsFile, err)
			}
		}
	}

	return nil
}

// decodeRequirements maps a loose requirements map onto core.Requirements.
// It returns the keys that matched no field, sorted.
func decodeRequirements(raw map[string]any) (core.Requirements, []string, error) {
	var (
		req core.Requirements
		md  mapstructure.Metadata
	)
	if len(raw) == 0 {
		return req, nil, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Metadata:         &md,
		Result:           &req,
	})
	if err != nil {
		return req, nil, err
	}
	if err = dec.Decode(raw); err != nil {
		return req, nil, err
	}
	sort.Strings(md.Unused)

	return req, md.Unused, nil
}

// readYAML decodes name into out. A missing optional file leaves out untouched.
func readYAML(fsys fs.FS, name string, required bool, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if required {
				return fmt.Errorf("%w: %s", ErrMissingFile, name)
			}
			return nil
		}
		return fmt.Errorf("dataset: read %s: %w", name, err)
	}

	if err = yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
	}

	return nil
}
