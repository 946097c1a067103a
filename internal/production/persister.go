// Package production provides production integrations: persistence, display
// publishing, visualization.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/comalice/calcx/internal/core"
)

// Format names a persisted file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned by NewPersister for unsupported formats.
var ErrUnknownFormat = errors.New("unknown state format")

// NewPersister returns a file persister for format rooted at dir.
func NewPersister(format Format, dir string) (core.Persister, error) {
	switch format {
	case FormatJSON:
		return NewJSONPersister(dir)
	case FormatYAML:
		return NewYAMLPersister(dir)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, snapshot core.MachineSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return writeFile(filepath.Join(p.dir, snapshot.MachineID+".json"), data)
}

func (p *JSONPersister) Load(ctx context.Context, machineID string) (core.MachineSnapshot, error) {
	data, err := readFile(filepath.Join(p.dir, machineID+".json"), machineID)
	if err != nil {
		return core.MachineSnapshot{}, err
	}

	var snapshot core.MachineSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return core.MachineSnapshot{}, fmt.Errorf("%w: json unmarshal: %w", core.ErrCorruptSnapshot, err)
	}
	snapshot.MachineID = machineID // Ensure ID

	return snapshot, nil
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, snapshot core.MachineSnapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	return writeFile(filepath.Join(p.dir, snapshot.MachineID+".yaml"), data)
}

func (p *YAMLPersister) Load(ctx context.Context, machineID string) (core.MachineSnapshot, error) {
	data, err := readFile(filepath.Join(p.dir, machineID+".yaml"), machineID)
	if err != nil {
		return core.MachineSnapshot{}, err
	}

	var snapshot core.MachineSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return core.MachineSnapshot{}, fmt.Errorf("%w: yaml unmarshal: %w", core.ErrCorruptSnapshot, err)
	}
	snapshot.MachineID = machineID // Ensure ID

	return snapshot, nil
}

// writeFile replaces fn atomically so a crash mid-save never leaves a
// truncated state file behind.
func writeFile(fn string, data []byte) error {
	tmp := fn + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, fn); err != nil {
		return fmt.Errorf("rename %s: %w", fn, err)
	}
	return nil
}

func readFile(fn, machineID string) ([]byte, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("machine %q: %w", machineID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return data, nil
}
