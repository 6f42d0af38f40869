package accel

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSettings reads and strictly parses a YAML accelerator configuration
// file: unrecognized keys (typos) are rejected.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading accelerator config: %w", err)
	}
	var settings Settings
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&settings); err != nil {
		return nil, fmt.Errorf("parsing accelerator config: %w", err)
	}
	return &settings, nil
}
