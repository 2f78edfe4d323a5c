package dialect

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileDialect is the on-disk shape: a Dialect plus the preset it extends.
type fileDialect struct {
	Extends string `yaml:"extends"`
	Dialect `yaml:",inline"`
}

// LoadFile reads a YAML dialect definition. Fields left empty are inherited from
// the preset named by "extends" (default "en"), which must already be registered.
func LoadFile(path string) (*Dialect, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dialect file: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML dialect definition; see LoadFile.
func Parse(b []byte) (*Dialect, error) {
	var fd fileDialect
	if err := yaml.Unmarshal(b, &fd); err != nil {
		return nil, fmt.Errorf("decode dialect: %w", err)
	}
	base := fd.Extends
	if base == "" {
		base = "en"
	}
	parent, err := Get(base)
	if err != nil {
		return nil, err
	}
	d := fd.Dialect.Clone()
	d.fillFrom(parent)
	if d.Name == "" {
		d.Name = parent.Name + "+custom"
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
