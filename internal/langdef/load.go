package langdef

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Decode parses a TOML language file. Unknown keys are rejected so a typo
// never silently disables a construct.
func Decode(data []byte) (*Definition, error) {
	var d Definition
	meta, err := toml.Decode(string(data), &d)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%w: %s: unknown keys: %s", ErrInvalidDefinition, d.displayName(), strings.Join(keys, ", "))
	}
	return New(d)
}

// Load reads and decodes the language file at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read language file: %w", err)
	}
	d, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// LoadFile loads path and registers the result.
func (r *Registry) LoadFile(path string) (*Definition, error) {
	d, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := r.Register(d); err != nil {
		return nil, err
	}
	return d, nil
}
