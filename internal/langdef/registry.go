package langdef

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Registry resolves definitions by name, alias and file extension.
// Registering a definition with an existing name replaces the old one,
// so project definitions can shadow built-ins.
type Registry struct {
	byName map[string]*Definition
	alias  map[string]string
	byExt  map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Definition),
		alias:  make(map[string]string),
		byExt:  make(map[string]string),
	}
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds d. d must come from New.
func (r *Registry) Register(d *Definition) error {
	if d == nil {
		return fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
	}
	if d.keywords == nil {
		return fmt.Errorf("%w: %s: definition was not built with langdef.New", ErrInvalidDefinition, d.displayName())
	}
	key := nameKey(d.Name)
	r.byName[key] = d
	for _, a := range d.Aliases {
		r.alias[nameKey(a)] = key
	}
	for _, ext := range d.Extensions {
		r.byExt[NormalizeExtension(ext)] = key
	}
	return nil
}

// MapExtension routes ext to the language called name.
func (r *Registry) MapExtension(ext, name string) error {
	d, err := r.Lookup(name)
	if err != nil {
		return err
	}
	norm := NormalizeExtension(ext)
	if norm == "" || norm == "." {
		return fmt.Errorf("%w: empty extension for %s", ErrInvalidDefinition, d.Name)
	}
	r.byExt[norm] = nameKey(d.Name)
	return nil
}

// Lookup finds a definition by name or alias, case-insensitively.
func (r *Registry) Lookup(name string) (*Definition, error) {
	key := nameKey(name)
	if d, ok := r.byName[key]; ok {
		return d, nil
	}
	if target, ok := r.alias[key]; ok {
		if d, ok := r.byName[target]; ok {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

// ForExtension finds the definition registered for ext.
func (r *Registry) ForExtension(ext string) (*Definition, error) {
	norm := NormalizeExtension(ext)
	if key, ok := r.byExt[norm]; ok {
		if d, ok := r.byName[key]; ok {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: no language for extension %q", ErrUnknownLanguage, norm)
}

// ForPath picks a definition from the extension of path.
func (r *Registry) ForPath(path string) (*Definition, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, fmt.Errorf("%w: %s has no extension", ErrUnknownLanguage, filepath.Base(path))
	}
	return r.ForExtension(ext)
}

// Names returns the registered language names sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for _, d := range r.byName {
		out = append(out, d.Name)
	}
	slices.Sort(out)
	return out
}

// Extensions returns the extensions currently routed to name, sorted.
func (r *Registry) Extensions(name string) []string {
	key := nameKey(name)
	var out []string
	for ext, target := range r.byExt {
		if target == key {
			out = append(out, ext)
		}
	}
	slices.Sort(out)
	return out
}

func (r *Registry) Len() int {
	return len(r.byName)
}
