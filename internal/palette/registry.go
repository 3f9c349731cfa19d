package palette

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/colors.yaml
var configFiles embed.FS

// ColorTag is one permitted cosmetic tag for folders. Tags carry no
// structural meaning; the registry only decides which values are assignable.
type ColorTag struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Hex   string `yaml:"hex" json:"hex"`
}

type paletteFile struct {
	Colors []ColorTag `yaml:"colors"`
}

// Registry holds the permitted color tags, loaded once from the embedded
// YAML palette.
type Registry struct {
	tags map[string]ColorTag
	mu   sync.RWMutex
}

// NewRegistry creates a registry and loads the embedded palette file.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/colors.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read palette: %w", err)
	}

	var file paletteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal palette: %w", err)
	}

	if len(file.Colors) == 0 {
		return nil, fmt.Errorf("palette defines no colors")
	}

	r := &Registry{tags: make(map[string]ColorTag, len(file.Colors))}
	for _, tag := range file.Colors {
		if tag.ID == "" {
			return nil, fmt.Errorf("palette entry with empty id")
		}
		r.tags[tag.ID] = tag
	}

	return r, nil
}

// Has reports whether the given tag id is assignable.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tags[id]
	return ok
}

// Get returns one tag by id.
func (r *Registry) Get(id string) (ColorTag, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tag, ok := r.tags[id]
	return tag, ok
}

// List returns all tags ordered by id.
func (r *Registry) List() []ColorTag {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]ColorTag, 0, len(r.tags))
	for _, tag := range r.tags {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].ID < tags[j].ID })
	return tags
}
