package presets

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrInvalidPreset indicates a preset violates validation rules.
	ErrInvalidPreset = errors.New("preset must have a name, positive tile dimensions, and a non-negative divider")
	// ErrUnknownPreset is returned when no preset with the requested name exists.
	ErrUnknownPreset = errors.New("unknown preset")
)

// Preset bundles the tile geometry of one named slicing configuration.
type Preset struct {
	Name         string `yaml:"name"`
	TileWidth    int    `yaml:"tile_width"`
	TileHeight   int    `yaml:"tile_height"`
	DividerWidth int    `yaml:"divider_width"`
}

var defaultPresets = []Preset{
	{Name: "sprite-16", TileWidth: 16, TileHeight: 16},
	{Name: "sprite-32", TileWidth: 32, TileHeight: 32},
	{Name: "thumbnail", TileWidth: 128, TileHeight: 128},
	{Name: "web-tile", TileWidth: 256, TileHeight: 256},
	{Name: "contact-sheet", TileWidth: 300, TileHeight: 300, DividerWidth: 10},
}

// Store provides access to the named slicing presets known to the application.
type Store interface {
	Get(name string) (Preset, error)
	List() ([]Preset, error)
	Put(preset Preset) error
}

// MemoryStore keeps presets in-memory and guards access with a RWMutex.
type MemoryStore struct {
	mu      sync.RWMutex
	presets map[string]Preset
}

// NewMemoryStore initialises a store with a copy of the built-in presets.
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{presets: make(map[string]Preset, len(defaultPresets))}
	for _, preset := range defaultPresets {
		store.presets[preset.Name] = preset
	}
	return store
}

// DefaultPresets returns a copy of the built-in preset list.
func DefaultPresets() []Preset {
	out := make([]Preset, len(defaultPresets))
	copy(out, defaultPresets)
	return out
}

// Get returns the preset registered under the given name.
func (s *MemoryStore) Get(name string) (Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	preset, ok := s.presets[name]
	if !ok {
		return Preset{}, ErrUnknownPreset
	}
	return preset, nil
}

// List returns all registered presets sorted by name.
func (s *MemoryStore) List() ([]Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Preset, 0, len(s.presets))
	for _, preset := range s.presets {
		out = append(out, preset)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Put validates and registers a preset, replacing any existing preset with
// the same name.
func (s *MemoryStore) Put(preset Preset) error {
	if err := validatePreset(preset); err != nil {
		return err
	}

	s.mu.Lock()
	s.presets[preset.Name] = preset
	s.mu.Unlock()

	return nil
}

func validatePreset(preset Preset) error {
	if strings.TrimSpace(preset.Name) == "" {
		return ErrInvalidPreset
	}
	if preset.TileWidth <= 0 || preset.TileHeight <= 0 {
		return ErrInvalidPreset
	}
	if preset.DividerWidth < 0 {
		return ErrInvalidPreset
	}
	return nil
}
