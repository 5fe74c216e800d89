// Package registry provides a global registry of level variants.
// Variants register themselves in init() functions, allowing the CLI to
// discover and select gap placement strategies by name without hardcoded
// dependencies.
package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
)

// Variant decides where the passable gap of each floor goes.
type Variant interface {
	// ID returns a unique identifier (e.g., "classic").
	// Used for CLI flags, config and the run journal.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// PlaceGap returns the gap's left edge. span is the width of the valid
	// range for the left edge (screen minus margins minus gap width, never
	// negative) and step the grid size. The result must lie in
	// [margin, margin+span].
	PlaceGap(rng *rand.Rand, margin, span, step int) int
}

// VariantInfo contains metadata about a registered variant.
type VariantInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a variant.
type Factory func() Variant

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a variant factory to the registry.
// Typically called from an init() function.
// Panics if a variant with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered variants, sorted by ID.
func List() []VariantInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]VariantInfo, 0, len(factories))
	for id := range factories {
		result = append(result, VariantInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a variant by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Variant, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown variant %q", id)
	}

	return f(), nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
