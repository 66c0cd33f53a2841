// Package registry provides a global registry of built-in scenarios.
// Scenarios register themselves in init() functions, allowing the CLI and
// the title screen to discover boards without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/cellmachine/internal/core"
	"github.com/vovakirdan/cellmachine/internal/machine"
)

// ErrUnknownScenario is returned by Create for an unregistered ID.
var ErrUnknownScenario = errors.New("registry: unknown scenario")

// Scenario is a named starting board.
type Scenario interface {
	// ID returns a unique identifier (e.g., "push-train").
	// Used for CLI arguments and run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description is a one-line summary shown in pickers and listings.
	Description() string

	// Build creates a fresh grid. Boards without a fixed size use the
	// grid dimensions from cfg.
	Build(cfg core.RuntimeConfig) (*machine.Grid, error)
}

// Info contains metadata about a registered scenario.
type Info struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a scenario.
type Factory func() Scenario

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

// Register adds a scenario factory to the registry.
// Panics if a scenario with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}

	factories[id] = f

	s := f()
	infos[id] = Info{ID: id, Title: s.Title(), Description: s.Description()}
}

// List returns information about all registered scenarios, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a scenario by its ID.
func Create(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, id)
	}

	return f(), nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
