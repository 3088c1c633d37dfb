package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/limchuenyin/car-simulation/sim/engine"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrInvalidScenario  = errors.New("invalid scenario")
)

// Manager handles scenario loading and caching
type Manager struct {
	scenarioDir     string
	defaultScenario *Scenario
	scenarios       map[string]*Scenario
	mu              sync.RWMutex
}

// NewManager creates a new scenario manager
func NewManager(scenarioDir string) (*Manager, error) {
	if _, err := os.Stat(scenarioDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario directory does not exist: %s", scenarioDir)
	}

	m := &Manager{
		scenarioDir: scenarioDir,
		scenarios:   make(map[string]*Scenario),
	}

	if err := m.loadDefaultScenario(); err != nil {
		return nil, fmt.Errorf("failed to load default scenario: %w", err)
	}

	return m, nil
}

// LoadScenario loads a scenario by name
func (m *Manager) LoadScenario(name string) (*Scenario, error) {
	m.mu.RLock()
	if sc, exists := m.scenarios[name]; exists {
		m.mu.RUnlock()
		return sc, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if sc, exists := m.scenarios[name]; exists {
		return sc, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	scenarioPath := filepath.Join(m.scenarioDir, filename)

	data, err := os.ReadFile(scenarioPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrScenarioNotFound
		}
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	if err := Validate(&sc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	m.scenarios[name] = &sc
	return &sc, nil
}

// ListScenarios returns information about all available scenarios
func (m *Manager) ListScenarios() ([]*Info, error) {
	entries, err := os.ReadDir(m.scenarioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var infos []*Info

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")

		sc, err := m.LoadScenario(name)
		if err != nil {
			// Skip invalid scenarios
			continue
		}

		infos = append(infos, &Info{
			Filename:    entry.Name(),
			ScenarioID:  name,
			Name:        sc.Name,
			Description: sc.Description,
			Width:       sc.Field.Width,
			Height:      sc.Field.Height,
			CarCount:    len(sc.Cars),
		})
	}

	return infos, nil
}

// GetDefault returns the default scenario
func (m *Manager) GetDefault() *Scenario {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultScenario
}

// SetDefault sets the default scenario by name
func (m *Manager) SetDefault(name string) error {
	sc, err := m.LoadScenario(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultScenario = sc
	return nil
}

// RefreshCache drops all cached scenarios and reloads the default. The
// cache is cleared under the lock but the reload happens outside it, as
// loading takes the lock itself.
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.scenarios = make(map[string]*Scenario)
	m.mu.Unlock()

	return m.loadDefaultScenario()
}

// loadDefaultScenario loads the default scenario, preferring classic.json
// and falling back to the first available file, then to a built-in.
func (m *Manager) loadDefaultScenario() error {
	sc, err := m.LoadScenario("classic")
	if err != nil {
		infos, listErr := m.ListScenarios()
		if listErr == nil && len(infos) > 0 {
			sc, err = m.LoadScenario(infos[0].ScenarioID)
		}
		if err != nil {
			sc = m.createMinimalScenario()
		}
	}

	m.mu.Lock()
	m.defaultScenario = sc
	m.mu.Unlock()
	return nil
}

// SaveScenario saves a scenario to disk
func (m *Manager) SaveScenario(name string, sc *Scenario) error {
	if err := Validate(sc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	scenarioPath := filepath.Join(m.scenarioDir, filename)

	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	if err := os.WriteFile(scenarioPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}

	m.mu.Lock()
	m.scenarios[name] = sc
	m.mu.Unlock()

	return nil
}

// createMinimalScenario creates a minimal valid scenario
func (m *Manager) createMinimalScenario() *Scenario {
	return &Scenario{
		Name:        "default",
		Description: "Two cars crossing a 10x10 field",
		Field:       engine.NewField(10, 10),
		Cars: []CarSpec{
			{Name: "A", X: 1, Y: 2, Direction: "N", Commands: "FFRFFFFRRL"},
			{Name: "B", X: 7, Y: 8, Direction: "W", Commands: "FFLFFFFFFF"},
		},
	}
}
