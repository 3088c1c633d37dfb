package scenario

import (
	"fmt"
	"strings"

	"github.com/limchuenyin/car-simulation/sim/engine"
)

// Validation constants
const (
	MaxCars          = 256
	MaxCommandLength = 10000
)

// CarSpec represents one car definition as supplied by users or files
type CarSpec struct {
	Name      string `json:"name"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
	Commands  string `json:"commands"`
}

// Scenario represents a named simulation setup loaded from JSON
type Scenario struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Field       engine.Field `json:"field"`
	Cars        []CarSpec    `json:"cars"`
}

// Info summarizes one scenario for listings
type Info struct {
	Filename    string `json:"filename"`
	ScenarioID  string `json:"scenario_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	CarCount    int    `json:"car_count"`
}

// Validate checks a scenario for the constraints the engine assumes its
// callers have enforced
func Validate(sc *Scenario) error {
	if strings.TrimSpace(sc.Name) == "" {
		return fmt.Errorf("scenario validation: name is required")
	}
	if sc.Field.Width <= 0 || sc.Field.Height <= 0 {
		return fmt.Errorf("scenario validation: field dimensions must be positive, got %dx%d",
			sc.Field.Width, sc.Field.Height)
	}
	if len(sc.Cars) > MaxCars {
		return fmt.Errorf("scenario validation: at most %d cars are supported, got %d", MaxCars, len(sc.Cars))
	}

	seen := make(map[string]bool)
	for i, spec := range sc.Cars {
		if err := ValidateCar(sc.Field, spec); err != nil {
			return fmt.Errorf("scenario validation: car %d: %v", i+1, err)
		}
		name := strings.TrimSpace(spec.Name)
		if seen[name] {
			return fmt.Errorf("scenario validation: duplicate car name %q", name)
		}
		seen[name] = true
	}

	return nil
}

// ValidateCar checks a single car definition against a field: non-empty
// name, in-bounds start, parseable direction and a legal command string.
// Name uniqueness is the collection-level check in Validate.
func ValidateCar(field engine.Field, spec CarSpec) error {
	if strings.TrimSpace(spec.Name) == "" {
		return fmt.Errorf("car name is required")
	}
	if !field.InBounds(spec.X, spec.Y) {
		return fmt.Errorf("position (%d,%d) is outside the %dx%d field",
			spec.X, spec.Y, field.Width, field.Height)
	}
	if _, err := engine.ParseDirection(spec.Direction); err != nil {
		return err
	}
	return ValidateCommands(spec.Commands)
}

// ValidateCommands checks a command string against the {L, R, F} alphabet,
// case insensitively.
func ValidateCommands(commands string) error {
	if commands == "" {
		return fmt.Errorf("commands must not be empty")
	}
	if len(commands) > MaxCommandLength {
		return fmt.Errorf("commands must not exceed %d characters, got %d", MaxCommandLength, len(commands))
	}
	for i, r := range strings.ToUpper(commands) {
		switch r {
		case 'L', 'R', 'F':
		default:
			return fmt.Errorf("invalid command %q at position %d (want L, R or F)", string(r), i)
		}
	}
	return nil
}

// Build validates the scenario and constructs a ready-to-run simulation
// with the cars registered in file order.
func (sc *Scenario) Build() (*engine.Simulation, error) {
	if err := Validate(sc); err != nil {
		return nil, err
	}

	sim := engine.NewSimulation(sc.Field)
	for _, spec := range sc.Cars {
		facing, err := engine.ParseDirection(spec.Direction)
		if err != nil {
			return nil, err
		}
		sim.AddCar(engine.NewCar(strings.TrimSpace(spec.Name), spec.X, spec.Y, facing, spec.Commands))
	}
	return sim, nil
}
