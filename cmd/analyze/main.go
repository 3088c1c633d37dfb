// Command analyze prints quick, human-readable heuristics about scenario
// files in the project's scenarios directory. It summarizes field sizes
// and car rosters, dry-runs every scenario through the engine, and
// highlights collisions, boundary-blocked moves, and cars that never
// leave their cell.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/limchuenyin/car-simulation/sim/engine"
)

// analysisScenario is a light struct for reading scenario files used by
// analysis.
type analysisScenario struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Field       analysisField `json:"field"`
	Cars        []analysisCar `json:"cars"`
}

type analysisField struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type analysisCar struct {
	Name      string `json:"name"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
	Commands  string `json:"commands"`
}

func main() {
	dir := "scenarios"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Printf("Error reading scenario directory: %v\n", err)
		os.Exit(1)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		fmt.Printf("\n=== Analyzing %s ===\n", entry.Name())
		analyzeScenario(filepath.Join(dir, entry.Name()))
	}
}

func analyzeScenario(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var sc analysisScenario
	if err := json.Unmarshal(data, &sc); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", sc.Name)
	fmt.Printf("Field: %d x %d\n", sc.Field.Width, sc.Field.Height)
	fmt.Printf("Cars: %d\n", len(sc.Cars))

	// Static checks before touching the engine
	names := make(map[string]bool)
	starts := make(map[engine.Position]string)
	problems := 0

	for _, car := range sc.Cars {
		fmt.Printf("- %s at (%d,%d) facing %s, %d commands\n",
			car.Name, car.X, car.Y, car.Direction, len(car.Commands))

		if names[car.Name] {
			fmt.Printf("⚠️  WARNING: duplicate car name %q\n", car.Name)
			problems++
		}
		names[car.Name] = true

		if car.X < 0 || car.X >= sc.Field.Width || car.Y < 0 || car.Y >= sc.Field.Height {
			fmt.Printf("⚠️  WARNING: %s starts out of bounds at (%d,%d)\n", car.Name, car.X, car.Y)
			problems++
		}

		if _, err := engine.ParseDirection(car.Direction); err != nil {
			fmt.Printf("⚠️  WARNING: %s has an invalid facing %q\n", car.Name, car.Direction)
			problems++
		}

		if !strings.ContainsRune(strings.ToUpper(car.Commands), 'F') {
			fmt.Printf("   Note: %s only rotates and never leaves its cell\n", car.Name)
		}

		pos := engine.Position{X: car.X, Y: car.Y}
		if prev, taken := starts[pos]; taken {
			fmt.Printf("⚠️  WARNING: %s and %s share the starting cell (%d,%d)\n", prev, car.Name, pos.X, pos.Y)
			problems++
		} else {
			starts[pos] = car.Name
		}
	}

	if problems > 0 {
		fmt.Printf("Skipping dry run: %d problems above\n", problems)
		return
	}

	dryRun(sc)
}

// dryRun executes the scenario and reports where every car ends up.
func dryRun(sc analysisScenario) {
	sim := engine.NewSimulation(engine.NewField(sc.Field.Width, sc.Field.Height))
	for _, car := range sc.Cars {
		facing, _ := engine.ParseDirection(car.Direction)
		sim.AddCar(engine.NewCar(car.Name, car.X, car.Y, facing, strings.ToUpper(car.Commands)))
	}

	sim.Run()

	fmt.Printf("Dry run: %d steps, %d commands executed\n", sim.Steps, len(sim.History))

	if blocked := countBlocked(sim.History); blocked > 0 {
		fmt.Printf("⚠️  %d forward moves were blocked by the boundary\n", blocked)
	}

	collided := 0
	for _, car := range sim.Cars {
		if car.Collided {
			collided++
			fmt.Printf("💥 %s collides with %s at (%d,%d) at step %d\n",
				car.Name, strings.Join(car.PartnerNames(), ", "),
				car.CollisionPos.X, car.CollisionPos.Y, car.CollisionStep)
		} else {
			fmt.Printf("   %s ends at (%d,%d) facing %s\n", car.Name, car.Pos.X, car.Pos.Y, car.Facing)
		}
	}

	if collided == 0 {
		fmt.Printf("✅ No collisions\n")
	}
}

// countBlocked tallies the boundary-suppressed forward moves in a run's
// history.
func countBlocked(history []engine.StepRecord) int {
	blocked := 0
	for _, rec := range history {
		if rec.Blocked {
			blocked++
		}
	}
	return blocked
}
