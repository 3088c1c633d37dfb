// Command validate provides a small CLI that validates scenario JSON
// files in the ../scenarios directory. It checks:
//   - JSON structure and required fields
//   - Field dimensions (positive width and height)
//   - Car names (present and unique) and starting positions (in bounds)
//   - Facings (N, S, E, W) and command strings (L, R, F only)
//   - Roster limits and distinct starting cells
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scenario mirrors the JSON schema for a scenario file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Field       Field  `json:"field"`
	Cars        []Car  `json:"cars"`
}

// Field is the rectangular grid the cars drive on.
type Field struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Car is one car entry in a scenario file.
type Car struct {
	Name      string `json:"name"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
	Commands  string `json:"commands"`
}

// Roster and command limits enforced by the server.
const (
	maxCars          = 256
	maxCommandLength = 10000
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateScenario loads and validates a single scenario JSON file. It
// performs structural checks, per-car validation, and a starting-cell
// clash check.
func validateScenario(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	// Validate field
	if sc.Field.Width <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Field width must be positive, got %d", sc.Field.Width))
	}
	if sc.Field.Height <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Field height must be positive, got %d", sc.Field.Height))
	}

	// Validate roster
	if len(sc.Cars) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Must have at least 1 car")
	}
	if len(sc.Cars) > maxCars {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Too many cars: %d (limit %d)", len(sc.Cars), maxCars))
	}

	validDirections := map[string]bool{
		"N": true, // north, toward positive y
		"S": true, // south, toward negative y
		"E": true, // east, toward positive x
		"W": true, // west, toward negative x
	}
	validCommands := map[rune]bool{
		'L': true, // rotate left
		'R': true, // rotate right
		'F': true, // move forward
	}

	names := map[string]bool{}
	longestCommands := 0

	for i, car := range sc.Cars {
		if strings.TrimSpace(car.Name) == "" {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Car %d has no name", i+1))
		}

		if names[car.Name] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Duplicate car name %q", car.Name))
		}
		names[car.Name] = true

		if !validDirections[strings.ToUpper(car.Direction)] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid direction %q for car %s (want N, S, E or W)", car.Direction, car.Name))
		}

		if car.X < 0 || car.X >= sc.Field.Width || car.Y < 0 || car.Y >= sc.Field.Height {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Car %s starts out of bounds at (%d,%d)", car.Name, car.X, car.Y))
		}

		if len(car.Commands) == 0 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Car %s has no commands", car.Name))
		}
		if len(car.Commands) > maxCommandLength {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Car %s commands exceed %d characters", car.Name, maxCommandLength))
		}
		for _, ch := range strings.ToUpper(car.Commands) {
			if !validCommands[ch] {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Invalid command character %q for car %s", string(ch), car.Name))
				break
			}
		}

		if len(car.Commands) > longestCommands {
			longestCommands = len(car.Commands)
		}
	}

	// Starting-cell validation - cars sharing a cell collide immediately
	if result.Valid {
		cellResult := validateStartingCells(sc.Cars)
		result.Errors = append(result.Errors, cellResult.Errors...)
		if !cellResult.Valid {
			result.Valid = false
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", sc.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Field: %dx%d", sc.Field.Width, sc.Field.Height))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Cars: %d", len(sc.Cars)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Longest command string: %d", longestCommands))
	}

	return result
}

// validateStartingCells ensures no two cars share a starting cell. Cars
// stacked on one cell would collide on the very first executed command.
func validateStartingCells(cars []Car) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	taken := map[string]string{}
	for _, car := range cars {
		key := fmt.Sprintf("%d,%d", car.X, car.Y)
		if prev, clash := taken[key]; clash {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Starting cell clash: %s and %s both start at (%d,%d)", prev, car.Name, car.X, car.Y))
			continue
		}
		taken[key] = car.Name
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Starting cells: all %d distinct", len(cars)))
	}

	return result
}

// main scans ../scenarios for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are
// invalid.
func main() {
	scenarioDir := "../scenarios"
	files, err := filepath.Glob(filepath.Join(scenarioDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding scenario files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateScenario(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All scenarios are valid!")
	} else {
		fmt.Println("❌ Some scenarios have errors")
		os.Exit(1)
	}
}
