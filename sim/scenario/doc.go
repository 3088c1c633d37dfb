// Package scenario provides scenario management for the car simulator.
//
// The scenario package handles:
//   - Loading simulation scenarios from JSON files
//   - The well-formedness checks the engine itself does not perform
//   - Default scenario management
//   - Scenario discovery and listing
//
// Scenario Format:
//
// Scenarios are stored as JSON files in the scenarios directory. Each
// scenario defines:
//   - The field dimensions
//   - The cars: name, starting position, facing and command string
//
// Cars are registered with the simulation in file order, which is the
// order they act in each step.
//
// Validation:
//
// The engine assumes well-formed input, so every path into it goes
// through this package's checks first: positive field dimensions, unique
// non-empty car names, in-bounds starting positions, a parseable facing
// and commands over the {L, R, F} alphabet. Two cars may deliberately
// share a starting cell; the run detects the overlap on the first
// executed command.
//
// Usage:
//
//	manager, err := scenario.NewManager("scenarios")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sc, err := manager.LoadScenario("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sim, err := sc.Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//	sim.Run()
package scenario
