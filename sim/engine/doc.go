// Package engine provides the core simulation logic for the auto-driving
// car simulator.
//
// The engine package implements the simulation mechanics including:
//   - A bounded rectangular field with a containment test
//   - Per-car command interpretation (rotate left, rotate right, forward)
//   - Step-synchronous execution across many cars in registration order
//   - Immediate collision detection after every executed command
//   - A replayable trace of every executed command
//
// Core Types:
//
// Field describes the grid bounds. Car holds one vehicle's mutable state
// plus the interpreter for a single command. Simulation owns a Field and
// an ordered list of Cars and drives the round-based run loop.
//
// Usage:
//
//	field := engine.NewField(10, 10)
//	sim := engine.NewSimulation(field)
//	sim.AddCar(engine.NewCar("A", 1, 2, engine.North, "FFRFFFFRRL"))
//	sim.Run()
//
//	for _, car := range sim.Cars {
//		if car.Collided {
//			fmt.Println(car.Name, "collided at", car.CollisionPos)
//		}
//	}
//
// Simulation Rules:
//
// Cars execute their command strings in lockstep: each step, every car
// that is still active (not collided, commands remaining) executes exactly
// one command, in the order the cars were registered. A forward move that
// would leave the field is silently discarded, but the command is still
// consumed. Immediately after each car's command the engine scans the
// other cars for an exact position match; on the first match both cars are
// marked collided with the step, position and each other's names recorded,
// and neither moves again. The run ends when no active cars remain.
//
// The engine performs no input validation and cannot fail: bounds,
// command alphabet, direction values and name uniqueness are the caller's
// responsibility (see the scenario package).
package engine
