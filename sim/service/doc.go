// Package service provides the business logic layer for the car simulator.
//
// The service package implements:
//   - Multi-session simulation management
//   - Scenario loading and car registration with full input validation
//   - The run-exactly-once lifecycle of each simulation
//   - Result reporting and paginated trace access
//
// Core Interfaces:
//
// SimulationService is the main service interface providing high-level
// simulation operations. SessionManager handles session creation,
// retrieval and lifecycle. ScenarioManager manages scenario loading and
// listing.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the simulation engine, providing session isolation, input
// validation and lifecycle enforcement. The engine itself validates
// nothing and cannot fail, so everything that can go wrong is decided
// here before the engine is touched. Each session owns one simulation.
//
// Lifecycle:
//
// A session starts in the setup phase: cars can be added, each validated
// against the field bounds, the command alphabet and name uniqueness.
// Run executes the simulation exactly once; afterwards the session is
// read-only and further Run or AddCar calls fail with a sentinel error.
// Results and the step trace stay available until the session is deleted.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	scenarioMgr, _ := scenario.NewManager("scenarios")
//	simService := service.NewSimulationService(sessionMgr, scenarioMgr)
//
//	info, err := simService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := simService.Run(ctx, info.ID)
package service
