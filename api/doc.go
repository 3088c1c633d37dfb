// Package api provides HTTP REST API handlers for the car simulator.
//
// The api package implements:
//   - RESTful endpoints for session and simulation operations
//   - Scenario listing, retrieval and creation
//   - WebSocket upgrade handling
//   - Health checking
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (from a scenario or custom field)
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Simulation Operations:
//   - POST /api/sessions/{id}/cars - Add a car before the run
//   - POST /api/sessions/{id}/run - Execute the simulation (once per session)
//   - GET /api/sessions/{id}/result - Final positions and collision report
//   - GET /api/sessions/{id}/trace - Step-by-step trace with pagination
//
// Scenarios:
//   - GET /api/scenarios - List available scenarios
//   - POST /api/scenarios - Save a new scenario
//   - GET /api/scenarios/{name} - Get a scenario definition
//
// Other:
//   - GET /health - Liveness check
//   - GET /ws?session={id} - WebSocket upgrade for session events
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Session creation picks a
// scenario by ID, or builds an empty custom field:
//
//	{ "scenario_id": "classic" }
//	{ "width": 10, "height": 10 }
//
// Cars are added as:
//
//	{ "name": "A", "x": 1, "y": 2, "direction": "N", "commands": "FFRFFFFRRL" }
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{ "error": "error message" }
//
// 404 for unknown sessions or scenarios, 409 when the run-once lifecycle
// is violated, 400 for invalid input, 500 otherwise.
package api
