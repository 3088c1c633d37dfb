// Package mcp provides the Model Context Protocol server for the car simulator.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for session and simulation operations
//   - Plaintext rendering of fields, cars and run traces
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_session: Create a session from a scenario or custom dimensions
//   - list_sessions: List all active sessions
//   - get_session: Get session details with a field view
//   - add_car: Place a car with a position, facing and command string
//   - run_simulation: Execute the simulation to completion
//   - simulation_result: Get the final report of a finished run
//   - simulation_trace: Retrieve the step-by-step trace with pagination
//   - car_status: Get detailed state of a single car
//   - list_scenarios: List available scenario files
//   - simulation_instructions: Get the full rules and tool workflow
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Design:
//
// The client is a thin proxy: every tool call is translated into a REST
// request against the API server, and the JSON response is rendered as
// plaintext for the agent. No simulation state lives in this package.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
