// Package websocket provides WebSocket transport for the car simulator.
//
// The websocket package implements:
//   - Real-time session event streaming
//   - Session-aware WebSocket connections
//   - Automatic state broadcasting on changes
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. The hub goroutine is the only owner of the
// client registry; registration, unregistration and broadcasts all flow
// through its channels. Each client connection is handled by dedicated
// read and write goroutines.
//
// Message Protocol:
//
// Messages are JSON-encoded. Every outgoing message carries the session
// ID and an event name:
//   - session_update: full session snapshot after a car is added
//   - run_complete: the simulation result after the run finishes
//   - session_deleted: the session was removed
//
// Clients do not send application messages; the server only reads to
// keep the connection alive.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session
// ID via query parameter (?session=abc1) when establishing the
// connection. Events are broadcast only to clients connected to the same
// session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// inside an HTTP handler
//	hub.ServeWS(w, r, sessionID)
//
//	// after a state change
//	hub.BroadcastSession(sessionID, info)
//
// Run must be started before any broadcast; the hub channels are
// unbuffered.
package websocket
