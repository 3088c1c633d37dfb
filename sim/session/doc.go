// Package session provides session management for the car simulator.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Concurrent access control
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session
// operations. Each session wraps one simulation together with metadata
// like creation time and last access time.
//
// Session Identifiers:
//
// Sessions use 4-character hexadecimal IDs for easy reference. The
// manager ensures IDs are unique and provides collision-resistant
// generation using cryptographic randomness. Lookups are
// case-insensitive.
//
// Sessions live in memory only: restarting the server discards them.
// Scenarios are the durable artifact, sessions are not.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent
// operations. Multiple goroutines can safely create, retrieve, and
// delete different sessions simultaneously. Internal locking ensures
// data consistency.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new session
//	sess, err := manager.Create("", sim, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sessionID)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// List all active sessions
//	sessions := manager.List()
//
// Cleanup:
//
// Sessions can be explicitly deleted or expire based on inactivity.
// CleanupExpiredSessions removes stale sessions and frees resources.
package session
