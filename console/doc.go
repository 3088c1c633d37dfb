// Package console implements the interactive terminal front end for the
// car simulator.
//
// The console package implements:
//   - Prompt-driven field and car setup
//   - Input validation with retry on bad input
//   - A menu loop for adding cars and running the simulation
//   - Plaintext result reporting, including collisions
//   - A start-over loop so several simulations can run in one sitting
//
// Interaction Model:
//
// The console reads lines from an injected io.Reader and writes prompts
// and reports to an injected io.Writer, so the whole dialogue can be
// scripted in tests. It drives the engine directly: one field, cars
// added one at a time, a single run, then a fresh field on start over.
//
// Invalid input never aborts the program. Every prompt re-asks (or
// returns to the menu) after printing an error line, mirroring what a
// person at the keyboard would expect.
//
// Usage:
//
//	c := console.New(os.Stdin, os.Stdout)
//	if err := c.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// Run returns when the user exits or the input stream ends.
package console
