// Package driving defines the interfaces that external actors (the CLI)
// use to run the core. These are the "driving" ports in hexagonal
// architecture terminology - they drive the application.
//
// Implementations of these interfaces live in internal/core/services.
package driving
