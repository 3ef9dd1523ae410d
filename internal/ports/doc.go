// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// # Port Interfaces
//
//   - [Storage]: loads and saves the whole voting state
//   - [Logger]: structured logging abstraction
//
// The controller (internal/app) depends only on these interfaces. Adapters
// (internal/adapters) implement them with process memory, a JSON file or
// zerolog.
package ports
