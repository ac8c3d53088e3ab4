// Package services implements the driving port interfaces.
// Services contain the core business logic - the indexing gate and the
// conversational pipeline - and orchestrate calls to driven ports
// (adapters).
//
// Services are pure Go with no CGO or external I/O of their own.
package services
