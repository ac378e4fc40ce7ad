// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Build turns loaded tables into an immutable Snapshot. QueryService
// publishes snapshots through an atomic pointer and answers queries
// without locking. CorpusService loads tables from driven sources and
// rebuilds on request or on change notifications.
//
// Services are pure Go with no CGO dependencies.
package services
