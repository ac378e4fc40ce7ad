// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - LayoutSource: Page/line and word tables
//   - TextSource: Verse text, translations and surah metadata
//   - MatchSource: Forward similarity match records
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Fingerprinter: Without it, every reload rebuilds the snapshot.
//   - ChangeNotifier: Without it, reloads only happen on request.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
