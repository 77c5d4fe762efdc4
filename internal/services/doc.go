// Package services implements the authentication core: the credential
// store, the audit log, the session state machine and the Module facade that
// gates protected operations and records every attempt.
//
// All state is owned by explicit values; nothing is kept in package globals,
// so independent Modules can coexist (one per test, for instance).
package services
