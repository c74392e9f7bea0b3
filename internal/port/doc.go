// Package port implements candidate port parsing, availability checks, and
// the sequential bind scan that picks the server's listening port.
//
// The scan is deliberately simple:
//
//	for each candidate, in order: try net.Listen; first success wins
//
// A failed candidate is reported through a callback and skipped. When every
// candidate fails, Bind returns *model.AllPortsExhaustedError. Exactly one
// bind attempt is in flight at a time.
package port
