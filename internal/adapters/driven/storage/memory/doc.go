// Package memory provides in-memory implementations of the driven store
// ports for tests.
package memory
