// Package memory provides in-memory implementations of driven ports.
// They hold no state across processes and are used by tests.
package memory
