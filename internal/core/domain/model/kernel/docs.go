// Package kernel contains shared value objects used across the domain model:
// strongly-typed identifiers and the shipping zone identity.
//
// Everything here is immutable and safe for concurrent use. Zero values are
// invalid and are rejected by Validate, which lets aggregates assume that a
// kernel value that passed construction stays valid forever.
package kernel
