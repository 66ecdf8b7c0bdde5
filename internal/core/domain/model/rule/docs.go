// Package rule contains the tenant-scoped courier assignment rule: a matching
// policy that maps order characteristics (zone, payment method, weight range,
// value range) to a preferred carrier with a priority.
//
// All ranges are half-open: the minimum is inclusive, the maximum exclusive.
// An absent bound imposes no restriction on that side. Ranges are closed value
// objects so "min set, max unset" states are explicit rather than accidental.
//
// Rules are administered outside this service and are read-only to the engine.
package rule
