// Package services contains the pure domain services of the courier
// assignment engine: carrier eligibility validation, rule matching and
// ranking, and snapshot construction.
//
// Everything here is side-effect free and operates only on the arguments it
// is given — the tenant's rule set, carrier set and the order facts. That
// keeps resolution deterministic (identical inputs always produce the
// identical decision) and trivially parallelizable across orders.
package services
