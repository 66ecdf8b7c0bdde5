// Package carrier contains the tenant-scoped carrier aggregate: a shipping
// provider with capability flags (cash-on-delivery support, weight limit),
// serviceability (zones, optionally narrowed to a pincode list) and a priority
// used for tie-breaking and default-courier fallback.
//
// Carriers are administered outside this service and are read-only to the
// assignment engine.
package carrier
