// Package query holds the table query model and its reconciliation rules.
//
// This package contains the pure, I/O-free part of the table query controller:
//   - Pagination, Sort and Filters: the three mutable slices of query state
//   - Classify: decides whether a combined table-change event is a page or sort change
//   - Reduce: the explicit (state, event) -> state transition function
//   - Params: the canonical request built from a State
//
// Everything here is deterministic and safe to call from tests without a data source.
package query
