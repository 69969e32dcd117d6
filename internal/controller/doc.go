// Package controller implements the table query controller.
//
// A Controller owns the authoritative query state (pagination, sort, filters and
// static extra parameters) for one view, turns triggers into canonical requests,
// issues them through a caller-supplied fetch function and folds accepted
// responses back into the view state. Key behaviours:
//   - Every issued request is tagged with a monotonically increasing sequence
//     number; a response is applied only if no later-issued request has already
//     been resolved, so stale responses never overwrite newer state.
//   - Loading is derived from an in-flight counter released on every path,
//     including a panicking fetch.
//   - Application and transport failures are reported through a Reporter and
//     never escape to the caller; the previous result is kept.
//
// All methods are safe for concurrent use. Handlers always read the current
// state from the controller at call time.
package controller
