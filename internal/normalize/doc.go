// Package normalize maps raw data-source responses into a canonical list-plus-total result.
//
// A Response is the untyped map returned by a fetch. Default builds a Func that
// reads the list and the total from configurable field names; callers can supply
// their own Func to bypass the default mapping entirely.
package normalize
