// Package options loads choice lists for select-style filters.
//
// An Enum loader returns a fixed list without fetching. A fetched loader calls a
// Fetcher and maps the response through a Formatter, with optional OnError and
// AfterSuccess hooks. LoadAll loads several named lists concurrently.
package options
