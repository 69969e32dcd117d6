// Package logging provides zerolog construction, component loggers, context
// propagation and ULID-based trace and request identifiers.
package logging
