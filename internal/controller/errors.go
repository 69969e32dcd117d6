package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Controller errors.
var (
	ErrNilFetch      = errors.New("fetch function cannot be nil")
	ErrRequestPanic  = errors.New("table request panicked")
	ErrEmptyResponse = errors.New("fetch returned no response")
)

// ApplicationError is a response that resolved with success == false.
// Its message is meant to be shown to the user.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	return e.Message
}

// TransportError is a fetch that failed outright, panicked, or returned a
// response that could not be normalized.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("table request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Reporter surfaces request failures to the user or to an error sink.
// It is called at most once per accepted failure and never for stale responses.
type Reporter interface {
	Report(ctx context.Context, err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, err error)

// Report calls f(ctx, err).
func (f ReporterFunc) Report(ctx context.Context, err error) {
	f(ctx, err)
}

// LogReporter reports failures on a zerolog logger. Application errors are
// logged at warn level, transport errors at error level.
type LogReporter struct {
	Logger zerolog.Logger
}

// Report logs err.
func (r LogReporter) Report(ctx context.Context, err error) {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		r.Logger.Warn().Ctx(ctx).
			Str("operation", "report").
			Str("kind", "application").
			Msg(appErr.Message)
		return
	}
	r.Logger.Error().Ctx(ctx).
		Str("operation", "report").
		Str("kind", "transport").
		Err(err).
		Msg("table request failed")
}
