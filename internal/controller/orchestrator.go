package controller

import (
	"context"
	"fmt"

	"github.com/rshade/tablequery/internal/logging"
	"github.com/rshade/tablequery/internal/normalize"
	"github.com/rshade/tablequery/internal/query"
)

// Status is how an issued request was resolved.
type Status int

const (
	// StatusApplied means the response replaced the result.
	StatusApplied Status = iota + 1
	// StatusFailed means the request failed and the error was reported.
	StatusFailed
	// StatusDiscarded means a later-issued request had already resolved.
	StatusDiscarded
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusFailed:
		return "failed"
	case StatusDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// Resolution describes what happened to one issued request. It is
// informational: failures have already been reported when it is returned.
type Resolution struct {
	// Seq is the issue-order sequence number, starting at 1.
	Seq uint64

	// RequestID is a ULID identifying the request in logs.
	RequestID string

	// Params is the exact request handed to the fetch function.
	Params query.Params

	Status Status

	// Err is the reported failure for StatusFailed, nil otherwise.
	Err error
}

// staged is a request whose query mutation and sequence number are fixed but
// whose fetch has not started.
type staged struct {
	operation string
	seq       uint64
	params    query.Params
}

// stage mutates the query through build and, when build reports a request,
// tags it. build runs under the controller lock, so the query state and the
// sequence number always advance together. With hold set the in-flight slot
// is taken in the same critical section, so observers never see an issued
// request that is not loading.
func (c *Controller[T]) stage(
	operation string,
	build func(s *query.State) (query.Params, bool),
	hold bool,
) (staged, bool) {
	c.mu.Lock()
	params, issues := build(&c.query)
	var st staged
	if issues {
		c.issued++
		if hold {
			c.inFlight++
		}
		st = staged{
			operation: operation,
			seq:       c.issued,
			params:    query.Merge(c.query.ExtraParams, params),
		}
	}
	snap, observers := c.snapshotLocked(), c.observersLocked()
	c.mu.Unlock()
	notify(observers, snap)
	return st, issues
}

// issue stages and executes a request in one step.
func (c *Controller[T]) issue(
	ctx context.Context,
	operation string,
	build func(s *query.State) query.Params,
) Resolution {
	st, _ := c.stage(operation, func(s *query.State) (query.Params, bool) {
		return build(s), true
	}, true)
	return c.execute(ctx, st, true)
}

// execute runs the fetch, resolves it and reports accepted failures. Unless
// held is set it first takes the in-flight slot.
func (c *Controller[T]) execute(ctx context.Context, st staged, held bool) Resolution {
	if !held {
		c.mu.Lock()
		c.inFlight++
		snap, observers := c.snapshotLocked(), c.observersLocked()
		c.mu.Unlock()
		notify(observers, snap)
	}

	res := Resolution{Seq: st.seq, RequestID: logging.NewID(), Params: st.params}
	log := c.logger.With().
		Str("operation", st.operation).
		Uint64("seq", st.seq).
		Str("request_id", res.RequestID).
		Logger()
	log.Debug().Ctx(ctx).
		Int("page", st.params.Page()).
		Int("page_size", st.params.PageSize()).
		Str("sort", st.params.Sort().String()).
		Msg("request issued")

	res.Status, res.Err = c.run(ctx, st.seq, st.params)

	switch res.Status {
	case StatusApplied:
		log.Debug().Ctx(ctx).Int("total", c.Total()).Msg("response applied")
	case StatusFailed:
		log.Debug().Ctx(ctx).Err(res.Err).Msg("request failed")
		c.reporter.Report(ctx, res.Err)
	case StatusDiscarded:
		log.Debug().Ctx(ctx).Msg("stale response discarded")
	}
	return res
}

// run performs the fetch and always releases the in-flight slot it holds.
//
//nolint:nonamedreturns // The deferred release needs the named results.
func (c *Controller[T]) run(ctx context.Context, seq uint64, params query.Params) (status Status, err error) {
	var result normalize.Result[T]
	defer func() {
		status, err = c.release(seq, result, err)
	}()
	result, err = c.call(ctx, params)
	return status, err
}

// release gives back the in-flight slot and applies the outcome unless a
// later-issued request has already been resolved.
func (c *Controller[T]) release(seq uint64, result normalize.Result[T], err error) (Status, error) {
	c.mu.Lock()
	c.inFlight--
	if seq < c.applied {
		snap, observers := c.snapshotLocked(), c.observersLocked()
		c.mu.Unlock()
		notify(observers, snap)
		return StatusDiscarded, nil
	}

	c.applied = seq
	status := StatusFailed
	if err == nil {
		c.result = result
		status = StatusApplied
	}
	snap, observers := c.snapshotLocked(), c.observersLocked()
	c.mu.Unlock()
	notify(observers, snap)
	return status, err
}

// call runs the fetch and the normalizer, converting every failure mode into
// an ApplicationError or a TransportError. It never panics.
//
//nolint:nonamedreturns // The recover needs to set err.
func (c *Controller[T]) call(ctx context.Context, params query.Params) (result normalize.Result[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			result = normalize.Result[T]{}
			err = &TransportError{Err: fmt.Errorf("%w: %v", ErrRequestPanic, r)}
		}
	}()

	resp, fetchErr := c.fetch(ctx, params)
	if fetchErr != nil {
		return result, &TransportError{Err: fetchErr}
	}
	if resp == nil {
		return result, &TransportError{Err: ErrEmptyResponse}
	}
	if !resp.Success() {
		return result, &ApplicationError{Message: resp.Message()}
	}

	result, err = c.process(resp)
	if err != nil {
		return normalize.Result[T]{}, &TransportError{Err: fmt.Errorf("normalize response: %w", err)}
	}
	if result.Items == nil {
		result.Items = []T{}
	}
	if result.Total < 0 {
		result.Total = 0
	}
	return result, nil
}
