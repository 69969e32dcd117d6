package tui

import (
	"context"
	"errors"
	"sync"

	"github.com/rshade/tablequery/internal/controller"
)

// Notice is a controller.Reporter that keeps the last reported failure for
// display and forwards every report to Next.
type Notice struct {
	Next controller.Reporter

	mu  sync.Mutex
	msg string
}

// Report records err and forwards it.
func (n *Notice) Report(ctx context.Context, err error) {
	var appErr *controller.ApplicationError
	msg := err.Error()
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}

	n.mu.Lock()
	n.msg = msg
	n.mu.Unlock()

	if n.Next != nil {
		n.Next.Report(ctx, err)
	}
}

// Message returns the last reported failure, or "" after Clear.
func (n *Notice) Message() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg
}

// Clear forgets the last failure.
func (n *Notice) Clear() {
	n.mu.Lock()
	n.msg = ""
	n.mu.Unlock()
}
