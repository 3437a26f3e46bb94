// Package logger adds per-operation context to slog records.
package logger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type operationKey struct{}

// Operation identifies one menu action. Every record logged with its context carries both fields.
type Operation struct {
	Name string
	ID   string
}

// WithOperation returns a context tagged with a new operation ID for name.
func WithOperation(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operationKey{}, Operation{Name: name, ID: uuid.NewString()})
}

// OperationFrom retrieves the operation stored by WithOperation.
// Returns the operation and a boolean indicating whether it was found.
func OperationFrom(ctx context.Context) (Operation, bool) {
	op, ok := ctx.Value(operationKey{}).(Operation)
	return op, ok
}

// ContextHandler is a wrapper around slog.Handler that adds context information.
type ContextHandler struct {
	slog.Handler
}

// NewContextHandler creates a new ContextHandler.
func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{
		Handler: handler,
	}
}

// Handle processes a log record and adds the operation fields when ctx has them.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if op, ok := OperationFrom(ctx); ok {
		r.AddAttrs(slog.String("operation", op.Name), slog.String("operation_id", op.ID))
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs returns a new ContextHandler with the given attributes added.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{
		Handler: h.Handler.WithAttrs(attrs),
	}
}

// WithGroup returns a new ContextHandler with the given group added.
func (h *ContextHandler) WithGroup(group string) slog.Handler {
	return &ContextHandler{
		Handler: h.Handler.WithGroup(group),
	}
}
