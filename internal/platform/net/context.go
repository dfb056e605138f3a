// Package net keeps per request identity on the context: chi's request id and the operator driving the line
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// OperatorHeader is the free form name of whoever is at the line
const OperatorHeader = "X-Operator"

type operatorKey struct{}

// WithRequest stores reqID under chi's key, so chimw.GetReqID sees it too, and the operator.
// Empty values are not stored
func WithRequest(ctx context.Context, reqID, operator string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if operator != "" {
		ctx = context.WithValue(ctx, operatorKey{}, operator)
	}
	return ctx
}

func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

func Operator(ctx context.Context) string {
	op, _ := ctx.Value(operatorKey{}).(string)
	return op
}
