// Package mocks provides tracing that records nothing, for tests.
package mocks

import (
	"context"

	"turfbook/infras/otel"
)

type nopOtel struct{}

func (nopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func NewOtel() otel.Otel {
	return nopOtel{}
}
