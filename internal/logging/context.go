package logging

import (
	"context"
	"maps"
)

type contextKey string

const contextFieldsKey contextKey = "tutors.logging.fields"

// ContextWithFields returns a context carrying logging fields that console
// loggers merge into every entry written with that context. Fields already on
// ctx are kept; new values win on conflict.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}

	merged := make(map[string]any, len(fields))
	maps.Copy(merged, ContextFields(ctx))
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextFieldsKey, merged)
}

// ContextFields returns a copy of the fields stored on ctx.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(contextFieldsKey).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}
