package api

import (
	"context"
)

type keyType string

const (
	subjectKey keyType = "subject"
)

// ctxWithSubject adds the authenticated token subject to the context
func ctxWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// ctxGetSubject returns the authenticated subject, or "" for anonymous requests
func ctxGetSubject(ctx context.Context) string {
	subject, _ := ctx.Value(subjectKey).(string)
	return subject
}
