package auth

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/valtteripyyhtia/book-library/pkg/domain/model/errs"
)

type ctxSubKey struct{}

// WithSub stores the authenticated subject in the context.
func WithSub(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, ctxSubKey{}, sub)
}

// SubFromContext extracts the authenticated subject from the context.
func SubFromContext(ctx context.Context) (string, error) {
	sub, ok := ctx.Value(ctxSubKey{}).(string)
	if !ok || sub == "" {
		return "", goerr.New("subject not found in context", goerr.T(errs.TagUnauthorized))
	}
	return sub, nil
}
