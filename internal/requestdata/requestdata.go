package requestdata

import (
	"context"
)

type contextKey struct{}

var requestDataKey = contextKey{}

// RequestData carries the authenticated identity for the duration of one
// request. UserID is the identity provider subject and doubles as the user
// primary key.
type RequestData struct {
	UserID string
	Email  string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey)
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}
