package globals

import (
	"context"

	"porterquote/internal/config"
	"porterquote/internal/quote"
)

type key struct{}

type Value struct {
	Config config.Config
	Client *quote.Client
	JSON   bool
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key{}, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key{}).(*Value)
}
