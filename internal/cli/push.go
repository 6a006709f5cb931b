package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/animflow/pkg/adapters/file"
	"github.com/aretw0/animflow/pkg/adapters/redis"
)

// Push uploads the graph document at path to the Redis backend of s and
// returns the name it was stored under.
func Push(ctx context.Context, s Source, path string) (string, error) {
	if s.RedisAddr == "" {
		return "", fmt.Errorf("push needs a redis address")
	}
	g, err := file.LoadFile(path)
	if err != nil {
		return "", err
	}
	loader := redis.New(s.RedisAddr, "", 0, redis.WithLogger(s.Logger))
	defer loader.Close()

	if err := loader.Put(ctx, g); err != nil {
		return "", err
	}
	return g.Name, nil
}
