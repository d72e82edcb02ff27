package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client
var redisServer *miniredis.Miniredis

// NewRedis returns a client for a shared in-process Redis server.
func NewRedis() (*redis.Client, *miniredis.Miniredis) {
	redisConnOnce.Do(
		func() {
			redisConn, redisServer = openRedisConn()
		},
	)

	return redisConn, redisServer
}

func openRedisConn() (*redis.Client, *miniredis.Miniredis) {
	server, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	conn := redis.NewClient(
		&redis.Options{
			Addr: server.Addr(),
		},
	)

	return conn, server
}

func ClearRedis(redis *redis.Client) error {
	return redis.FlushAll(context.TODO()).Err()
}

// CountKeys returns how many keys match pattern.
func CountKeys(redis *redis.Client, pattern string) (int, error) {
	keys, err := redis.Keys(context.TODO(), pattern).Result()
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
