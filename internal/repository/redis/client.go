// Package redis keeps OTP and session registries in Redis so they survive
// restarts and are shared between server replicas.
package redis

import (
	"github.com/redis/go-redis/v9"
)

// NewClient returns a single-node or cluster client depending on useCluster.
func NewClient(addrs []string, password string, useCluster bool) redis.UniversalClient {
	if useCluster && len(addrs) > 1 {
		return redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    addrs,
			Password: password,
		})
	}

	return redis.NewClient(&redis.Options{
		Addr:     addrs[0],
		Password: password,
		DB:       0,
	})
}
