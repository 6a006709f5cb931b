// Package redis serves authored graphs from Redis so several processes can
// share and hot-reload the same definitions.
package redis
